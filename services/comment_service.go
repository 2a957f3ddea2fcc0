package services

import (
	"context"
	"errors"
	"fmt"

	"blogapi/models"
	"blogapi/utils"

	"gorm.io/gorm"
)

type CommentService struct {
	db     *gorm.DB
	guard  *Guard
	events EventPublisher
}

func NewCommentService(db *gorm.DB, guard *Guard, events EventPublisher) *CommentService {
	return &CommentService{
		db:     db,
		guard:  guard,
		events: publisherOrNoop(events),
	}
}

func postExists(tx *gorm.DB, postID uint) error {
	var post models.Post
	err := tx.Select("id").First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	return err
}

// ListForPost returns the comments of a post in the order they were written.
func (cs *CommentService) ListForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	db := cs.db.WithContext(ctx)
	if err := postExists(db, postID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := db.Preload("Author").
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

// AddComment attaches a sanitized comment by actor to an existing post.
func (cs *CommentService) AddComment(ctx context.Context, actor Identity, postID uint, text string) (*models.Comment, error) {
	if err := RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     utils.SanitizeHTML(text),
		AuthorID: actor.UserID,
		PostID:   postID,
	}

	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := postExists(tx, postID); err != nil {
			return err
		}
		return tx.Create(comment).Error
	})
	if errors.Is(err, ErrPostNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("add comment to post %d: %w", postID, err)
	}

	comment.Author = &models.User{ID: actor.UserID, Name: actor.Name}
	cs.events.Publish(postID, EventCommentAdded, comment)
	return comment, nil
}

// DeleteComment removes one comment under postID. Only its author or the
// privileged identity may do so. The parent post is never touched.
func (cs *CommentService) DeleteComment(ctx context.Context, actor Identity, postID, commentID uint) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}

	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		err := tx.First(&comment, commentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && comment.PostID != postID) {
			return ErrCommentNotFound
		}
		if err != nil {
			return err
		}

		if comment.AuthorID != actor.UserID && !cs.guard.IsPrivileged(actor) {
			return ErrForbidden
		}

		return tx.Delete(&comment).Error
	})
	if errors.Is(err, ErrCommentNotFound) || errors.Is(err, ErrForbidden) {
		return err
	}
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}

	cs.events.Publish(postID, EventCommentDeleted, map[string]uint{"comment_id": commentID})
	return nil
}
