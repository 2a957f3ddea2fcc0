package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogapi/models"
	"blogapi/utils"

	"gorm.io/gorm"
)

type PostService struct {
	db     *gorm.DB
	guard  *Guard
	events EventPublisher
	now    func() time.Time
}

func NewPostService(db *gorm.DB, guard *Guard, events EventPublisher) *PostService {
	return &PostService{
		db:     db,
		guard:  guard,
		events: publisherOrNoop(events),
		now:    time.Now,
	}
}

// ListPosts returns every post in creation order.
func (ps *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := ps.db.WithContext(ctx).
		Preload("Author").
		Order("id ASC").
		Find(&posts).Error
	return posts, err
}

func (ps *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := ps.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

// CreatePost stores a new post authored by actor with a sanitized body and
// today's date.
func (ps *PostService) CreatePost(ctx context.Context, actor Identity, req *models.PostRequest) (*models.Post, error) {
	if err := ps.guard.RequirePrivileged(actor); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    strings.TrimSpace(req.Title),
		Subtitle: strings.TrimSpace(req.Subtitle),
		Body:     utils.SanitizeHTML(req.Body),
		ImgURL:   strings.TrimSpace(req.ImgURL),
		Date:     ps.now().Format(models.DateLayout),
		AuthorID: actor.UserID,
	}

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(post).Error
	})
	if isUniqueViolation(err) {
		return nil, ErrDuplicateTitle
	}
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

// UpdatePost rewrites the editable fields and hands authorship to actor. The
// creation date is left alone.
func (ps *PostService) UpdatePost(ctx context.Context, actor Identity, id uint, req *models.PostRequest) (*models.Post, error) {
	if err := ps.guard.RequirePrivileged(actor); err != nil {
		return nil, err
	}

	var post models.Post
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}

		post.Title = strings.TrimSpace(req.Title)
		post.Subtitle = strings.TrimSpace(req.Subtitle)
		post.Body = utils.SanitizeHTML(req.Body)
		post.ImgURL = strings.TrimSpace(req.ImgURL)
		post.AuthorID = actor.UserID

		return tx.Model(&post).
			Select("title", "subtitle", "body", "img_url", "author_id").
			Updates(&post).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrPostNotFound
	case isUniqueViolation(err):
		return nil, ErrDuplicateTitle
	case err != nil:
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}

	ps.events.Publish(post.ID, EventPostUpdated, post)
	return &post, nil
}

// DeletePost removes the post and every comment under it in one transaction.
func (ps *PostService) DeletePost(ctx context.Context, actor Identity, id uint) error {
	if err := ps.guard.RequirePrivileged(actor); err != nil {
		return err
	}

	var removed int64
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, id).Error; err != nil {
			return err
		}

		res := tx.Where("post_id = ?", id).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		return tx.Delete(&post).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}

	ps.events.Publish(id, EventPostDeleted, map[string]interface{}{
		"post_id":          id,
		"comments_removed": removed,
	})
	return nil
}

// CountPosts backs the /health report.
func (ps *PostService) CountPosts(ctx context.Context) (int64, error) {
	var n int64
	err := ps.db.WithContext(ctx).Model(&models.Post{}).Count(&n).Error
	return n, err
}
