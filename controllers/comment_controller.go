package controllers

import (
	"net/http"

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/services"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	commentService *services.CommentService
	metrics        *middleware.Metrics
}

func NewCommentController(commentService *services.CommentService, metrics *middleware.Metrics) *CommentController {
	return &CommentController{
		commentService: commentService,
		metrics:        metrics,
	}
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	identity := middleware.CurrentIdentity(c)
	if err := services.RequireAuthenticated(identity); err != nil {
		c.Error(middleware.WithMessage(err, "You need to login or register to comment.", middleware.RouteLogin))
		return
	}

	var req models.CommentRequest
	if !bind(c, &req) {
		return
	}

	comment, err := cc.commentService.AddComment(c.Request.Context(), identity, postID, req.Body)
	if err != nil {
		c.Error(err)
		return
	}
	cc.metrics.CommentsAdded.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"data":     comment,
		"redirect": middleware.RouteShowPost,
	})
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	if err := cc.commentService.DeleteComment(c.Request.Context(), middleware.CurrentIdentity(c), postID, commentID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Comment deleted successfully",
		"redirect": middleware.RouteShowPost,
	})
}
