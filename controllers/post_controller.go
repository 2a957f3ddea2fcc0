package controllers

import (
	"net/http"

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	postService    *services.PostService
	commentService *services.CommentService
	sessions       *utils.SessionStore
	metrics        *middleware.Metrics
}

func NewPostController(postService *services.PostService, commentService *services.CommentService, sessions *utils.SessionStore, metrics *middleware.Metrics) *PostController {
	return &PostController{
		postService:    postService,
		commentService: commentService,
		sessions:       sessions,
		metrics:        metrics,
	}
}

// GetPosts godoc
// @Summary List every post in creation order
// @Tags posts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /posts [get]
func (pc *PostController) GetPosts(c *gin.Context) {
	posts, err := pc.postService.ListPosts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":   posts,
		"flashes": pc.sessions.Flashes(c.Writer, c.Request),
	})
}

// GetPost godoc
// @Summary Show one post with its comments
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := pc.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	comments, err := pc.commentService.ListForPost(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"comments": comments,
		"flashes":  pc.sessions.Flashes(c.Writer, c.Request),
	})
}

// CreatePost godoc
// @Summary Publish a new post
// @Tags posts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 201 {object} models.Post
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	var req models.PostRequest
	if !bind(c, &req) {
		return
	}

	post, err := pc.postService.CreatePost(c.Request.Context(), middleware.CurrentIdentity(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	pc.metrics.PostsCreated.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"data":     post,
		"redirect": middleware.RouteHome,
	})
}

func (pc *PostController) UpdatePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.PostRequest
	if !bind(c, &req) {
		return
	}

	post, err := pc.postService.UpdatePost(c.Request.Context(), middleware.CurrentIdentity(c), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     post,
		"redirect": middleware.RouteHome,
	})
}

func (pc *PostController) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := pc.postService.DeletePost(c.Request.Context(), middleware.CurrentIdentity(c), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Post deleted successfully",
		"redirect": middleware.RouteHome,
	})
}
