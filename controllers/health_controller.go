package controllers

import (
	"net/http"

	"blogapi/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HealthController struct {
	postService *services.PostService
	log         logrus.FieldLogger
}

func NewHealthController(postService *services.PostService, log logrus.FieldLogger) *HealthController {
	return &HealthController{postService: postService, log: log}
}

// Health reports liveness along with the stored post count, which also
// proves the database answers.
func (hc *HealthController) Health(c *gin.Context) {
	n, err := hc.postService.CountPosts(c.Request.Context())
	if err != nil {
		hc.log.WithError(err).Error("Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "posts": n})
}
