package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const slowRequest = 2 * time.Second

func Logger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		entry := log.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   latency,
			"client_ip": c.ClientIP(),
		})
		if id := CurrentIdentity(c); id.IsAuthenticated() {
			entry = entry.WithField("user_id", id.UserID)
		}

		switch {
		case latency > slowRequest:
			entry.Warn("Slow request detected")
		case c.Writer.Status() >= 500:
			entry.Error("Request completed with server error")
		default:
			entry.Info("Request completed")
		}
	}
}
