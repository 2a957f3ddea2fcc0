package middleware

import (
	"context"
	"errors"
	"net/http"

	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Symbolic route names handed back to the presentation layer.
const (
	RouteHome     = "get_all_posts"
	RouteLogin    = "login"
	RouteRegister = "register"
	RouteShowPost = "show_post"
	RouteNewPost  = "new_post"
)

// Failure overrides the user-facing message or redirect for an error.
type Failure struct {
	Err      error
	Message  string
	Redirect string
}

func (f *Failure) Error() string { return f.Err.Error() }

func (f *Failure) Unwrap() error { return f.Err }

func WithMessage(err error, message, redirect string) error {
	return &Failure{Err: err, Message: message, Redirect: redirect}
}

type outcome struct {
	status   int
	message  string
	redirect string
	flash    bool
}

func describe(err error) outcome {
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		return outcome{http.StatusConflict, "User already exists! Try logging in instead", RouteLogin, true}
	case errors.Is(err, services.ErrDuplicateTitle):
		return outcome{http.StatusConflict, "A post with that title already exists", RouteNewPost, true}
	case errors.Is(err, services.ErrAuthFailure):
		return outcome{http.StatusUnauthorized, "Invalid email or password", RouteLogin, true}
	case errors.Is(err, services.ErrUnauthorized):
		return outcome{http.StatusUnauthorized, "You need to login or register first", RouteLogin, true}
	case errors.Is(err, services.ErrForbidden):
		return outcome{status: http.StatusForbidden, message: "forbidden"}
	case errors.Is(err, services.ErrNotFound):
		return outcome{status: http.StatusNotFound, message: err.Error(), redirect: RouteHome}
	case errors.Is(err, context.DeadlineExceeded):
		return outcome{status: http.StatusGatewayTimeout, message: "request timed out"}
	default:
		return outcome{status: http.StatusInternalServerError, message: "internal server error"}
	}
}

// ErrorHandler renders the last error a handler attached with c.Error and
// turns panics into 500s.
func ErrorHandler(sessions *utils.SessionStore, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(logrus.Fields{"panic": r, "path": c.Request.URL.Path}).Error("Recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		if last.IsType(gin.ErrorTypeBind) {
			c.JSON(http.StatusBadRequest, gin.H{"error": last.Error()})
			return
		}

		out := describe(last.Err)
		var failure *Failure
		if errors.As(last.Err, &failure) {
			if failure.Message != "" {
				out.message = failure.Message
			}
			if failure.Redirect != "" {
				out.redirect = failure.Redirect
			}
		}

		if out.status >= http.StatusInternalServerError {
			log.WithError(last.Err).WithField("path", c.Request.URL.Path).Error("Request failed")
		}

		if out.flash {
			if err := sessions.AddFlash(c.Writer, c.Request, out.message); err != nil {
				log.WithError(err).Warn("Failed to store flash message")
			}
		}

		body := gin.H{"error": out.message}
		if out.redirect != "" {
			body["redirect"] = out.redirect
		}
		c.JSON(out.status, body)
	}
}
