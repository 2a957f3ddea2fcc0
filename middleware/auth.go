package middleware

import (
	"errors"
	"strings"

	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const identityKey = "identity"

// Identify resolves the acting user for every request, from a bearer token
// first and the session cookie second. Anything that does not resolve to a
// stored user, or a token older than the user's last logout, leaves the
// request anonymous.
func Identify(users *services.UserService, sessions *utils.SessionStore, jwtSecret string, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := services.Anonymous()

		claims := tokenClaims(c, jwtSecret, log)

		var userID uint
		var ok bool
		if claims != nil {
			userID, ok = claims.UserID, true
		} else {
			userID, ok = sessions.UserID(c.Request)
		}

		if ok {
			user, err := users.FindByID(c.Request.Context(), userID)
			switch {
			case err == nil && claims != nil && claims.TokenVersion != user.TokenVersion:
				log.WithField("user_id", userID).Debug("Rejected revoked token")
			case err == nil:
				identity = services.Authenticated(user)
			case errors.Is(err, services.ErrNotFound):
				log.WithField("user_id", userID).Warn("Session refers to unknown user")
			default:
				log.WithError(err).Error("Failed to resolve current user")
			}
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func tokenClaims(c *gin.Context, secret string, log logrus.FieldLogger) *utils.Claims {
	var token string
	if websocket.IsWebSocketUpgrade(c.Request) {
		token = c.Query("token")
	}
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		token = strings.TrimPrefix(authHeader, "Bearer ")
	}
	if token == "" {
		return nil
	}

	claims, err := utils.ValidateJWT(token, secret)
	if err != nil {
		log.WithError(err).Debug("Token validation failed")
		return nil
	}
	return claims
}

// CurrentIdentity returns the identity set by Identify, or anonymous.
func CurrentIdentity(c *gin.Context) services.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(services.Identity); ok {
			return id
		}
	}
	return services.Anonymous()
}

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := services.RequireAuthenticated(CurrentIdentity(c)); err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func AdminOnly(guard *services.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := guard.RequirePrivileged(CurrentIdentity(c)); err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}
