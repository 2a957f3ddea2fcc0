package controllers

import (
	"errors"
	"net/http"
	"time"

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	userService *services.UserService
	sessions    *utils.SessionStore
	metrics     *middleware.Metrics
	jwtSecret   string
	jwtTTL      time.Duration
	log         logrus.FieldLogger
}

func NewAuthController(userService *services.UserService, sessions *utils.SessionStore, metrics *middleware.Metrics, jwtSecret string, jwtTTL time.Duration, log logrus.FieldLogger) *AuthController {
	return &AuthController{
		userService: userService,
		sessions:    sessions,
		metrics:     metrics,
		jwtSecret:   jwtSecret,
		jwtTTL:      jwtTTL,
		log:         log,
	}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 201 {object} models.User
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bind(c, &req) {
		return
	}

	user, err := ac.userService.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	ac.log.WithFields(logrus.Fields{"user_id": user.ID}).Info("User registered")
	if err := ac.sessions.AddFlash(c.Writer, c.Request, "successfully registered"); err != nil {
		ac.log.WithError(err).Warn("Failed to store flash message")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "User created successfully",
		"data":     user,
		"redirect": middleware.RouteHome,
	})
}

// Login godoc
// @Summary Log in and start a session
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bind(c, &req) {
		return
	}

	user, err := ac.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var authErr *services.AuthError
		if errors.As(err, &authErr) {
			ac.metrics.LoginFailures.WithLabelValues(string(authErr.Reason)).Inc()
			ac.log.WithField("reason", authErr.Reason).Info("Login failed")
		}
		c.Error(err)
		return
	}

	if err := ac.sessions.Login(c.Writer, c.Request, user.ID); err != nil {
		c.Error(err)
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.TokenVersion, ac.jwtSecret, ac.jwtTTL)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"data":     user,
		"token":    token,
		"redirect": middleware.RouteHome,
	})
}

// Logout ends the cookie session and revokes the user's outstanding bearer
// tokens.
func (ac *AuthController) Logout(c *gin.Context) {
	if identity := middleware.CurrentIdentity(c); identity.IsAuthenticated() {
		if err := ac.userService.RevokeTokens(c.Request.Context(), identity.UserID); err != nil {
			c.Error(err)
			return
		}
	}

	if err := ac.sessions.Logout(c.Writer, c.Request); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Logged out",
		"redirect": middleware.RouteHome,
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	user, err := ac.userService.FindByID(c.Request.Context(), identity.UserID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}
