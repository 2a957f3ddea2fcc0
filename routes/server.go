package routes

import (
	"blogapi/config"
	"blogapi/controllers"
	_ "blogapi/docs"
	"blogapi/handlers"
	"blogapi/middleware"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Server is the assembled HTTP application.
type Server struct {
	Engine *gin.Engine
	Hub    *services.HubService
}

func (s *Server) Close() {
	s.Hub.Close()
}

// NewServer wires stores, controllers and middleware onto a fresh engine.
func NewServer(cfg *config.Config, db *gorm.DB, log *logrus.Logger, reg *prometheus.Registry) *Server {
	gin.SetMode(cfg.GinMode)
	r := gin.New()

	metrics := middleware.NewMetrics(reg)
	sessions := utils.NewSessionStore(cfg.SessionSecret, cfg.CookieSecure)
	guard := services.NewGuard(cfg.AdminUserID)
	hubService := services.NewHubService(log)

	userService := services.NewUserService(db)
	postService := services.NewPostService(db, guard, hubService)
	commentService := services.NewCommentService(db, guard, hubService)

	r.Use(middleware.Logger(log))
	r.Use(metrics.Middleware())
	r.Use(middleware.ErrorHandler(sessions, log))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Identify(userService, sessions, cfg.JWTSecret, log))

	healthController := controllers.NewHealthController(postService, log)
	authController := controllers.NewAuthController(userService, sessions, metrics, cfg.JWTSecret, cfg.JWTTTL, log)
	userController := controllers.NewUserController(userService)
	postController := controllers.NewPostController(postService, commentService, sessions, metrics)
	commentController := controllers.NewCommentController(commentService, metrics)
	wsHandler := handlers.NewWebSocketHandler(hubService, postService, cfg.AllowedOrigins, log)

	SetupRoutes(r, guard, healthController, authController, userController, postController, commentController, wsHandler)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{Engine: r, Hub: hubService}
}
