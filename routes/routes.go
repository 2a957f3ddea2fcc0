package routes

import (
	"blogapi/controllers"
	"blogapi/handlers"
	"blogapi/middleware"
	"blogapi/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, guard *services.Guard, healthController *controllers.HealthController, authController *controllers.AuthController, userController *controllers.UserController, postController *controllers.PostController, commentController *controllers.CommentController, w *handlers.WebSocketHandler) {
	r.GET("/health", healthController.Health)

	adminOnly := middleware.AdminOnly(guard)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/logout", authController.Logout)
			auth.GET("/logout", authController.Logout)
			auth.GET("/me", middleware.AuthRequired(), authController.Me)
		}

		users := api.Group("/users")
		users.Use(adminOnly)
		{
			users.GET("", userController.GetUsers)
			users.GET("/:id", userController.GetUser)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", postController.GetPosts)
			posts.GET("/:id", postController.GetPost)
			posts.GET("/:id/live", w.HandleWebSocket)

			posts.POST("", adminOnly, postController.CreatePost)
			posts.PUT("/:id", adminOnly, postController.UpdatePost)
			posts.POST("/:id/edit", adminOnly, postController.UpdatePost)
			posts.DELETE("/:id", adminOnly, postController.DeletePost)
			posts.POST("/:id/delete", adminOnly, postController.DeletePost)
		}

		comments := api.Group("/posts/:id/comments")
		{
			comments.POST("", commentController.CreateComment)
			comments.DELETE("/:comment_id", middleware.AuthRequired(), commentController.DeleteComment)
			comments.POST("/:comment_id/delete", middleware.AuthRequired(), commentController.DeleteComment)
		}
	}
}
