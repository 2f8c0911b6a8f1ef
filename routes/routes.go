package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"studio/config"
	"studio/handlers"
	"studio/middleware"
	"studio/services"
)

func SetupRouter(cfg *config.Config, auth *services.AuthService,
	authH *handlers.AuthHandler, userH *handlers.UserHandler,
	postH *handlers.PostHandler, uploadH *handlers.UploadHandler) *gin.Engine {

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "Studio Backend Running", "service": "healthy"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Auth
	router.POST("/api/auth/register", authH.Register)
	router.POST("/api/auth/login", authH.Login)

	// Posts are readable and writable without a session, as the front end
	// expects; moderation tooling sits on the same surface.
	posts := router.Group("/api/posts")
	posts.GET("", postH.List)
	posts.POST("", postH.Create)
	posts.GET("/:id", postH.Get)
	posts.PUT("/:id/status", postH.UpdateStatus)
	posts.POST("/:id/like", postH.Like)
	posts.POST("/:id/dislike", postH.Dislike)
	posts.POST("/:id/comments", postH.AddComment)
	posts.DELETE("/:id", postH.Delete)

	// Profile and uploads require a session token.
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuth(auth))
	protected.GET("/user/:id", userH.GetUser)
	protected.PUT("/user/:id/profile", userH.UpdateProfile)
	protected.PUT("/user/:id/password", userH.ChangePassword)
	protected.POST("/uploads", uploadH.Upload)

	// Local upload backend serves files from the static mount.
	router.Static("/uploads", cfg.UploadDir)

	return router
}
