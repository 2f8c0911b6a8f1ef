package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"studio/config"
	"studio/database"
	"studio/handlers"
	"studio/repository"
	"studio/routes"
	"studio/services"
)

func main() {
	log.Println("Starting Studio Backend Server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	// ===== CONNECT TO MONGODB WITH RETRY =====
	var db *database.DB
	var dbErr error
	for i := 1; i <= 3; i++ {
		db, dbErr = database.Connect(cfg)
		if dbErr != nil {
			log.Printf("MongoDB connection attempt %d failed: %v", i, dbErr)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	if dbErr != nil {
		log.Fatal("Failed to connect to MongoDB: ", dbErr)
	}
	defer db.Disconnect()
	log.Println("MongoDB connected successfully")

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.EnsureIndexes(startupCtx); err != nil {
		log.Fatal("Failed to create indexes: ", err)
	}

	// ===== REPOSITORIES & SERVICES =====
	userRepo := repository.NewMongoUserRepository(db.Users)
	roleRepo := repository.NewMongoRoleRepository(db.Roles)
	postRepo := repository.NewMongoPostRepository(db.Posts)
	commentRepo := repository.NewMongoCommentRepository(db.Comments)

	if err := database.SeedRoles(startupCtx, roleRepo); err != nil {
		// Registration still works without roles; users just get no role
		// until the next successful seed.
		log.Printf("Role seeding failed: %v", err)
	} else {
		log.Println("Roles initialized successfully")
	}

	authService := services.NewAuthService(userRepo, roleRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(postRepo, commentRepo)

	// ===== GIN MODE =====
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.SetupRouter(cfg, authService,
		handlers.NewAuthHandler(authService),
		handlers.NewUserHandler(userService),
		handlers.NewPostHandler(postService),
		handlers.NewUploadHandler(cfg),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown: ", err)
	}

	log.Println("Server stopped gracefully")
}
