package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. It is
// loaded once in main and passed explicitly to the pieces that need it.
type Config struct {
	MongoURI      string
	DatabaseName  string
	JWTSecret     string
	TokenTTL      time.Duration
	Port          string
	UploadDir     string
	UploadBaseURL string
	CloudinaryURL string
	AllowOrigins  []string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set env vars directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		MongoURI:      getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		DatabaseName:  getEnv("MONGODB_DATABASE", "studio"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      24 * time.Hour,
		Port:          getEnv("PORT", "8080"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		UploadBaseURL: getEnv("UPLOAD_BASE_URL", "http://localhost:8080"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, errors.New("JWT_EXPIRATION_HOURS must be a positive integer")
		}
		cfg.TokenTTL = time.Duration(hours) * time.Hour
	}

	origins := getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001,http://localhost:9002")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
