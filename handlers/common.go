package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"studio/services"
)

const requestTimeout = 10 * time.Second

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// respondError translates a service failure into the HTTP error taxonomy.
// Unexpected errors are logged and surfaced as a short generic message.
func respondError(c *gin.Context, tag string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("[%s] internal error: %v", tag, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
