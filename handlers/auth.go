package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studio/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := h.auth.Register(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		respondError(c, "Register", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, "Login", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
