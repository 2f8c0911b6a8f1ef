package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studio/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	// Pointer so "photoUrl": "" clears the photo while an absent field
	// leaves it untouched.
	PhotoURL *string `json:"photoUrl"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword"`
}

func (h *UserHandler) GetUser(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	user, err := h.users.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, "GetUser", err)
		return
	}

	c.JSON(http.StatusOK, services.UserView(user))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := h.users.UpdateProfile(ctx, c.Param("id"), req.FullName, req.PhotoURL)
	if err != nil {
		respondError(c, "UpdateProfile", err)
		return
	}

	c.JSON(http.StatusOK, services.UserView(user))
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	err := h.users.ChangePassword(ctx, c.Param("id"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		// A wrong current password is a 400 here, not a 401: the caller is
		// already authenticated, the input is just wrong.
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "current password is incorrect"})
			return
		}
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "new password must be at least 6 characters"})
			return
		}
		respondError(c, "ChangePassword", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
