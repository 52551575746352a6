// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pressart/storefront-api/internal/domain/user"
	"github.com/pressart/storefront-api/internal/interfaces/http/middleware"
	"github.com/pressart/storefront-api/internal/pkg/auth"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userService *user.Service
	logger      *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *user.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// Google handles POST /auth/google
func (h *AuthHandler) Google(c *gin.Context) {
	var req user.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Google token and user data are required",
			"details": err.Error(),
		})
		return
	}

	response, err := h.userService.AuthenticateGoogle(c.Request.Context(), &req)
	switch {
	case errors.Is(err, user.ErrInvalidIdentity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, auth.ErrInvalidGoogleToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	case err != nil:
		respondServiceError(c, h.logger, err, "Internal server error during authentication")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Authentication successful",
		"data":    response,
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if errors.Is(err, user.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		respondServiceError(c, h.logger, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
		return
	}

	if err := h.userService.Logout(c.Request.Context(), claims); err != nil {
		respondServiceError(c, h.logger, err, "Internal server error during logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// VerifyToken handles POST /auth/verify-token
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if errors.Is(err, user.ErrUserNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		respondServiceError(c, h.logger, err, "Internal server error during token verification")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token is valid",
		"data":    profile.Brief(),
	})
}
