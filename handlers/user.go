package handlers

import (
	"net/http"

	userService "nyayamitra/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves profile and directory endpoints.
type UserHandler struct {
	UserService userService.UserService
}

// GetProfileHandler handles GET /api/users/me.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	email := c.GetString("userEmail")

	profile, err := h.UserService.GetProfile(email)
	if err != nil {
		logger.Error("Failed to get profile", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	FullName       string `json:"fullName"`
	Specialization string `json:"specialization"`
}

// UpdateProfileHandler handles PUT /api/users/me.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	email := c.GetString("userEmail")

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	profile, err := h.UserService.UpdateProfile(email, req.FullName, req.Specialization)
	if err != nil {
		logger.Error("Failed to update profile", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

type familyEmailRequest struct {
	FamilyEmail string `json:"familyEmail" binding:"required"`
}

// SetFamilyEmailHandler handles PUT /api/users/me/family-email.
func (h *UserHandler) SetFamilyEmailHandler(c *gin.Context) {
	email := c.GetString("userEmail")

	var req familyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.UserService.SetFamilyEmail(email, req.FamilyEmail); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Family email updated"})
}

// ListProvidersHandler handles GET /api/users/providers.
func (h *UserHandler) ListProvidersHandler(c *gin.Context) {
	providers, err := h.UserService.ListProviders()
	if err != nil {
		getLogger(c).Error("Failed to list providers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list providers"})
		return
	}
	c.JSON(http.StatusOK, providers)
}

// FamilyNotificationsHandler handles GET /api/users/notifications/:email.
// Family members query by their own address; no account is required.
func (h *UserHandler) FamilyNotificationsHandler(c *gin.Context) {
	email := c.Param("email")
	notifications, err := h.UserService.GetFamilyNotifications(email)
	if err != nil {
		getLogger(c).Error("Failed to fetch family notifications",
			zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}
