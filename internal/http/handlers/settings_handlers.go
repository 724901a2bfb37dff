package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/pomodorosvc/domain"
)

// SettingsHandlers serves the caller's pomodoro timer settings
type SettingsHandlers struct {
	settingsSvc domain.SettingsService
}

// NewSettingsHandlers creates new settings handlers
func NewSettingsHandlers(settingsSvc domain.SettingsService) *SettingsHandlers {
	return &SettingsHandlers{settingsSvc: settingsSvc}
}

// Get returns the caller's settings
func (h *SettingsHandlers) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	settings, err := h.settingsSvc.GetPomodoroSettingsByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get pomodoro settings")
		return
	}
	if settings == nil {
		respondError(c, domain.ErrSettingsNotFound, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": settings})
}

// Update applies a partial change to the caller's settings
func (h *SettingsHandlers) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settingsSvc.Update(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update pomodoro settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": settings})
}
