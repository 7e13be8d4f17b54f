package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/joblane/joblane-api/internal/errors"
	"github.com/joblane/joblane-api/internal/middleware"
	"github.com/joblane/joblane-api/internal/services"
)

// MeHandler serves the caller's profile extension rows.
type MeHandler struct {
	profileService *services.ProfileService
	logger         *zap.Logger
}

// NewMeHandler creates a new MeHandler.
func NewMeHandler(profileService *services.ProfileService, logger *zap.Logger) *MeHandler {
	return &MeHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// GetResume returns the caller's resume.
func (h *MeHandler) GetResume(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	resume, err := h.profileService.GetResume(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrResumeNotFound) {
			apierrors.NotFound(c, "Resume not found")
			return
		}
		h.logger.Error("failed to get resume", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, resume)
}

// PutResume creates or replaces the caller's resume.
func (h *MeHandler) PutResume(c *gin.Context) {
	type ResumeRequest struct {
		ResumeFileURL string  `json:"resume_file_url" binding:"required,url,max=512"`
		ResumeFileKey string  `json:"resume_file_key" binding:"required,max=255"`
		AISummary     *string `json:"ai_summary"`
	}

	var req ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, _ := middleware.GetUser(c)
	resume, err := h.profileService.SetResume(user.ID, req.ResumeFileURL, req.ResumeFileKey, req.AISummary)
	if err != nil {
		h.logger.Error("failed to save resume", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, resume)
}

// GetNotificationSettings returns the caller's notification settings.
func (h *MeHandler) GetNotificationSettings(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	settings, err := h.profileService.GetNotificationSettings(user.ID)
	if err != nil {
		h.logger.Error("failed to get notification settings", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// PutNotificationSettings updates the caller's notification settings.
func (h *MeHandler) PutNotificationSettings(c *gin.Context) {
	type SettingsRequest struct {
		NewJobEmailNotification bool    `json:"new_job_email_notification"`
		AISummary               *string `json:"ai_summary"`
	}

	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, _ := middleware.GetUser(c)
	settings, err := h.profileService.UpdateNotificationSettings(user.ID, req.NewJobEmailNotification, req.AISummary)
	if err != nil {
		h.logger.Error("failed to update notification settings", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, settings)
}
