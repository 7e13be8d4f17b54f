package services

import (
	"errors"
	"fmt"

	"github.com/joblane/joblane-api/internal/models"
	"github.com/joblane/joblane-api/internal/repository"
	"gorm.io/gorm"
)

var ErrResumeNotFound = errors.New("resume not found")

// ProfileService handles the per-user extension rows: resume and
// notification settings.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetResume returns the caller's resume row.
func (s *ProfileService) GetResume(userID string) (*models.UserResume, error) {
	resume, err := s.profileRepo.GetResume(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return resume, nil
}

// SetResume creates or replaces the caller's resume row.
func (s *ProfileService) SetResume(userID, fileURL, fileKey string, aiSummary *string) (*models.UserResume, error) {
	resume := &models.UserResume{
		UserID:        userID,
		ResumeFileURL: fileURL,
		ResumeFileKey: fileKey,
		AISummary:     aiSummary,
	}
	if err := s.profileRepo.UpsertResume(resume); err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return resume, nil
}

// GetNotificationSettings returns the caller's settings, materializing
// the default row on first access.
func (s *ProfileService) GetNotificationSettings(userID string) (*models.UserNotificationSetting, error) {
	settings, err := s.profileRepo.GetNotificationSettings(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification settings: %w", err)
	}
	return settings, nil
}

// UpdateNotificationSettings persists settings changes.
func (s *ProfileService) UpdateNotificationSettings(userID string, newJobEmails bool, aiSummary *string) (*models.UserNotificationSetting, error) {
	settings, err := s.profileRepo.GetNotificationSettings(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification settings: %w", err)
	}

	settings.NewJobEmailNotification = newJobEmails
	if aiSummary != nil {
		settings.AISummary = aiSummary
	}

	if err := s.profileRepo.UpdateNotificationSettings(settings); err != nil {
		return nil, fmt.Errorf("failed to update notification settings: %w", err)
	}
	return settings, nil
}
