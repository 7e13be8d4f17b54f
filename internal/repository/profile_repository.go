package repository

import (
	"errors"

	"github.com/joblane/joblane-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileRepository is a GORM implementation of ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &GormProfileRepository{db: db}
}

// GetResume returns the resume row of a user, if present
func (r *GormProfileRepository) GetResume(userID string) (*models.UserResume, error) {
	var resume models.UserResume
	if err := r.db.First(&resume, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}

// UpsertResume creates or replaces the resume row of a user
func (r *GormProfileRepository) UpsertResume(resume *models.UserResume) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"resume_file_url", "resume_file_key", "ai_summary", "updated_at",
			}),
		}).
		Create(resume).Error
}

// GetNotificationSettings returns the settings row, creating the default
// row on first access
func (r *GormProfileRepository) GetNotificationSettings(userID string) (*models.UserNotificationSetting, error) {
	var settings models.UserNotificationSetting
	err := r.db.First(&settings, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.UserNotificationSetting{UserID: userID}
		if err := r.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateNotificationSettings persists settings changes
func (r *GormProfileRepository) UpdateNotificationSettings(settings *models.UserNotificationSetting) error {
	return r.db.Save(settings).Error
}
