package repository

import (
	"github.com/joblane/joblane-api/internal/models"
	"gorm.io/gorm"
)

// GormSessionRepository is a GORM implementation of SessionRepository
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &GormSessionRepository{db: db}
}

// Create creates a new session
func (r *GormSessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

// FindByToken finds a session by its token with the owning user preloaded
func (r *GormSessionRepository) FindByToken(token string) (*models.Session, error) {
	var session models.Session
	if err := r.db.Preload("User").
		Where("token = ?", token).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes a session by token
func (r *GormSessionRepository) Delete(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.Session{}).Error
}

// DeleteForUser removes every session of a user
func (r *GormSessionRepository) DeleteForUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

// SetActiveOrganization updates the active organization pointer
func (r *GormSessionRepository) SetActiveOrganization(sessionID string, organizationID *string) error {
	return r.db.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("active_organization_id", organizationID).Error
}
