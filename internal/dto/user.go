package dto

import (
	"time"

	"github.com/joblane/joblane-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	EmailVerified bool    `json:"email_verified"`
	Image         *string `json:"image"`
}

// SessionDTO represents a session in API responses. The token never leaves
// the cookie.
type SessionDTO struct {
	ID                   string    `json:"id"`
	ExpiresAt            time.Time `json:"expires_at"`
	ActiveOrganizationID *string   `json:"active_organization_id"`
}

// SessionEnvelope pairs the resolved user and session, either of which may
// be null on unauthenticated requests.
type SessionEnvelope struct {
	User    *UserDTO    `json:"user"`
	Session *SessionDTO `json:"session"`
}

// ToUserDTO converts a user model to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		Image:         user.Image,
	}
}

// ToSessionDTO converts a session model to DTO
func ToSessionDTO(session models.Session) SessionDTO {
	return SessionDTO{
		ID:                   session.ID,
		ExpiresAt:            session.ExpiresAt,
		ActiveOrganizationID: session.ActiveOrganizationID,
	}
}
