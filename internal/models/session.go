package models

import (
	"time"

	"github.com/joblane/joblane-api/internal/utils"
	"gorm.io/gorm"
)

// Session is a server-issued proof of authentication. The row is
// authoritative; the signed cookie only caches it for a few minutes.
type Session struct {
	ID                   string    `gorm:"type:varchar(32);primarykey" json:"id"`
	ExpiresAt            time.Time `gorm:"not null" json:"expires_at"`
	Token                string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	IPAddress            *string   `gorm:"type:varchar(64)" json:"ip_address"`
	UserAgent            *string   `gorm:"type:varchar(512)" json:"user_agent"`
	UserID               string    `gorm:"type:varchar(32);index;not null" json:"user_id"`
	ActiveOrganizationID *string   `gorm:"type:varchar(32);index" json:"active_organization_id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	// Relations
	User               User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ActiveOrganization *Organization `gorm:"foreignKey:ActiveOrganizationID" json:"-"`
}

func (Session) TableName() string { return "session" }

func (s *Session) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.NewID()
	}
	return nil
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
