package models

import (
	"time"

	"github.com/joblane/joblane-api/internal/utils"
	"gorm.io/gorm"
)

type OrganizationRole string

const (
	RoleOwner  OrganizationRole = "owner"
	RoleAdmin  OrganizationRole = "admin"
	RoleMember OrganizationRole = "member"
)

type Member struct {
	ID             string           `gorm:"type:varchar(32);primarykey" json:"id"`
	OrganizationID string           `gorm:"type:varchar(32);index;uniqueIndex:member_org_user_unique;not null" json:"organization_id"`
	UserID         string           `gorm:"type:varchar(32);index;uniqueIndex:member_org_user_unique;not null" json:"user_id"`
	Role           OrganizationRole `gorm:"type:varchar(20);index;not null;default:'member'" json:"role"`
	CreatedAt      time.Time        `json:"created_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"organization,omitempty"`
	User         User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (Member) TableName() string { return "member" }

func (m *Member) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.NewID()
	}
	return nil
}
