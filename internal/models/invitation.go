package models

import (
	"time"

	"github.com/joblane/joblane-api/internal/utils"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
	InvitationCanceled InvitationStatus = "canceled"
)

type Invitation struct {
	ID             string            `gorm:"type:varchar(32);primarykey" json:"id"`
	OrganizationID string            `gorm:"type:varchar(32);index:invitation_org_id_status_idx;uniqueIndex:invitation_org_email_status_unique;not null" json:"organization_id"`
	Email          string            `gorm:"type:varchar(255);index;uniqueIndex:invitation_org_email_status_unique;not null" json:"email"`
	Role           *OrganizationRole `gorm:"type:varchar(20)" json:"role"`
	Status         InvitationStatus  `gorm:"type:varchar(20);index:invitation_org_id_status_idx;uniqueIndex:invitation_org_email_status_unique;not null;default:'pending'" json:"status"`
	ExpiresAt      time.Time         `gorm:"index;not null" json:"expires_at"`
	InviterID      string            `gorm:"type:varchar(32);not null" json:"inviter_id"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"organization,omitempty"`
	Inviter      User         `gorm:"foreignKey:InviterID;constraint:OnDelete:CASCADE" json:"inviter,omitempty"`
}

func (Invitation) TableName() string { return "invitation" }

func (i *Invitation) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = utils.NewID()
	}
	return nil
}

// Expired reports whether the invitation can no longer be accepted.
func (i *Invitation) Expired() bool {
	return time.Now().After(i.ExpiresAt)
}
