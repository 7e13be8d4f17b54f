package models

import (
	"time"

	"github.com/joblane/joblane-api/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrganizationMetadata is the JSON blob stored on every organization row.
type OrganizationMetadata struct {
	MinimumRating                     *int `json:"minimumRating,omitempty"`
	NewApplicationsEmailNotifications bool `json:"newApplicationsEmailNotifications"`
}

type Organization struct {
	ID        string                                       `gorm:"type:varchar(32);primarykey" json:"id"`
	Name      string                                       `gorm:"type:varchar(255);index;not null" json:"name"`
	Slug      string                                       `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Logo      *string                                      `gorm:"type:varchar(512)" json:"logo"`
	Metadata  datatypes.JSONType[OrganizationMetadata]     `gorm:"not null" json:"metadata"`
	CreatedAt time.Time                                    `gorm:"index" json:"created_at"`

	// Relations
	Members     []Member     `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Invitations []Invitation `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"invitations,omitempty"`
	JobLists    []JobList    `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"job_lists,omitempty"`
}

func (Organization) TableName() string { return "organization" }

func (o *Organization) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = utils.NewID()
	}
	return nil
}
