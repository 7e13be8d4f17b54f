package models

import (
	"time"

	"github.com/joblane/joblane-api/internal/utils"
	"gorm.io/gorm"
)

type WageInterval string

const (
	WageHourly WageInterval = "hourly"
	WageYearly WageInterval = "yearly"
)

type LocationRequirement string

const (
	LocationInOffice LocationRequirement = "in-office"
	LocationHybrid   LocationRequirement = "hybrid"
	LocationRemote   LocationRequirement = "remote"
)

type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid-level"
	ExperienceSenior ExperienceLevel = "senior"
)

type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusDelisted  JobStatus = "delisted"
	JobStatusPublished JobStatus = "published"
)

type JobType string

const (
	JobTypeInternship JobType = "internship"
	JobTypePartTime   JobType = "part-time"
	JobTypeFullTime   JobType = "full-time"
)

type JobList struct {
	ID          string `gorm:"type:varchar(32);primarykey;index:jobs_list_id_and_organization_id_idx;index:jobs_list_id_and_user_id_idx" json:"id"`
	Title       string `gorm:"type:varchar(255);uniqueIndex:jobs_list_title_organization_unique_idx;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`

	Wage         *int          `json:"wage"`
	WageInterval *WageInterval `gorm:"type:varchar(20)" json:"wage_interval"`

	LocationRequirement LocationRequirement `gorm:"type:varchar(20);not null" json:"location_requirement"`
	ExperienceLevel     ExperienceLevel     `gorm:"type:varchar(20);not null" json:"experience_level"`
	Status              JobStatus           `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	Type                JobType             `gorm:"type:varchar(20);not null" json:"type"`

	// StateAbbrevation keeps the original column spelling for compatibility.
	StateAbbrevation *string `gorm:"type:varchar(8);index:jobs_list_state_abbrevation_idx_mine" json:"state_abbrevation"`
	City             *string `gorm:"type:varchar(255)" json:"city"`

	IsFeatured bool `gorm:"not null;default:false" json:"is_featured"`

	OrganizationID string `gorm:"type:varchar(32);uniqueIndex:jobs_list_title_organization_unique_idx;index:jobs_list_id_and_organization_id_idx;not null" json:"organization_id"`
	// OwnerID is the user who posted this job.
	OwnerID string `gorm:"type:varchar(32);index:jobs_list_id_and_user_id_idx;not null" json:"owner_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Organization Organization     `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"organization,omitempty"`
	Owner        User             `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Applications []JobApplication `gorm:"foreignKey:JobListID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}

func (JobList) TableName() string { return "jobs_list" }

func (j *JobList) BeforeCreate(*gorm.DB) error {
	if j.ID == "" {
		j.ID = utils.NewID()
	}
	return nil
}
