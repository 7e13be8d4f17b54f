package models

import "time"

type ApplicationStage string

const (
	StageDenied      ApplicationStage = "denied"
	StageApplied     ApplicationStage = "applied"
	StageInterested  ApplicationStage = "interested"
	StageInterviewed ApplicationStage = "interviewed"
	StageHired       ApplicationStage = "hired"
)

// JobApplication is keyed by (job, applicant); a user applies to a job at
// most once.
type JobApplication struct {
	JobListID string `gorm:"type:varchar(32);primarykey" json:"job_list_id"`
	UserID    string `gorm:"type:varchar(32);primarykey" json:"user_id"`

	CoverLetter *string `gorm:"type:text" json:"cover_letter"`
	Rating      *int    `json:"rating"`

	Stage ApplicationStage `gorm:"type:varchar(20);not null;default:'applied'" json:"stage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	JobList JobList `gorm:"foreignKey:JobListID;constraint:OnDelete:CASCADE" json:"job_list,omitempty"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (JobApplication) TableName() string { return "job_applications" }
