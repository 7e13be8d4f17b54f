package models

import "time"

// UserResume is a one-to-one extension of User pointing at an externally
// stored resume file.
type UserResume struct {
	UserID string `gorm:"type:varchar(32);primarykey" json:"user_id"`

	ResumeFileURL string  `gorm:"type:varchar(512);not null" json:"resume_file_url"`
	ResumeFileKey string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"resume_file_key"`
	AISummary     *string `gorm:"column:ai_summary;type:text" json:"ai_summary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserResume) TableName() string { return "user_resumes" }

// UserNotificationSetting is a one-to-one extension of User.
type UserNotificationSetting struct {
	UserID string `gorm:"type:varchar(32);primarykey" json:"user_id"`

	NewJobEmailNotification bool    `gorm:"not null;default:false" json:"new_job_email_notification"`
	AISummary               *string `gorm:"column:ai_summary;type:text" json:"ai_summary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserNotificationSetting) TableName() string { return "user_notification_settings" }
