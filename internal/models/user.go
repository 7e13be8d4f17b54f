package models

import (
	"time"

	"github.com/joblane/joblane-api/internal/utils"
	"gorm.io/gorm"
)

type User struct {
	ID            string    `gorm:"type:varchar(32);primarykey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	EmailVerified bool      `gorm:"not null;default:false" json:"email_verified"`
	Image         *string   `gorm:"type:varchar(512)" json:"image"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Sessions             []Session                `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Accounts             []Account                `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Memberships          []Member                 `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	InvitationsSent      []Invitation             `gorm:"foreignKey:InviterID;constraint:OnDelete:CASCADE" json:"-"`
	JobLists             []JobList                `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Applications         []JobApplication         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Resume               *UserResume              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	NotificationSettings *UserNotificationSetting `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	return nil
}
