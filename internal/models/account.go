package models

import (
	"time"

	"github.com/joblane/joblane-api/internal/utils"
	"gorm.io/gorm"
)

// Credential providers. One user may hold several account rows, one per
// sign-in method.
const (
	ProviderCredential = "credential"
	ProviderGoogle     = "google"
)

type Account struct {
	ID         string `gorm:"type:varchar(32);primarykey" json:"id"`
	AccountID  string `gorm:"type:varchar(255);not null" json:"account_id"`
	ProviderID string `gorm:"type:varchar(64);not null" json:"provider_id"`
	UserID     string `gorm:"type:varchar(32);index;not null" json:"user_id"`

	AccessToken           *string    `gorm:"type:text" json:"-"`
	RefreshToken          *string    `gorm:"type:text" json:"-"`
	IDToken               *string    `gorm:"type:text" json:"-"`
	AccessTokenExpiresAt  *time.Time `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	Scope                 *string    `gorm:"type:varchar(512)" json:"-"`

	// Password holds the bcrypt hash for the credential provider only.
	Password *string `gorm:"type:varchar(255)" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Account) TableName() string { return "account" }

func (a *Account) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = utils.NewID()
	}
	return nil
}
