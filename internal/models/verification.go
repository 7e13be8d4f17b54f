package models

import (
	"time"

	"github.com/joblane/joblane-api/internal/utils"
	"gorm.io/gorm"
)

// Verification is a transient token for email and identity verification
// flows. Rows are deleted once consumed.
type Verification struct {
	ID         string    `gorm:"type:varchar(32);primarykey" json:"id"`
	Identifier string    `gorm:"type:varchar(255);index;not null" json:"identifier"`
	Value      string    `gorm:"type:varchar(255);not null" json:"-"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Verification) TableName() string { return "verification" }

func (v *Verification) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = utils.NewID()
	}
	return nil
}
