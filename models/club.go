package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Club is a venue with a fixed weekly availability pattern.
type Club struct {
	ID            string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name          string                      `gorm:"type:varchar(255);not null;index" json:"name"`
	Address       string                      `gorm:"type:varchar(255)" json:"address"`
	AvailableDays datatypes.JSONSlice[string] `gorm:"not null" json:"available_days"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func (c *Club) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.AvailableDays == nil {
		c.AvailableDays = datatypes.JSONSlice[string]{}
	}
	return nil
}

// IsAvailableOn reports whether the club opens on the given weekday name.
func (c Club) IsAvailableOn(day string) bool {
	for _, d := range c.AvailableDays {
		if d == day {
			return true
		}
	}
	return false
}
