package models

import (
	"time"

	"gorm.io/gorm"
)

// Summary is a persisted health summary for one (user, type, date).
type Summary struct {
	gorm.Model
	UserID          uint      `gorm:"index;not null"`
	Type            string    `gorm:"size:10;not null"` // "daily" | "weekly"
	Date            time.Time `gorm:"index;not null"`
	DietScore       float64
	HealthRisks     string `gorm:"type:text"`
	ImprovementTips string `gorm:"type:text"`
}
