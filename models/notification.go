package models

import "time"

type Notification struct {
	ID      uint   `gorm:"primaryKey"`
	UserID  uint   `gorm:"index"`
	Type    string `gorm:"size:20"` // "meal_reminder" | "health_alert"
	Message string `gorm:"type:text"`
	SentAt  time.Time
}
