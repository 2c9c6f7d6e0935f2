package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FoodScan is one analyzed food photo or label, nutrition snapshot included.
// Immutable once created.
type FoodScan struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null"`
	FoodName      string `gorm:"not null"`
	ImageURL      string
	Calories      int
	Nutrients     datatypes.JSON // NutrientMap
	FlaggedIssues string         // "; "-joined warnings
}
