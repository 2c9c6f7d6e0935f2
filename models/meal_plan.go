package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Meal is one entry inside a plan's meal list. Lives in the JSON plan
// column, not in its own table; deleted only via a whole-plan update.
type Meal struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Calories  int         `json:"calories"`
	Time      string      `json:"time"` // e.g. "08:00"
	Type      string      `json:"type"` // breakfast | lunch | dinner
	Nutrients NutrientMap `json:"nutrients,omitempty"`
}

// MealPlan is the reconciled plan document. TotalCalories and Progress are
// derived fields; see MealPlanService for the recompute rules.
type MealPlan struct {
	Meals          []Meal   `json:"meals"`
	TotalCalories  int      `json:"totalCalories"`
	TargetCalories int      `json:"targetCalories"`
	Progress       float64  `json:"progress"` // percentage
	HealthScore    *float64 `json:"healthScore,omitempty"`
}

// MealSchedule is the stored row owning a MealPlan document. Version backs
// optimistic concurrency: every successful update increments it, and update
// requests carrying a stale version are rejected.
type MealSchedule struct {
	gorm.Model
	UserID       uint           `gorm:"index;not null"`
	MealTime     time.Time      `gorm:"index;not null"`
	MealPlan     datatypes.JSON `gorm:"not null"`
	HealthGoals  string         // comma-separated
	ReminderSent bool           `gorm:"default:false"`
	Version      int            `gorm:"default:1;not null"`
}
