package models

import (
    "gorm.io/gorm"
)

type User struct {
    gorm.Model
    Email             string `gorm:"uniqueIndex;not null"`
    Password          string `gorm:"not null"`
    FullName          string
    Age               int
    Gender            string
    Height            float64 // cm
    Weight            float64 // kg
    HealthGoals       string  // comma-separated, e.g. "weight loss,more protein"
    MedicalConditions string
    Allergies         string
    ProfilePicture    string
}
