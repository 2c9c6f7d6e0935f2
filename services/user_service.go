package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
	"github.com/Cavista-Hackathon-2025/carepulse/utils"
)

type UserService struct {
	db       *gorm.DB
	uploader *utils.S3Uploader // optional
}

func NewUserService(db *gorm.DB, uploader *utils.S3Uploader) *UserService {
	return &UserService{db: db, uploader: uploader}
}

type ProfileInput struct {
	FullName          string   `json:"full_name"`
	Age               int      `json:"age"`
	Gender            string   `json:"gender"`
	Height            float64  `json:"height"`
	Weight            float64  `json:"weight"`
	HealthGoals       []string `json:"health_goals"`
	MedicalConditions []string `json:"medical_conditions"`
	Allergies         []string `json:"allergies"`
	ProfilePicture    string   `json:"profile_picture"` // base64 data URI
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (map[string]any, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	return map[string]any{
		"id":                 user.ID,
		"email":              user.Email,
		"full_name":          user.FullName,
		"age":                user.Age,
		"gender":             user.Gender,
		"height":             user.Height,
		"weight":             user.Weight,
		"health_goals":       splitCSV(user.HealthGoals),
		"medical_conditions": splitCSV(user.MedicalConditions),
		"allergies":          splitCSV(user.Allergies),
		"profile_picture":    user.ProfilePicture,
	}, nil
}

// UpdateProfile merges non-zero fields only; a profile picture payload is
// uploaded first and stored as its public URL.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input ProfileInput) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Age > 0 {
		user.Age = input.Age
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.Height > 0 {
		user.Height = input.Height
	}
	if input.Weight > 0 {
		user.Weight = input.Weight
	}
	if input.HealthGoals != nil {
		user.HealthGoals = strings.Join(input.HealthGoals, ",")
	}
	if input.MedicalConditions != nil {
		user.MedicalConditions = strings.Join(input.MedicalConditions, ",")
	}
	if input.Allergies != nil {
		user.Allergies = strings.Join(input.Allergies, ",")
	}
	if input.ProfilePicture != "" && s.uploader != nil {
		url, err := s.uploader.UploadBase64Image(ctx, input.ProfilePicture)
		if err != nil {
			return fmt.Errorf("failed to upload profile picture: %w", err)
		}
		user.ProfilePicture = url
	}

	return s.db.WithContext(ctx).Save(&user).Error
}

func splitCSV(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
