package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
	"github.com/Cavista-Hackathon-2025/carepulse/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret []byte) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

func (s *AuthService) Register(email, password, fullName string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashed,
		FullName: fullName,
	}
	return s.db.Create(&user).Error
}

func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}
	return utils.GenerateJWT(s.jwtSecret, user.ID, user.Email)
}
