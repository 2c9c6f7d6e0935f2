package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"gorm.io/gorm"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
)

// PushService delivers meal reminders and health alerts to registered
// mobile devices through SNS platform endpoints.
type PushService struct {
	db          *gorm.DB
	sns         *awssns.Client
	platformArn string // FCM platform application, serves both platforms
}

func NewPushService(db *gorm.DB, sns *awssns.Client, platformArn string) *PushService {
	return &PushService{db: db, sns: sns, platformArn: platformArn}
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func (p *PushService) RegisterDevice(ctx context.Context, userID uint, platform, token string) (*models.UserDevice, error) {
	platform = strings.ToLower(platform)
	if platform != "android" && platform != "ios" {
		return nil, errors.New("unknown platform")
	}
	if p.platformArn == "" {
		return nil, errors.New("push platform not configured")
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.platformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256([]byte(token))
	device := &models.UserDevice{
		UserID:      userID,
		Platform:    platform,
		TokenHash:   hex.EncodeToString(hash[:]),
		EndpointARN: aws.ToString(out.EndpointArn),
		UpdatedAt:   time.Now(),
	}

	var existing models.UserDevice
	if err := p.db.Where("user_id = ? AND token_hash = ?", userID, device.TokenHash).First(&existing).Error; err == nil {
		existing.EndpointARN = device.EndpointARN
		existing.Platform = device.Platform
		existing.UpdatedAt = time.Now()
		_ = p.db.Save(&existing).Error
		return &existing, nil
	}
	_ = p.db.Create(device).Error
	return device, nil
}

// PushToUser is best-effort; a dead endpoint never fails the caller.
func (p *PushService) PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string) {
	var devices []models.UserDevice
	if err := p.db.Where("user_id = ? AND enabled = ?", userID, true).Find(&devices).Error; err != nil {
		return
	}
	if len(devices) == 0 {
		return
	}

	msg := map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": map[string]string{
				"title": title,
				"body":  body,
			},
			"data": data,
		},
	}
	raw, _ := json.Marshal(msg)

	for _, d := range devices {
		_, _ = p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
	}
}
