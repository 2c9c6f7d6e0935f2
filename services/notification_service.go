package services

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
	"github.com/Cavista-Hackathon-2025/carepulse/utils"
)

// NotificationService records notifications and fans them out over every
// configured channel. Channel failures are logged, never surfaced: a dead
// push endpoint must not fail the request that triggered the notification.
type NotificationService struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService
	mail *utils.Mailer
}

func NewNotificationService(db *gorm.DB, hub *RealtimeHub, push *PushService, mail *utils.Mailer) *NotificationService {
	return &NotificationService{db: db, hub: hub, push: push, mail: mail}
}

func (n *NotificationService) Notify(ctx context.Context, userID uint, notificationType, message string) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Message: message,
		SentAt:  time.Now(),
	}
	if err := n.db.WithContext(ctx).Create(notification).Error; err != nil {
		return nil, err
	}

	if n.hub != nil {
		n.hub.Broadcast(userID, map[string]any{
			"kind":         "notification.created",
			"notification": notification,
		})
	}
	if n.push != nil {
		n.push.PushToUser(ctx, userID, titleFor(notificationType), message, map[string]string{
			"type": notificationType,
		})
	}
	if n.mail != nil {
		n.email(ctx, userID, notificationType, message)
	}
	return notification, nil
}

func (n *NotificationService) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := n.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (n *NotificationService) email(ctx context.Context, userID uint, notificationType, message string) {
	var user models.User
	if err := n.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return
	}

	var err error
	switch notificationType {
	case "meal_reminder":
		err = n.mail.SendMealReminder(ctx, user.Email, message)
	default:
		err = n.mail.SendHealthAlert(ctx, user.Email, message)
	}
	if err != nil {
		log.Printf("notification email to user %d failed: %v", userID, err)
	}
}

func titleFor(notificationType string) string {
	if notificationType == "meal_reminder" {
		return "Meal reminder"
	}
	return "Health alert"
}
