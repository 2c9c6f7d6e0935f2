package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
)

func seedSchedule(t *testing.T, db *gorm.DB, userID uint, mealTime time.Time) *models.MealSchedule {
	t.Helper()
	schedule := models.MealSchedule{
		UserID:   userID,
		MealTime: mealTime,
		MealPlan: datatypes.JSON([]byte(`{"meals":[],"totalCalories":0,"targetCalories":0,"progress":0}`)),
		Version:  1,
	}
	require.NoError(t, db.Create(&schedule).Error)
	return &schedule
}

func TestReminderSweepSendsOnce(t *testing.T) {
	db := newTestDB(t)
	notifier := NewNotificationService(db, nil, nil, nil)
	scheduler, err := NewReminderScheduler(db, notifier)
	require.NoError(t, err)
	ctx := context.Background()

	due := seedSchedule(t, db, 5, time.Now().Add(-time.Minute))
	seedSchedule(t, db, 5, time.Now().Add(time.Hour)) // not due yet

	require.NoError(t, scheduler.RunOnce(ctx))

	notifications, err := notifier.List(ctx, 5)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "meal_reminder", notifications[0].Type)

	var stored models.MealSchedule
	require.NoError(t, db.First(&stored, due.ID).Error)
	assert.True(t, stored.ReminderSent)

	// a second sweep finds nothing due
	require.NoError(t, scheduler.RunOnce(ctx))
	notifications, err = notifier.List(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestReminderSweepCoversAllUsers(t *testing.T) {
	db := newTestDB(t)
	notifier := NewNotificationService(db, nil, nil, nil)
	scheduler, err := NewReminderScheduler(db, notifier)
	require.NoError(t, err)
	ctx := context.Background()

	seedSchedule(t, db, 5, time.Now().Add(-time.Minute))
	seedSchedule(t, db, 6, time.Now().Add(-2*time.Hour))

	require.NoError(t, scheduler.RunOnce(ctx))

	for _, userID := range []uint{5, 6} {
		notifications, err := notifier.List(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, notifications, 1, "user %d", userID)
	}
}

func TestReminderSchedulerStartStop(t *testing.T) {
	db := newTestDB(t)
	scheduler, err := NewReminderScheduler(db, NewNotificationService(db, nil, nil, nil))
	require.NoError(t, err)

	require.NoError(t, scheduler.Start())
	scheduler.Stop()
}
