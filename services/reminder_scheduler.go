package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
)

// ReminderScheduler periodically sweeps meal schedules whose mealTime has
// arrived and sends a single reminder per plan.
type ReminderScheduler struct {
	db       *gorm.DB
	notifier *NotificationService
	sched    gocron.Scheduler
}

func NewReminderScheduler(db *gorm.DB, notifier *NotificationService) (*ReminderScheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &ReminderScheduler{db: db, notifier: notifier, sched: sched}, nil
}

func (r *ReminderScheduler) Start() error {
	_, err := r.sched.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(func() {
			if err := r.RunOnce(context.Background()); err != nil {
				log.Printf("meal reminder sweep failed: %v", err)
			}
		}),
	)
	if err != nil {
		return err
	}
	r.sched.Start()
	return nil
}

func (r *ReminderScheduler) Stop() {
	_ = r.sched.Shutdown()
}

// RunOnce processes all currently due schedules. A schedule is marked sent
// even if a delivery channel failed; reminders are at-most-once.
func (r *ReminderScheduler) RunOnce(ctx context.Context) error {
	var due []models.MealSchedule
	err := r.db.WithContext(ctx).
		Where("meal_time <= ? AND reminder_sent = ?", time.Now(), false).
		Find(&due).Error
	if err != nil {
		return err
	}

	for _, schedule := range due {
		message := fmt.Sprintf("Time for your planned meals (%s).",
			schedule.MealTime.Local().Format("Mon 15:04"))
		if _, err := r.notifier.Notify(ctx, schedule.UserID, "meal_reminder", message); err != nil {
			log.Printf("meal reminder for plan %d failed: %v", schedule.ID, err)
			continue
		}
		if err := r.db.WithContext(ctx).
			Model(&models.MealSchedule{}).
			Where("id = ?", schedule.ID).
			Update("reminder_sent", true).Error; err != nil {
			return err
		}
	}
	return nil
}
