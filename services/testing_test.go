package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FoodScan{},
		&models.MealSchedule{},
		&models.Summary{},
		&models.Notification{},
		&models.UserDevice{},
	))
	return db
}

// fakeCompleter returns canned text and records every prompt it saw.
type fakeCompleter struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func (f *fakeCompleter) CompleteWithImage(_ context.Context, prompt, _, _ string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}
