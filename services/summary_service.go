package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
)

var (
	// ErrNoMeals means the requested window has nothing to summarize.
	ErrNoMeals = errors.New("no meals logged for this period")

	// ErrMalformedSummary means the completion could not be coerced into a
	// summary shape. Unlike the scan parsers there is no safe fallback here:
	// a made-up diet score is worse than an error.
	ErrMalformedSummary = errors.New("summary response was not valid JSON")
)

// Completion models love wrapping JSON in markdown fences or prose; take
// the outermost object.
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

const lowDietScore = 40

// SummaryService derives daily and weekly health summaries from a user's
// scan history and persists them.
type SummaryService struct {
	db       *gorm.DB
	ai       Completer
	notifier *NotificationService // optional, for low-score alerts
}

func NewSummaryService(db *gorm.DB, ai Completer, notifier *NotificationService) *SummaryService {
	return &SummaryService{db: db, ai: ai, notifier: notifier}
}

// GenerateDailySummary covers everything logged since local midnight.
func (s *SummaryService) GenerateDailySummary(ctx context.Context, userID uint) (*models.Summary, error) {
	return s.generate(ctx, userID, "daily", dayStartLocal(time.Now()))
}

// GenerateWeeklySummary covers the trailing seven days.
func (s *SummaryService) GenerateWeeklySummary(ctx context.Context, userID uint) (*models.Summary, error) {
	return s.generate(ctx, userID, "weekly", time.Now().Add(-7*24*time.Hour))
}

func (s *SummaryService) ListSummaries(ctx context.Context, userID uint) ([]models.Summary, error) {
	var summaries []models.Summary
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&summaries).Error
	return summaries, err
}

func (s *SummaryService) generate(ctx context.Context, userID uint, summaryType string, since time.Time) (*models.Summary, error) {
	var scans []models.FoodScan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&scans).Error
	if err != nil {
		return nil, err
	}
	if len(scans) == 0 {
		return nil, ErrNoMeals
	}

	text, err := s.ai.Complete(ctx, summaryPrompt(scans))
	if err != nil {
		return nil, fmt.Errorf("health summary failed: %w", err)
	}

	parsed, err := coerceSummary(text)
	if err != nil {
		return nil, err
	}

	summary := models.Summary{
		UserID:          userID,
		Type:            summaryType,
		Date:            time.Now(),
		DietScore:       parsed.DietScore,
		HealthRisks:     parsed.HealthRisks,
		ImprovementTips: parsed.ImprovementTips,
	}
	if err := s.db.WithContext(ctx).Create(&summary).Error; err != nil {
		return nil, err
	}

	if s.notifier != nil && summary.DietScore < lowDietScore {
		s.notifier.Notify(ctx, userID, "health_alert",
			fmt.Sprintf("Your %s diet score dropped to %.0f. %s", summaryType, summary.DietScore, summary.ImprovementTips))
	}
	return &summary, nil
}

func summaryPrompt(scans []models.FoodScan) string {
	var sb strings.Builder
	sb.WriteString("You are a nutrition AI assistant. Analyze the following meal logs and summarize the user's health based on their food intake.\n\nMeals logged:\n")
	for _, scan := range scans {
		fmt.Fprintf(&sb, "- %s (%d kcal): %s\n", scan.FoodName, scan.Calories, string(scan.Nutrients))
	}
	sb.WriteString("\nReturn the response as a JSON object: " +
		`{"dietScore": <number 0-100>, "healthRisks": <string>, "improvementTips": <string>}`)
	return sb.String()
}

func coerceSummary(text string) (*models.HealthSummary, error) {
	block := jsonObjectRe.FindString(text)
	if block == "" {
		return nil, ErrMalformedSummary
	}

	var summary models.HealthSummary
	if err := json.Unmarshal([]byte(block), &summary); err != nil {
		return nil, ErrMalformedSummary
	}

	if summary.DietScore < 0 {
		summary.DietScore = 0
	} else if summary.DietScore > 100 {
		summary.DietScore = 100
	}
	return &summary, nil
}

func dayStartLocal(t time.Time) time.Time {
	tt := t.In(time.Local)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.Local)
}
