package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
	"github.com/Cavista-Hackathon-2025/carepulse/utils"
)

const (
	foodImagePrompt = "You are an AI food analyst that detects food and estimates nutrition values. " +
		"Analyze the food in this image and answer in exactly this form: " +
		"Detected: <food name> (<calories> kcal, <N>g protein, <N>g fat, <N>g carbs)."

	foodLabelPrompt = "You are an AI that scans food labels and flags harmful ingredients. " +
		"Scan this food label and answer in exactly this form: " +
		"Product: <name>. Ingredients: <comma separated>. Flagged: <comma separated>.\n\nLabel text:\n%s"

	healthReportPrompt = "You are an AI that scans health reports, identifies health conditions, " +
		"and suggests dietary goals. Analyze this health report and respond as a JSON object:\n%s"
)

// ScanService orchestrates scans: prompt the model, parse the text, flag
// worrying nutrients and persist the result. Parsing never fails a scan;
// only upstream or storage errors do.
type ScanService struct {
	db    *gorm.DB
	ai    Completer
	rek   *RekognitionService // optional
	plans *MealPlanService
}

func NewScanService(db *gorm.DB, ai Completer, rek *RekognitionService, plans *MealPlanService) *ScanService {
	return &ScanService{db: db, ai: ai, rek: rek, plans: plans}
}

// ScanFoodImage analyzes a food photo and persists a FoodScan. A completion
// that parses to the Unknown fallback is retried against Rekognition for at
// least a food name.
func (s *ScanService) ScanFoodImage(ctx context.Context, userID uint, imageBase64, mimeType, imageURL string) (*models.FoodScan, error) {
	text, err := s.ai.CompleteWithImage(ctx, foodImagePrompt, imageBase64, mimeType)
	if err != nil {
		return nil, fmt.Errorf("food analysis failed: %w", err)
	}

	analysis := utils.ParseFoodAnalysis(text)
	if analysis.FoodName == "Unknown" && s.rek != nil {
		if name := s.fallbackLabel(ctx, imageBase64); name != "" {
			analysis.FoodName = name
		}
	}

	return s.storeScan(ctx, userID, analysis, imageURL)
}

// ScanFoodLabel analyzes pasted or OCR'd label text.
func (s *ScanService) ScanFoodLabel(ctx context.Context, userID uint, labelText string) (*models.LabelScanResult, error) {
	text, err := s.ai.Complete(ctx, fmt.Sprintf(foodLabelPrompt, labelText))
	if err != nil {
		return nil, fmt.Errorf("food label scan failed: %w", err)
	}

	result := utils.ParseFoodLabelScan(text)

	scan := models.FoodScan{
		UserID:        userID,
		FoodName:      result.ProductName,
		Nutrients:     datatypes.JSON([]byte("{}")),
		FlaggedIssues: strings.Join(result.Flagged, "; "),
	}
	if err := s.db.WithContext(ctx).Create(&scan).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// HealthReportScan is the result of analyzing a health report: the parsed
// (or wrapped) insights plus a meal plan generated from them.
type HealthReportScan struct {
	Report   map[string]any `json:"report"`
	MealPlan *PlanView      `json:"mealPlan"`
}

// ScanHealthReport analyzes free-text health report content and follows up
// with a generated meal plan based on the extracted insights.
func (s *ScanService) ScanHealthReport(ctx context.Context, userID uint, reportText string) (*HealthReportScan, error) {
	text, err := s.ai.Complete(ctx, fmt.Sprintf(healthReportPrompt, reportText))
	if err != nil {
		return nil, fmt.Errorf("health report scan failed: %w", err)
	}

	report := utils.ParseHealthReportScan(text)

	plan, err := s.plans.CreateMealPlan(ctx, userID, goalsFromReport(report), time.Now(), 0)
	if err != nil {
		return nil, err
	}
	return &HealthReportScan{Report: report, MealPlan: plan}, nil
}

func (s *ScanService) ScanHistory(ctx context.Context, userID uint) ([]models.FoodScan, error) {
	var scans []models.FoodScan
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&scans).Error
	return scans, err
}

func (s *ScanService) storeScan(ctx context.Context, userID uint, analysis models.FoodAnalysis, imageURL string) (*models.FoodScan, error) {
	nutrients, err := json.Marshal(analysis.Nutrients)
	if err != nil {
		return nil, err
	}

	scan := models.FoodScan{
		UserID:        userID,
		FoodName:      analysis.FoodName,
		ImageURL:      imageURL,
		Calories:      analysis.Calories,
		Nutrients:     datatypes.JSON(nutrients),
		FlaggedIssues: strings.Join(utils.AssessNutrients(analysis.Calories, analysis.Nutrients), "; "),
	}
	if err := s.db.WithContext(ctx).Create(&scan).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

func (s *ScanService) fallbackLabel(ctx context.Context, imageBase64 string) string {
	image, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return ""
	}
	labels, err := s.rek.DetectFoodLabels(ctx, image)
	if err != nil {
		log.Printf("rekognition fallback failed: %v", err)
		return ""
	}
	if len(labels) == 0 {
		return ""
	}
	return labels[0]
}

// goalsFromReport turns parsed report insights into health-goal strings for
// plan generation, favoring the lenient-parse "insights" wrapper when set.
func goalsFromReport(report map[string]any) []string {
	if insights, ok := report["insights"].(string); ok && insights != "" {
		return []string{insights}
	}
	var goals []string
	for _, v := range report {
		if s, ok := v.(string); ok && s != "" {
			goals = append(goals, s)
		}
	}
	if len(goals) == 0 {
		goals = []string{"general health"}
	}
	return goals
}
