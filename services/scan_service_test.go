package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
)

func TestScanFoodImagePersistsAnalysis(t *testing.T) {
	db := newTestDB(t)
	ai := &fakeCompleter{text: "Detected: Chicken Salad (350 kcal, 25g protein, 10g fat, 40g carbs)."}
	svc := NewScanService(db, ai, nil, NewMealPlanService(db, ai))

	scan, err := svc.ScanFoodImage(context.Background(), 7, "aW1n", "image/jpeg", "https://cdn.example/x.jpg")
	require.NoError(t, err)

	assert.Equal(t, "Chicken Salad", scan.FoodName)
	assert.Equal(t, 350, scan.Calories)
	assert.Equal(t, "https://cdn.example/x.jpg", scan.ImageURL)
	assert.JSONEq(t, `{"protein":25,"fat":10,"carbs":40}`, string(scan.Nutrients))
	assert.Empty(t, scan.FlaggedIssues)

	var stored models.FoodScan
	require.NoError(t, db.First(&stored, scan.ID).Error)
	assert.Equal(t, uint(7), stored.UserID)
}

func TestScanFoodImageDegradesOnGarbage(t *testing.T) {
	db := newTestDB(t)
	ai := &fakeCompleter{text: "I cannot identify this image, sorry."}
	svc := NewScanService(db, ai, nil, NewMealPlanService(db, ai))

	scan, err := svc.ScanFoodImage(context.Background(), 7, "aW1n", "image/jpeg", "")
	require.NoError(t, err)

	assert.Equal(t, "Unknown", scan.FoodName)
	assert.Zero(t, scan.Calories)
	assert.JSONEq(t, `{}`, string(scan.Nutrients))
}

func TestScanFoodImageFlagsHighSugar(t *testing.T) {
	db := newTestDB(t)
	ai := &fakeCompleter{text: "Detected: Fudge Cake (900 kcal, 60g sugar, 30g fat)."}
	svc := NewScanService(db, ai, nil, NewMealPlanService(db, ai))

	scan, err := svc.ScanFoodImage(context.Background(), 7, "aW1n", "image/jpeg", "")
	require.NoError(t, err)

	assert.Contains(t, scan.FlaggedIssues, "High calorie")
	assert.Contains(t, scan.FlaggedIssues, "High sugar")
	assert.Contains(t, scan.FlaggedIssues, "High fat")
}

func TestScanFoodLabel(t *testing.T) {
	db := newTestDB(t)
	ai := &fakeCompleter{text: "Product: Corn Flakes. Ingredients: Corn, sugar, salt. Flagged: Sugar (high content)."}
	svc := NewScanService(db, ai, nil, NewMealPlanService(db, ai))

	result, err := svc.ScanFoodLabel(context.Background(), 7, "corn flakes label text")
	require.NoError(t, err)

	assert.Equal(t, "Corn Flakes", result.ProductName)
	assert.Equal(t, []string{"Corn", "sugar", "salt"}, result.Ingredients)
	assert.Equal(t, []string{"Sugar (high content)"}, result.Flagged)

	var stored models.FoodScan
	require.NoError(t, db.Where("user_id = ?", 7).First(&stored).Error)
	assert.Equal(t, "Corn Flakes", stored.FoodName)
	assert.Equal(t, "Sugar (high content)", stored.FlaggedIssues)
}

func TestScanHealthReportGeneratesPlan(t *testing.T) {
	db := newTestDB(t)
	// one canned completion serves both the report scan and the follow-up
	// plan generation; prose is fine for either parser
	ai := &fakeCompleter{text: "Eat more iron. Add leafy greens. Limit coffee."}
	svc := NewScanService(db, ai, nil, NewMealPlanService(db, ai))

	result, err := svc.ScanHealthReport(context.Background(), 7, "hemoglobin low")
	require.NoError(t, err)

	assert.Equal(t, "Eat more iron. Add leafy greens. Limit coffee.", result.Report["insights"])
	require.NotNil(t, result.MealPlan)
	assert.Len(t, result.MealPlan.Plan.Meals, 3)
	// two completions: the report scan and the plan generation
	assert.Len(t, ai.prompts, 2)
}

func TestScanHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ai := &fakeCompleter{text: "Detected: Apple (80 kcal, 0g fat)."}
	svc := NewScanService(db, ai, nil, NewMealPlanService(db, ai))
	ctx := context.Background()

	_, err := svc.ScanFoodImage(ctx, 7, "aW1n", "image/jpeg", "")
	require.NoError(t, err)
	ai.text = "Detected: Pear (90 kcal, 0g fat)."
	_, err = svc.ScanFoodImage(ctx, 7, "aW1n", "image/jpeg", "")
	require.NoError(t, err)

	history, err := svc.ScanHistory(ctx, 7)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// another user's history stays empty
	other, err := svc.ScanHistory(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, other)
}
