package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
)

func TestParseFoodAnalysis(t *testing.T) {
	got := ParseFoodAnalysis("Detected: Chicken Salad (350 kcal, 25g protein, 10g fat, 40g carbs).")

	assert.Equal(t, "Chicken Salad", got.FoodName)
	assert.Equal(t, 350, got.Calories)
	assert.Equal(t, models.NutrientMap{"protein": 25, "fat": 10, "carbs": 40}, got.Nutrients)
}

func TestParseFoodAnalysisFallback(t *testing.T) {
	for _, text := range []string{"garbage text", "", "Detected: nothing useful"} {
		got := ParseFoodAnalysis(text)
		assert.Equal(t, "Unknown", got.FoodName, "input %q", text)
		assert.Equal(t, 0, got.Calories)
		assert.Empty(t, got.Nutrients)
		assert.NotNil(t, got.Nutrients)
	}
}

func TestParseNutrients(t *testing.T) {
	assert.Equal(t, models.NutrientMap{}, ParseNutrients(""))
	assert.Equal(t, models.NutrientMap{"protein": 25}, ParseNutrients("25g protein, lots of vibes"))
	assert.Equal(t,
		models.NutrientMap{"protein": 25, "fat": 10},
		ParseNutrients("25g protein, 10g fat"))
}

func TestParseMealPlan(t *testing.T) {
	got := ParseMealPlan("Oatmeal with banana. Grilled salmon with quinoa. Vegetable stir-fry.")

	assert.Equal(t, "Oatmeal with banana", got.Breakfast)
	assert.Equal(t, "Grilled salmon with quinoa", got.Lunch)
	// only ". " splits, so the last segment keeps its period
	assert.Equal(t, "Vegetable stir-fry.", got.Dinner)
}

func TestParseMealPlanShortText(t *testing.T) {
	got := ParseMealPlan("Just breakfast")
	assert.Equal(t, "Just breakfast", got.Breakfast)
	assert.Empty(t, got.Lunch)
	assert.Empty(t, got.Dinner)
}

func TestParseMealPlanExtraSegmentsDropped(t *testing.T) {
	got := ParseMealPlan("One. Two. Three. Four. Five.")
	assert.Equal(t, "One", got.Breakfast)
	assert.Equal(t, "Two", got.Lunch)
	assert.Equal(t, "Three", got.Dinner)
}

func TestParseFoodLabelScan(t *testing.T) {
	got := ParseFoodLabelScan("Product: Corn Flakes. Ingredients: Corn, sugar, salt. Flagged: Sugar (high content).")

	assert.Equal(t, "Corn Flakes", got.ProductName)
	assert.Equal(t, []string{"Corn", "sugar", "salt"}, got.Ingredients)
	assert.Equal(t, []string{"Sugar (high content)"}, got.Flagged)
}

func TestParseFoodLabelScanFallback(t *testing.T) {
	got := ParseFoodLabelScan("the model refused to cooperate")

	assert.Equal(t, "Unknown", got.ProductName)
	assert.Empty(t, got.Ingredients)
	assert.Empty(t, got.Flagged)
}

func TestParseHealthReportScan(t *testing.T) {
	got := ParseHealthReportScan(`{"condition":"anemia","dietScore":55}`)
	assert.Equal(t, "anemia", got["condition"])
	assert.Equal(t, 55.0, got["dietScore"])
}

func TestParseHealthReportScanNonJSON(t *testing.T) {
	got := ParseHealthReportScan("patient should eat more leafy greens")
	assert.Equal(t, map[string]any{"insights": "patient should eat more leafy greens"}, got)
}

func TestParsersAreDeterministic(t *testing.T) {
	const text = "Detected: Ramen (600 kcal, 20g protein, 80g carbs)."
	first := ParseFoodAnalysis(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ParseFoodAnalysis(text))
	}
}
