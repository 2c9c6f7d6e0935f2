package models

// NutrientMap maps a nutrient name ("protein") to a gram quantity.
type NutrientMap map[string]float64

// FoodAnalysis is the structured result of parsing a food-analysis
// completion. The zero-ish fallback is {FoodName: "Unknown"} with an empty
// nutrient map, never an error.
type FoodAnalysis struct {
	FoodName  string      `json:"foodName"`
	Calories  int         `json:"calories"`
	Nutrients NutrientMap `json:"nutrients"`
}

// MealPlanSections holds the three positional segments of a meal-plan
// completion. Missing slots stay empty.
type MealPlanSections struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// LabelScanResult is a parsed food-label completion.
type LabelScanResult struct {
	ProductName string   `json:"productName"`
	Ingredients []string `json:"ingredients"`
	Flagged     []string `json:"flagged"`
}

// HealthSummary is the coerced shape of a health-summary completion.
type HealthSummary struct {
	DietScore       float64 `json:"dietScore"` // 0..100
	HealthRisks     string  `json:"healthRisks"`
	ImprovementTips string  `json:"improvementTips"`
}
