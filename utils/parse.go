package utils

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
)

// Parsers for the textual conventions the completion model is prompted to
// follow. All of them are total: malformed text degrades to a fallback value
// instead of returning an error, so a bad completion never fails a request.

var (
	foodAnalysisRe = regexp.MustCompile(`Detected: (.+) \((\d+) kcal, (.+)\)`)
	nutrientRe     = regexp.MustCompile(`(\d+)g (\w+)`)
	labelScanRe    = regexp.MustCompile(`Product: (.+)\. Ingredients: (.+)\. Flagged: (.+)\.`)
)

// ParseFoodAnalysis expects "Detected: <name> (<N> kcal, <nutrient list>)".
func ParseFoodAnalysis(text string) models.FoodAnalysis {
	m := foodAnalysisRe.FindStringSubmatch(text)
	if m == nil {
		return models.FoodAnalysis{FoodName: "Unknown", Nutrients: models.NutrientMap{}}
	}
	calories, _ := strconv.Atoi(m[2])
	return models.FoodAnalysis{
		FoodName:  m[1],
		Calories:  calories,
		Nutrients: ParseNutrients(m[3]),
	}
}

// ParseNutrients scans for repeated "<digits>g <word>" tokens, e.g.
// "25g protein, 10g fat". Tokens not matching the pattern are dropped.
func ParseNutrients(s string) models.NutrientMap {
	nutrients := models.NutrientMap{}
	for _, m := range nutrientRe.FindAllStringSubmatch(s, -1) {
		grams, _ := strconv.Atoi(m[1])
		nutrients[m[2]] = float64(grams)
	}
	return nutrients
}

// ParseMealPlan splits on ". " and assigns the first three segments to
// breakfast, lunch and dinner positionally. Fewer than three segments leave
// the remaining slots empty; extra segments are dropped. The final segment
// keeps its trailing period since only ". " is a separator.
func ParseMealPlan(text string) models.MealPlanSections {
	segments := strings.Split(text, ". ")
	var sections models.MealPlanSections
	if len(segments) > 0 {
		sections.Breakfast = strings.TrimSpace(segments[0])
	}
	if len(segments) > 1 {
		sections.Lunch = strings.TrimSpace(segments[1])
	}
	if len(segments) > 2 {
		sections.Dinner = strings.TrimSpace(segments[2])
	}
	return sections
}

// ParseFoodLabelScan expects
// "Product: <name>. Ingredients: <csv>. Flagged: <csv>.".
func ParseFoodLabelScan(text string) models.LabelScanResult {
	m := labelScanRe.FindStringSubmatch(text)
	if m == nil {
		return models.LabelScanResult{
			ProductName: "Unknown",
			Ingredients: []string{},
			Flagged:     []string{},
		}
	}
	return models.LabelScanResult{
		ProductName: m[1],
		Ingredients: strings.Split(m[2], ", "),
		Flagged:     strings.Split(m[3], ", "),
	}
}

// ParseHealthReportScan attempts a strict JSON parse of the completion; a
// non-JSON completion is wrapped as {"insights": <raw text>}.
func ParseHealthReportScan(text string) map[string]any {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return map[string]any{"insights": text}
	}
	return parsed
}
