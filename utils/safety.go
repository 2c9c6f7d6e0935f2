package utils

import (
	"fmt"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
)

// Traffic-light style per-item thresholds (grams). The parser reports
// nutrients by plain lowercase words, so that is what we match on.
const (
	highSugarG    = 22.5
	highFatG      = 17.5
	highSatFatG   = 5.0
	highSodiumG   = 1.5
	highCaloriesK = 800
)

// AssessNutrients flags nutrient amounts worth calling out on a single
// scanned item. Only emits findings for values that are present; an empty
// map yields no warnings.
func AssessNutrients(calories int, nutrients models.NutrientMap) []string {
	var warnings []string

	if calories > highCaloriesK {
		warnings = append(warnings, fmt.Sprintf("High calorie item (%d kcal)", calories))
	}
	if sugar := pick(nutrients, "sugar", "sugars"); sugar > highSugarG {
		warnings = append(warnings, fmt.Sprintf("High sugar content (%.0fg)", sugar))
	}
	if fat := pick(nutrients, "fat", "fats"); fat > highFatG {
		warnings = append(warnings, fmt.Sprintf("High fat content (%.0fg)", fat))
	}
	if satFat := pick(nutrients, "saturated", "satfat"); satFat > highSatFatG {
		warnings = append(warnings, fmt.Sprintf("High saturated fat (%.0fg)", satFat))
	}
	if sodium := pick(nutrients, "sodium", "salt"); sodium > highSodiumG {
		warnings = append(warnings, fmt.Sprintf("High sodium content (%.1fg)", sodium))
	}

	return warnings
}

func pick(nutrients models.NutrientMap, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := nutrients[k]; ok {
			return v
		}
	}
	return 0
}
