package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
)

func TestAssessNutrientsEmpty(t *testing.T) {
	assert.Empty(t, AssessNutrients(0, models.NutrientMap{}))
}

func TestAssessNutrientsFlagsHighValues(t *testing.T) {
	warnings := AssessNutrients(950, models.NutrientMap{
		"sugar":   40,
		"fat":     30,
		"protein": 20,
	})

	assert.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "High calorie")
	assert.Contains(t, warnings[1], "High sugar")
	assert.Contains(t, warnings[2], "High fat")
}

func TestAssessNutrientsIgnoresModestValues(t *testing.T) {
	warnings := AssessNutrients(350, models.NutrientMap{
		"sugar": 5,
		"fat":   10,
	})
	assert.Empty(t, warnings)
}
