package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Cavista-Hackathon-2025/carepulse/services"
)

type MealPlanController struct {
	svc *services.MealPlanService
}

func NewMealPlanController(svc *services.MealPlanService) *MealPlanController {
	return &MealPlanController{svc: svc}
}

type CreateMealPlanInput struct {
	HealthGoals    []string  `json:"health_goals" binding:"required,min=1"`
	MealTime       time.Time `json:"meal_time"`
	TargetCalories int       `json:"target_calories"`
}

func (m *MealPlanController) Create(c *gin.Context) {
	var input CreateMealPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if input.MealTime.IsZero() {
		input.MealTime = time.Now()
	}

	plan, err := m.svc.CreateMealPlan(c.Request.Context(), c.GetUint("userID"),
		input.HealthGoals, input.MealTime, input.TargetCalories)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to generate meal plan"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "plan": plan})
}

func (m *MealPlanController) List(c *gin.Context) {
	plans, err := m.svc.ListMealPlans(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load meal plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plans": plans})
}

func (m *MealPlanController) Get(c *gin.Context) {
	planID, ok := planParam(c)
	if !ok {
		return
	}

	plan, err := m.svc.GetMealPlan(c.Request.Context(), c.GetUint("userID"), planID)
	if err != nil {
		respondPlanError(c, err, "Failed to load meal plan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plan": plan})
}

func (m *MealPlanController) Update(c *gin.Context) {
	planID, ok := planParam(c)
	if !ok {
		return
	}

	var upd services.MealPlanUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	plan, err := m.svc.UpdateMealPlan(c.Request.Context(), c.GetUint("userID"), planID, upd)
	if err != nil {
		respondPlanError(c, err, "Failed to update meal plan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plan": plan})
}

func (m *MealPlanController) UpdateMeal(c *gin.Context) {
	planID, ok := planParam(c)
	if !ok {
		return
	}

	var upd services.MealUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	plan, err := m.svc.UpdateMeal(c.Request.Context(), c.GetUint("userID"), planID, c.Param("mealId"), upd)
	if err != nil {
		respondPlanError(c, err, "Failed to update meal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plan": plan})
}

func (m *MealPlanController) Delete(c *gin.Context) {
	planID, ok := planParam(c)
	if !ok {
		return
	}

	if err := m.svc.DeleteMealPlan(c.Request.Context(), c.GetUint("userID"), planID); err != nil {
		respondPlanError(c, err, "Failed to delete meal plan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "meal plan deleted"})
}

func planParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid plan id"})
		return 0, false
	}
	return uint(id), true
}

func respondPlanError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Meal plan not found"})
	case errors.Is(err, services.ErrMealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Meal not found in plan"})
	case errors.Is(err, services.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Meal plan was modified, reload and retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fallback})
	}
}
