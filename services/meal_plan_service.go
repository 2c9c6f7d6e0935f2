package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
	"github.com/Cavista-Hackathon-2025/carepulse/utils"
)

var (
	// ErrPlanNotFound covers both unknown ids and plans owned by someone
	// else, so a caller learns nothing about other users' records.
	ErrPlanNotFound = errors.New("meal plan not found")

	ErrMealNotFound = errors.New("meal not found in plan")

	// ErrVersionConflict means the plan changed since the caller read it.
	ErrVersionConflict = errors.New("meal plan was modified by another request")
)

// MealPlanService owns meal-plan lifecycle and the reconciliation rules
// that keep totalCalories and progress consistent with the meal list.
type MealPlanService struct {
	db *gorm.DB
	ai Completer
}

func NewMealPlanService(db *gorm.DB, ai Completer) *MealPlanService {
	return &MealPlanService{db: db, ai: ai}
}

// PlanView is a MealSchedule with its JSON plan column decoded.
type PlanView struct {
	ID           uint            `json:"id"`
	MealTime     time.Time       `json:"mealTime"`
	HealthGoals  []string        `json:"healthGoals"`
	Plan         models.MealPlan `json:"mealPlan"`
	ReminderSent bool            `json:"reminderSent"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// MealPlanUpdate is a partial plan update. Nil fields are left untouched.
// Version must match the stored row.
type MealPlanUpdate struct {
	Meals          *[]models.Meal `json:"meals"`
	TotalCalories  *int           `json:"totalCalories"`
	TargetCalories *int           `json:"targetCalories"`
	HealthScore    *float64       `json:"healthScore"`
	Version        int            `json:"version"`
}

// MealUpdate is a partial update for one meal inside a plan.
type MealUpdate struct {
	Name      *string             `json:"name"`
	Calories  *int                `json:"calories"`
	Time      *string             `json:"time"`
	Type      *string             `json:"type"`
	Nutrients *models.NutrientMap `json:"nutrients"`
	Version   int                 `json:"version"`
}

// CreateMealPlan asks the model for a three-meal day, parses the
// period-delimited sections and stores the resulting plan.
func (s *MealPlanService) CreateMealPlan(ctx context.Context, userID uint, healthGoals []string, mealTime time.Time, targetCalories int) (*PlanView, error) {
	prompt := fmt.Sprintf(
		"You are a nutritionist AI that creates personalized meal plans. "+
			"Create a 3-meal daily plan for a person with the goal: %s. "+
			"Answer with exactly three sentences separated by periods: breakfast, lunch, dinner.",
		strings.Join(healthGoals, ", "),
	)

	text, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("meal plan generation failed: %w", err)
	}

	sections := utils.ParseMealPlan(text)
	plan := models.MealPlan{
		Meals:          mealsFromSections(sections),
		TargetCalories: targetCalories,
	}
	reconcile(&plan)

	raw, err := json.Marshal(plan)
	if err != nil {
		return nil, err
	}

	schedule := models.MealSchedule{
		UserID:      userID,
		MealTime:    mealTime,
		MealPlan:    datatypes.JSON(raw),
		HealthGoals: strings.Join(healthGoals, ","),
		Version:     1,
	}
	if err := s.db.WithContext(ctx).Create(&schedule).Error; err != nil {
		return nil, err
	}
	return viewOf(&schedule)
}

func (s *MealPlanService) ListMealPlans(ctx context.Context, userID uint) ([]PlanView, error) {
	var schedules []models.MealSchedule
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("meal_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}

	views := make([]PlanView, 0, len(schedules))
	for i := range schedules {
		v, err := viewOf(&schedules[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *MealPlanService) GetMealPlan(ctx context.Context, userID, planID uint) (*PlanView, error) {
	schedule, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	return viewOf(schedule)
}

// UpdateMealPlan merges the provided fields into the stored plan. A supplied
// meal list has totalCalories re-derived from it, but a caller-supplied
// totalCalories is taken verbatim and wins over the derived value; this is
// the bulk-recalculation escape hatch. Progress is recomputed whenever
// meals, totalCalories or targetCalories changed.
func (s *MealPlanService) UpdateMealPlan(ctx context.Context, userID, planID uint, upd MealPlanUpdate) (*PlanView, error) {
	schedule, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if upd.Version != schedule.Version {
		return nil, ErrVersionConflict
	}

	plan, err := decodePlan(schedule)
	if err != nil {
		return nil, err
	}

	caloriesTouched := false
	dirty := false

	if upd.Meals != nil {
		plan.Meals = *upd.Meals
		plan.TotalCalories = sumCalories(plan.Meals)
		caloriesTouched = true
		dirty = true
	}
	if upd.TotalCalories != nil {
		plan.TotalCalories = *upd.TotalCalories
		caloriesTouched = true
		dirty = true
	}
	if upd.TargetCalories != nil {
		plan.TargetCalories = *upd.TargetCalories
		caloriesTouched = true
		dirty = true
	}
	if upd.HealthScore != nil {
		plan.HealthScore = upd.HealthScore
		dirty = true
	}

	if caloriesTouched {
		plan.Progress = progressOf(plan.TotalCalories, plan.TargetCalories)
	}

	if !dirty {
		// Empty update: nothing to write, nothing changes.
		return viewOf(schedule)
	}
	return s.savePlan(ctx, schedule, plan)
}

// UpdateMeal replaces the matched fields of one meal in place, then always
// re-derives totalCalories from the full meal list and progress from the
// plan's existing target.
func (s *MealPlanService) UpdateMeal(ctx context.Context, userID, planID uint, mealID string, upd MealUpdate) (*PlanView, error) {
	schedule, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if upd.Version != schedule.Version {
		return nil, ErrVersionConflict
	}

	plan, err := decodePlan(schedule)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range plan.Meals {
		if plan.Meals[i].ID == mealID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrMealNotFound
	}

	meal := &plan.Meals[idx]
	if upd.Name != nil {
		meal.Name = *upd.Name
	}
	if upd.Calories != nil {
		meal.Calories = *upd.Calories
	}
	if upd.Time != nil {
		meal.Time = *upd.Time
	}
	if upd.Type != nil {
		meal.Type = *upd.Type
	}
	if upd.Nutrients != nil {
		meal.Nutrients = *upd.Nutrients
	}

	reconcile(plan)
	return s.savePlan(ctx, schedule, plan)
}

// DeleteMealPlan is an ownership-checked hard delete of the plan row only.
func (s *MealPlanService) DeleteMealPlan(ctx context.Context, userID, planID uint) error {
	res := s.db.WithContext(ctx).
		Unscoped().
		Where("id = ? AND user_id = ?", planID, userID).
		Delete(&models.MealSchedule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (s *MealPlanService) ownedPlan(ctx context.Context, userID, planID uint) (*models.MealSchedule, error) {
	var schedule models.MealSchedule
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", planID, userID).
		First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// savePlan writes the plan back guarded by the version the caller presented;
// losing the race to another writer surfaces as a conflict, not a lost write.
func (s *MealPlanService) savePlan(ctx context.Context, schedule *models.MealSchedule, plan *models.MealPlan) (*PlanView, error) {
	raw, err := json.Marshal(plan)
	if err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).
		Model(&models.MealSchedule{}).
		Where("id = ? AND version = ?", schedule.ID, schedule.Version).
		Updates(map[string]any{
			"meal_plan": datatypes.JSON(raw),
			"version":   schedule.Version + 1,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrVersionConflict
	}

	schedule.MealPlan = datatypes.JSON(raw)
	schedule.Version++
	return viewOf(schedule)
}

// reconcile re-derives the invariant fields:
// totalCalories == sum(meal.calories) and progress == 100*total/target.
func reconcile(plan *models.MealPlan) {
	plan.TotalCalories = sumCalories(plan.Meals)
	plan.Progress = progressOf(plan.TotalCalories, plan.TargetCalories)
}

func sumCalories(meals []models.Meal) int {
	total := 0
	for _, m := range meals {
		total += m.Calories
	}
	return total
}

func progressOf(total, target int) float64 {
	if target <= 0 {
		return 0
	}
	return 100 * float64(total) / float64(target)
}

func mealsFromSections(sections models.MealPlanSections) []models.Meal {
	type slot struct {
		name, typ, at string
	}
	slots := []slot{
		{sections.Breakfast, "breakfast", "08:00"},
		{sections.Lunch, "lunch", "13:00"},
		{sections.Dinner, "dinner", "19:00"},
	}

	meals := make([]models.Meal, 0, len(slots))
	for _, sl := range slots {
		if sl.name == "" {
			continue
		}
		meals = append(meals, models.Meal{
			ID:   uuid.NewString(),
			Name: sl.name,
			Type: sl.typ,
			Time: sl.at,
		})
	}
	return meals
}

func decodePlan(schedule *models.MealSchedule) (*models.MealPlan, error) {
	var plan models.MealPlan
	if err := json.Unmarshal(schedule.MealPlan, &plan); err != nil {
		return nil, fmt.Errorf("corrupt meal plan document: %w", err)
	}
	return &plan, nil
}

func viewOf(schedule *models.MealSchedule) (*PlanView, error) {
	plan, err := decodePlan(schedule)
	if err != nil {
		return nil, err
	}
	goals := []string{}
	if schedule.HealthGoals != "" {
		goals = strings.Split(schedule.HealthGoals, ",")
	}
	return &PlanView{
		ID:           schedule.ID,
		MealTime:     schedule.MealTime,
		HealthGoals:  goals,
		Plan:         *plan,
		ReminderSent: schedule.ReminderSent,
		Version:      schedule.Version,
		CreatedAt:    schedule.CreatedAt,
	}, nil
}
