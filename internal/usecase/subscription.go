package usecase

import (
	"context"
	"time"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	"github.com/conzooming/mealsub/internal/domain/repository"
)

// SubscriptionUseCase manages the in-progress subscription draft.
type SubscriptionUseCase struct {
	gateway gateway.Client
	drafts  repository.DraftRepository
}

// NewSubscriptionUseCase constructs SubscriptionUseCase.
func NewSubscriptionUseCase(g gateway.Client, d repository.DraftRepository) *SubscriptionUseCase {
	return &SubscriptionUseCase{gateway: g, drafts: d}
}

// StartDraft begins a new draft from a meal plan, replacing any existing one.
// The draft starts with every plan day selected and deliveries from tomorrow.
func (u *SubscriptionUseCase) StartDraft(ctx context.Context, token, userID, mealPlanID string) (*model.SubscriptionDraft, error) {
	plan, err := u.gateway.GetMealPlan(ctx, token, mealPlanID)
	if err != nil {
		return nil, err
	}
	draft := NewDraftFromPlan(*plan)
	if err := u.drafts.Save(ctx, userID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// NewDraftFromPlan seeds a draft with every delivery day the plan carries and
// deliveries starting tomorrow.
func NewDraftFromPlan(plan model.MealPlan) *model.SubscriptionDraft {
	days := make([]model.Weekday, 0, len(plan.PlanDetails))
	for _, d := range plan.PlanDetails {
		days = append(days, d.DayOfWeek)
	}
	return &model.SubscriptionDraft{
		MealPlan: plan,
		DeliveryFrequency: model.DeliveryFrequency{
			Frequency: "weekly",
			Days:      days,
		},
		StartDate: time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour),
	}
}

// Draft returns the user's current draft.
func (u *SubscriptionUseCase) Draft(ctx context.Context, userID string) (*model.SubscriptionDraft, error) {
	return u.drafts.Get(ctx, userID)
}

// Abandon discards the user's draft.
func (u *SubscriptionUseCase) Abandon(ctx context.Context, userID string) error {
	return u.drafts.Delete(ctx, userID)
}

// SetFrequency updates the delivery days of the draft. Days are validated and
// normalized to canonical week order; at least one selected day must exist in
// the draft plan.
func (u *SubscriptionUseCase) SetFrequency(ctx context.Context, userID string, freq model.DeliveryFrequency) (*model.SubscriptionDraft, error) {
	draft, err := u.drafts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizeDays(freq.Days)
	if err != nil {
		return nil, err
	}
	if _, err := FilterByDeliveryDays(&draft.MealPlan, normalized); err != nil {
		return nil, err
	}
	draft.DeliveryFrequency = model.DeliveryFrequency{Frequency: freq.Frequency, Days: normalized}
	if err := u.drafts.Save(ctx, userID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SetStartDate updates the first delivery date of the draft.
func (u *SubscriptionUseCase) SetStartDate(ctx context.Context, userID string, start time.Time) (*model.SubscriptionDraft, error) {
	draft, err := u.drafts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	draft.StartDate = start
	if err := u.drafts.Save(ctx, userID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// RemoveMeal drops a single meal from the draft plan. The load-modify-save is
// keyed on the day and position the client saw; an index past the end of the
// day simply returns the draft unchanged rather than failing the review page.
func (u *SubscriptionUseCase) RemoveMeal(ctx context.Context, userID string, day model.Weekday, index int) (*model.SubscriptionDraft, error) {
	draft, err := u.drafts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	dayPlan, ok := draft.MealPlan.Day(day)
	if !ok {
		return nil, domainErrors.ErrUnknownDay
	}
	if index < 0 || index >= len(dayPlan.Meals) {
		return draft, nil
	}
	dayPlan.Meals = append(dayPlan.Meals[:index], dayPlan.Meals[index+1:]...)
	if err := u.drafts.Save(ctx, userID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// FilterByDeliveryDays returns a copy of the plan restricted to the selected
// weekdays, in canonical Monday-first order regardless of selection order.
func FilterByDeliveryDays(plan *model.MealPlan, days []model.Weekday) (*model.MealPlan, error) {
	selected := make(map[model.Weekday]bool, len(days))
	for _, d := range days {
		if d.Index() < 0 {
			return nil, domainErrors.ErrUnknownDay
		}
		selected[d] = true
	}
	filtered := *plan
	filtered.PlanDetails = nil
	for _, day := range model.WeekOrder {
		if !selected[day] {
			continue
		}
		if dp, ok := plan.Day(day); ok {
			filtered.PlanDetails = append(filtered.PlanDetails, *dp)
		}
	}
	if len(filtered.PlanDetails) == 0 {
		return nil, domainErrors.ErrNoMatchingDays
	}
	return &filtered, nil
}

// Subtotal folds the per-meal totals of the plan days matching the selected
// delivery days.
func Subtotal(plan *model.MealPlan, days []model.Weekday) float64 {
	selected := make(map[model.Weekday]bool, len(days))
	for _, d := range days {
		selected[d] = true
	}
	var sum float64
	for _, dp := range plan.PlanDetails {
		if !selected[dp.DayOfWeek] {
			continue
		}
		for _, meal := range dp.Meals {
			sum += meal.TotalAmount
		}
	}
	return sum
}

func normalizeDays(days []model.Weekday) ([]model.Weekday, error) {
	seen := make(map[model.Weekday]bool, len(days))
	for _, d := range days {
		parsed, ok := model.ParseWeekday(string(d))
		if !ok {
			return nil, domainErrors.ErrUnknownDay
		}
		seen[parsed] = true
	}
	if len(seen) == 0 {
		return nil, domainErrors.ErrNoMatchingDays
	}
	normalized := make([]model.Weekday, 0, len(seen))
	for _, d := range model.WeekOrder {
		if seen[d] {
			normalized = append(normalized, d)
		}
	}
	return normalized, nil
}
