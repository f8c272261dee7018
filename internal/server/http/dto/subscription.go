package dto

import (
	"time"

	"github.com/conzooming/mealsub/internal/domain/model"
)

// StartDraftRequest begins a subscription draft from a chosen meal plan.
type StartDraftRequest struct {
	MealPlanID string `json:"mealPlanId" binding:"required"`
}

// FrequencyRequest sets the delivery days and optional start date.
type FrequencyRequest struct {
	Frequency string     `json:"frequency"`
	Days      []string   `json:"days" binding:"required"`
	StartDate *time.Time `json:"startDate"`
}

// RemoveMealRequest drops one meal from a draft day.
type RemoveMealRequest struct {
	Day   string `json:"day" binding:"required"`
	Index int    `json:"index"`
}

// DraftResponse is the draft envelope returned to the client.
type DraftResponse struct {
	MealPlan          model.MealPlan          `json:"mealPlan"`
	DeliveryFrequency model.DeliveryFrequency `json:"deliveryFrequency"`
	StartDate         time.Time               `json:"startDate"`
}

// NewDraftResponse maps a domain draft into its response shape.
func NewDraftResponse(draft *model.SubscriptionDraft) DraftResponse {
	return DraftResponse{
		MealPlan:          draft.MealPlan,
		DeliveryFrequency: draft.DeliveryFrequency,
		StartDate:         draft.StartDate,
	}
}
