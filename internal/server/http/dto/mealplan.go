package dto

import "github.com/conzooming/mealsub/internal/domain/model"

// MealPlansResponse lists the user's plans; Onboarding signals the empty
// state that routes new users into preference creation.
type MealPlansResponse struct {
	Plans      []model.MealPlan `json:"plans"`
	Onboarding bool             `json:"onboarding"`
}

// HealthProfileRequest carries the nutritional preference payload.
type HealthProfileRequest struct {
	Allergies          []string `json:"allergies"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	HealthGoals        []string `json:"healthGoals"`
}

// ProfileIncompleteResponse tells the client where to resume after
// completing the nutritional profile.
type ProfileIncompleteResponse struct {
	Error    string `json:"error"`
	ReturnTo string `json:"returnTo"`
}
