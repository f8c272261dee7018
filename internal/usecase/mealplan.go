package usecase

import (
	"context"
	"errors"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	"github.com/conzooming/mealsub/internal/domain/repository"
)

// mealPlanReturnPath is where the flow resumes after preference creation.
const mealPlanReturnPath = "/dashboard/food-delivery/meal-plans"

// MealPlanUseCase resolves the meal plan a user composes a subscription from.
type MealPlanUseCase struct {
	gateway gateway.Client
	drafts  repository.DraftRepository
}

// NewMealPlanUseCase constructs MealPlanUseCase.
func NewMealPlanUseCase(g gateway.Client, d repository.DraftRepository) *MealPlanUseCase {
	return &MealPlanUseCase{gateway: g, drafts: d}
}

// Current returns the user's newest meal plan, generating one when none exist
// yet. Generation requires a complete nutritional profile; without one the
// flow is redirected to preference creation via ProfileIncompleteError.
func (u *MealPlanUseCase) Current(ctx context.Context, token, userID string) (*model.MealPlan, error) {
	plans, err := u.gateway.ListMealPlans(ctx, token, userID)
	if err != nil && !errors.Is(err, domainErrors.ErrNoMealPlans) {
		return nil, err
	}
	if len(plans) > 0 {
		newest := plans[0]
		for _, p := range plans[1:] {
			if p.CreatedAt.After(newest.CreatedAt) {
				newest = p
			}
		}
		return &newest, nil
	}
	return u.Compose(ctx, token, userID)
}

// Compose generates a fresh meal plan behind the nutritional profile gate.
func (u *MealPlanUseCase) Compose(ctx context.Context, token, userID string) (*model.MealPlan, error) {
	profile, err := u.gateway.GetHealthProfile(ctx, token, userID)
	if err != nil && !errors.Is(err, domainErrors.ErrNoHealthProfile) {
		return nil, err
	}
	if !profile.Complete() {
		return nil, domainErrors.ProfileIncompleteError{ReturnTo: mealPlanReturnPath}
	}
	return u.createAndSeed(ctx, token, userID)
}

// createAndSeed generates a plan upstream and seeds the subscription draft
// from it, so the user lands on a configurable subscription right away. A
// failed generation leaves any existing draft untouched.
func (u *MealPlanUseCase) createAndSeed(ctx context.Context, token, userID string) (*model.MealPlan, error) {
	plan, err := u.gateway.CreateMealPlan(ctx, token, gateway.CreateMealPlanRequest{
		UserID:                         userID,
		ConsiderNutritionalPreferences: true,
	})
	if err != nil {
		return nil, err
	}
	if err := u.drafts.Save(ctx, userID, NewDraftFromPlan(*plan)); err != nil {
		return nil, err
	}
	return plan, nil
}

// List returns the user's plans without triggering generation. ErrNoMealPlans
// passes through so the handler can render the onboarding empty state.
func (u *MealPlanUseCase) List(ctx context.Context, token, userID string) ([]model.MealPlan, error) {
	return u.gateway.ListMealPlans(ctx, token, userID)
}

// Get loads a single meal plan by id.
func (u *MealPlanUseCase) Get(ctx context.Context, token, mealPlanID string) (*model.MealPlan, error) {
	return u.gateway.GetMealPlan(ctx, token, mealPlanID)
}

// SavePreferences stores the nutritional profile and immediately generates a
// plan from it, so the user lands back on the flow with a plan in hand.
func (u *MealPlanUseCase) SavePreferences(ctx context.Context, token, userID string, profile model.HealthProfile) (*model.MealPlan, error) {
	if !profile.Complete() {
		return nil, domainErrors.ProfileIncompleteError{ReturnTo: mealPlanReturnPath}
	}
	if err := u.gateway.CreateHealthProfile(ctx, token, userID, profile); err != nil {
		return nil, err
	}
	return u.createAndSeed(ctx, token, userID)
}
