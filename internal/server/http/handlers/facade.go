package handlers

import (
	"context"
	"time"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
	"github.com/conzooming/mealsub/internal/domain/model"
	"github.com/conzooming/mealsub/internal/usecase"
)

// MealPlanFacade describes meal plan capabilities required by handlers.
type MealPlanFacade interface {
	ListMealPlans(ctx context.Context, token, userID string) ([]model.MealPlan, error)
	CurrentMealPlan(ctx context.Context, token, userID string) (*model.MealPlan, error)
	ComposeMealPlan(ctx context.Context, token, userID string) (*model.MealPlan, error)
	SaveHealthProfile(ctx context.Context, token, userID string, profile model.HealthProfile) (*model.MealPlan, error)
}

// SubscriptionFacade encapsulates draft operations exposed via HTTP.
type SubscriptionFacade interface {
	StartDraft(ctx context.Context, token, userID, mealPlanID string) (*model.SubscriptionDraft, error)
	Draft(ctx context.Context, userID string) (*model.SubscriptionDraft, error)
	AbandonDraft(ctx context.Context, userID string) error
	SetDeliverySchedule(ctx context.Context, userID string, freq model.DeliveryFrequency, start *time.Time) (*model.SubscriptionDraft, error)
	RemoveMeal(ctx context.Context, userID string, day model.Weekday, index int) (*model.SubscriptionDraft, error)
}

// CheckoutFacade provides the review-and-pay operations.
type CheckoutFacade interface {
	CheckoutSummary(ctx context.Context, token, userID string) (*usecase.CheckoutSummary, error)
	SubmitCheckout(ctx context.Context, token, userID, paymentMethodID, address string) (*usecase.CheckoutResult, error)
}

// TrackingFacade provides order tracking operations.
type TrackingFacade interface {
	TrackOrder(ctx context.Context, userID, orderRef string) (*model.TrackedOrder, error)
	OrderTimeline(ctx context.Context, token, userID, orderRef string) (*usecase.Timeline, error)
}

// ProxyFacade forwards requests verbatim to the delivery backend.
type ProxyFacade interface {
	Forward(ctx context.Context, req gateway.ForwardRequest) (*gateway.ForwardResponse, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	MealPlanFacade
	SubscriptionFacade
	CheckoutFacade
	TrackingFacade
	ProxyFacade
	ParseToken(token string) (string, error)
}
