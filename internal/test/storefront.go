package test

import (
	"context"
	"time"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	"github.com/conzooming/mealsub/internal/usecase"
)

// MealPlanFacadeStub scripts meal plan operations for handler tests.
type MealPlanFacadeStub struct {
	ListFn        func(ctx context.Context, token, userID string) ([]model.MealPlan, error)
	CurrentFn     func(ctx context.Context, token, userID string) (*model.MealPlan, error)
	ComposeFn     func(ctx context.Context, token, userID string) (*model.MealPlan, error)
	SaveProfileFn func(ctx context.Context, token, userID string, profile model.HealthProfile) (*model.MealPlan, error)
}

func (s MealPlanFacadeStub) ListMealPlans(ctx context.Context, token, userID string) ([]model.MealPlan, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, token, userID)
	}
	return nil, domainErrors.ErrNoMealPlans
}

func (s MealPlanFacadeStub) CurrentMealPlan(ctx context.Context, token, userID string) (*model.MealPlan, error) {
	if s.CurrentFn != nil {
		return s.CurrentFn(ctx, token, userID)
	}
	return &model.MealPlan{ID: "plan-1", UserID: userID}, nil
}

func (s MealPlanFacadeStub) ComposeMealPlan(ctx context.Context, token, userID string) (*model.MealPlan, error) {
	if s.ComposeFn != nil {
		return s.ComposeFn(ctx, token, userID)
	}
	return &model.MealPlan{ID: "plan-1", UserID: userID}, nil
}

func (s MealPlanFacadeStub) SaveHealthProfile(ctx context.Context, token, userID string, profile model.HealthProfile) (*model.MealPlan, error) {
	if s.SaveProfileFn != nil {
		return s.SaveProfileFn(ctx, token, userID, profile)
	}
	return &model.MealPlan{ID: "plan-1", UserID: userID}, nil
}

// SubscriptionFacadeStub scripts draft operations for handler tests.
type SubscriptionFacadeStub struct {
	StartDraftFn  func(ctx context.Context, token, userID, mealPlanID string) (*model.SubscriptionDraft, error)
	DraftFn       func(ctx context.Context, userID string) (*model.SubscriptionDraft, error)
	AbandonFn     func(ctx context.Context, userID string) error
	SetScheduleFn func(ctx context.Context, userID string, freq model.DeliveryFrequency, start *time.Time) (*model.SubscriptionDraft, error)
	RemoveMealFn  func(ctx context.Context, userID string, day model.Weekday, index int) (*model.SubscriptionDraft, error)
}

func (s SubscriptionFacadeStub) StartDraft(ctx context.Context, token, userID, mealPlanID string) (*model.SubscriptionDraft, error) {
	if s.StartDraftFn != nil {
		return s.StartDraftFn(ctx, token, userID, mealPlanID)
	}
	return &model.SubscriptionDraft{MealPlan: model.MealPlan{ID: mealPlanID}}, nil
}

func (s SubscriptionFacadeStub) Draft(ctx context.Context, userID string) (*model.SubscriptionDraft, error) {
	if s.DraftFn != nil {
		return s.DraftFn(ctx, userID)
	}
	return nil, domainErrors.ErrNotFound
}

func (s SubscriptionFacadeStub) AbandonDraft(ctx context.Context, userID string) error {
	if s.AbandonFn != nil {
		return s.AbandonFn(ctx, userID)
	}
	return nil
}

func (s SubscriptionFacadeStub) SetDeliverySchedule(ctx context.Context, userID string, freq model.DeliveryFrequency, start *time.Time) (*model.SubscriptionDraft, error) {
	if s.SetScheduleFn != nil {
		return s.SetScheduleFn(ctx, userID, freq, start)
	}
	return &model.SubscriptionDraft{DeliveryFrequency: freq}, nil
}

func (s SubscriptionFacadeStub) RemoveMeal(ctx context.Context, userID string, day model.Weekday, index int) (*model.SubscriptionDraft, error) {
	if s.RemoveMealFn != nil {
		return s.RemoveMealFn(ctx, userID, day, index)
	}
	return &model.SubscriptionDraft{}, nil
}

// CheckoutFacadeStub scripts checkout operations for handler tests.
type CheckoutFacadeStub struct {
	SummaryFn func(ctx context.Context, token, userID string) (*usecase.CheckoutSummary, error)
	SubmitFn  func(ctx context.Context, token, userID, paymentMethodID, address string) (*usecase.CheckoutResult, error)
}

func (s CheckoutFacadeStub) CheckoutSummary(ctx context.Context, token, userID string) (*usecase.CheckoutSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, token, userID)
	}
	return &usecase.CheckoutSummary{Draft: &model.SubscriptionDraft{}}, nil
}

func (s CheckoutFacadeStub) SubmitCheckout(ctx context.Context, token, userID, paymentMethodID, address string) (*usecase.CheckoutResult, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, token, userID, paymentMethodID, address)
	}
	return &usecase.CheckoutResult{Settled: true, OrderReferenceCode: "ORD-1"}, nil
}

// OrderTrackingFacadeStub scripts tracking operations for handler tests.
type OrderTrackingFacadeStub struct {
	TrackFn    func(ctx context.Context, userID, orderRef string) (*model.TrackedOrder, error)
	TimelineFn func(ctx context.Context, token, userID, orderRef string) (*usecase.Timeline, error)
}

func (s OrderTrackingFacadeStub) TrackOrder(ctx context.Context, userID, orderRef string) (*model.TrackedOrder, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, userID, orderRef)
	}
	return &model.TrackedOrder{ID: 1, UserID: userID, OrderRef: orderRef, Status: model.StatusPartnerAccepted}, nil
}

func (s OrderTrackingFacadeStub) OrderTimeline(ctx context.Context, token, userID, orderRef string) (*usecase.Timeline, error) {
	if s.TimelineFn != nil {
		return s.TimelineFn(ctx, token, userID, orderRef)
	}
	return &usecase.Timeline{Order: &model.Order{OrderReferenceCode: orderRef}, Known: true}, nil
}

// ProxyFacadeStub scripts pass-through forwarding for handler tests.
type ProxyFacadeStub struct {
	ForwardFn func(ctx context.Context, req gateway.ForwardRequest) (*gateway.ForwardResponse, error)
}

func (s ProxyFacadeStub) Forward(ctx context.Context, req gateway.ForwardRequest) (*gateway.ForwardResponse, error) {
	if s.ForwardFn != nil {
		return s.ForwardFn(ctx, req)
	}
	return &gateway.ForwardResponse{StatusCode: 200, ContentType: "application/json", Body: []byte(`{}`)}, nil
}

// StorefrontFacadeStub aggregates the full handler surface.
type StorefrontFacadeStub struct {
	MealPlanFacadeStub
	SubscriptionFacadeStub
	CheckoutFacadeStub
	OrderTrackingFacadeStub
	ProxyFacadeStub

	ParseTokenFn func(token string) (string, error)
}

// ParseToken delegates to the configured function; by default any non-empty
// token maps to a fixed test user.
func (s StorefrontFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return "user-1", nil
}
