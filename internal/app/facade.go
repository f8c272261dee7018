package app

import (
	"context"
	"time"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
	"github.com/conzooming/mealsub/internal/domain/model"
	pkgAuth "github.com/conzooming/mealsub/internal/pkg/auth"
	"github.com/conzooming/mealsub/internal/usecase"
)

// StorefrontFacade aggregates the use cases behind a single surface consumed
// by the HTTP handlers and the tracking poller.
type StorefrontFacade struct {
	mealPlans     *usecase.MealPlanUseCase
	subscriptions *usecase.SubscriptionUseCase
	checkout      *usecase.CheckoutUseCase
	tracking      *usecase.TrackingUseCase
	gateway       gateway.Client
	tokens        pkgAuth.Strategy
}

// NewStorefrontFacade constructs StorefrontFacade.
func NewStorefrontFacade(
	mealPlans *usecase.MealPlanUseCase,
	subscriptions *usecase.SubscriptionUseCase,
	checkout *usecase.CheckoutUseCase,
	tracking *usecase.TrackingUseCase,
	gw gateway.Client,
	tokens pkgAuth.Strategy,
) *StorefrontFacade {
	return &StorefrontFacade{
		mealPlans:     mealPlans,
		subscriptions: subscriptions,
		checkout:      checkout,
		tracking:      tracking,
		gateway:       gw,
		tokens:        tokens,
	}
}

func (f *StorefrontFacade) ParseToken(token string) (string, error) {
	return f.tokens.ParseToken(token)
}

func (f *StorefrontFacade) ListMealPlans(ctx context.Context, token, userID string) ([]model.MealPlan, error) {
	return f.mealPlans.List(ctx, token, userID)
}

func (f *StorefrontFacade) CurrentMealPlan(ctx context.Context, token, userID string) (*model.MealPlan, error) {
	return f.mealPlans.Current(ctx, token, userID)
}

func (f *StorefrontFacade) ComposeMealPlan(ctx context.Context, token, userID string) (*model.MealPlan, error) {
	return f.mealPlans.Compose(ctx, token, userID)
}

func (f *StorefrontFacade) SaveHealthProfile(ctx context.Context, token, userID string, profile model.HealthProfile) (*model.MealPlan, error) {
	return f.mealPlans.SavePreferences(ctx, token, userID, profile)
}

func (f *StorefrontFacade) StartDraft(ctx context.Context, token, userID, mealPlanID string) (*model.SubscriptionDraft, error) {
	return f.subscriptions.StartDraft(ctx, token, userID, mealPlanID)
}

func (f *StorefrontFacade) Draft(ctx context.Context, userID string) (*model.SubscriptionDraft, error) {
	return f.subscriptions.Draft(ctx, userID)
}

func (f *StorefrontFacade) AbandonDraft(ctx context.Context, userID string) error {
	return f.subscriptions.Abandon(ctx, userID)
}

func (f *StorefrontFacade) SetDeliverySchedule(ctx context.Context, userID string, freq model.DeliveryFrequency, start *time.Time) (*model.SubscriptionDraft, error) {
	draft, err := f.subscriptions.SetFrequency(ctx, userID, freq)
	if err != nil {
		return nil, err
	}
	if start != nil {
		return f.subscriptions.SetStartDate(ctx, userID, *start)
	}
	return draft, nil
}

func (f *StorefrontFacade) RemoveMeal(ctx context.Context, userID string, day model.Weekday, index int) (*model.SubscriptionDraft, error) {
	return f.subscriptions.RemoveMeal(ctx, userID, day, index)
}

func (f *StorefrontFacade) CheckoutSummary(ctx context.Context, token, userID string) (*usecase.CheckoutSummary, error) {
	return f.checkout.Summary(ctx, token, userID)
}

func (f *StorefrontFacade) SubmitCheckout(ctx context.Context, token, userID, paymentMethodID, address string) (*usecase.CheckoutResult, error) {
	return f.checkout.Submit(ctx, token, userID, paymentMethodID, address)
}

func (f *StorefrontFacade) TrackOrder(ctx context.Context, userID, orderRef string) (*model.TrackedOrder, error) {
	return f.tracking.Track(ctx, userID, orderRef)
}

func (f *StorefrontFacade) OrderTimeline(ctx context.Context, token, userID, orderRef string) (*usecase.Timeline, error) {
	return f.tracking.Timeline(ctx, token, userID, orderRef)
}

func (f *StorefrontFacade) Forward(ctx context.Context, req gateway.ForwardRequest) (*gateway.ForwardResponse, error) {
	return f.gateway.Forward(ctx, req)
}

func (f *StorefrontFacade) OrdersForPolling(ctx context.Context, limit int) ([]model.TrackedOrder, error) {
	return f.tracking.OrdersForPolling(ctx, limit)
}

func (f *StorefrontFacade) FetchOrder(ctx context.Context, orderRef string) (*model.Order, error) {
	return f.tracking.FetchOrder(ctx, orderRef)
}

func (f *StorefrontFacade) UpdateTrackedStatus(ctx context.Context, id int64, status string, step int, deliveredAt *time.Time) error {
	return f.tracking.UpdateStatus(ctx, id, status, step, deliveredAt)
}
