package test

import (
	"context"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
)

// GatewayClientStub allows tests to script delivery backend responses.
type GatewayClientStub struct {
	CreateMealPlanFn      func(context.Context, string, gateway.CreateMealPlanRequest) (*model.MealPlan, error)
	ListMealPlansFn       func(context.Context, string, string) ([]model.MealPlan, error)
	GetMealPlanFn         func(context.Context, string, string) (*model.MealPlan, error)
	GetHealthProfileFn    func(context.Context, string, string) (*model.HealthProfile, error)
	CreateHealthProfileFn func(context.Context, string, string, model.HealthProfile) error
	SubscribeAndPayFn     func(context.Context, string, gateway.SubscribeRequest) (*gateway.SubscribeResult, error)
	GetOrderFn            func(context.Context, string, string) (*model.Order, error)
	ListAddressesFn       func(context.Context, string, string) ([]model.Address, error)
	WalletBalanceFn       func(context.Context, string, string) (float64, error)
	ForwardFn             func(context.Context, gateway.ForwardRequest) (*gateway.ForwardResponse, error)

	SubscribeCalls []gateway.SubscribeRequest
}

// CreateMealPlan delegates to the configured function.
func (s *GatewayClientStub) CreateMealPlan(ctx context.Context, token string, req gateway.CreateMealPlanRequest) (*model.MealPlan, error) {
	if s.CreateMealPlanFn != nil {
		return s.CreateMealPlanFn(ctx, token, req)
	}
	return &model.MealPlan{ID: "plan-1", UserID: req.UserID}, nil
}

// ListMealPlans delegates to the configured function.
func (s *GatewayClientStub) ListMealPlans(ctx context.Context, token, userID string) ([]model.MealPlan, error) {
	if s.ListMealPlansFn != nil {
		return s.ListMealPlansFn(ctx, token, userID)
	}
	return nil, domainErrors.ErrNoMealPlans
}

// GetMealPlan delegates to the configured function.
func (s *GatewayClientStub) GetMealPlan(ctx context.Context, token, mealPlanID string) (*model.MealPlan, error) {
	if s.GetMealPlanFn != nil {
		return s.GetMealPlanFn(ctx, token, mealPlanID)
	}
	return nil, domainErrors.ErrNotFound
}

// GetHealthProfile delegates to the configured function.
func (s *GatewayClientStub) GetHealthProfile(ctx context.Context, token, userID string) (*model.HealthProfile, error) {
	if s.GetHealthProfileFn != nil {
		return s.GetHealthProfileFn(ctx, token, userID)
	}
	return nil, domainErrors.ErrNoHealthProfile
}

// CreateHealthProfile delegates to the configured function.
func (s *GatewayClientStub) CreateHealthProfile(ctx context.Context, token, userID string, profile model.HealthProfile) error {
	if s.CreateHealthProfileFn != nil {
		return s.CreateHealthProfileFn(ctx, token, userID, profile)
	}
	return nil
}

// SubscribeAndPay records the request and delegates to the configured function.
func (s *GatewayClientStub) SubscribeAndPay(ctx context.Context, token string, req gateway.SubscribeRequest) (*gateway.SubscribeResult, error) {
	s.SubscribeCalls = append(s.SubscribeCalls, req)
	if s.SubscribeAndPayFn != nil {
		return s.SubscribeAndPayFn(ctx, token, req)
	}
	return &gateway.SubscribeResult{Settled: true, OrderReferenceCode: "ORD-1"}, nil
}

// GetOrder delegates to the configured function.
func (s *GatewayClientStub) GetOrder(ctx context.Context, token, orderRef string) (*model.Order, error) {
	if s.GetOrderFn != nil {
		return s.GetOrderFn(ctx, token, orderRef)
	}
	return nil, domainErrors.ErrNotFound
}

// ListAddresses delegates to the configured function.
func (s *GatewayClientStub) ListAddresses(ctx context.Context, token, userID string) ([]model.Address, error) {
	if s.ListAddressesFn != nil {
		return s.ListAddressesFn(ctx, token, userID)
	}
	return nil, nil
}

// WalletBalance delegates to the configured function.
func (s *GatewayClientStub) WalletBalance(ctx context.Context, token, userID string) (float64, error) {
	if s.WalletBalanceFn != nil {
		return s.WalletBalanceFn(ctx, token, userID)
	}
	return 0, nil
}

// Forward delegates to the configured function.
func (s *GatewayClientStub) Forward(ctx context.Context, req gateway.ForwardRequest) (*gateway.ForwardResponse, error) {
	if s.ForwardFn != nil {
		return s.ForwardFn(ctx, req)
	}
	return &gateway.ForwardResponse{StatusCode: 200, ContentType: "application/json", Body: []byte(`{}`)}, nil
}
