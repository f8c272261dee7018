package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	"github.com/conzooming/mealsub/internal/domain/repository"
)

// Flat checkout fees in naira.
const (
	deliveryFeeNGN = 1500
	serviceFeeNGN  = 300
)

// subscriptionDays is the paid length of a subscription from its start date.
const subscriptionDays = 30

const checkoutCurrency = "NGN"

// CheckoutSummary is everything the review step shows before payment.
type CheckoutSummary struct {
	Draft         *model.SubscriptionDraft
	Subtotal      float64
	DeliveryFee   float64
	ServiceFee    float64
	Total         float64
	WalletBalance float64
	Addresses     []model.Address
}

// CheckoutResult is the outcome of a submitted checkout. Exactly one of the
// two shapes is populated: a settled wallet payment carries the order
// reference, a card payment carries the Paystack redirect URL.
type CheckoutResult struct {
	Settled            bool
	OrderReferenceCode string
	AuthorizationURL   string
}

// CheckoutUseCase drives the review-and-pay step of the subscription flow.
type CheckoutUseCase struct {
	gateway gateway.Client
	drafts  repository.DraftRepository
	tracked repository.TrackedOrderRepository
	logger  *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(g gateway.Client, d repository.DraftRepository, t repository.TrackedOrderRepository, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{gateway: g, drafts: d, tracked: t, logger: logger}
}

// Summary assembles the review page: draft totals plus the wallet balance and
// saved addresses needed to choose a payment method and delivery target.
func (u *CheckoutUseCase) Summary(ctx context.Context, token, userID string) (*CheckoutSummary, error) {
	draft, err := u.drafts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	balance, err := u.gateway.WalletBalance(ctx, token, userID)
	if err != nil {
		return nil, err
	}
	addresses, err := u.gateway.ListAddresses(ctx, token, userID)
	if err != nil {
		return nil, err
	}
	subtotal := Subtotal(&draft.MealPlan, draft.DeliveryFrequency.Days)
	return &CheckoutSummary{
		Draft:         draft,
		Subtotal:      subtotal,
		DeliveryFee:   deliveryFeeNGN,
		ServiceFee:    serviceFeeNGN,
		Total:         subtotal + deliveryFeeNGN + serviceFeeNGN,
		WalletBalance: balance,
		Addresses:     addresses,
	}, nil
}

// Submit performs the combined subscribe-and-pay call. A payment method must
// be chosen before an address, and both before submission. A settled wallet
// payment clears the draft and registers the order for tracking; the card
// path returns the redirect URL and deliberately leaves the draft intact so
// an abandoned external payment resumes where it left off.
func (u *CheckoutUseCase) Submit(ctx context.Context, token, userID, paymentMethodID, address string) (*CheckoutResult, error) {
	method, ok := model.PaymentMethodByID(paymentMethodID)
	if !ok {
		return nil, domainErrors.ErrPaymentMethodRequired
	}
	if strings.TrimSpace(address) == "" {
		return nil, domainErrors.ErrAddressRequired
	}
	draft, err := u.drafts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	subtotal := Subtotal(&draft.MealPlan, draft.DeliveryFrequency.Days)
	total := subtotal + deliveryFeeNGN + serviceFeeNGN
	if total <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	req := gateway.SubscribeRequest{
		CustomerID:      userID,
		MealPlanID:      draft.MealPlan.ID,
		DeliveryDays:    draft.DeliveryFrequency.Days,
		DeliveryAddress: address,
		StartDate:       draft.StartDate,
		EndDate:         draft.StartDate.AddDate(0, 0, subscriptionDays),
		Currency:        checkoutCurrency,
		TotalAmount:     total,
		PaymentMode:     method.Mode(),
		Reference:       uuid.NewString(),
	}
	result, err := u.gateway.SubscribeAndPay(ctx, token, req)
	if err != nil {
		return nil, classifyPaymentError(err)
	}

	if !result.Settled {
		return &CheckoutResult{AuthorizationURL: result.AuthorizationURL}, nil
	}

	// Wallet debits settle synchronously: the draft is spent.
	if err := u.drafts.Delete(ctx, userID); err != nil {
		u.logger.Warn("failed to clear draft after settled payment", "user_id", userID, "error", err)
	}
	if _, _, err := u.tracked.Track(ctx, userID, result.OrderReferenceCode); err != nil {
		u.logger.Warn("failed to register order for tracking", "order_ref", result.OrderReferenceCode, "error", err)
	}
	return &CheckoutResult{Settled: true, OrderReferenceCode: result.OrderReferenceCode}, nil
}

// classifyPaymentError separates the one recoverable-in-place failure, an
// insufficient wallet balance, from everything else. The backend reports it
// only as message text, so matching is on the message.
func classifyPaymentError(err error) error {
	var upstream gateway.UpstreamError
	if !errors.As(err, &upstream) {
		return err
	}
	if strings.Contains(strings.ToLower(upstream.Message), "insufficient") {
		return domainErrors.ErrInsufficientBalance
	}
	return domainErrors.PaymentFailedError{Message: upstream.Message}
}
