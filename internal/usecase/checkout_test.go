package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	testhelpers "github.com/conzooming/mealsub/internal/test"
	. "github.com/conzooming/mealsub/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestCheckoutSubmitRequiresPaymentMethodFirst(t *testing.T) {
	drafts := testhelpers.NewDraftRepositoryStub()
	drafts.Drafts["user-1"] = draftWith(weekPlan(), model.Monday)
	uc := NewCheckoutUseCase(&testhelpers.GatewayClientStub{
		SubscribeAndPayFn: func(context.Context, string, gateway.SubscribeRequest) (*gateway.SubscribeResult, error) {
			t.Fatal("subscribe should not be called without a payment method")
			return nil, nil
		},
	}, drafts, &testhelpers.TrackedOrderRepositoryStub{}, discardLogger())

	// Address present, method missing: the method gate fires first.
	if _, err := uc.Submit(context.Background(), "tok", "user-1", "", "12 Marina Rd"); !errors.Is(err, domainErrors.ErrPaymentMethodRequired) {
		t.Fatalf("expected payment method error, got %v", err)
	}
	if _, err := uc.Submit(context.Background(), "tok", "user-1", "bitcoin", "12 Marina Rd"); !errors.Is(err, domainErrors.ErrPaymentMethodRequired) {
		t.Fatalf("expected payment method error for unknown method, got %v", err)
	}
	if _, err := uc.Submit(context.Background(), "tok", "user-1", model.PaymentMethodWallet.ID, "  "); !errors.Is(err, domainErrors.ErrAddressRequired) {
		t.Fatalf("expected address error, got %v", err)
	}
}

func TestCheckoutSubmitWalletSettlesAndClearsDraft(t *testing.T) {
	drafts := testhelpers.NewDraftRepositoryStub()
	drafts.Drafts["user-1"] = draftWith(weekPlan(), model.Monday, model.Friday)
	tracked := &testhelpers.TrackedOrderRepositoryStub{}
	gw := &testhelpers.GatewayClientStub{
		SubscribeAndPayFn: func(ctx context.Context, token string, req gateway.SubscribeRequest) (*gateway.SubscribeResult, error) {
			return &gateway.SubscribeResult{Settled: true, OrderReferenceCode: "ORD-77"}, nil
		},
	}
	uc := NewCheckoutUseCase(gw, drafts, tracked, discardLogger())

	result, err := uc.Submit(context.Background(), "tok", "user-1", model.PaymentMethodWallet.ID, "12 Marina Rd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Settled || result.OrderReferenceCode != "ORD-77" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, ok := drafts.Drafts["user-1"]; ok {
		t.Fatal("draft should be cleared after a settled payment")
	}
	if len(tracked.Tracked) != 1 || tracked.Tracked[0].OrderRef != "ORD-77" {
		t.Fatalf("order not registered for tracking: %+v", tracked.Tracked)
	}

	req := gw.SubscribeCalls[0]
	if req.PaymentMode != model.PaymentModeWallet {
		t.Fatalf("expected wallet payment mode, got %d", req.PaymentMode)
	}
	if req.Currency != "NGN" {
		t.Fatalf("expected NGN currency, got %q", req.Currency)
	}
	if want := 1200.0 + 2500 + 1800 + 1500 + 300; req.TotalAmount != want {
		t.Fatalf("expected total %.2f, got %.2f", want, req.TotalAmount)
	}
	if got := req.EndDate.Sub(req.StartDate).Hours() / 24; got != 30 {
		t.Fatalf("expected 30 day subscription, got %.0f days", got)
	}
	if req.Reference == "" {
		t.Fatal("expected a generated payment reference")
	}
}

func TestCheckoutSubmitCardKeepsDraft(t *testing.T) {
	drafts := testhelpers.NewDraftRepositoryStub()
	drafts.Drafts["user-1"] = draftWith(weekPlan(), model.Monday)
	tracked := &testhelpers.TrackedOrderRepositoryStub{}
	uc := NewCheckoutUseCase(&testhelpers.GatewayClientStub{
		SubscribeAndPayFn: func(ctx context.Context, token string, req gateway.SubscribeRequest) (*gateway.SubscribeResult, error) {
			if req.PaymentMode != model.PaymentModeCard {
				t.Fatalf("expected card payment mode, got %d", req.PaymentMode)
			}
			return &gateway.SubscribeResult{AuthorizationURL: "https://pay.example/abc"}, nil
		},
	}, drafts, tracked, discardLogger())

	result, err := uc.Submit(context.Background(), "tok", "user-1", model.PaymentMethodCard.ID, "12 Marina Rd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Settled || result.AuthorizationURL != "https://pay.example/abc" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, ok := drafts.Drafts["user-1"]; !ok {
		t.Fatal("card path must leave the draft intact")
	}
	if len(tracked.Tracked) != 0 {
		t.Fatal("card path must not register tracking before settlement")
	}
}

func TestCheckoutSubmitClassifiesInsufficientBalance(t *testing.T) {
	drafts := testhelpers.NewDraftRepositoryStub()
	drafts.Drafts["user-1"] = draftWith(weekPlan(), model.Monday)
	uc := NewCheckoutUseCase(&testhelpers.GatewayClientStub{
		SubscribeAndPayFn: func(context.Context, string, gateway.SubscribeRequest) (*gateway.SubscribeResult, error) {
			return nil, gateway.UpstreamError{StatusCode: 400, Message: "Insufficient wallet balance"}
		},
	}, drafts, &testhelpers.TrackedOrderRepositoryStub{}, discardLogger())

	_, err := uc.Submit(context.Background(), "tok", "user-1", model.PaymentMethodWallet.ID, "12 Marina Rd")
	if !errors.Is(err, domainErrors.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance error, got %v", err)
	}
	if _, ok := drafts.Drafts["user-1"]; !ok {
		t.Fatal("failed payment must leave the draft intact")
	}
}

func TestCheckoutSubmitWrapsOtherPaymentFailures(t *testing.T) {
	drafts := testhelpers.NewDraftRepositoryStub()
	drafts.Drafts["user-1"] = draftWith(weekPlan(), model.Monday)
	uc := NewCheckoutUseCase(&testhelpers.GatewayClientStub{
		SubscribeAndPayFn: func(context.Context, string, gateway.SubscribeRequest) (*gateway.SubscribeResult, error) {
			return nil, gateway.UpstreamError{StatusCode: 502, Message: "Payment provider unavailable"}
		},
	}, drafts, &testhelpers.TrackedOrderRepositoryStub{}, discardLogger())

	_, err := uc.Submit(context.Background(), "tok", "user-1", model.PaymentMethodCard.ID, "12 Marina Rd")
	var failed domainErrors.PaymentFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected payment failed error, got %v", err)
	}
	if failed.Message != "Payment provider unavailable" {
		t.Fatalf("expected verbatim upstream message, got %q", failed.Message)
	}
}

func TestCheckoutSummaryTotals(t *testing.T) {
	drafts := testhelpers.NewDraftRepositoryStub()
	drafts.Drafts["user-1"] = draftWith(weekPlan(), model.Monday, model.Wednesday, model.Friday)
	uc := NewCheckoutUseCase(&testhelpers.GatewayClientStub{
		WalletBalanceFn: func(context.Context, string, string) (float64, error) { return 25000, nil },
		ListAddressesFn: func(context.Context, string, string) ([]model.Address, error) {
			return []model.Address{{ID: "addr-1", FullAddress: "12 Marina Rd, Lagos"}}, nil
		},
	}, drafts, &testhelpers.TrackedOrderRepositoryStub{}, discardLogger())

	summary, err := uc.Summary(context.Background(), "tok", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 1200.0 + 2500 + 3000 + 1800; summary.Subtotal != want {
		t.Fatalf("expected subtotal %.2f, got %.2f", want, summary.Subtotal)
	}
	if summary.Total != summary.Subtotal+summary.DeliveryFee+summary.ServiceFee {
		t.Fatalf("total does not add up: %+v", summary)
	}
	if summary.WalletBalance != 25000 || len(summary.Addresses) != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestCheckoutSummaryWithoutDraft(t *testing.T) {
	uc := NewCheckoutUseCase(&testhelpers.GatewayClientStub{}, testhelpers.NewDraftRepositoryStub(), &testhelpers.TrackedOrderRepositoryStub{}, discardLogger())
	if _, err := uc.Summary(context.Background(), "tok", "user-1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
