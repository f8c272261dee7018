package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	testhelpers "github.com/conzooming/mealsub/internal/test"
	. "github.com/conzooming/mealsub/internal/usecase"
)

func TestTrackingTimelineKnownStatus(t *testing.T) {
	tracked := &testhelpers.TrackedOrderRepositoryStub{
		GetByRefFn: func(ctx context.Context, ref string) (*model.TrackedOrder, error) {
			return &model.TrackedOrder{ID: 5, UserID: "user-1", OrderRef: ref, Status: model.StatusPreparing, Step: 1}, nil
		},
	}
	uc := NewTrackingUseCase(&testhelpers.GatewayClientStub{
		GetOrderFn: func(ctx context.Context, token, ref string) (*model.Order, error) {
			return &model.Order{OrderReferenceCode: ref, OrderNavigationStatus: model.StatusRiderPickedUp}, nil
		},
	}, tracked)

	timeline, err := uc.Timeline(context.Background(), "tok", "user-1", "ORD-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timeline.Step != model.StepRiderPickedUp || !timeline.Known {
		t.Fatalf("unexpected timeline: %+v", timeline)
	}
	if timeline.Delivered || timeline.PromptRating {
		t.Fatalf("in-flight order must not be delivered: %+v", timeline)
	}
}

func TestTrackingTimelineUnknownStatus(t *testing.T) {
	tracked := &testhelpers.TrackedOrderRepositoryStub{
		GetByRefFn: func(ctx context.Context, ref string) (*model.TrackedOrder, error) {
			return &model.TrackedOrder{ID: 5, UserID: "user-1", OrderRef: ref}, nil
		},
	}
	uc := NewTrackingUseCase(&testhelpers.GatewayClientStub{
		GetOrderFn: func(ctx context.Context, token, ref string) (*model.Order, error) {
			return &model.Order{OrderReferenceCode: ref, OrderNavigationStatus: "teleported"}, nil
		},
	}, tracked)

	timeline, err := uc.Timeline(context.Background(), "tok", "user-1", "ORD-5")
	if err != nil {
		t.Fatalf("an unrecognized status must not fail the page: %v", err)
	}
	if timeline.Step != model.StepPartnerAccepted || timeline.Known {
		t.Fatalf("unknown status should render at the first step unflagged: %+v", timeline)
	}
}

func TestTrackingTimelineOwnership(t *testing.T) {
	tracked := &testhelpers.TrackedOrderRepositoryStub{
		GetByRefFn: func(ctx context.Context, ref string) (*model.TrackedOrder, error) {
			return &model.TrackedOrder{ID: 5, UserID: "someone-else", OrderRef: ref}, nil
		},
	}
	uc := NewTrackingUseCase(&testhelpers.GatewayClientStub{}, tracked)

	if _, err := uc.Timeline(context.Background(), "tok", "user-1", "ORD-5"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign order, got %v", err)
	}
}

func TestTrackingRatingPromptAfterDelay(t *testing.T) {
	deliveredAt := time.Now().Add(-5 * time.Second)
	tracked := &testhelpers.TrackedOrderRepositoryStub{
		GetByRefFn: func(ctx context.Context, ref string) (*model.TrackedOrder, error) {
			return &model.TrackedOrder{ID: 5, UserID: "user-1", OrderRef: ref, Status: model.StatusDelivered, Step: 6, DeliveredAt: &deliveredAt}, nil
		},
	}
	uc := NewTrackingUseCase(&testhelpers.GatewayClientStub{
		GetOrderFn: func(ctx context.Context, token, ref string) (*model.Order, error) {
			return &model.Order{OrderReferenceCode: ref, OrderNavigationStatus: model.StatusDelivered}, nil
		},
	}, tracked)

	timeline, err := uc.Timeline(context.Background(), "tok", "user-1", "ORD-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !timeline.Delivered || !timeline.PromptRating {
		t.Fatalf("expected rating prompt after delay: %+v", timeline)
	}
	if len(tracked.Prompted) != 1 || tracked.Prompted[0] != 5 {
		t.Fatalf("prompt not marked: %+v", tracked.Prompted)
	}
}

func TestTrackingRatingPromptWaitsForDelay(t *testing.T) {
	deliveredAt := time.Now()
	tracked := &testhelpers.TrackedOrderRepositoryStub{
		GetByRefFn: func(ctx context.Context, ref string) (*model.TrackedOrder, error) {
			return &model.TrackedOrder{ID: 5, UserID: "user-1", OrderRef: ref, Status: model.StatusDelivered, Step: 6, DeliveredAt: &deliveredAt}, nil
		},
	}
	uc := NewTrackingUseCase(&testhelpers.GatewayClientStub{
		GetOrderFn: func(ctx context.Context, token, ref string) (*model.Order, error) {
			return &model.Order{OrderReferenceCode: ref, OrderNavigationStatus: model.StatusDelivered}, nil
		},
	}, tracked)

	timeline, err := uc.Timeline(context.Background(), "tok", "user-1", "ORD-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timeline.PromptRating {
		t.Fatal("rating prompt fired before the post-delivery delay")
	}
	if len(tracked.Prompted) != 0 {
		t.Fatal("prompt must not be marked before the delay elapses")
	}
}

func TestTrackingRatingPromptOnlyOnce(t *testing.T) {
	deliveredAt := time.Now().Add(-time.Minute)
	tracked := &testhelpers.TrackedOrderRepositoryStub{
		GetByRefFn: func(ctx context.Context, ref string) (*model.TrackedOrder, error) {
			return &model.TrackedOrder{ID: 5, UserID: "user-1", OrderRef: ref, Status: model.StatusDelivered, Step: 6, DeliveredAt: &deliveredAt, RatingPrompted: true}, nil
		},
	}
	uc := NewTrackingUseCase(&testhelpers.GatewayClientStub{
		GetOrderFn: func(ctx context.Context, token, ref string) (*model.Order, error) {
			return &model.Order{OrderReferenceCode: ref, OrderNavigationStatus: model.StatusDelivered}, nil
		},
	}, tracked)

	timeline, err := uc.Timeline(context.Background(), "tok", "user-1", "ORD-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timeline.PromptRating {
		t.Fatal("rating prompt must fire exactly once")
	}
}

func TestTrackingTimelineRecordsDeliveryTime(t *testing.T) {
	tracked := &testhelpers.TrackedOrderRepositoryStub{
		GetByRefFn: func(ctx context.Context, ref string) (*model.TrackedOrder, error) {
			// Poller has not caught the delivery yet.
			return &model.TrackedOrder{ID: 5, UserID: "user-1", OrderRef: ref, Status: model.StatusRiderAtCustomer, Step: 5}, nil
		},
	}
	uc := NewTrackingUseCase(&testhelpers.GatewayClientStub{
		GetOrderFn: func(ctx context.Context, token, ref string) (*model.Order, error) {
			return &model.Order{OrderReferenceCode: ref, OrderNavigationStatus: model.StatusDelivered}, nil
		},
	}, tracked)

	timeline, err := uc.Timeline(context.Background(), "tok", "user-1", "ORD-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !timeline.Delivered {
		t.Fatalf("expected delivered timeline: %+v", timeline)
	}
	if len(tracked.UpdateCalls) != 1 || tracked.UpdateCalls[0].Status != model.StatusDelivered || tracked.UpdateCalls[0].DeliveredAt == nil {
		t.Fatalf("delivery time not recorded: %+v", tracked.UpdateCalls)
	}
	if timeline.PromptRating {
		t.Fatal("prompt must wait for the post-delivery delay on first sight")
	}
}

func TestTrackingTrackRegistersOrder(t *testing.T) {
	tracked := &testhelpers.TrackedOrderRepositoryStub{}
	uc := NewTrackingUseCase(&testhelpers.GatewayClientStub{}, tracked)

	order, err := uc.Track(context.Background(), "user-1", "ORD-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.OrderRef != "ORD-9" || order.Status != model.StatusPartnerAccepted {
		t.Fatalf("unexpected tracked order: %+v", order)
	}
}
