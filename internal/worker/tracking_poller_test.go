package worker

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
	"github.com/conzooming/mealsub/internal/domain/model"
	testhelpers "github.com/conzooming/mealsub/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewTrackingPollerDefaults(t *testing.T) {
	poller := NewTrackingPoller(&testhelpers.WorkerFacadeStub{}, &testhelpers.PublisherStub{}, time.Second, 0, 0, testLogger())
	if poller.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", poller.batchSize)
	}
	if poller.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", poller.workers)
	}
}

func waitForUpdates(t *testing.T, facade *testhelpers.WorkerFacadeStub, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		facade.Lock()
		updated := len(facade.Updates) > 0
		facade.Unlock()
		if updated {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for status update")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestTrackingPollerUpdatesOnTransition(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.TrackedOrder{{{ID: 1, UserID: "user-1", OrderRef: "ORD-1", Status: model.StatusPreparing}}},
		FetchFn: func(ctx context.Context, ref string) (*model.Order, error) {
			return &model.Order{OrderReferenceCode: ref, OrderNavigationStatus: model.StatusRiderPickedUp}, nil
		},
	}
	publisher := &testhelpers.PublisherStub{}
	poller := NewTrackingPoller(facade, publisher, 10*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	waitForUpdates(t, facade, 500*time.Millisecond)
	poller.Stop()

	facade.Lock()
	defer facade.Unlock()
	update := facade.Updates[0]
	if update.Status != model.StatusRiderPickedUp || update.Step != int(model.StepRiderPickedUp) {
		t.Fatalf("unexpected update: %+v", update)
	}
	if update.DeliveredAt != nil {
		t.Fatal("delivery time must only be set on delivery")
	}

	publisher.Lock()
	defer publisher.Unlock()
	if len(publisher.Events) != 1 {
		t.Fatalf("expected one status event, got %d", len(publisher.Events))
	}
	if publisher.Events[0].OrderRef != "ORD-1" || publisher.Events[0].Status != model.StatusRiderPickedUp {
		t.Fatalf("unexpected event: %+v", publisher.Events[0])
	}
}

func TestTrackingPollerRecordsDeliveryTime(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.TrackedOrder{{{ID: 1, UserID: "user-1", OrderRef: "ORD-1", Status: model.StatusRiderAtCustomer}}},
		FetchFn: func(ctx context.Context, ref string) (*model.Order, error) {
			return &model.Order{OrderReferenceCode: ref, OrderNavigationStatus: model.StatusDelivered}, nil
		},
	}
	poller := NewTrackingPoller(facade, &testhelpers.PublisherStub{}, 10*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	waitForUpdates(t, facade, 500*time.Millisecond)
	poller.Stop()

	facade.Lock()
	defer facade.Unlock()
	if facade.Updates[0].DeliveredAt == nil {
		t.Fatal("expected delivery time on delivered transition")
	}
}

func TestTrackingPollerSkipsUnchangedAndUnknownStatuses(t *testing.T) {
	calls := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.TrackedOrder{
			{{ID: 1, UserID: "user-1", OrderRef: "ORD-1", Status: model.StatusPreparing}},
			{{ID: 2, UserID: "user-1", OrderRef: "ORD-2", Status: model.StatusPreparing}},
		},
		FetchFn: func(ctx context.Context, ref string) (*model.Order, error) {
			atomic.AddInt32(&calls, 1)
			if ref == "ORD-1" {
				// No transition.
				return &model.Order{OrderReferenceCode: ref, OrderNavigationStatus: model.StatusPreparing}, nil
			}
			return &model.Order{OrderReferenceCode: ref, OrderNavigationStatus: "teleported"}, nil
		},
	}
	poller := NewTrackingPoller(facade, &testhelpers.PublisherStub{}, 10*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for atomic.LoadInt32(&calls) < 2 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for polls")
		case <-time.After(10 * time.Millisecond):
		}
	}
	poller.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Updates) != 0 {
		t.Fatalf("no update expected for unchanged or unknown statuses, got %+v", facade.Updates)
	}
}

func TestTrackingPollerHandlesRateLimiting(t *testing.T) {
	attempts := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.TrackedOrder{
			{{ID: 1, UserID: "user-1", OrderRef: "ORD-1", Status: model.StatusPreparing}},
			{{ID: 1, UserID: "user-1", OrderRef: "ORD-1", Status: model.StatusPreparing}},
		},
		FetchFn: func(ctx context.Context, ref string) (*model.Order, error) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return nil, gateway.TooManyRequestsError{RetryAfter: 10 * time.Millisecond}
			}
			return &model.Order{OrderReferenceCode: ref, OrderNavigationStatus: model.StatusRiderAccepted}, nil
		},
	}
	poller := NewTrackingPoller(facade, &testhelpers.PublisherStub{}, 5*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	waitForUpdates(t, facade, time.Second)
	poller.Stop()
}
