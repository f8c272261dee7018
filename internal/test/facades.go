package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	"github.com/conzooming/mealsub/internal/events"
)

// TrackedStatusUpdate captures an UpdateTrackedStatus invocation.
type TrackedStatusUpdate struct {
	ID          int64
	Status      string
	Step        int
	DeliveredAt *time.Time
}

// WorkerFacadeStub scripts poller behaviour for tests. Batches are consumed
// one per polling tick; afterwards the stub reports an empty batch.
type WorkerFacadeStub struct {
	sync.Mutex

	Batches [][]model.TrackedOrder
	FetchFn func(ctx context.Context, orderRef string) (*model.Order, error)
	Updates []TrackedStatusUpdate

	batchIndex int
}

// OrdersForPolling returns the next scripted batch.
func (s *WorkerFacadeStub) OrdersForPolling(ctx context.Context, limit int) ([]model.TrackedOrder, error) {
	s.Lock()
	defer s.Unlock()
	if s.batchIndex >= len(s.Batches) {
		return nil, nil
	}
	batch := s.Batches[s.batchIndex]
	s.batchIndex++
	return batch, nil
}

// FetchOrder delegates to the configured function.
func (s *WorkerFacadeStub) FetchOrder(ctx context.Context, orderRef string) (*model.Order, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, orderRef)
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateTrackedStatus records the call.
func (s *WorkerFacadeStub) UpdateTrackedStatus(ctx context.Context, id int64, status string, step int, deliveredAt *time.Time) error {
	s.Lock()
	defer s.Unlock()
	s.Updates = append(s.Updates, TrackedStatusUpdate{ID: id, Status: status, Step: step, DeliveredAt: deliveredAt})
	return nil
}

// PublisherStub records published status events.
type PublisherStub struct {
	sync.Mutex

	Events []events.StatusEvent
	Err    error
	Closed bool
}

// PublishStatusChange records the event unless the stub has an explicit error.
func (s *PublisherStub) PublishStatusChange(ctx context.Context, event events.StatusEvent) error {
	s.Lock()
	defer s.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Events = append(s.Events, event)
	return nil
}

// Close marks the stub closed.
func (s *PublisherStub) Close() error {
	s.Lock()
	defer s.Unlock()
	s.Closed = true
	return nil
}
