package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	"github.com/conzooming/mealsub/internal/events"
)

// TrackingFacade exposes the subset of application functionality required by the poller.
type TrackingFacade interface {
	OrdersForPolling(ctx context.Context, limit int) ([]model.TrackedOrder, error)
	FetchOrder(ctx context.Context, orderRef string) (*model.Order, error)
	UpdateTrackedStatus(ctx context.Context, id int64, status string, step int, deliveredAt *time.Time) error
}

// TrackingPoller refreshes tracked orders from the delivery backend
// concurrently and publishes an event on every status transition.
type TrackingPoller struct {
	facade       TrackingFacade
	publisher    events.Publisher
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.TrackedOrder
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewTrackingPoller constructs the polling worker pool.
func NewTrackingPoller(facade TrackingFacade, publisher events.Publisher, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *TrackingPoller {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &TrackingPoller{
		facade:       facade,
		publisher:    publisher,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.TrackedOrder, batchSize*workers),
	}
}

// Start launches background polling.
func (p *TrackingPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *TrackingPoller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *TrackingPoller) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *TrackingPoller) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.OrdersForPolling(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch orders for polling failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *TrackingPoller) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *TrackingPoller) handleOrder(ctx context.Context, tracked model.TrackedOrder) {
	order, err := p.facade.FetchOrder(ctx, tracked.OrderRef)
	if err != nil {
		switch e := err.(type) {
		case gateway.TooManyRequestsError:
			p.logger.Warn("backend rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, domainErrors.ErrNotFound) {
				// Order not visible upstream yet, retry on the next tick.
				return
			}
			p.logger.Error("order fetch failed", slog.String("order_ref", tracked.OrderRef), slog.String("error", err.Error()))
		}
		return
	}

	status := order.OrderNavigationStatus
	if status == tracked.Status {
		return
	}
	step, known := model.StepForStatus(status)
	if !known {
		p.logger.Warn("unrecognized order status", slog.String("order_ref", tracked.OrderRef), slog.String("status", status))
		return
	}

	var deliveredAt *time.Time
	if step == model.StepDelivered {
		now := time.Now()
		deliveredAt = &now
	}
	if err := p.facade.UpdateTrackedStatus(ctx, tracked.ID, status, int(step), deliveredAt); err != nil {
		p.logger.Error("update tracked status failed", slog.String("order_ref", tracked.OrderRef), slog.String("error", err.Error()))
		return
	}

	event := events.StatusEvent{
		OrderRef:   tracked.OrderRef,
		UserID:     tracked.UserID,
		Status:     status,
		Step:       int(step),
		OccurredAt: time.Now(),
	}
	if err := p.publisher.PublishStatusChange(ctx, event); err != nil {
		p.logger.Warn("publish status event failed", slog.String("order_ref", tracked.OrderRef), slog.String("error", err.Error()))
	}
}
