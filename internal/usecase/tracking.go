package usecase

import (
	"context"
	"time"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	"github.com/conzooming/mealsub/internal/domain/repository"
)

// ratingPromptDelay is how long after delivery the rating prompt fires.
const ratingPromptDelay = 2 * time.Second

// Timeline is the tracking view of one order: the fixed seven-step delivery
// progression plus the live order details.
type Timeline struct {
	Order *model.Order
	Step  model.TrackingStep
	// Known is false when the backend reported a status outside the fixed
	// progression; the timeline still renders at the first step.
	Known        bool
	Delivered    bool
	PromptRating bool
}

// TrackingUseCase serves the order-tracking page.
type TrackingUseCase struct {
	gateway gateway.Client
	tracked repository.TrackedOrderRepository
}

// NewTrackingUseCase constructs TrackingUseCase.
func NewTrackingUseCase(g gateway.Client, t repository.TrackedOrderRepository) *TrackingUseCase {
	return &TrackingUseCase{gateway: g, tracked: t}
}

// Track registers an order for background polling. Re-tracking an already
// tracked order is a no-op.
func (u *TrackingUseCase) Track(ctx context.Context, userID, orderRef string) (*model.TrackedOrder, error) {
	tracked, _, err := u.tracked.Track(ctx, userID, orderRef)
	return tracked, err
}

// OrdersForPolling claims a batch of non-delivered orders for the poller.
func (u *TrackingUseCase) OrdersForPolling(ctx context.Context, limit int) ([]model.TrackedOrder, error) {
	return u.tracked.SelectBatchForPolling(ctx, limit)
}

// FetchOrder reads an order from the backend with service-level access, no
// user token attached.
func (u *TrackingUseCase) FetchOrder(ctx context.Context, orderRef string) (*model.Order, error) {
	return u.gateway.GetOrder(ctx, "", orderRef)
}

// UpdateStatus persists a status transition observed by the poller.
func (u *TrackingUseCase) UpdateStatus(ctx context.Context, id int64, status string, step int, deliveredAt *time.Time) error {
	return u.tracked.UpdateStatus(ctx, id, status, step, deliveredAt)
}

// Timeline fetches the order live from the backend and folds in the locally
// tracked state. The rating prompt fires exactly once, a short beat after
// delivery, so the arrival animation finishes first.
func (u *TrackingUseCase) Timeline(ctx context.Context, token, userID, orderRef string) (*Timeline, error) {
	tracked, err := u.tracked.GetByRef(ctx, orderRef)
	if err != nil {
		return nil, err
	}
	if tracked.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	order, err := u.gateway.GetOrder(ctx, token, orderRef)
	if err != nil {
		return nil, err
	}
	step, known := model.StepForStatus(order.OrderNavigationStatus)
	timeline := &Timeline{
		Order:     order,
		Step:      step,
		Known:     known,
		Delivered: step == model.StepDelivered && known,
	}
	if timeline.Delivered && !tracked.RatingPrompted {
		deliveredAt := tracked.DeliveredAt
		if deliveredAt == nil {
			now := time.Now()
			deliveredAt = &now
			if err := u.tracked.UpdateStatus(ctx, tracked.ID, model.StatusDelivered, int(model.StepDelivered), deliveredAt); err != nil {
				return nil, err
			}
		}
		if time.Since(*deliveredAt) >= ratingPromptDelay {
			if err := u.tracked.MarkRatingPrompted(ctx, tracked.ID); err != nil {
				return nil, err
			}
			timeline.PromptRating = true
		}
	}
	return timeline, nil
}
