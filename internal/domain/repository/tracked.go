package repository

import (
	"context"
	"time"

	"github.com/conzooming/mealsub/internal/domain/model"
)

// TrackedOrderRepository stores orders registered for delivery tracking.
type TrackedOrderRepository interface {
	// Track registers an order for polling. Returns whether the row was newly
	// created; re-tracking an already tracked order is a no-op.
	Track(ctx context.Context, userID, orderRef string) (*model.TrackedOrder, bool, error)
	GetByRef(ctx context.Context, orderRef string) (*model.TrackedOrder, error)
	// SelectBatchForPolling claims up to limit non-delivered orders, least
	// recently refreshed first.
	SelectBatchForPolling(ctx context.Context, limit int) ([]model.TrackedOrder, error)
	UpdateStatus(ctx context.Context, id int64, status string, step int, deliveredAt *time.Time) error
	MarkRatingPrompted(ctx context.Context, id int64) error
}
