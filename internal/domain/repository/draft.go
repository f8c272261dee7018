package repository

import (
	"context"

	"github.com/conzooming/mealsub/internal/domain/model"
)

// DraftRepository persists the single in-progress subscription draft per user.
type DraftRepository interface {
	// Save writes the draft inside a versioned envelope, replacing any
	// previous draft for the user.
	Save(ctx context.Context, userID string, draft *model.SubscriptionDraft) error
	// Get returns ErrNotFound when no draft exists and ErrDraftSchema when a
	// stored draft was written by an incompatible schema version.
	Get(ctx context.Context, userID string) (*model.SubscriptionDraft, error)
	Delete(ctx context.Context, userID string) error
}
