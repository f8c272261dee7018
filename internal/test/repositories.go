package test

import (
	"context"
	"time"

	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
)

// DraftRepositoryStub stores drafts in-memory for tests.
type DraftRepositoryStub struct {
	Drafts  map[string]*model.SubscriptionDraft
	SaveErr error
	GetErr  error
	Deleted []string
}

// NewDraftRepositoryStub constructs stub repository with an initialized map.
func NewDraftRepositoryStub() *DraftRepositoryStub {
	return &DraftRepositoryStub{Drafts: make(map[string]*model.SubscriptionDraft)}
}

// Save stores the draft unless the stub has an explicit error.
func (s *DraftRepositoryStub) Save(ctx context.Context, userID string, draft *model.SubscriptionDraft) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if s.Drafts == nil {
		s.Drafts = make(map[string]*model.SubscriptionDraft)
	}
	copied := *draft
	s.Drafts[userID] = &copied
	return nil
}

// Get fetches the stored draft or returns not found.
func (s *DraftRepositoryStub) Get(ctx context.Context, userID string) (*model.SubscriptionDraft, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if draft, ok := s.Drafts[userID]; ok {
		copied := *draft
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Delete removes the stored draft and records the call.
func (s *DraftRepositoryStub) Delete(ctx context.Context, userID string) error {
	s.Deleted = append(s.Deleted, userID)
	delete(s.Drafts, userID)
	return nil
}

// TrackedOrderRepositoryStub allows tests to customize behaviour.
type TrackedOrderRepositoryStub struct {
	TrackFn                 func(context.Context, string, string) (*model.TrackedOrder, bool, error)
	GetByRefFn              func(context.Context, string) (*model.TrackedOrder, error)
	SelectBatchForPollingFn func(context.Context, int) ([]model.TrackedOrder, error)
	UpdateStatusFn          func(context.Context, int64, string, int, *time.Time) error
	MarkRatingPromptedFn    func(context.Context, int64) error

	Tracked []struct {
		UserID   string
		OrderRef string
	}
	UpdateCalls []TrackedUpdateCall
	Prompted    []int64
}

// TrackedUpdateCall captures an UpdateStatus invocation.
type TrackedUpdateCall struct {
	ID          int64
	Status      string
	Step        int
	DeliveredAt *time.Time
}

// Track records invocations and returns configured responses.
func (s *TrackedOrderRepositoryStub) Track(ctx context.Context, userID, orderRef string) (*model.TrackedOrder, bool, error) {
	s.Tracked = append(s.Tracked, struct {
		UserID   string
		OrderRef string
	}{userID, orderRef})
	if s.TrackFn != nil {
		return s.TrackFn(ctx, userID, orderRef)
	}
	return &model.TrackedOrder{ID: 1, UserID: userID, OrderRef: orderRef, Status: model.StatusPartnerAccepted}, true, nil
}

// GetByRef returns a configured tracked order or not found.
func (s *TrackedOrderRepositoryStub) GetByRef(ctx context.Context, orderRef string) (*model.TrackedOrder, error) {
	if s.GetByRefFn != nil {
		return s.GetByRefFn(ctx, orderRef)
	}
	return nil, domainErrors.ErrNotFound
}

// SelectBatchForPolling returns the configured polling batch.
func (s *TrackedOrderRepositoryStub) SelectBatchForPolling(ctx context.Context, limit int) ([]model.TrackedOrder, error) {
	if s.SelectBatchForPollingFn != nil {
		return s.SelectBatchForPollingFn(ctx, limit)
	}
	return nil, nil
}

// UpdateStatus records the call and delegates to the configured function.
func (s *TrackedOrderRepositoryStub) UpdateStatus(ctx context.Context, id int64, status string, step int, deliveredAt *time.Time) error {
	s.UpdateCalls = append(s.UpdateCalls, TrackedUpdateCall{ID: id, Status: status, Step: step, DeliveredAt: deliveredAt})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status, step, deliveredAt)
	}
	return nil
}

// MarkRatingPrompted records the call.
func (s *TrackedOrderRepositoryStub) MarkRatingPrompted(ctx context.Context, id int64) error {
	s.Prompted = append(s.Prompted, id)
	if s.MarkRatingPromptedFn != nil {
		return s.MarkRatingPromptedFn(ctx, id)
	}
	return nil
}
