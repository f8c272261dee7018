package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	"github.com/conzooming/mealsub/internal/domain/repository"
)

// draftSchemaVersion tags every stored draft envelope. Bump it together with
// a migration whenever the SubscriptionDraft shape changes; readers refuse
// envelopes written under a different version instead of misreading them.
const draftSchemaVersion = 1

// dbPool is the subset of pgxpool.Pool the storage uses; satisfied by pgxmock.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

type draftRepository struct {
	storage *Storage
}

type trackedOrderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Drafts() repository.DraftRepository {
	return &draftRepository{storage: s}
}

func (s *Storage) TrackedOrders() repository.TrackedOrderRepository {
	return &trackedOrderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS subscription_drafts (
            user_id TEXT PRIMARY KEY,
            schema_version INT NOT NULL,
            payload JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tracked_orders (
            id SERIAL PRIMARY KEY,
            user_id TEXT NOT NULL,
            order_ref TEXT UNIQUE NOT NULL,
            status TEXT NOT NULL,
            step INT NOT NULL DEFAULT 0,
            delivered_at TIMESTAMPTZ,
            rating_prompted BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_tracked_orders_user ON tracked_orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_tracked_orders_pending ON tracked_orders(updated_at) WHERE status <> 'delivered'`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- DraftRepository implementation ---

func (r *draftRepository) Save(ctx context.Context, userID string, draft *model.SubscriptionDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	const query = `INSERT INTO subscription_drafts (user_id, schema_version, payload)
                   VALUES ($1, $2, $3)
                   ON CONFLICT (user_id) DO UPDATE
                   SET schema_version = EXCLUDED.schema_version,
                       payload = EXCLUDED.payload,
                       updated_at = NOW()`
	if _, err := r.storage.pool.Exec(ctx, query, userID, draftSchemaVersion, payload); err != nil {
		return err
	}
	return nil
}

func (r *draftRepository) Get(ctx context.Context, userID string) (*model.SubscriptionDraft, error) {
	const query = `SELECT schema_version, payload FROM subscription_drafts WHERE user_id=$1`
	var (
		version int
		payload []byte
	)
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&version, &payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	if version != draftSchemaVersion {
		r.storage.logger.Warn("stored draft has incompatible schema",
			slog.String("user", userID),
			slog.Int("stored_version", version),
			slog.Int("current_version", draftSchemaVersion),
		)
		return nil, domainErrors.ErrDraftSchema
	}

	var draft model.SubscriptionDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}

func (r *draftRepository) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM subscription_drafts WHERE user_id=$1`
	if _, err := r.storage.pool.Exec(ctx, query, userID); err != nil {
		return err
	}
	return nil
}

// --- TrackedOrderRepository implementation ---

func (r *trackedOrderRepository) Track(ctx context.Context, userID, orderRef string) (*model.TrackedOrder, bool, error) {
	const query = `INSERT INTO tracked_orders (user_id, order_ref, status, step)
                   VALUES ($1, $2, $3, 0)
                   ON CONFLICT (order_ref) DO NOTHING
                   RETURNING id, created_at, updated_at`
	var order model.TrackedOrder
	err := r.storage.pool.QueryRow(ctx, query, userID, orderRef, model.StatusPartnerAccepted).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetByRef(ctx, orderRef)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	order.UserID = userID
	order.OrderRef = orderRef
	order.Status = model.StatusPartnerAccepted
	return &order, true, nil
}

func (r *trackedOrderRepository) GetByRef(ctx context.Context, orderRef string) (*model.TrackedOrder, error) {
	const query = `SELECT id, user_id, order_ref, status, step, delivered_at, rating_prompted, created_at, updated_at
                   FROM tracked_orders WHERE order_ref=$1`
	var order model.TrackedOrder
	err := r.storage.pool.QueryRow(ctx, query, orderRef).Scan(
		&order.ID, &order.UserID, &order.OrderRef, &order.Status, &order.Step,
		&order.DeliveredAt, &order.RatingPrompted, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *trackedOrderRepository) SelectBatchForPolling(ctx context.Context, limit int) ([]model.TrackedOrder, error) {
	const selectQuery = `SELECT id, user_id, order_ref, status, step, delivered_at, rating_prompted, created_at, updated_at
                         FROM tracked_orders
                         WHERE status <> 'delivered'
                         ORDER BY updated_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var orders []model.TrackedOrder
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var o model.TrackedOrder
			if err := rows.Scan(&o.ID, &o.UserID, &o.OrderRef, &o.Status, &o.Step,
				&o.DeliveredAt, &o.RatingPrompted, &o.CreatedAt, &o.UpdatedAt); err != nil {
				return err
			}
			orders = append(orders, o)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		// Claimed rows move to the back of the polling queue.
		for _, o := range orders {
			if _, err := tx.Exec(ctx, `UPDATE tracked_orders SET updated_at=NOW() WHERE id=$1`, o.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *trackedOrderRepository) UpdateStatus(ctx context.Context, id int64, status string, step int, deliveredAt *time.Time) error {
	const query = `UPDATE tracked_orders
                   SET status=$1, step=$2, delivered_at=COALESCE($3, delivered_at), updated_at=NOW()
                   WHERE id=$4`
	if _, err := r.storage.pool.Exec(ctx, query, status, step, deliveredAt, id); err != nil {
		return err
	}
	return nil
}

func (r *trackedOrderRepository) MarkRatingPrompted(ctx context.Context, id int64) error {
	const query = `UPDATE tracked_orders SET rating_prompted=TRUE, updated_at=NOW() WHERE id=$1`
	if _, err := r.storage.pool.Exec(ctx, query, id); err != nil {
		return err
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
