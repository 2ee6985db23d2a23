package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/promptdeck/promptdeck-api/internal/platform/logger"
	"github.com/promptdeck/promptdeck-api/internal/store"
)

// SubscriptionStore implements the store.SubscriptionStore interface
// using a PostgreSQL database as the storage backend.
type SubscriptionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSubscriptionStore creates a new PostgreSQL implementation of the
// SubscriptionStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewSubscriptionStore(db store.DBTX, logger *slog.Logger) *SubscriptionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SubscriptionStore{
		db:     db,
		logger: logger.With(slog.String("component", "subscription_store")),
	}
}

// Ensure SubscriptionStore implements store.SubscriptionStore interface
var _ store.SubscriptionStore = (*SubscriptionStore)(nil)

// Upsert implements store.SubscriptionStore.Upsert
// A repeat purchase by the same user replaces the previous subscription
// record rather than accumulating rows.
func (s *SubscriptionStore) Upsert(ctx context.Context, sub *domain.Subscription) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sub.Validate(); err != nil {
		log.Warn("subscription validation failed during upsert",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO subscriptions
			(email, session_id, invoice_id, subscription_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET
			session_id = EXCLUDED.session_id,
			invoice_id = EXCLUDED.invoice_id,
			subscription_id = EXCLUDED.subscription_id,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		sub.Email,
		sub.SessionID,
		sub.InvoiceID,
		sub.SubscriptionID,
		sub.CreatedAt,
		sub.ExpiresAt,
	)

	if err != nil {
		log.Error("failed to upsert subscription",
			slog.String("error", err.Error()))
		return err
	}

	log.Info("subscription recorded successfully",
		slog.String("session_id", sub.SessionID))
	return nil
}

// GetByEmail implements store.SubscriptionStore.GetByEmail
// Returns store.ErrSubscriptionNotFound if the user has never subscribed.
func (s *SubscriptionStore) GetByEmail(ctx context.Context, email string) (*domain.Subscription, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT email, session_id, invoice_id, subscription_id, created_at, expires_at
		FROM subscriptions
		WHERE email = $1
	`

	var sub domain.Subscription

	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&sub.Email,
		&sub.SessionID,
		&sub.InvoiceID,
		&sub.SubscriptionID,
		&sub.CreatedAt,
		&sub.ExpiresAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("subscription not found")
			return nil, store.ErrSubscriptionNotFound
		}
		log.Error("failed to get subscription by email",
			slog.String("error", err.Error()))
		return nil, err
	}

	return &sub, nil
}
