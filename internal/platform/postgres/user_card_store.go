package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/promptdeck/promptdeck-api/internal/platform/logger"
	"github.com/promptdeck/promptdeck-api/internal/store"
)

// UserCardStore implements the store.UserCardStore interface
// using a PostgreSQL database as the storage backend.
type UserCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserCardStore creates a new PostgreSQL implementation of the
// UserCardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewUserCardStore(db store.DBTX, logger *slog.Logger) *UserCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_card_store")),
	}
}

// Ensure UserCardStore implements store.UserCardStore interface
var _ store.UserCardStore = (*UserCardStore)(nil)

// WithTx implements store.UserCardStore.WithTx
func (s *UserCardStore) WithTx(db store.DBTX) store.UserCardStore {
	return &UserCardStore{
		db:     db,
		logger: s.logger,
	}
}

// Create implements store.UserCardStore.Create
// Returns store.ErrInvalidEntity if the referenced card does not exist.
func (s *UserCardStore) Create(ctx context.Context, ref *domain.UserCardRef) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ref.Validate(); err != nil {
		log.Warn("user card reference validation failed during create",
			slog.String("error", err.Error()),
			slog.String("ref_id", ref.ID.String()))
		return err
	}

	query := `
		INSERT INTO user_cards (id, card_id, owner_email, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		ref.ID,
		ref.CardID,
		ref.OwnerEmail,
		ref.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during user card reference creation",
				slog.String("ref_id", ref.ID.String()),
				slog.String("card_id", ref.CardID.String()))
			return fmt.Errorf("%w: flashcard with ID %s not found",
				store.ErrInvalidEntity, ref.CardID)
		}

		log.Error("failed to create user card reference",
			slog.String("error", err.Error()),
			slog.String("ref_id", ref.ID.String()))
		return err
	}

	log.Info("user card reference created successfully",
		slog.String("ref_id", ref.ID.String()),
		slog.String("card_id", ref.CardID.String()))
	return nil
}

// CountByOwner implements store.UserCardStore.CountByOwner
func (s *UserCardStore) CountByOwner(ctx context.Context, ownerEmail string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM user_cards
		WHERE owner_email = $1
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, ownerEmail).Scan(&count); err != nil {
		log.Error("failed to count user cards",
			slog.String("error", err.Error()))
		return 0, err
	}

	return count, nil
}
