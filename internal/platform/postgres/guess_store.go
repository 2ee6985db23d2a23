package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/promptdeck/promptdeck-api/internal/platform/logger"
	"github.com/promptdeck/promptdeck-api/internal/store"
)

// GuessStore implements the store.GuessStore interface
// using a PostgreSQL database as the storage backend.
type GuessStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewGuessStore creates a new PostgreSQL implementation of the GuessStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewGuessStore(db store.DBTX, logger *slog.Logger) *GuessStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &GuessStore{
		db:     db,
		logger: logger.With(slog.String("component", "guess_store")),
	}
}

// Ensure GuessStore implements store.GuessStore interface
var _ store.GuessStore = (*GuessStore)(nil)

// Create implements store.GuessStore.Create
// It saves a new guessed card, handling domain validation.
// Returns store.ErrInvalidEntity if the referenced card does not exist.
func (s *GuessStore) Create(ctx context.Context, guess *domain.GuessedCard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := guess.Validate(); err != nil {
		log.Warn("guessed card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("guess_id", guess.ID.String()))
		return err
	}

	query := `
		INSERT INTO guessed_cards
			(id, card_id, owner_email, image_url, prompt, guess, grade, point, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		guess.ID,
		guess.CardID,
		guess.OwnerEmail,
		guess.ImageURL,
		guess.Prompt,
		guess.Guess,
		guess.Grade,
		guess.Point,
		guess.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during guessed card creation",
				slog.String("guess_id", guess.ID.String()),
				slog.String("card_id", guess.CardID.String()))
			return fmt.Errorf("%w: flashcard with ID %s not found",
				store.ErrInvalidEntity, guess.CardID)
		}

		log.Error("failed to create guessed card",
			slog.String("error", err.Error()),
			slog.String("guess_id", guess.ID.String()))
		return err
	}

	log.Info("guessed card created successfully",
		slog.String("guess_id", guess.ID.String()),
		slog.String("card_id", guess.CardID.String()),
		slog.Int("grade", guess.Grade))
	return nil
}

// ListByOwner implements store.GuessStore.ListByOwner
// Returns an empty slice if the user has no guesses.
func (s *GuessStore) ListByOwner(ctx context.Context, ownerEmail string) ([]*domain.GuessedCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, card_id, owner_email, image_url, prompt, guess, grade, point, created_at
		FROM guessed_cards
		WHERE owner_email = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		log.Error("failed to query guessed cards",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var guesses []*domain.GuessedCard
	for rows.Next() {
		var guess domain.GuessedCard

		err := rows.Scan(
			&guess.ID,
			&guess.CardID,
			&guess.OwnerEmail,
			&guess.ImageURL,
			&guess.Prompt,
			&guess.Guess,
			&guess.Grade,
			&guess.Point,
			&guess.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan guessed card row",
				slog.String("error", err.Error()))
			return nil, err
		}

		guesses = append(guesses, &guess)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if guesses == nil {
		guesses = []*domain.GuessedCard{}
	}

	log.Debug("listed guessed cards", slog.Int("count", len(guesses)))
	return guesses, nil
}

// SumPointsByOwner implements store.GuessStore.SumPointsByOwner
func (s *GuessStore) SumPointsByOwner(ctx context.Context, ownerEmail string) (float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COALESCE(SUM(point), 0)
		FROM guessed_cards
		WHERE owner_email = $1
	`

	var total float64
	if err := s.db.QueryRowContext(ctx, query, ownerEmail).Scan(&total); err != nil {
		log.Error("failed to sum guess points",
			slog.String("error", err.Error()))
		return 0, err
	}

	return total, nil
}

// ExistsForCard implements store.GuessStore.ExistsForCard
func (s *GuessStore) ExistsForCard(ctx context.Context, ownerEmail string, cardID uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM guessed_cards
			WHERE owner_email = $1 AND card_id = $2
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, ownerEmail, cardID).Scan(&exists); err != nil {
		log.Error("failed to check for existing guess",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return false, err
	}

	return exists, nil
}
