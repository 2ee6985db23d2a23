package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/promptdeck/promptdeck-api/internal/platform/logger"
	"github.com/promptdeck/promptdeck-api/internal/store"
)

// FlashCardStore implements the store.FlashCardStore interface
// using a PostgreSQL database as the storage backend.
type FlashCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewFlashCardStore creates a new PostgreSQL implementation of the
// FlashCardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewFlashCardStore(db store.DBTX, logger *slog.Logger) *FlashCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &FlashCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure FlashCardStore implements store.FlashCardStore interface
var _ store.FlashCardStore = (*FlashCardStore)(nil)

// WithTx implements store.FlashCardStore.WithTx
func (s *FlashCardStore) WithTx(db store.DBTX) store.FlashCardStore {
	return &FlashCardStore{
		db:     db,
		logger: s.logger,
	}
}

// Create implements store.FlashCardStore.Create
// It saves a new flashcard to the database, handling domain validation.
// Returns store.ErrDuplicate if a card with the same ID already exists.
func (s *FlashCardStore) Create(ctx context.Context, card *domain.FlashCard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO flashcards (id, image_url, prompt, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.ImageURL,
		card.Prompt,
		card.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate flashcard ID during creation",
				slog.String("card_id", card.ID.String()))
			return fmt.Errorf("%w: flashcard %s", store.ErrDuplicate, card.ID)
		}

		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	log.Info("flashcard created successfully",
		slog.String("card_id", card.ID.String()))
	return nil
}

// GetByID implements store.FlashCardStore.GetByID
// Returns store.ErrCardNotFound if the card does not exist.
func (s *FlashCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.FlashCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, image_url, prompt, created_at
		FROM flashcards
		WHERE id = $1
	`

	var card domain.FlashCard

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.ImageURL,
		&card.Prompt,
		&card.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get flashcard by ID",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, err
	}

	return &card, nil
}

// List implements store.FlashCardStore.List
// It retrieves flashcards ordered newest first.
// Returns an empty slice if the collection is empty.
func (s *FlashCardStore) List(ctx context.Context, limit, offset int) ([]*domain.FlashCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, image_url, prompt, created_at
		FROM flashcards
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to query flashcards",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var cards []*domain.FlashCard
	for rows.Next() {
		var card domain.FlashCard

		err := rows.Scan(
			&card.ID,
			&card.ImageURL,
			&card.Prompt,
			&card.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan flashcard row",
				slog.String("error", err.Error()))
			return nil, err
		}

		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no cards found
	if cards == nil {
		cards = []*domain.FlashCard{}
	}

	log.Debug("listed flashcards", slog.Int("count", len(cards)))
	return cards, nil
}
