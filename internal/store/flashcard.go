package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/promptdeck/promptdeck-api/internal/domain"
)

// FlashCardStore defines persistence for the shared flashcard collection.
type FlashCardStore interface {
	// Create saves a new flashcard.
	// Returns validation errors from the domain FlashCard if data is invalid,
	// or ErrDuplicate if a card with the same ID already exists.
	Create(ctx context.Context, card *domain.FlashCard) error

	// GetByID retrieves a flashcard by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FlashCard, error)

	// List retrieves flashcards ordered newest first.
	// Returns an empty slice when the collection is empty.
	List(ctx context.Context, limit, offset int) ([]*domain.FlashCard, error)

	// WithTx returns a store bound to the given transaction-capable handle,
	// so a flashcard and its owner reference can be written atomically.
	WithTx(db DBTX) FlashCardStore
}

// UserCardStore defines persistence for per-user generated-card references.
type UserCardStore interface {
	// Create saves a new owner reference.
	// Returns ErrInvalidEntity if the referenced card does not exist.
	Create(ctx context.Context, ref *domain.UserCardRef) error

	// CountByOwner returns how many cards the given user has generated.
	// Used to enforce the generation quota.
	CountByOwner(ctx context.Context, ownerEmail string) (int, error)

	// WithTx returns a store bound to the given transaction-capable handle.
	WithTx(db DBTX) UserCardStore
}
