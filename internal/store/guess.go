package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/promptdeck/promptdeck-api/internal/domain"
)

// GuessStore defines persistence for per-user guessed cards.
type GuessStore interface {
	// Create saves a new guessed card.
	// Returns validation errors from the domain GuessedCard if data is
	// invalid, or ErrInvalidEntity if the referenced card does not exist.
	Create(ctx context.Context, guess *domain.GuessedCard) error

	// ListByOwner retrieves the given user's guessed cards, newest first.
	// Returns an empty slice when the user has no guesses.
	ListByOwner(ctx context.Context, ownerEmail string) ([]*domain.GuessedCard, error)

	// SumPointsByOwner returns the user's total score: the sum of the point
	// value over all of their guessed cards.
	SumPointsByOwner(ctx context.Context, ownerEmail string) (float64, error)

	// ExistsForCard reports whether the user has already guessed the given
	// card. The guessing flow does not currently consult it before insert;
	// it exists so a future product decision can gate re-guessing.
	ExistsForCard(ctx context.Context, ownerEmail string, cardID uuid.UUID) (bool, error)
}
