package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/promptdeck/promptdeck-api/internal/platform/logger"
	"github.com/promptdeck/promptdeck-api/internal/scoring"
	"github.com/promptdeck/promptdeck-api/internal/store"
)

// GuessService provides guess submission and retrieval operations.
type GuessService interface {
	// SubmitGuess loads the card, has the scorer grade the guess against the
	// card's original prompt, and records the result. The stored point value
	// is always grade/10.
	SubmitGuess(ctx context.Context, ownerEmail string, cardID uuid.UUID, guess string) (*domain.GuessedCard, error)

	// ListGuesses retrieves the caller's guessed cards, newest first.
	ListGuesses(ctx context.Context, ownerEmail string) ([]*domain.GuessedCard, error)
}

// guessServiceImpl implements the GuessService interface
type guessServiceImpl struct {
	cards   store.FlashCardStore
	guesses store.GuessStore
	scorer  scoring.Scorer
	logger  *slog.Logger
}

// NewGuessService creates a new GuessService.
// It returns an error if any of the required dependencies are nil.
func NewGuessService(
	cards store.FlashCardStore,
	guesses store.GuessStore,
	scorer scoring.Scorer,
	logger *slog.Logger,
) (GuessService, error) {
	if cards == nil {
		return nil, fmt.Errorf("card store cannot be nil")
	}
	if guesses == nil {
		return nil, fmt.Errorf("guess store cannot be nil")
	}
	if scorer == nil {
		return nil, fmt.Errorf("scorer cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &guessServiceImpl{
		cards:   cards,
		guesses: guesses,
		scorer:  scorer,
		logger:  logger.With(slog.String("component", "guess_service")),
	}, nil
}

// SubmitGuess implements GuessService.SubmitGuess
// Re-guessing the same card inserts a new row; each attempt earns its own
// points.
func (s *guessServiceImpl) SubmitGuess(
	ctx context.Context,
	ownerEmail string,
	cardID uuid.UUID,
	guess string,
) (*domain.GuessedCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		log.Debug("failed to load card for guess",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, err
	}

	grade, err := s.scorer.Score(ctx, card.Prompt, guess)
	if err != nil {
		log.Error("guess scoring failed",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, fmt.Errorf("failed to score guess: %w", err)
	}

	guessed, err := domain.NewGuessedCard(card, ownerEmail, guess, grade)
	if err != nil {
		return nil, fmt.Errorf("invalid guessed card: %w", err)
	}

	if err := s.guesses.Create(ctx, guessed); err != nil {
		log.Error("failed to record guessed card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, fmt.Errorf("failed to record guess: %w", err)
	}

	log.Info("guess recorded",
		slog.String("card_id", cardID.String()),
		slog.Int("grade", grade))
	return guessed, nil
}

// ListGuesses implements GuessService.ListGuesses
func (s *guessServiceImpl) ListGuesses(ctx context.Context, ownerEmail string) ([]*domain.GuessedCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	guesses, err := s.guesses.ListByOwner(ctx, ownerEmail)
	if err != nil {
		log.Error("failed to list guesses", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list guesses: %w", err)
	}

	return guesses, nil
}
