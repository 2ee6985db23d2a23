package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// GuessedCard-specific validation errors
var (
	// ErrGuessIDEmpty is returned when a guessed card ID is empty or nil.
	ErrGuessIDEmpty = errors.New("guessed card ID cannot be empty")

	// ErrGuessCardIDEmpty is returned when the referenced card ID is empty.
	ErrGuessCardIDEmpty = errors.New("guessed card must reference a card")

	// ErrGuessOwnerEmpty is returned when the guessing user's email is empty.
	ErrGuessOwnerEmpty = errors.New("guessed card owner email cannot be empty")

	// ErrGuessTextEmpty is returned when the guess text is empty.
	ErrGuessTextEmpty = errors.New("guess text cannot be empty")

	// ErrGradeOutOfRange is returned when a grade falls outside 0-100.
	ErrGradeOutOfRange = errors.New("grade must be between 0 and 100")
)

// GuessedCard records one user's attempt to guess a FlashCard's prompt.
// The image URL and prompt are denormalized copies taken from the card at
// guess time. Point is derived from Grade and is never set independently.
type GuessedCard struct {
	ID         uuid.UUID `json:"id"`
	CardID     uuid.UUID `json:"card_id"`
	OwnerEmail string    `json:"owner_email"`
	ImageURL   string    `json:"image_url"`
	Prompt     string    `json:"prompt"`
	Guess      string    `json:"guess"`
	Grade      int       `json:"grade"`
	Point      float64   `json:"point"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewGuessedCard creates a GuessedCard for the given card, guesser, and
// grade. The point value is always grade/10; callers cannot supply it.
// Returns an error if validation fails.
func NewGuessedCard(card *FlashCard, ownerEmail, guess string, grade int) (*GuessedCard, error) {
	if card == nil {
		return nil, ErrGuessCardIDEmpty
	}

	guessed := &GuessedCard{
		ID:         uuid.New(),
		CardID:     card.ID,
		OwnerEmail: ownerEmail,
		ImageURL:   card.ImageURL,
		Prompt:     card.Prompt,
		Guess:      guess,
		Grade:      grade,
		Point:      PointForGrade(grade),
		CreatedAt:  time.Now().UTC(),
	}

	if err := guessed.Validate(); err != nil {
		return nil, err
	}

	return guessed, nil
}

// PointForGrade converts a 0-100 similarity grade to the point unit shown
// to users: grade scaled by 1/10.
func PointForGrade(grade int) float64 {
	return float64(grade) / 10
}

// Validate checks if the GuessedCard has valid data.
// Returns an error if any field fails validation.
func (g *GuessedCard) Validate() error {
	if g.ID == uuid.Nil {
		return ErrGuessIDEmpty
	}

	if g.CardID == uuid.Nil {
		return ErrGuessCardIDEmpty
	}

	if g.OwnerEmail == "" {
		return ErrGuessOwnerEmpty
	}

	if g.Guess == "" {
		return ErrGuessTextEmpty
	}

	if g.Grade < 0 || g.Grade > 100 {
		return ErrGradeOutOfRange
	}

	return nil
}
