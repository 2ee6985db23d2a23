package api

import (
	"time"

	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/promptdeck/promptdeck-api/internal/service"
)

// GenerateCardRequest is the body of POST /api/cards/generate.
type GenerateCardRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=1000"`
}

// GenerateCardResponse carries the pending card back to the client. Nothing
// is stored yet; the client holds this until the user saves or discards it.
type GenerateCardResponse struct {
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt"`
}

// SaveCardRequest is the body of POST /api/cards.
type SaveCardRequest struct {
	Prompt   string `json:"prompt"    validate:"required,min=1,max=1000"`
	ImageURL string `json:"image_url" validate:"required,url"`
}

// CardResponse represents a stored flashcard. The prompt is included: cards
// are public and revealing the answer after a guess is part of the game.
type CardResponse struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"image_url"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
}

// GuessRequest is the body of POST /api/cards/{id}/guess.
type GuessRequest struct {
	Guess string `json:"guess" validate:"required,min=1,max=1000"`
}

// GuessResponse reports the graded guess.
type GuessResponse struct {
	ID        string    `json:"id"`
	CardID    string    `json:"card_id"`
	ImageURL  string    `json:"image_url"`
	Prompt    string    `json:"prompt"`
	Guess     string    `json:"guess"`
	Grade     int       `json:"grade"`
	Point     float64   `json:"point"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse aggregates the profile screen data.
type ProfileResponse struct {
	Email        string          `json:"email"`
	DisplayName  string          `json:"display_name"`
	AvatarURL    string          `json:"avatar_url"`
	GuessedCards []GuessResponse `json:"guessed_cards"`
	TotalPoints  float64         `json:"total_points"`
	Subscribed   bool            `json:"subscribed"`
	Plan         service.Plan    `json:"plan"`
}

// CheckoutSessionResponse is returned when a checkout session is created.
type CheckoutSessionResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// CheckoutVerifyResponse confirms a recorded subscription.
type CheckoutVerifyResponse struct {
	Subscribed bool      `json:"subscribed"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// cardToResponse converts a domain.FlashCard to a CardResponse
func cardToResponse(card *domain.FlashCard) CardResponse {
	return CardResponse{
		ID:        card.ID.String(),
		ImageURL:  card.ImageURL,
		Prompt:    card.Prompt,
		CreatedAt: card.CreatedAt,
	}
}

// guessToResponse converts a domain.GuessedCard to a GuessResponse
func guessToResponse(guess *domain.GuessedCard) GuessResponse {
	return GuessResponse{
		ID:        guess.ID.String(),
		CardID:    guess.CardID.String(),
		ImageURL:  guess.ImageURL,
		Prompt:    guess.Prompt,
		Guess:     guess.Guess,
		Grade:     guess.Grade,
		Point:     guess.Point,
		CreatedAt: guess.CreatedAt,
	}
}
