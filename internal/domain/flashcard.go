package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// FlashCard-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardImageURLEmpty is returned when a card has no image URL.
	ErrCardImageURLEmpty = errors.New("card image URL cannot be empty")

	// ErrCardPromptEmpty is returned when a card has no source prompt.
	ErrCardPromptEmpty = errors.New("card prompt cannot be empty")
)

// FlashCard is a stored (image, prompt) pair visible to all users for
// guessing. It is immutable after creation; the image URL points at the
// application's own object store, never at the generation provider's
// temporary URL.
type FlashCard struct {
	ID        uuid.UUID `json:"id"`
	ImageURL  string    `json:"image_url"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFlashCard creates a new FlashCard with the given image URL and prompt.
// It generates a new UUID for the card ID and sets the creation timestamp.
// Returns an error if validation fails.
func NewFlashCard(imageURL, prompt string) (*FlashCard, error) {
	card := &FlashCard{
		ID:        uuid.New(),
		ImageURL:  imageURL,
		Prompt:    prompt,
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the FlashCard has valid data.
// Returns an error if any field fails validation.
func (c *FlashCard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.ImageURL == "" {
		return ErrCardImageURLEmpty
	}

	if c.Prompt == "" {
		return ErrCardPromptEmpty
	}

	return nil
}
