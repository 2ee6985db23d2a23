package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// UserCardRef-specific validation errors
var (
	// ErrUserCardIDEmpty is returned when a reference ID is empty or nil.
	ErrUserCardIDEmpty = errors.New("user card reference ID cannot be empty")

	// ErrUserCardCardIDEmpty is returned when the referenced card ID is empty.
	ErrUserCardCardIDEmpty = errors.New("user card reference must reference a card")

	// ErrUserCardOwnerEmpty is returned when the owning user's email is empty.
	ErrUserCardOwnerEmpty = errors.New("user card reference owner email cannot be empty")
)

// UserCardRef marks a FlashCard as generated by a particular user. The
// count of a user's references enforces the generation quota. It is written
// in the same transaction as its FlashCard so the quota can never be
// undercounted by a partial save.
type UserCardRef struct {
	ID         uuid.UUID `json:"id"`
	CardID     uuid.UUID `json:"card_id"`
	OwnerEmail string    `json:"owner_email"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewUserCardRef creates a reference marking cardID as generated by
// ownerEmail. Returns an error if validation fails.
func NewUserCardRef(cardID uuid.UUID, ownerEmail string) (*UserCardRef, error) {
	ref := &UserCardRef{
		ID:         uuid.New(),
		CardID:     cardID,
		OwnerEmail: ownerEmail,
		CreatedAt:  time.Now().UTC(),
	}

	if err := ref.Validate(); err != nil {
		return nil, err
	}

	return ref, nil
}

// Validate checks if the UserCardRef has valid data.
func (r *UserCardRef) Validate() error {
	if r.ID == uuid.Nil {
		return ErrUserCardIDEmpty
	}

	if r.CardID == uuid.Nil {
		return ErrUserCardCardIDEmpty
	}

	if r.OwnerEmail == "" {
		return ErrUserCardOwnerEmpty
	}

	return nil
}
