package domain_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCard(t *testing.T) *domain.FlashCard {
	t.Helper()

	card, err := domain.NewFlashCard("https://bucket.s3.us-east-1.amazonaws.com/img.png", "a red barn at dusk")
	require.NoError(t, err)
	return card
}

func TestPointForGrade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		grade    int
		expected float64
	}{
		{0, 0},
		{1, 0.1},
		{10, 1},
		{35, 3.5},
		{73, 7.3},
		{99, 9.9},
		{100, 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("grade_%d", tt.grade), func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, tt.expected, domain.PointForGrade(tt.grade), 1e-9)
		})
	}
}

func TestNewGuessedCard(t *testing.T) {
	t.Parallel()

	t.Run("copies card fields and derives point", func(t *testing.T) {
		t.Parallel()

		card := newTestCard(t)

		guessed, err := domain.NewGuessedCard(card, "player@example.com", "barn in the evening", 73)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, guessed.ID)
		assert.Equal(t, card.ID, guessed.CardID)
		assert.Equal(t, card.ImageURL, guessed.ImageURL)
		assert.Equal(t, card.Prompt, guessed.Prompt)
		assert.Equal(t, 73, guessed.Grade)
		assert.InDelta(t, 7.3, guessed.Point, 1e-9)
	})

	t.Run("nil card rejected", func(t *testing.T) {
		t.Parallel()

		guessed, err := domain.NewGuessedCard(nil, "player@example.com", "barn", 50)
		assert.ErrorIs(t, err, domain.ErrGuessCardIDEmpty)
		assert.Nil(t, guessed)
	})

	t.Run("empty guess rejected", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewGuessedCard(newTestCard(t), "player@example.com", "", 50)
		assert.ErrorIs(t, err, domain.ErrGuessTextEmpty)
	})

	t.Run("empty owner rejected", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewGuessedCard(newTestCard(t), "", "barn", 50)
		assert.ErrorIs(t, err, domain.ErrGuessOwnerEmpty)
	})

	t.Run("grade out of range rejected", func(t *testing.T) {
		t.Parallel()

		for _, grade := range []int{-1, 101, 500} {
			_, err := domain.NewGuessedCard(newTestCard(t), "player@example.com", "barn", grade)
			assert.ErrorIs(t, err, domain.ErrGradeOutOfRange, "grade %d", grade)
		}
	})

	t.Run("boundary grades accepted", func(t *testing.T) {
		t.Parallel()

		for _, grade := range []int{0, 100} {
			_, err := domain.NewGuessedCard(newTestCard(t), "player@example.com", "barn", grade)
			assert.NoError(t, err, "grade %d", grade)
		}
	})
}
