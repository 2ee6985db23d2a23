package domain_test

import (
	"testing"

	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscription(t *testing.T) {
	t.Parallel()

	t.Run("expires one calendar month after creation", func(t *testing.T) {
		t.Parallel()

		sub, err := domain.NewSubscription("player@example.com", "cs_123", "in_123", "sub_123")
		require.NoError(t, err)

		assert.Equal(t, sub.CreatedAt.AddDate(0, 1, 0), sub.ExpiresAt)
	})

	t.Run("empty email rejected", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewSubscription("", "cs_123", "in_123", "sub_123")
		assert.ErrorIs(t, err, domain.ErrSubscriptionEmailEmpty)
	})

	t.Run("empty session ID rejected", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewSubscription("player@example.com", "", "in_123", "sub_123")
		assert.ErrorIs(t, err, domain.ErrSubscriptionSessionEmpty)
	})
}

func TestIdentityValidate(t *testing.T) {
	t.Parallel()

	identity := &domain.Identity{Email: "player@example.com", DisplayName: "Player One"}
	assert.NoError(t, identity.Validate())

	empty := &domain.Identity{DisplayName: "No Email"}
	assert.ErrorIs(t, empty.Validate(), domain.ErrIdentityEmailEmpty)
}
