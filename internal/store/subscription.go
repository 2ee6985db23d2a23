package store

import (
	"context"

	"github.com/promptdeck/promptdeck-api/internal/domain"
)

// SubscriptionStore defines persistence for subscription records, keyed by
// subscriber email.
type SubscriptionStore interface {
	// Upsert creates or overwrites the subscription record for the
	// subscription's email. Overwriting matches the upstream behavior of
	// re-verifying a checkout session.
	Upsert(ctx context.Context, sub *domain.Subscription) error

	// GetByEmail retrieves the subscription record for the given email.
	// Returns ErrSubscriptionNotFound if none exists.
	GetByEmail(ctx context.Context, email string) (*domain.Subscription, error)
}
