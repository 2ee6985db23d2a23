package domain

import (
	"errors"
	"time"
)

// Subscription-specific validation errors
var (
	// ErrSubscriptionEmailEmpty is returned when the subscriber email is empty.
	ErrSubscriptionEmailEmpty = errors.New("subscription email cannot be empty")

	// ErrSubscriptionSessionEmpty is returned when the checkout session id is empty.
	ErrSubscriptionSessionEmpty = errors.New("subscription checkout session ID cannot be empty")
)

// Subscription records a paid checkout for a user, keyed by email. Its
// presence is what the application treats as "has an active subscription";
// ExpiresAt is stored for bookkeeping but is not consulted when gating
// features, matching the upstream product behavior.
type Subscription struct {
	Email          string    `json:"email"`
	SessionID      string    `json:"session_id"`
	InvoiceID      string    `json:"invoice_id"`
	SubscriptionID string    `json:"subscription_id"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// NewSubscription creates a Subscription for the given user and verified
// checkout session. The expiration is one calendar month after creation.
func NewSubscription(email, sessionID, invoiceID, subscriptionID string) (*Subscription, error) {
	now := time.Now().UTC()

	sub := &Subscription{
		Email:          email,
		SessionID:      sessionID,
		InvoiceID:      invoiceID,
		SubscriptionID: subscriptionID,
		CreatedAt:      now,
		ExpiresAt:      now.AddDate(0, 1, 0),
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}

	return sub, nil
}

// Validate checks if the Subscription has valid data.
func (s *Subscription) Validate() error {
	if s.Email == "" {
		return ErrSubscriptionEmailEmpty
	}

	if s.SessionID == "" {
		return ErrSubscriptionSessionEmpty
	}

	return nil
}
