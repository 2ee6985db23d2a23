package payment

import (
	"context"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	checksession "github.com/stripe/stripe-go/v82/checkout/session"
)

// Config carries the Stripe settings needed for subscription checkout.
type Config struct {
	SecretKey  string
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the caller-facing view of a newly created session.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionStatus is the caller-facing view of a verified session.
type SessionStatus struct {
	// Paid reports whether Stripe considers the session settled.
	Paid bool

	// InvoiceID and SubscriptionID identify the billing objects Stripe
	// created for a paid session. Empty when unpaid.
	InvoiceID      string
	SubscriptionID string
}

// Client calls the Stripe API for subscription checkout.
type Client struct {
	cfg Config
}

// NewClient configures the Stripe SDK and returns a checkout client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key cannot be empty")
	}

	if cfg.PriceID == "" {
		return nil, errors.New("stripe price ID cannot be empty")
	}

	stripe.Key = cfg.SecretKey
	return &Client{cfg: cfg}, nil
}

// CreateSession creates a Stripe checkout session for the subscription plan,
// bound to the buyer's email. The returned URL is where the browser should be
// sent to complete payment.
func (c *Client) CreateSession(ctx context.Context, email string) (*CheckoutSession, error) {
	if email == "" {
		return nil, errors.New("buyer email cannot be empty")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(c.cfg.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.cfg.SuccessURL),
		CancelURL:  stripe.String(c.cfg.CancelURL),
	}
	params.Context = ctx

	sess, err := checksession.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

// GetSession retrieves a checkout session by ID and reports whether it was
// paid, along with the invoice and subscription Stripe attached to it.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	if sessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := checksession.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}

	status := &SessionStatus{
		Paid: sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}

	if status.Paid {
		if sess.Invoice != nil {
			status.InvoiceID = sess.Invoice.ID
		}
		if sess.Subscription != nil {
			status.SubscriptionID = sess.Subscription.ID
		}
	}

	return status, nil
}
