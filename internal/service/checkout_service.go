package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/promptdeck/promptdeck-api/internal/platform/logger"
	"github.com/promptdeck/promptdeck-api/internal/platform/payment"
	"github.com/promptdeck/promptdeck-api/internal/store"
)

// CheckoutProvider is the slice of the payment client the checkout flow
// needs, extracted so tests can substitute a fake.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, email string) (*payment.CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*payment.SessionStatus, error)
}

// checkoutState names the stages of the checkout flow. The flow is strictly
// linear: a subscription can only be recorded from the verified-paid state,
// so recording an unverified session is unrepresentable.
type checkoutState int

const (
	checkoutSessionCreated checkoutState = iota
	checkoutVerifiedPaid
	checkoutVerifiedUnpaid
	checkoutRecorded
)

// String returns the state name for logging.
func (s checkoutState) String() string {
	switch s {
	case checkoutSessionCreated:
		return "session_created"
	case checkoutVerifiedPaid:
		return "verified_paid"
	case checkoutVerifiedUnpaid:
		return "verified_unpaid"
	case checkoutRecorded:
		return "recorded"
	default:
		return "unknown"
	}
}

// CheckoutService provides subscription purchase operations.
type CheckoutService interface {
	// StartCheckout creates a processor checkout session for the caller.
	// The returned URL is where the browser completes payment; the session
	// ID comes back on the success URL for verification.
	StartCheckout(ctx context.Context, email string) (*payment.CheckoutSession, error)

	// VerifyCheckout checks the session's payment status after the buyer
	// returns. A paid session records the subscription (one calendar month);
	// any other status records nothing and returns ErrCheckoutNotPaid.
	VerifyCheckout(ctx context.Context, email, sessionID string) (*domain.Subscription, error)
}

// checkoutServiceImpl implements the CheckoutService interface
type checkoutServiceImpl struct {
	provider CheckoutProvider
	subs     store.SubscriptionStore
	logger   *slog.Logger
}

// NewCheckoutService creates a new CheckoutService.
// It returns an error if any of the required dependencies are nil.
func NewCheckoutService(
	provider CheckoutProvider,
	subs store.SubscriptionStore,
	logger *slog.Logger,
) (CheckoutService, error) {
	if provider == nil {
		return nil, fmt.Errorf("checkout provider cannot be nil")
	}
	if subs == nil {
		return nil, fmt.Errorf("subscription store cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &checkoutServiceImpl{
		provider: provider,
		subs:     subs,
		logger:   logger.With(slog.String("component", "checkout_service")),
	}, nil
}

// StartCheckout implements CheckoutService.StartCheckout
func (s *checkoutServiceImpl) StartCheckout(ctx context.Context, email string) (*payment.CheckoutSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.provider.CreateSession(ctx, email)
	if err != nil {
		log.Error("failed to create checkout session",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	log.Info("checkout session created",
		slog.String("session_id", session.ID),
		slog.String("state", checkoutSessionCreated.String()))
	return session, nil
}

// VerifyCheckout implements CheckoutService.VerifyCheckout
// It walks the checkout state machine: session_created → verified_paid or
// verified_unpaid → recorded. Verification is attempted once; an unpaid
// result is final for this call.
func (s *checkoutServiceImpl) VerifyCheckout(ctx context.Context, email, sessionID string) (*domain.Subscription, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	state := checkoutSessionCreated
	var status *payment.SessionStatus
	var sub *domain.Subscription

	for {
		switch state {
		case checkoutSessionCreated:
			var err error
			status, err = s.provider.GetSession(ctx, sessionID)
			if err != nil {
				log.Error("failed to retrieve checkout session",
					slog.String("error", err.Error()),
					slog.String("session_id", sessionID))
				return nil, fmt.Errorf("failed to verify checkout session: %w", err)
			}

			if status.Paid {
				state = checkoutVerifiedPaid
			} else {
				state = checkoutVerifiedUnpaid
			}
			log.Debug("checkout session verified",
				slog.String("session_id", sessionID),
				slog.String("state", state.String()))

		case checkoutVerifiedUnpaid:
			log.Info("checkout session not paid, nothing recorded",
				slog.String("session_id", sessionID))
			return nil, ErrCheckoutNotPaid

		case checkoutVerifiedPaid:
			var err error
			sub, err = domain.NewSubscription(email, sessionID, status.InvoiceID, status.SubscriptionID)
			if err != nil {
				return nil, fmt.Errorf("invalid subscription data: %w", err)
			}

			if err := s.subs.Upsert(ctx, sub); err != nil {
				log.Error("failed to record subscription",
					slog.String("error", err.Error()),
					slog.String("session_id", sessionID))
				return nil, fmt.Errorf("failed to record subscription: %w", err)
			}
			state = checkoutRecorded

		case checkoutRecorded:
			log.Info("subscription recorded",
				slog.String("session_id", sessionID),
				slog.String("state", state.String()))
			return sub, nil
		}
	}
}
