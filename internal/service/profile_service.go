package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/promptdeck/promptdeck-api/internal/config"
	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/promptdeck/promptdeck-api/internal/platform/logger"
	"github.com/promptdeck/promptdeck-api/internal/store"
)

// Plan describes the subscription pitch shown on the profile screen.
type Plan struct {
	MonthlyGenerations int    `json:"monthly_generations"`
	PriceLabel         string `json:"price_label"`
}

// Profile aggregates everything the profile screen shows for one user.
type Profile struct {
	Identity     domain.Identity       `json:"identity"`
	GuessedCards []*domain.GuessedCard `json:"guessed_cards"`
	TotalPoints  float64               `json:"total_points"`
	Subscribed   bool                  `json:"subscribed"`
	Plan         Plan                  `json:"plan"`
}

// ProfileService assembles the caller's profile view.
type ProfileService interface {
	// GetProfile returns the caller's guessed cards, recomputed total
	// points, and whether a subscription record exists for their email.
	GetProfile(ctx context.Context, identity *domain.Identity) (*Profile, error)
}

// profileServiceImpl implements the ProfileService interface
type profileServiceImpl struct {
	guesses store.GuessStore
	subs    store.SubscriptionStore
	plan    Plan
	logger  *slog.Logger
}

// NewProfileService creates a new ProfileService.
// It returns an error if any of the required dependencies are nil.
func NewProfileService(
	guesses store.GuessStore,
	subs store.SubscriptionStore,
	cards config.CardsConfig,
	logger *slog.Logger,
) (ProfileService, error) {
	if guesses == nil {
		return nil, fmt.Errorf("guess store cannot be nil")
	}
	if subs == nil {
		return nil, fmt.Errorf("subscription store cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &profileServiceImpl{
		guesses: guesses,
		subs:    subs,
		plan: Plan{
			MonthlyGenerations: cards.SubscriberGenerations,
			PriceLabel:         cards.PlanPriceLabel,
		},
		logger: logger.With(slog.String("component", "profile_service")),
	}, nil
}

// GetProfile implements ProfileService.GetProfile
// Total points are recomputed from the stored guesses on every call rather
// than being cached, so the value is always consistent with the rows.
func (s *profileServiceImpl) GetProfile(ctx context.Context, identity *domain.Identity) (*Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if identity == nil {
		return nil, fmt.Errorf("identity cannot be nil")
	}
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	guesses, err := s.guesses.ListByOwner(ctx, identity.Email)
	if err != nil {
		log.Error("failed to load guessed cards", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load guessed cards: %w", err)
	}

	total, err := s.guesses.SumPointsByOwner(ctx, identity.Email)
	if err != nil {
		log.Error("failed to sum points", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute total points: %w", err)
	}

	subscribed := true
	if _, err := s.subs.GetByEmail(ctx, identity.Email); err != nil {
		if !errors.Is(err, store.ErrSubscriptionNotFound) {
			log.Error("failed to load subscription", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to load subscription: %w", err)
		}
		subscribed = false
	}

	return &Profile{
		Identity:     *identity,
		GuessedCards: guesses,
		TotalPoints:  total,
		Subscribed:   subscribed,
		Plan:         s.plan,
	}, nil
}
