package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/promptdeck/promptdeck-api/internal/config"
	"github.com/promptdeck/promptdeck-api/internal/platform/gemini"
	"github.com/promptdeck/promptdeck-api/internal/platform/openai"
	"github.com/promptdeck/promptdeck-api/internal/platform/payment"
	"github.com/promptdeck/promptdeck-api/internal/platform/postgres"
	"github.com/promptdeck/promptdeck-api/internal/platform/s3store"
	"github.com/promptdeck/promptdeck-api/internal/service"
	"github.com/promptdeck/promptdeck-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	cardStore         store.FlashCardStore
	userCardStore     store.UserCardStore
	guessStore        store.GuessStore
	subscriptionStore store.SubscriptionStore

	// Service interfaces
	cardService     service.CardService
	guessService    service.GuessService
	profileService  service.ProfileService
	checkoutService service.CheckoutService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.cardStore = postgres.NewFlashCardStore(db, logger)
	app.userCardStore = postgres.NewUserCardStore(db, logger)
	app.guessStore = postgres.NewGuessStore(db, logger)
	app.subscriptionStore = postgres.NewSubscriptionStore(db, logger)

	// Create the image generation client
	generator, err := openai.NewClient(
		logger.With("component", "image_generator"),
		cfg.ImageGen,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image generator: %w", err)
	}

	// Create the durable image store
	objects, err := s3store.NewStore(
		ctx,
		logger.With("component", "object_store"),
		cfg.ObjectStore,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object store: %w", err)
	}

	// Create the LLM scorer for guess grading
	scorer, err := gemini.NewGeminiScorer(
		ctx,
		logger.With("component", "guess_scorer"),
		cfg.Scoring,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize guess scorer: %w", err)
	}
	logger.Info("Guess scorer initialized successfully",
		slog.String("model", cfg.Scoring.ModelName))

	// Create the checkout provider
	checkout, err := payment.NewClient(payment.Config{
		SecretKey:  cfg.Payment.StripeSecretKey,
		PriceID:    cfg.Payment.PriceID,
		SuccessURL: cfg.Payment.SuccessURL,
		CancelURL:  cfg.Payment.CancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize checkout provider: %w", err)
	}

	// Initialize card service
	app.cardService, err = service.NewCardService(
		db,
		app.cardStore,
		app.userCardStore,
		generator,
		objects,
		cfg.Cards.GenerationQuota,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	// Initialize guess service
	app.guessService, err = service.NewGuessService(
		app.cardStore,
		app.guessStore,
		scorer,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create guess service: %w", err)
	}

	// Initialize profile service
	app.profileService, err = service.NewProfileService(
		app.guessStore,
		app.subscriptionStore,
		cfg.Cards,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}

	// Initialize checkout service
	app.checkoutService, err = service.NewCheckoutService(
		checkout,
		app.subscriptionStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection",
				slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
