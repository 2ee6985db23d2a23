package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/promptdeck/promptdeck-api/internal/api"
	apiMiddleware "github.com/promptdeck/promptdeck-api/internal/api/middleware"
	"github.com/rs/cors"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() (http.Handler, error) {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling
	if app.config.Server.AllowedOrigin != "" {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: []string{app.config.Server.AllowedOrigin},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}).Handler)
	}

	// Token verification is delegated to the identity provider's JWKS endpoint.
	authMiddleware, err := apiMiddleware.NewAuthMiddleware(app.config.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth middleware: %w", err)
	}

	// Create API handlers using the application's services
	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	guessHandler := api.NewGuessHandler(app.guessService, app.logger)
	profileHandler := api.NewProfileHandler(app.profileService, app.logger)
	checkoutHandler := api.NewCheckoutHandler(app.checkoutService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// The card wall is public so visitors can browse before signing in.
		r.Get("/cards", cardHandler.ListCards)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			// Card endpoints
			r.Post("/cards/generate", cardHandler.GenerateCard)
			r.Post("/cards", cardHandler.SaveCard)

			// Guess endpoints
			r.Post("/cards/{id}/guess", guessHandler.SubmitGuess)
			r.Get("/guesses", guessHandler.ListGuesses)

			// Profile endpoint
			r.Get("/profile", profileHandler.GetProfile)

			// Checkout endpoints
			r.Post("/checkout/sessions", checkoutHandler.CreateSession)
			r.Get("/checkout/sessions/{id}", checkoutHandler.VerifySession)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r, nil
}
