package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/promptdeck/promptdeck-api/internal/api/shared"
	"github.com/promptdeck/promptdeck-api/internal/platform/logger"
	"github.com/promptdeck/promptdeck-api/internal/service"
)

// CheckoutHandler handles subscription checkout HTTP requests
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *slog.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CheckoutHandler")
	}

	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger.With(slog.String("component", "checkout_handler")),
	}
}

// CreateSession handles POST /checkout/sessions requests
// It creates a processor checkout session and returns the redirect URL.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		log.Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	session, err := h.checkoutService.StartCheckout(r.Context(), identity.Email)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			"Failed to start checkout", err)
		return
	}

	log.Debug("checkout session created", slog.String("session_id", session.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, CheckoutSessionResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	})
}

// VerifySession handles GET /checkout/sessions/{id} requests
// It verifies the session after the buyer returns; a paid session records
// the subscription, anything else reports failure and records nothing.
func (h *CheckoutHandler) VerifySession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		log.Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		log.Warn("session ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Session ID is required")
		return
	}

	sub, err := h.checkoutService.VerifyCheckout(r.Context(), identity.Email, sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Info("subscription verified and recorded",
		slog.String("session_id", sessionID))
	shared.RespondWithJSON(w, r, http.StatusOK, CheckoutVerifyResponse{
		Subscribed: true,
		ExpiresAt:  sub.ExpiresAt,
	})
}
