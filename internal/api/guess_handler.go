package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/promptdeck/promptdeck-api/internal/api/shared"
	"github.com/promptdeck/promptdeck-api/internal/platform/logger"
	"github.com/promptdeck/promptdeck-api/internal/redact"
	"github.com/promptdeck/promptdeck-api/internal/service"
)

// GuessHandler handles guess-related HTTP requests
type GuessHandler struct {
	guessService service.GuessService
	logger       *slog.Logger
}

// NewGuessHandler creates a new GuessHandler
func NewGuessHandler(guessService service.GuessService, logger *slog.Logger) *GuessHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GuessHandler")
	}

	return &GuessHandler{
		guessService: guessService,
		logger:       logger.With(slog.String("component", "guess_handler")),
	}
}

// SubmitGuess handles POST /cards/{id}/guess requests
// It grades the caller's guess against the card's original prompt and
// records the result.
func (h *GuessHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		log.Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	pathCardID := chi.URLParam(r, "id")
	if pathCardID == "" {
		log.Warn("card ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Card ID is required")
		return
	}

	cardID, err := uuid.Parse(pathCardID)
	if err != nil {
		log.Warn("invalid card ID format", slog.String("card_id", pathCardID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return
	}

	var req GuessRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("card_id", cardID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			SanitizeValidationError(err), err)
		return
	}

	guessed, err := h.guessService.SubmitGuess(r.Context(), identity.Email, cardID, req.Guess)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("guess graded",
		slog.String("card_id", cardID.String()),
		slog.Int("grade", guessed.Grade))
	shared.RespondWithJSON(w, r, http.StatusCreated, guessToResponse(guessed))
}

// ListGuesses handles GET /guesses requests
// It returns the caller's guessed cards, newest first.
func (h *GuessHandler) ListGuesses(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		log.Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	guesses, err := h.guessService.ListGuesses(r.Context(), identity.Email)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			"Failed to list guesses", err)
		return
	}

	response := make([]GuessResponse, 0, len(guesses))
	for _, guess := range guesses {
		response = append(response, guessToResponse(guess))
	}

	log.Debug("listed guesses", slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
