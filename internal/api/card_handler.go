package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/promptdeck/promptdeck-api/internal/api/shared"
	"github.com/promptdeck/promptdeck-api/internal/platform/logger"
	"github.com/promptdeck/promptdeck-api/internal/redact"
	"github.com/promptdeck/promptdeck-api/internal/service"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /cards requests
// The card wall is public; an empty collection returns an empty array.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	limit := parseQueryInt(r, "limit", 50)
	offset := parseQueryInt(r, "offset", 0)

	cards, err := h.cardService.ListCards(r.Context(), limit, offset)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			"Failed to list cards", err)
		return
	}

	response := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, cardToResponse(card))
	}

	log.Debug("listed cards", slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GenerateCard handles POST /cards/generate requests
// It checks the caller's quota and asks the image provider to render the
// prompt. The result is a pending card held by the client until saved.
func (h *CardHandler) GenerateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		log.Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req GenerateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			SanitizeValidationError(err), err)
		return
	}

	imageURL, err := h.cardService.GenerateImage(r.Context(), identity.Email, req.Prompt)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("generated pending card image")
	shared.RespondWithJSON(w, r, http.StatusOK, GenerateCardResponse{
		ImageURL: imageURL,
		Prompt:   req.Prompt,
	})
}

// SaveCard handles POST /cards requests
// It persists a previously generated image as a shared flashcard.
func (h *CardHandler) SaveCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		log.Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SaveCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			SanitizeValidationError(err), err)
		return
	}

	card, err := h.cardService.SaveCard(r.Context(), identity.Email, req.Prompt, req.ImageURL)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("saved card", slog.String("card_id", card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}

// parseQueryInt reads an integer query parameter, falling back to def when
// absent or unparseable.
func parseQueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
