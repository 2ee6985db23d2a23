package api

import (
	"log/slog"
	"net/http"

	"github.com/promptdeck/promptdeck-api/internal/api/shared"
	"github.com/promptdeck/promptdeck-api/internal/platform/logger"
	"github.com/promptdeck/promptdeck-api/internal/service"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	profileService service.ProfileService
	logger         *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService service.ProfileService, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProfileHandler")
	}

	return &ProfileHandler{
		profileService: profileService,
		logger:         logger.With(slog.String("component", "profile_handler")),
	}
}

// GetProfile handles GET /profile requests
// It returns the caller's guessed cards, recomputed total points, and
// subscription status.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		log.Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), identity)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			"Failed to load profile", err)
		return
	}

	guessed := make([]GuessResponse, 0, len(profile.GuessedCards))
	for _, guess := range profile.GuessedCards {
		guessed = append(guessed, guessToResponse(guess))
	}

	log.Debug("loaded profile",
		slog.Int("guess_count", len(guessed)),
		slog.Bool("subscribed", profile.Subscribed))
	shared.RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
		Email:        profile.Identity.Email,
		DisplayName:  profile.Identity.DisplayName,
		AvatarURL:    profile.Identity.AvatarURL,
		GuessedCards: guessed,
		TotalPoints:  profile.TotalPoints,
		Subscribed:   profile.Subscribed,
		Plan:         profile.Plan,
	})
}
