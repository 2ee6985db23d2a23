package gemini

import (
	"io"
	"log/slog"

	"github.com/promptdeck/promptdeck-api/internal/config"
)

// testLogger returns a logger that discards output, keeping test runs quiet.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// validScoringConfig returns a config that passes constructor validation.
func validScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		GeminiAPIKey:      "test-api-key",
		ModelName:         "gemini-2.0-flash",
		MaxRetries:        3,
		RetryDelaySeconds: 2,
	}
}
