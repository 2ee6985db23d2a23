package gemini

import (
	"context"
	"testing"

	"github.com/promptdeck/promptdeck-api/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected int
		wantErr  error
	}{
		{
			name:     "bare integer",
			text:     "73",
			expected: 73,
		},
		{
			name:     "zero",
			text:     "0",
			expected: 0,
		},
		{
			name:     "perfect score",
			text:     "100",
			expected: 100,
		},
		{
			name:     "surrounding whitespace",
			text:     "  85\n",
			expected: 85,
		},
		{
			name:     "trailing period",
			text:     "42.",
			expected: 42,
		},
		{
			name:     "percent sign",
			text:     "90%",
			expected: 90,
		},
		{
			name:    "empty response",
			text:    "",
			wantErr: scoring.ErrInvalidResponse,
		},
		{
			name:    "whitespace only",
			text:    "   \n",
			wantErr: scoring.ErrInvalidResponse,
		},
		{
			name:    "prose instead of a number",
			text:    "The guess is quite close, I would say 80.",
			wantErr: scoring.ErrInvalidResponse,
		},
		{
			name:    "negative grade",
			text:    "-5",
			wantErr: scoring.ErrInvalidResponse,
		},
		{
			name:    "grade above range",
			text:    "150",
			wantErr: scoring.ErrInvalidResponse,
		},
		{
			name:    "decimal grade",
			text:    "72.5",
			wantErr: scoring.ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			grade, err := parseGrade(tt.text)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, grade)
		})
	}
}

func TestBuildUserMessage(t *testing.T) {
	t.Parallel()

	message := buildUserMessage("a cat wearing a top hat", "fancy cat")

	assert.Equal(t,
		"[original prompt]\na cat wearing a top hat\n[user guess]\nfancy cat",
		message)
}

func TestNewGeminiScorerValidation(t *testing.T) {
	t.Parallel()

	t.Run("nil logger", func(t *testing.T) {
		t.Parallel()

		_, err := NewGeminiScorer(context.Background(), nil, validScoringConfig())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logger")
	})

	t.Run("missing API key", func(t *testing.T) {
		t.Parallel()

		cfg := validScoringConfig()
		cfg.GeminiAPIKey = ""

		_, err := NewGeminiScorer(context.Background(), testLogger(), cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, scoring.ErrInvalidConfig)
	})

	t.Run("missing model name", func(t *testing.T) {
		t.Parallel()

		cfg := validScoringConfig()
		cfg.ModelName = ""

		_, err := NewGeminiScorer(context.Background(), testLogger(), cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, scoring.ErrInvalidConfig)
	})
}
