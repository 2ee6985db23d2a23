package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/promptdeck/promptdeck-api/internal/config"
	"github.com/promptdeck/promptdeck-api/internal/scoring"
	"google.golang.org/genai"
)

// systemInstruction frames every scoring call. The model is asked for a bare
// integer so the response can be parsed without a JSON schema.
const systemInstruction = `You grade how semantically close a guess is to the original prompt that was used to generate an image. Respond with a single integer between 0 and 100, where 100 means the guess captures the prompt exactly and 0 means it is entirely unrelated. Respond with the integer only, no other text.`

// GeminiScorer implements the scoring.Scorer interface using
// Google's Gemini API to grade guesses against flashcard prompts.
type GeminiScorer struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains scoring-specific configuration
	config config.ScoringConfig

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// NewGeminiScorer creates a new instance of GeminiScorer with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - config: Scoring configuration containing API key, model name, and retry settings
//
// Returns:
//   - A properly initialized GeminiScorer or an error if initialization fails
func NewGeminiScorer(ctx context.Context, logger *slog.Logger, config config.ScoringConfig) (*GeminiScorer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", scoring.ErrInvalidConfig)
	}

	if config.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", scoring.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			scoring.ErrInvalidConfig, err)
	}

	return &GeminiScorer{
		logger: logger.With(slog.String("component", "gemini_scorer")),
		config: config,
		client: client,
		model:  config.ModelName,
	}, nil
}

// Ensure GeminiScorer implements scoring.Scorer interface
var _ scoring.Scorer = (*GeminiScorer)(nil)

// Score implements scoring.Scorer.Score
// It sends the prompt/guess pair to the Gemini API with retry logic and
// parses the returned integer grade.
func (g *GeminiScorer) Score(ctx context.Context, prompt, guess string) (int, error) {
	if prompt == "" {
		return 0, ErrEmptyPrompt
	}
	if guess == "" {
		return 0, ErrEmptyGuess
	}

	grade, err := g.callGeminiWithRetry(ctx, buildUserMessage(prompt, guess))
	if err != nil {
		g.logger.ErrorContext(ctx, "Guess scoring failed",
			"error", err)
		return 0, err
	}

	g.logger.InfoContext(ctx, "Guess scored successfully",
		"grade", grade)
	return grade, nil
}

// buildUserMessage produces the labeled message the model grades. Both texts
// are bracket-labeled so the model cannot confuse which is which.
func buildUserMessage(prompt, guess string) string {
	return fmt.Sprintf("[original prompt]\n%s\n[user guess]\n%s", prompt, guess)
}

// callGeminiWithRetry makes a call to the Gemini API with exponential backoff retry logic.
//
// It attempts to call the API up to config.MaxRetries times, using exponential backoff
// with jitter between retries for transient errors. Permanent errors (like content being
// blocked by safety filters or an unparseable grade) are returned immediately.
func (g *GeminiScorer) callGeminiWithRetry(ctx context.Context, message string) (int, error) {
	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	attempt := 0
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Validate retry configuration
	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "Invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}

	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "Invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
	}

	for attempt <= maxRetries {
		attemptNum := attempt + 1 // For logging (1-based)
		g.logger.InfoContext(ctx, "Making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		var grade int
		var isTransientError bool

		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(message), genConfig)
		if err != nil {
			// Assume transient error by default
			isTransientError = true
			g.logger.ErrorContext(ctx, "Gemini API call error",
				"error", err,
				"attempt", attemptNum)
		} else if resp == nil || len(resp.Candidates) == 0 {
			err = fmt.Errorf("%w: no content generated", scoring.ErrInvalidResponse)
		} else if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
			err = fmt.Errorf("%w: response blocked by safety filters", scoring.ErrContentBlocked)
		} else {
			grade, err = parseGrade(resp.Text())
		}

		if err == nil {
			g.logger.InfoContext(ctx, "Gemini API call successful",
				"attempt", attemptNum)
			return grade, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		// Permanent errors are returned immediately
		if errors.Is(err, scoring.ErrContentBlocked) || errors.Is(err, scoring.ErrInvalidResponse) {
			g.logger.WarnContext(ctx, "Permanent error occurred, not retrying",
				"error_type", err)
			return 0, err
		}

		if attempt >= maxRetries {
			g.logger.WarnContext(ctx, "Maximum retry attempts reached",
				"max_retries", maxRetries)
			return 0, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				scoring.ErrTransientFailure, maxRetries)
		}

		if !isTransientError {
			g.logger.WarnContext(ctx, "Non-transient error occurred, not retrying")
			return 0, err
		}

		// Exponential backoff with jitter:
		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.InfoContext(ctx, "Retrying after delay",
			"attempt", attemptNum,
			"delay_seconds", delay.Seconds())

		select {
		case <-time.After(delay):
			// Continue to next retry
		case <-ctx.Done():
			g.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return 0, fmt.Errorf("%w: %v", scoring.ErrTransientFailure, ctx.Err())
		}

		attempt++
	}

	return 0, fmt.Errorf("%w: failed after %d attempts",
		scoring.ErrTransientFailure, attempt)
}

// parseGrade extracts the integer grade from a model response. The model is
// instructed to answer with a bare integer, but responses occasionally carry
// whitespace, a trailing period, or a percent sign, so those are tolerated.
func parseGrade(text string) (int, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimSuffix(cleaned, ".")
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty response text", scoring.ErrInvalidResponse)
	}

	grade, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: expected integer grade, got %q", scoring.ErrInvalidResponse, text)
	}

	if grade < 0 || grade > 100 {
		return 0, fmt.Errorf("%w: grade %d outside [0, 100]", scoring.ErrInvalidResponse, grade)
	}

	return grade, nil
}
