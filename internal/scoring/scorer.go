package scoring

import "context"

// Scorer defines the interface for grading a user's guess against the
// original prompt of a flashcard. This interface serves as a boundary
// between the application core and external AI/LLM services, following
// the hexagonal architecture pattern.
type Scorer interface {
	// Score grades how semantically close the guess is to the original
	// prompt, on a 0-100 scale where 100 is a perfect match.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - prompt: The original prompt the flashcard image was generated from
	//   - guess: The user's guess at that prompt
	//
	// Returns:
	//   - An integer grade in [0, 100]
	//   - An error if scoring fails for any reason (see errors.go for specific types)
	Score(ctx context.Context, prompt, guess string) (int, error)
}
