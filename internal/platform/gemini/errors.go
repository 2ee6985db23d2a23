package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyPrompt is returned when the original prompt is empty.
	ErrEmptyPrompt = errors.New("original prompt cannot be empty")

	// ErrEmptyGuess is returned when the user's guess is empty.
	ErrEmptyGuess = errors.New("guess cannot be empty")
)
