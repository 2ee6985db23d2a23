package openai

import "errors"

// Error definitions for the openai package.
var (
	// ErrEmptyPrompt is returned when the generation prompt is empty.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
