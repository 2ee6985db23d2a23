package scoring

import "errors"

// Common errors returned by the scoring package
var (
	// ErrScoringFailed is returned when guess grading fails for any general reason
	ErrScoringFailed = errors.New("failed to score guess against prompt")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during guess scoring")

	// ErrInvalidConfig is returned when the scorer configuration is invalid
	ErrInvalidConfig = errors.New("invalid scorer configuration")
)
