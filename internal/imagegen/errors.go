package imagegen

import "errors"

// Common errors returned by the imagegen package
var (
	// ErrGenerationFailed is returned when image generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate image from prompt")

	// ErrInvalidResponse is returned when the provider response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from image provider")

	// ErrRejectedPrompt is returned when the provider refuses the prompt,
	// typically due to content policy
	ErrRejectedPrompt = errors.New("prompt rejected by image provider")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid image generator configuration")
)
