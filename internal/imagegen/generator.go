package imagegen

import "context"

// Generator defines the interface for turning a text prompt into an image.
// This interface serves as a boundary between the application core and the
// external image-generation service, following the hexagonal architecture
// pattern.
type Generator interface {
	// Generate creates a single image from the prompt and returns the URL
	// where the provider hosts it. Provider-hosted URLs are short-lived;
	// callers that need durability must fetch and re-store the image.
	Generate(ctx context.Context, prompt string) (string, error)

	// Fetch downloads the image bytes from a provider URL, returning the
	// body and its content type.
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}
