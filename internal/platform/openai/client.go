package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/promptdeck/promptdeck-api/internal/config"
	"github.com/promptdeck/promptdeck-api/internal/imagegen"
)

const (
	defaultBaseURL = "https://api.openai.com"
	imageSize      = "1024x1024"

	// maxImageBytes caps downloads so a misbehaving provider cannot exhaust
	// memory. Generated PNGs at 1024x1024 stay well under this.
	maxImageBytes = 8 << 20
)

// Client implements the imagegen.Generator interface using
// the OpenAI images API.
type Client struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains image-generation configuration
	config config.ImageGenConfig

	// httpClient is used for all outbound requests
	httpClient *http.Client

	// baseURL is the API endpoint, overridable for tests
	baseURL string
}

// NewClient creates a new instance of Client with the provided dependencies.
// If logger is nil, an error is returned; the API key and model name must be
// set in the configuration.
func NewClient(logger *slog.Logger, cfg config.ImageGenConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", imagegen.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", imagegen.ErrInvalidConfig)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		logger: logger.With(slog.String("component", "openai_client")),
		config: cfg,
		httpClient: &http.Client{
			// Image generation is slow; this bounds a single provider call.
			Timeout: 120 * time.Second,
		},
		baseURL: baseURL,
	}, nil
}

// Ensure Client implements imagegen.Generator interface
var _ imagegen.Generator = (*Client)(nil)

// generationRequest is the wire format of the images endpoint request.
type generationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

// generationResponse is the wire format of the images endpoint response.
type generationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Generate implements imagegen.Generator.Generate
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	body, err := json.Marshal(generationRequest{
		Model:  c.config.ModelName,
		Prompt: prompt,
		N:      1,
		Size:   imageSize,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	endpoint := c.baseURL + "/v1/images/generations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	c.logger.InfoContext(ctx, "Requesting image generation",
		"model", c.config.ModelName,
		"prompt_length", len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", imagegen.ErrGenerationFailed, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.ErrorContext(ctx, "Failed to close response body", "error", err)
		}
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", imagegen.ErrInvalidResponse, err)
	}

	var parsed generationResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", imagegen.ErrInvalidResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		// 400s carry a content policy or validation message; everything else
		// is treated as a general provider failure.
		message := ""
		if parsed.Error != nil {
			message = parsed.Error.Message
		}

		c.logger.WarnContext(ctx, "Image generation rejected",
			"status", resp.StatusCode,
			"provider_message", message)

		if resp.StatusCode == http.StatusBadRequest {
			return "", fmt.Errorf("%w: %s", imagegen.ErrRejectedPrompt, message)
		}
		return "", fmt.Errorf("%w: status %d: %s", imagegen.ErrGenerationFailed, resp.StatusCode, message)
	}

	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return "", fmt.Errorf("%w: no image URL in response", imagegen.ErrInvalidResponse)
	}

	c.logger.InfoContext(ctx, "Image generated successfully")
	return parsed.Data[0].URL, nil
}

// Fetch implements imagegen.Generator.Fetch
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	if url == "" {
		return nil, "", fmt.Errorf("%w: image URL cannot be empty", imagegen.ErrInvalidConfig)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build image fetch request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", imagegen.ErrGenerationFailed, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.ErrorContext(ctx, "Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: image fetch returned status %d",
			imagegen.ErrGenerationFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to read image body: %v",
			imagegen.ErrInvalidResponse, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	c.logger.DebugContext(ctx, "Fetched image bytes",
		"size", len(data),
		"content_type", contentType)

	return data, contentType, nil
}
