package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/promptdeck/promptdeck-api/internal/imagegen"
	"github.com/promptdeck/promptdeck-api/internal/scoring"
	"github.com/promptdeck/promptdeck-api/internal/service"
	"github.com/promptdeck/promptdeck-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Quota and payment gates
	case errors.Is(err, service.ErrQuotaExceeded):
		return http.StatusForbidden

	case errors.Is(err, service.ErrCheckoutNotPaid):
		return http.StatusPaymentRequired

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, imagegen.ErrRejectedPrompt):
		return http.StatusBadRequest

	// Upstream provider failures
	case errors.Is(err, imagegen.ErrGenerationFailed),
		errors.Is(err, imagegen.ErrInvalidResponse),
		errors.Is(err, scoring.ErrTransientFailure),
		errors.Is(err, scoring.ErrInvalidResponse),
		errors.Is(err, scoring.ErrContentBlocked):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrQuotaExceeded):
		return "Card generation quota reached"

	case errors.Is(err, service.ErrCheckoutNotPaid):
		return "Payment was not completed"

	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, imagegen.ErrRejectedPrompt):
		return "The prompt was rejected by the image provider"

	case errors.Is(err, imagegen.ErrGenerationFailed),
		errors.Is(err, imagegen.ErrInvalidResponse):
		return "Image generation is currently unavailable"

	case errors.Is(err, scoring.ErrTransientFailure),
		errors.Is(err, scoring.ErrInvalidResponse),
		errors.Is(err, scoring.ErrContentBlocked):
		return "Guess scoring is currently unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'GenerateCardRequest.Prompt' Error:Field
		// validation for 'Prompt' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "url":
		return "invalid URL format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
