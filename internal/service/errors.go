package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrQuotaExceeded indicates the user has generated their full allowance
	// of cards. Returned before any external call is made.
	// API layer should map this to HTTP 403 Forbidden.
	ErrQuotaExceeded = errors.New("card generation quota exceeded")

	// ErrCheckoutNotPaid indicates a checkout session was verified but the
	// processor does not report it as paid. Nothing is recorded.
	// API layer should map this to HTTP 402 Payment Required.
	ErrCheckoutNotPaid = errors.New("checkout session is not paid")
)
