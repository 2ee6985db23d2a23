package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	jwtvalidator "github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/promptdeck/promptdeck-api/internal/api/shared"
	"github.com/promptdeck/promptdeck-api/internal/config"
	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/promptdeck/promptdeck-api/internal/redact"
)

// CustomClaims carries the identity provider's profile claims. The provider
// owns registration and credentials; this service only reads the verified
// token payload.
type CustomClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Validate implements the validator.CustomClaims interface. Tokens without
// an email claim are rejected because every record in this service is keyed
// by subscriber email.
func (c *CustomClaims) Validate(_ context.Context) error {
	if c.Email == "" {
		return fmt.Errorf("token missing required email claim")
	}
	return nil
}

// NewAuthMiddleware builds the JWT validation middleware for the configured
// identity provider. It verifies RS256 signatures against the provider's
// JWKS endpoint and stores the caller's identity in the request context.
func NewAuthMiddleware(cfg config.AuthConfig) (func(http.Handler) http.Handler, error) {
	issuerURL, err := url.Parse(cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse issuer URL: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	validator, err := jwtvalidator.New(
		provider.KeyFunc,
		jwtvalidator.RS256,
		issuerURL.String(),
		[]string{cfg.Audience},
		jwtvalidator.WithCustomClaims(func() jwtvalidator.CustomClaims {
			return &CustomClaims{}
		}),
		jwtvalidator.WithAllowedClockSkew(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up JWT validator: %w", err)
	}

	jwtMiddleware := jwtmiddleware.New(
		validator.ValidateToken,
		jwtmiddleware.WithErrorHandler(handleAuthError),
	)

	return func(next http.Handler) http.Handler {
		return jwtMiddleware.CheckJWT(identityExtractor(next))
	}, nil
}

// identityExtractor copies the validated claims into a domain.Identity so
// handlers never touch the JWT library's context types.
func identityExtractor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*jwtvalidator.ValidatedClaims)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		customClaims, ok := claims.CustomClaims.(*CustomClaims)
		if !ok || customClaims.Email == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Token missing identity claims")
			return
		}

		identity := &domain.Identity{
			Email:       customClaims.Email,
			DisplayName: customClaims.Name,
			AvatarURL:   customClaims.Picture,
		}

		ctx := shared.WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// handleAuthError translates token validation failures into the standard
// error response shape. The raw validation error is logged, redacted, and
// never returned to the client.
func handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Debug("token validation failed",
		slog.String("error", redact.Error(err)),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or missing token")
}
