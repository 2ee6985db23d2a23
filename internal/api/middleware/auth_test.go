package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	jwtvalidator "github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
	"github.com/promptdeck/promptdeck-api/internal/api/shared"
	"github.com/promptdeck/promptdeck-api/internal/config"
	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomClaimsValidate(t *testing.T) {
	t.Parallel()

	t.Run("email present", func(t *testing.T) {
		t.Parallel()

		claims := &CustomClaims{Email: "player@example.com", Name: "Player One"}
		assert.NoError(t, claims.Validate(context.Background()))
	})

	t.Run("missing email rejected", func(t *testing.T) {
		t.Parallel()

		claims := &CustomClaims{Name: "No Email"}
		assert.Error(t, claims.Validate(context.Background()))
	})
}

// claimsRequest builds a request whose context carries validated claims the
// way the JWT middleware leaves them after signature verification.
func claimsRequest(t *testing.T, claims *jwtvalidator.ValidatedClaims) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	if claims != nil {
		ctx := context.WithValue(req.Context(), jwtmiddleware.ContextKey{}, claims)
		req = req.WithContext(ctx)
	}
	return req
}

func TestIdentityExtractor(t *testing.T) {
	t.Parallel()

	t.Run("copies claims into identity", func(t *testing.T) {
		t.Parallel()

		var identity *domain.Identity
		handler := identityExtractor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ = shared.IdentityFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := claimsRequest(t, &jwtvalidator.ValidatedClaims{
			CustomClaims: &CustomClaims{
				Email:   "player@example.com",
				Name:    "Player One",
				Picture: "https://cdn.example.com/avatar.png",
			},
		})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, identity)
		assert.Equal(t, "player@example.com", identity.Email)
		assert.Equal(t, "Player One", identity.DisplayName)
		assert.Equal(t, "https://cdn.example.com/avatar.png", identity.AvatarURL)
	})

	t.Run("missing claims returns 401", func(t *testing.T) {
		t.Parallel()

		handler := identityExtractor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not be reached without claims")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, claimsRequest(t, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("claims without email returns 401", func(t *testing.T) {
		t.Parallel()

		handler := identityExtractor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not be reached without an email claim")
		}))

		req := claimsRequest(t, &jwtvalidator.ValidatedClaims{
			CustomClaims: &CustomClaims{Name: "No Email"},
		})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

// testIssuer is a local identity provider for middleware tests. It serves a
// JWKS document for a generated RSA key and signs tokens with that key.
type testIssuer struct {
	key    *rsa.PrivateKey
	server *httptest.Server
}

func newTestIssuer(t *testing.T) *testIssuer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	issuer := &testIssuer{key: key}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		doc := map[string]string{
			"issuer":   issuer.url(),
			"jwks_uri": issuer.server.URL + "/.well-known/jwks.json",
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			t.Errorf("failed to encode discovery document: %v", err)
		}
	})
	mux.HandleFunc("/.well-known/jwks.json", func(w http.ResponseWriter, r *http.Request) {
		jwks := map[string]interface{}{
			"keys": []map[string]string{{
				"kty": "RSA",
				"use": "sig",
				"alg": "RS256",
				"kid": "test-key",
				"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString([]byte{0x01, 0x00, 0x01}),
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(jwks); err != nil {
			t.Errorf("failed to encode JWKS: %v", err)
		}
	})

	issuer.server = httptest.NewServer(mux)
	t.Cleanup(issuer.server.Close)
	return issuer
}

// url returns the issuer URL with the trailing slash the iss claim carries.
func (i *testIssuer) url() string {
	return i.server.URL + "/"
}

func (i *testIssuer) signToken(t *testing.T, audience string, claims jwt.MapClaims) string {
	t.Helper()

	now := time.Now()
	claims["iss"] = i.url()
	claims["aud"] = audience
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(time.Hour).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-key"

	signed, err := token.SignedString(i.key)
	require.NoError(t, err)
	return signed
}

func TestAuthMiddlewareRoundTrip(t *testing.T) {
	t.Parallel()

	const audience = "https://api.example.com"

	issuer := newTestIssuer(t)
	middleware, err := NewAuthMiddleware(config.AuthConfig{
		IssuerURL: issuer.url(),
		Audience:  audience,
	})
	require.NoError(t, err)

	t.Run("valid token reaches handler with identity", func(t *testing.T) {
		t.Parallel()

		var identity *domain.Identity
		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ = shared.IdentityFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		token := issuer.signToken(t, audience, jwt.MapClaims{
			"email":   "player@example.com",
			"name":    "Player One",
			"picture": "https://cdn.example.com/avatar.png",
			"sub":     "auth0|12345",
		})

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, identity)
		assert.Equal(t, "player@example.com", identity.Email)
		assert.Equal(t, "Player One", identity.DisplayName)
	})

	t.Run("token without email claim rejected", func(t *testing.T) {
		t.Parallel()

		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not be reached without an email claim")
		}))

		token := issuer.signToken(t, audience, jwt.MapClaims{
			"name": "No Email",
			"sub":  "auth0|12345",
		})

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for wrong audience rejected", func(t *testing.T) {
		t.Parallel()

		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not be reached with a foreign audience")
		}))

		token := issuer.signToken(t, "https://other.example.com", jwt.MapClaims{
			"email": "player@example.com",
			"sub":   "auth0|12345",
		})

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed by unknown key rejected", func(t *testing.T) {
		t.Parallel()

		rogue := newTestIssuer(t)
		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not be reached with a foreign signature")
		}))

		// Signed by a different key but claiming the trusted issuer.
		now := time.Now()
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
			"iss":   issuer.url(),
			"aud":   audience,
			"iat":   now.Unix(),
			"exp":   now.Add(time.Hour).Unix(),
			"email": "player@example.com",
		})
		token.Header["kid"] = "test-key"
		signed, err := token.SignedString(rogue.key)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestNewAuthMiddleware(t *testing.T) {
	t.Parallel()

	middleware, err := NewAuthMiddleware(config.AuthConfig{
		IssuerURL: "https://example.us.auth0.com/",
		Audience:  "https://api.example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, middleware)

	// A request without a token never reaches the wrapped handler.
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
