package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/promptdeck/promptdeck-api/internal/api/shared"
	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/promptdeck/promptdeck-api/internal/platform/payment"
	"github.com/promptdeck/promptdeck-api/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testIdentity() *domain.Identity {
	return &domain.Identity{
		Email:       "player@example.com",
		DisplayName: "Player One",
		AvatarURL:   "https://cdn.example.com/avatar.png",
	}
}

// newRequest builds a request with an optional authenticated identity and an
// optional chi URL parameter.
func newRequest(t *testing.T, method, target, body string, identity *domain.Identity, urlParams map[string]string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := shared.SetTraceID(req.Context())

	if identity != nil {
		ctx = shared.WithIdentity(ctx, identity)
	}

	if len(urlParams) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range urlParams {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}

	return req.WithContext(ctx)
}

// fakeCardService implements service.CardService for handler tests.
type fakeCardService struct {
	cards       []*domain.FlashCard
	listErr     error
	imageURL    string
	generateErr error
	savedCard   *domain.FlashCard
	saveErr     error

	lastOwner  string
	lastPrompt string
	lastURL    string
}

func (f *fakeCardService) ListCards(ctx context.Context, limit, offset int) ([]*domain.FlashCard, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.cards == nil {
		return []*domain.FlashCard{}, nil
	}
	return f.cards, nil
}

func (f *fakeCardService) GenerateImage(ctx context.Context, ownerEmail, prompt string) (string, error) {
	f.lastOwner = ownerEmail
	f.lastPrompt = prompt
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.imageURL, nil
}

func (f *fakeCardService) SaveCard(ctx context.Context, ownerEmail, prompt, imageURL string) (*domain.FlashCard, error) {
	f.lastOwner = ownerEmail
	f.lastPrompt = prompt
	f.lastURL = imageURL
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return f.savedCard, nil
}

// fakeGuessService implements service.GuessService for handler tests.
type fakeGuessService struct {
	guessed   *domain.GuessedCard
	submitErr error
	guesses   []*domain.GuessedCard
	listErr   error

	lastOwner  string
	lastCardID uuid.UUID
	lastGuess  string
	submits    int
}

func (f *fakeGuessService) SubmitGuess(ctx context.Context, ownerEmail string, cardID uuid.UUID, guess string) (*domain.GuessedCard, error) {
	f.submits++
	f.lastOwner = ownerEmail
	f.lastCardID = cardID
	f.lastGuess = guess
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.guessed, nil
}

func (f *fakeGuessService) ListGuesses(ctx context.Context, ownerEmail string) ([]*domain.GuessedCard, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.guesses == nil {
		return []*domain.GuessedCard{}, nil
	}
	return f.guesses, nil
}

// fakeProfileService implements service.ProfileService for handler tests.
type fakeProfileService struct {
	profile *service.Profile
	err     error
}

func (f *fakeProfileService) GetProfile(ctx context.Context, identity *domain.Identity) (*service.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

// fakeCheckoutService implements service.CheckoutService for handler tests.
type fakeCheckoutService struct {
	session   *payment.CheckoutSession
	startErr  error
	sub       *domain.Subscription
	verifyErr error

	lastEmail     string
	lastSessionID string
}

func (f *fakeCheckoutService) StartCheckout(ctx context.Context, email string) (*payment.CheckoutSession, error) {
	f.lastEmail = email
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.session, nil
}

func (f *fakeCheckoutService) VerifyCheckout(ctx context.Context, email, sessionID string) (*domain.Subscription, error) {
	f.lastEmail = email
	f.lastSessionID = sessionID
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.sub, nil
}
