package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/promptdeck/promptdeck-api/internal/platform/payment"
	"github.com/promptdeck/promptdeck-api/internal/store"
)

// testLogger returns a logger that discards output, keeping test runs quiet.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeFlashCardStore is an in-memory store.FlashCardStore for service tests.
type fakeFlashCardStore struct {
	cards     map[uuid.UUID]*domain.FlashCard
	createErr error
	listErr   error
}

func newFakeFlashCardStore() *fakeFlashCardStore {
	return &fakeFlashCardStore{cards: make(map[uuid.UUID]*domain.FlashCard)}
}

func (f *fakeFlashCardStore) Create(ctx context.Context, card *domain.FlashCard) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.cards[card.ID] = card
	return nil
}

func (f *fakeFlashCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.FlashCard, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

func (f *fakeFlashCardStore) List(ctx context.Context, limit, offset int) ([]*domain.FlashCard, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	cards := make([]*domain.FlashCard, 0, len(f.cards))
	for _, card := range f.cards {
		cards = append(cards, card)
	}
	return cards, nil
}

func (f *fakeFlashCardStore) WithTx(db store.DBTX) store.FlashCardStore {
	return f
}

// fakeUserCardStore is an in-memory store.UserCardStore for service tests.
type fakeUserCardStore struct {
	refs      []*domain.UserCardRef
	count     int
	countErr  error
	createErr error
}

func (f *fakeUserCardStore) Create(ctx context.Context, ref *domain.UserCardRef) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.refs = append(f.refs, ref)
	return nil
}

func (f *fakeUserCardStore) CountByOwner(ctx context.Context, ownerEmail string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

func (f *fakeUserCardStore) WithTx(db store.DBTX) store.UserCardStore {
	return f
}

// fakeGuessStore is an in-memory store.GuessStore for service tests.
type fakeGuessStore struct {
	guesses   []*domain.GuessedCard
	createErr error
	sum       float64
}

func (f *fakeGuessStore) Create(ctx context.Context, guess *domain.GuessedCard) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.guesses = append(f.guesses, guess)
	return nil
}

func (f *fakeGuessStore) ListByOwner(ctx context.Context, ownerEmail string) ([]*domain.GuessedCard, error) {
	result := []*domain.GuessedCard{}
	for _, g := range f.guesses {
		if g.OwnerEmail == ownerEmail {
			result = append(result, g)
		}
	}
	return result, nil
}

func (f *fakeGuessStore) SumPointsByOwner(ctx context.Context, ownerEmail string) (float64, error) {
	return f.sum, nil
}

func (f *fakeGuessStore) ExistsForCard(ctx context.Context, ownerEmail string, cardID uuid.UUID) (bool, error) {
	for _, g := range f.guesses {
		if g.OwnerEmail == ownerEmail && g.CardID == cardID {
			return true, nil
		}
	}
	return false, nil
}

// fakeSubscriptionStore is an in-memory store.SubscriptionStore.
type fakeSubscriptionStore struct {
	subs      map[string]*domain.Subscription
	upsertErr error
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{subs: make(map[string]*domain.Subscription)}
}

func (f *fakeSubscriptionStore) Upsert(ctx context.Context, sub *domain.Subscription) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.subs[sub.Email] = sub
	return nil
}

func (f *fakeSubscriptionStore) GetByEmail(ctx context.Context, email string) (*domain.Subscription, error) {
	sub, ok := f.subs[email]
	if !ok {
		return nil, store.ErrSubscriptionNotFound
	}
	return sub, nil
}

// fakeScorer returns a fixed grade.
type fakeScorer struct {
	grade      int
	err        error
	calls      int
	lastPrompt string
	lastGuess  string
}

func (f *fakeScorer) Score(ctx context.Context, prompt, guess string) (int, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastGuess = guess
	if f.err != nil {
		return 0, f.err
	}
	return f.grade, nil
}

// fakeGenerator returns fixed image data.
type fakeGenerator struct {
	url           string
	generateErr   error
	generateCalls int
	data          []byte
	contentType   string
	fetchErr      error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.generateCalls++
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.url, nil
}

func (f *fakeGenerator) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	if f.fetchErr != nil {
		return nil, "", f.fetchErr
	}
	return f.data, f.contentType, nil
}

// fakeObjectStore records uploads and returns a deterministic URL.
type fakeObjectStore struct {
	lastKey         string
	lastContentType string
	uploadErr       error
	uploads         int
}

func (f *fakeObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.uploads++
	f.lastKey = key
	f.lastContentType = contentType
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "https://bucket.s3.us-east-1.amazonaws.com/" + key, nil
}

// fakeCheckoutProvider simulates the payment processor.
type fakeCheckoutProvider struct {
	session    *payment.CheckoutSession
	createErr  error
	status     *payment.SessionStatus
	getErr     error
	getCalls   int
	lastLookup string
}

func (f *fakeCheckoutProvider) CreateSession(ctx context.Context, email string) (*payment.CheckoutSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.session, nil
}

func (f *fakeCheckoutProvider) GetSession(ctx context.Context, sessionID string) (*payment.SessionStatus, error) {
	f.getCalls++
	f.lastLookup = sessionID
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.status, nil
}
