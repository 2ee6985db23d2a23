package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/promptdeck/promptdeck-api/internal/domain"
	"github.com/promptdeck/promptdeck-api/internal/imagegen"
	"github.com/promptdeck/promptdeck-api/internal/platform/logger"
	"github.com/promptdeck/promptdeck-api/internal/store"
)

// CardServiceError is a custom error type for card service errors.
type CardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CardServiceError.
func (e *CardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("card service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CardServiceError) Unwrap() error {
	return e.Err
}

// NewCardServiceError creates a new CardServiceError.
func NewCardServiceError(operation, message string, err error) *CardServiceError {
	return &CardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// ObjectStore uploads image bytes to durable storage and returns the URL
// where the object will remain fetchable.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// CardService provides card generation and listing operations.
type CardService interface {
	// ListCards retrieves the shared card wall, newest first.
	ListCards(ctx context.Context, limit, offset int) ([]*domain.FlashCard, error)

	// GenerateImage checks the owner's quota and asks the image provider to
	// render the prompt. It returns the provider's temporary image URL; no
	// card is stored until SaveCard.
	GenerateImage(ctx context.Context, ownerEmail, prompt string) (string, error)

	// SaveCard persists a generated image as a FlashCard: it fetches the
	// provider's temporary image, re-uploads it to durable storage, and
	// writes the card and the owner's reference in one transaction.
	SaveCard(ctx context.Context, ownerEmail, prompt, imageURL string) (*domain.FlashCard, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	db        *sql.DB
	cards     store.FlashCardStore
	refs      store.UserCardStore
	generator imagegen.Generator
	objects   ObjectStore
	quota     int
	logger    *slog.Logger

	// runTx executes a function inside a transaction. Tests override it to
	// avoid needing a live database.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewCardService creates a new CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	db *sql.DB,
	cards store.FlashCardStore,
	refs store.UserCardStore,
	generator imagegen.Generator,
	objects ObjectStore,
	quota int,
	logger *slog.Logger,
) (CardService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if cards == nil {
		return nil, fmt.Errorf("card store cannot be nil")
	}
	if refs == nil {
		return nil, fmt.Errorf("user card store cannot be nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("image generator cannot be nil")
	}
	if objects == nil {
		return nil, fmt.Errorf("object store cannot be nil")
	}
	if quota <= 0 {
		return nil, fmt.Errorf("quota must be positive, got %d", quota)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		db:        db,
		cards:     cards,
		refs:      refs,
		generator: generator,
		objects:   objects,
		quota:     quota,
		logger:    logger.With(slog.String("component", "card_service")),
		runTx:     store.RunInTransaction,
	}, nil
}

// ListCards implements CardService.ListCards
func (s *cardServiceImpl) ListCards(ctx context.Context, limit, offset int) ([]*domain.FlashCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cards.List(ctx, limit, offset)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, NewCardServiceError("list_cards", "failed to list cards", err)
	}

	return cards, nil
}

// GenerateImage implements CardService.GenerateImage
// The quota check runs before the provider is called so a blocked user
// never costs an external request.
func (s *cardServiceImpl) GenerateImage(ctx context.Context, ownerEmail, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.checkQuota(ctx, ownerEmail); err != nil {
		return "", err
	}

	imageURL, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Error("image generation failed",
			slog.String("error", err.Error()))
		return "", NewCardServiceError("generate_image", "image generation failed", err)
	}

	log.Info("image generated",
		slog.Int("prompt_length", len(prompt)))
	return imageURL, nil
}

// SaveCard implements CardService.SaveCard
// The FlashCard and its owner reference are written in one transaction, so
// a failure leaves no partial record and the quota count stays accurate.
func (s *cardServiceImpl) SaveCard(ctx context.Context, ownerEmail, prompt, imageURL string) (*domain.FlashCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.checkQuota(ctx, ownerEmail); err != nil {
		return nil, err
	}

	// The provider URL expires; fetch the bytes now and move them to our
	// own bucket before anything touches the database.
	data, contentType, err := s.generator.Fetch(ctx, imageURL)
	if err != nil {
		log.Error("failed to fetch generated image",
			slog.String("error", err.Error()))
		return nil, NewCardServiceError("save_card", "failed to fetch generated image", err)
	}

	key := uuid.New().String() + extensionForContentType(contentType)
	durableURL, err := s.objects.Upload(ctx, key, data, contentType)
	if err != nil {
		log.Error("failed to upload image to object store",
			slog.String("error", err.Error()))
		return nil, NewCardServiceError("save_card", "failed to store image", err)
	}

	card, err := domain.NewFlashCard(durableURL, prompt)
	if err != nil {
		return nil, NewCardServiceError("save_card", "invalid card data", err)
	}

	ref, err := domain.NewUserCardRef(card.ID, ownerEmail)
	if err != nil {
		return nil, NewCardServiceError("save_card", "invalid owner reference", err)
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCards := s.cards.WithTx(tx)
		txRefs := s.refs.WithTx(tx)

		if err := txCards.Create(ctx, card); err != nil {
			log.Error("failed to create card in transaction",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return NewCardServiceError("save_card", "failed to save card", err)
		}

		if err := txRefs.Create(ctx, ref); err != nil {
			log.Error("failed to create owner reference in transaction",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return NewCardServiceError("save_card", "failed to save owner reference", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("card saved",
		slog.String("card_id", card.ID.String()))
	return card, nil
}

// checkQuota returns ErrQuotaExceeded once the owner has generated their
// full allowance.
func (s *cardServiceImpl) checkQuota(ctx context.Context, ownerEmail string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	count, err := s.refs.CountByOwner(ctx, ownerEmail)
	if err != nil {
		log.Error("failed to count owner cards",
			slog.String("error", err.Error()))
		return NewCardServiceError("check_quota", "failed to count generated cards", err)
	}

	if count >= s.quota {
		log.Info("generation quota reached",
			slog.Int("count", count),
			slog.Int("quota", s.quota))
		return ErrQuotaExceeded
	}

	return nil
}

// extensionForContentType maps the provider's content type to an object key
// suffix. Unknown types fall back to .png, which is what the provider
// returns in practice.
func extensionForContentType(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0])) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
