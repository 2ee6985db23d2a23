package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appconfig "github.com/promptdeck/promptdeck-api/internal/config"
)

// uploader is the subset of the S3 client used by the store, extracted so
// tests can substitute a fake.
type uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store uploads image bytes to an S3 bucket and returns the durable
// public URL of the stored object.
type Store struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client performs the uploads
	client uploader

	// bucket, region, and keyPrefix describe where objects land
	bucket    string
	region    string
	keyPrefix string
}

// NewStore creates a Store backed by the default AWS credential chain.
func NewStore(ctx context.Context, logger *slog.Logger, cfg appconfig.ObjectStoreConfig) (*Store, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.Bucket == "" {
		return nil, errors.New("object store bucket cannot be empty")
	}

	if cfg.Region == "" {
		return nil, errors.New("object store region cannot be empty")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Store{
		logger:    logger.With(slog.String("component", "s3_store")),
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// Upload stores the image bytes under the given key and returns the durable
// URL where the object can be fetched.
func (s *Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("object key cannot be empty")
	}

	if len(data) == 0 {
		return "", errors.New("object data cannot be empty")
	}

	fullKey := key
	if s.keyPrefix != "" {
		fullKey = path.Join(s.keyPrefix, key)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to upload object",
			"key", fullKey,
			"error", err)
		return "", fmt.Errorf("failed to upload object %s: %w", fullKey, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, fullKey)

	s.logger.InfoContext(ctx, "Object uploaded",
		"key", fullKey,
		"size", len(data))

	return url, nil
}
