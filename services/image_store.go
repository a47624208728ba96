package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pdmitriev/recipebook-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ImageStore uploads base64 recipe images to S3. Without a configured bucket
// it degrades to pass-through: the payload value is stored as-is, which keeps
// local development free of AWS credentials.
type ImageStore struct {
	logger zerolog.Logger
	client *s3.Client
	bucket string
}

func NewImageStore(ctx context.Context, bucket string) (*ImageStore, error) {
	store := &ImageStore{
		logger: log.With().Str("serviceName", "imageStore").Logger(),
		bucket: bucket,
	}
	if bucket == "" {
		store.logger.Info().Msg("no image bucket configured, storing image payloads inline")
		return store, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	store.client = s3.NewFromConfig(cfg)
	return store, nil
}

// Save stores a "data:image/...;base64," payload and returns the stored
// object's URL. Non-data-URI values (already-uploaded URLs) pass through.
func (s *ImageStore) Save(ctx context.Context, payload string) (string, error) {
	if s.client == nil || !strings.HasPrefix(payload, "data:") {
		return payload, nil
	}

	mediaType, data, found := strings.Cut(strings.TrimPrefix(payload, "data:"), ";base64,")
	if !found {
		return "", errs.NewValidationError("image", "image must be a base64 data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", errs.NewValidationError("image", "image payload is not valid base64")
	}

	key := fmt.Sprintf("recipes/images/%s%s", uuid.New(), extensionFor(mediaType))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(raw),
		ContentType: &mediaType,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to upload image")
		return "", errs.NewInternalError("failed to store image", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

func extensionFor(mediaType string) string {
	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
