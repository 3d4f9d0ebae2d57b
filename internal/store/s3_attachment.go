package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

const s3KeyPrefix = "attachments/"

// s3API is the subset of *s3.Client used by [s3AttachmentStorage].
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3AttachmentStorage keeps attachments in an S3 compatible bucket
// (AWS S3, MinIO).
type s3AttachmentStorage struct {
	client s3API
	bucket string
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewS3AttachmentStorage builds an S3 client from cfg. Static credentials
// are used when an access key is configured, the default AWS chain
// otherwise. A custom endpoint switches to path-style addressing.
func NewS3AttachmentStorage(ctx context.Context, cfg config.S3, logger *logger.Logger) (AttachmentStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading aws config: %w", ErrStoringAttachment, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Debug().Str("bucket", cfg.Bucket).Msg("creating s3 attachment storage")
	return newS3AttachmentStorage(client, cfg.Bucket, logger), nil
}

func newS3AttachmentStorage(client s3API, bucket string, logger *logger.Logger) *s3AttachmentStorage {
	return &s3AttachmentStorage{
		client: client,
		bucket: bucket,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
}

func (s *s3AttachmentStorage) Save(ctx context.Context, attachment models.Attachment) (string, error) {
	log := logger.FromContext(ctx)

	// the SDK needs a seekable body of known length to sign plain HTTP uploads
	content, err := io.ReadAll(attachment.Content)
	if err != nil {
		return "", fmt.Errorf("%w: reading attachment: %w", ErrStoringAttachment, err)
	}

	key := attachmentKey(s.ids.Generate(), attachment.FileName)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s3KeyPrefix + key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
	}
	if attachment.ContentType != "" {
		input.ContentType = aws.String(attachment.ContentType)
	}

	if _, err = s.client.PutObject(ctx, input); err != nil {
		log.Err(err).Str("func", "*s3AttachmentStorage.Save").Str("key", key).Msg("failed to put object")
		return "", fmt.Errorf("%w: %w", ErrStoringAttachment, err)
	}

	return key, nil
}

func (s *s3AttachmentStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, ErrAttachmentNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3KeyPrefix + key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrAttachmentNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*s3AttachmentStorage.Open").Str("key", key).Msg("failed to get object")
		return nil, fmt.Errorf("%w: %w", ErrStoringAttachment, err)
	}

	return out.Body, nil
}

// Delete relies on S3 semantics: removing a missing key succeeds.
func (s *s3AttachmentStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3KeyPrefix + key),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3AttachmentStorage.Delete").Str("key", key).Msg("failed to delete object")
		return fmt.Errorf("%w: %w", ErrStoringAttachment, err)
	}

	return nil
}
