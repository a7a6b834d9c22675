package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/config"
)

const uploadCacheControl = "max-age=3600"

// S3Storage uploads files to an S3-compatible endpoint (Supabase Storage)
// and generates download links.
type S3Storage struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	logger        *zap.Logger
}

// NewS3Storage creates an S3 client with static credentials. A custom
// endpoint switches to path-style addressing.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	logger.Info("S3 storage client initialized",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("region", cfg.Region))

	return &S3Storage{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		logger:        logger,
	}, nil
}

// Upload stores body under bucket/key. Existing keys are not checked; callers
// generate unique keys.
func (s *S3Storage) Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(uploadCacheControl),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error("Failed to upload object",
			zap.String("bucket", bucket),
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to upload file to s3: %w", err)
	}

	s.logger.Debug("Uploaded object",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int64("size", size))
	return nil
}

// PresignGet generates a presigned download URL valid for ttl.
func (s *S3Storage) PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return req.URL, nil
}
