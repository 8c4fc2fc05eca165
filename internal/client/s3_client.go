package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	appConfig "project-config-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const exportKeyPrefix = "configurator/exports"

// S3ClientInterface is the slice of S3 the export store needs
type S3ClientInterface interface {
	GenerateExportKey(configurationID uuid.UUID) string
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	PresignDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error)
	GetFileURL(key string) string
}

// S3Client stores export documents in one bucket on AWS S3 or an S3-compatible endpoint
type S3Client struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	endpoint      string
}

// NewS3Client builds a client from configuration. Static keys are used when present,
// otherwise the default AWS credential chain. A custom endpoint (MinIO, localstack)
// requires static keys and switches to path-style addressing.
func NewS3Client(cfg *appConfig.S3Config) (*S3Client, error) {
	switch {
	case cfg.Bucket == "":
		return nil, errors.New("S3 bucket is required")
	case cfg.Region == "":
		return nil, errors.New("S3 region is required")
	case cfg.Endpoint != "" && (cfg.AccessKey == "" || cfg.SecretKey == ""):
		return nil, errors.New("access key and secret key are required for a custom S3 endpoint")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Client{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      endpoint,
	}, nil
}

// GenerateExportKey returns a fresh key for an export document:
// configurator/exports/{configurationId}/{yyyy}/{mm}/{unix}_{uuid}.json
func (c *S3Client) GenerateExportKey(configurationID uuid.UUID) string {
	return exportKey(configurationID, time.Now().UTC())
}

func exportKey(configurationID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("%s/%s/%s/%d_%s.json",
		exportKeyPrefix, configurationID, now.Format("2006/01"), now.Unix(), uuid.NewString())
}

// UploadFile stores an object and returns its plain URL.
// Exports are immutable snapshots, so they are served as downloads and never cached.
func (c *S3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(c.bucket),
		Key:                aws.String(key),
		Body:               file,
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", path.Base(key))),
		CacheControl:       aws.String("no-store"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return c.GetFileURL(key), nil
}

// PresignDownloadURL returns a GET URL valid for expires
func (c *S3Client) PresignDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := c.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return req.URL, nil
}

// GetFileURL returns the unsigned object URL
func (c *S3Client) GetFileURL(key string) string {
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}
