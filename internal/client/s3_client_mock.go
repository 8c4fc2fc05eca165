package client

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockS3Client implements S3ClientInterface for testing without AWS credentials
type MockS3Client struct {
	Bucket   string
	Region   string
	Endpoint string

	// Uploaded keeps the bodies passed to UploadFile, keyed by object key
	Uploaded map[string][]byte

	// Optional function overrides for custom test behavior
	GenerateExportKeyFunc  func(configurationID uuid.UUID) string
	UploadFileFunc         func(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	PresignDownloadURLFunc func(ctx context.Context, key string, expires time.Duration) (string, error)
	GetFileURLFunc         func(key string) string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket:   "test-bucket",
		Region:   "ap-northeast-2",
		Uploaded: make(map[string][]byte),
	}
}

// GenerateExportKey generates a unique key for an export document
func (m *MockS3Client) GenerateExportKey(configurationID uuid.UUID) string {
	if m.GenerateExportKeyFunc != nil {
		return m.GenerateExportKeyFunc(configurationID)
	}
	return exportKey(configurationID, time.Now())
}

// UploadFile records the upload and returns the object URL
func (m *MockS3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, contentType)
	}

	body, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	if m.Uploaded == nil {
		m.Uploaded = make(map[string][]byte)
	}
	m.Uploaded[key] = body
	return m.GetFileURL(key), nil
}

// PresignDownloadURL returns a mock presigned GET URL
func (m *MockS3Client) PresignDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if m.PresignDownloadURLFunc != nil {
		return m.PresignDownloadURLFunc(ctx, key, expires)
	}
	return fmt.Sprintf("%s?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Expires=%d&X-Amz-Signature=mocksignature123",
		m.GetFileURL(key), int(expires.Seconds())), nil
}

// GetFileURL returns the public URL for a file
func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	if m.Endpoint != "" && !strings.Contains(m.Endpoint, "amazonaws.com") {
		return fmt.Sprintf("%s/%s/%s", m.Endpoint, m.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}

// Ensure MockS3Client implements S3ClientInterface
var _ S3ClientInterface = (*MockS3Client)(nil)
