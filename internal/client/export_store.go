package client

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-config-api/internal/metrics"
)

// exportLinkTTL is how long a published export link stays valid
const exportLinkTTL = 24 * time.Hour

// S3ExportStore publishes export documents to S3 and hands out download links
type S3ExportStore struct {
	s3      S3ClientInterface
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewS3ExportStore creates an export store on top of an S3 client
func NewS3ExportStore(s3 S3ClientInterface, logger *zap.Logger, m *metrics.Metrics) *S3ExportStore {
	return &S3ExportStore{s3: s3, logger: logger, metrics: m}
}

// PublishExport uploads the JSON document and returns a download URL.
// When presigning fails the plain object URL is returned.
func (s *S3ExportStore) PublishExport(ctx context.Context, configurationID uuid.UUID, document []byte) (string, error) {
	key := s.s3.GenerateExportKey(configurationID)

	start := time.Now()
	fileURL, err := s.s3.UploadFile(ctx, key, bytes.NewReader(document), "application/json")
	if s.metrics != nil {
		status := 200
		if err != nil {
			status = 0
		}
		s.metrics.RecordExternalAPICall("s3:PutObject", "PUT", status, time.Since(start), err)
	}
	if err != nil {
		s.logger.Error("Failed to upload export document",
			zap.String("configuration_id", configurationID.String()),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to publish export: %w", err)
	}

	link, err := s.s3.PresignDownloadURL(ctx, key, exportLinkTTL)
	if err != nil {
		s.logger.Warn("Failed to presign export link, returning object URL",
			zap.String("key", key),
			zap.Error(err),
		)
		return fileURL, nil
	}

	s.logger.Info("Export document published",
		zap.String("configuration_id", configurationID.String()),
		zap.String("key", key),
		zap.Int("bytes", len(document)),
	)
	return link, nil
}
