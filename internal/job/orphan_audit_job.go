package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"project-config-api/internal/metrics"
	"project-config-api/internal/repository"
)

// ConfigurationAuditor is the slice of the configuration repository the audit reads
type ConfigurationAuditor interface {
	CountOrphanedItems(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*repository.ConfigurationStats, error)
}

// OrphanAuditJob reports selections whose catalog item or variation was deleted.
// Orphaned selections stay in their configurations and are priced as zero,
// so the job only counts and reports them.
type OrphanAuditJob struct {
	auditor ConfigurationAuditor
	metrics *metrics.Metrics
	logger  *zap.Logger
	timeout time.Duration
}

// NewOrphanAuditJob creates a new OrphanAuditJob instance
func NewOrphanAuditJob(auditor ConfigurationAuditor, m *metrics.Metrics, logger *zap.Logger) *OrphanAuditJob {
	return &OrphanAuditJob{
		auditor: auditor,
		metrics: m,
		logger:  logger,
		timeout: 30 * time.Second,
	}
}

// Counts reads the configuration totals and the orphaned selection count.
// It doubles as the business metrics collector's source.
func (j *OrphanAuditJob) Counts(ctx context.Context) (*metrics.ConfigurationCounts, error) {
	stats, err := j.auditor.Stats(ctx)
	if err != nil {
		return nil, err
	}
	orphaned, err := j.auditor.CountOrphanedItems(ctx)
	if err != nil {
		return nil, err
	}
	return &metrics.ConfigurationCounts{
		Total:    stats.Total,
		Locked:   stats.Locked,
		Orphaned: orphaned,
	}, nil
}

// Run executes the audit; it satisfies cron.Job
func (j *OrphanAuditJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("Starting orphaned selection audit")

	counts, err := j.Counts(ctx)
	if err != nil {
		j.logger.Error("Orphaned selection audit failed", zap.Error(err))
		return
	}

	if j.metrics != nil {
		j.metrics.SetConfigurationsTotal(counts.Total)
		j.metrics.SetConfigurationsLocked(counts.Locked)
		j.metrics.SetOrphanedSelections(counts.Orphaned)
	}

	fields := []zap.Field{
		zap.Int64("configurations", counts.Total),
		zap.Int64("locked", counts.Locked),
		zap.Int64("orphaned_selections", counts.Orphaned),
		zap.Duration("duration", time.Since(start)),
	}
	if counts.Orphaned > 0 {
		j.logger.Warn("Configurations reference deleted catalog entries", fields...)
		return
	}
	j.logger.Info("Orphaned selection audit completed", fields...)
}
