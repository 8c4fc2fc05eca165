package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"project-config-api/internal/cache"
	"project-config-api/internal/metrics"
	"project-config-api/internal/pricing"
	"project-config-api/internal/repository"
	"project-config-api/internal/response"
)

// SnapshotLoader builds the catalog + project context a wizard session prices against
type SnapshotLoader interface {
	Load(ctx context.Context, projectID uuid.UUID) (*pricing.Snapshot, error)
	Invalidate(ctx context.Context)
}

type snapshotLoaderImpl struct {
	catalogRepo repository.CatalogRepository
	projectRepo repository.ProjectRepository
	cache       cache.SnapshotCache
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewSnapshotLoader creates a snapshot loader. snapshots may be a NoopSnapshotCache.
func NewSnapshotLoader(
	catalogRepo repository.CatalogRepository,
	projectRepo repository.ProjectRepository,
	snapshots cache.SnapshotCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) SnapshotLoader {
	if snapshots == nil {
		snapshots = cache.NoopSnapshotCache{}
	}
	return &snapshotLoaderImpl{
		catalogRepo: catalogRepo,
		projectRepo: projectRepo,
		cache:       snapshots,
		metrics:     m,
		logger:      logger,
	}
}

// Load returns the cached snapshot of a project or assembles it from the repositories
func (l *snapshotLoaderImpl) Load(ctx context.Context, projectID uuid.UUID) (*pricing.Snapshot, error) {
	snapshot, generation, ok := l.cache.Get(ctx, projectID)
	if ok {
		l.recordCache(true)
		return snapshot, nil
	}
	l.recordCache(false)

	project, err := l.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", projectID.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load project", err.Error())
	}

	categories, err := l.catalogRepo.FindAllCategories(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load categories", err.Error())
	}
	items, err := l.catalogRepo.FindItems(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load items", err.Error())
	}
	tables, err := l.catalogRepo.FindPriceTables(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load price tables", err.Error())
	}

	table := pricing.ResolvePriceTable(project, tables)
	if table != nil {
		entries, err := l.catalogRepo.FindPriceEntries(ctx, table.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load price table entries", err.Error())
		}
		resolved := *table
		resolved.Entries = entries
		table = &resolved
	}

	snapshot = &pricing.Snapshot{
		Catalog: pricing.NewCatalog(pricing.OrderCategories(categories), items, table),
		Project: pricing.NewProjectContext(project),
	}
	l.cache.Set(ctx, projectID, generation, snapshot)

	l.logger.Debug("Wizard snapshot assembled",
		zap.String("project_id", projectID.String()),
		zap.Int("categories", len(categories)),
		zap.Int("items", len(items)),
		zap.Bool("price_table", table != nil),
	)
	return snapshot, nil
}

// Invalidate drops every cached snapshot, used after catalog edits
func (l *snapshotLoaderImpl) Invalidate(ctx context.Context) {
	l.cache.Invalidate(ctx)
}

func (l *snapshotLoaderImpl) recordCache(hit bool) {
	if l.metrics != nil {
		l.metrics.RecordSnapshotCache(hit)
	}
}
