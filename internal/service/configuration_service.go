package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"project-config-api/internal/client"
	"project-config-api/internal/domain"
	"project-config-api/internal/dto"
	"project-config-api/internal/metrics"
	"project-config-api/internal/pricing"
	"project-config-api/internal/repository"
	"project-config-api/internal/response"
	"project-config-api/internal/wizard"
)

const copySuffix = " (copy)"

// ExportStore publishes rendered export documents and returns a download link
type ExportStore interface {
	PublishExport(ctx context.Context, configurationID uuid.UUID, document []byte) (string, error)
}

// SaveCommand is a whole-set save of a configuration's selections
type SaveCommand struct {
	Selections      []pricing.Selection
	CategoryID      *uuid.UUID
	ExpectedVersion *int
	// Trigger is one of the metrics.Trigger* values; autosave debounces the write
	Trigger string
}

// ConfigurationService defines the interface for the configuration lifecycle
type ConfigurationService interface {
	CreateConfiguration(ctx context.Context, projectID uuid.UUID, req *dto.CreateConfigurationRequest) (*dto.ConfigurationResponse, error)
	GetConfiguration(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error)
	ListConfigurations(ctx context.Context, projectID uuid.UUID) ([]dto.ConfigurationResponse, error)
	SaveSelections(ctx context.Context, configurationID uuid.UUID, req *dto.SaveSelectionsRequest) (*dto.SaveResultResponse, error)
	Save(ctx context.Context, configurationID uuid.UUID, cmd SaveCommand) (*dto.SaveResultResponse, error)
	CompleteConfiguration(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error)
	LockConfiguration(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error)
	DuplicateConfiguration(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error)
	DeleteConfiguration(ctx context.Context, configurationID uuid.UUID) error
	ExportConfiguration(ctx context.Context, configurationID uuid.UUID, publish bool) (*dto.ExportResponse, error)
	FlushAutosave(ctx context.Context, configurationID uuid.UUID) error
	Shutdown(ctx context.Context) error
}

// configurationServiceImpl is the implementation of ConfigurationService
type configurationServiceImpl struct {
	configRepo  repository.ConfigurationRepository
	projectRepo repository.ProjectRepository
	snapshots   SnapshotLoader
	notiClient  client.NotificationClient
	exports     ExportStore
	metrics     *metrics.Metrics
	autosaves   *autosaveRegistry
	logger      *zap.Logger
	now         func() time.Time
}

// NewConfigurationService creates a new instance of ConfigurationService.
// exports may be nil, in which case exports are only returned inline.
func NewConfigurationService(
	configRepo repository.ConfigurationRepository,
	projectRepo repository.ProjectRepository,
	snapshots SnapshotLoader,
	notiClient client.NotificationClient,
	exports ExportStore,
	m *metrics.Metrics,
	autosaveDelay time.Duration,
	logger *zap.Logger,
) ConfigurationService {
	if notiClient == nil {
		notiClient = client.NewNoOpNotificationClient()
	}
	return &configurationServiceImpl{
		configRepo:  configRepo,
		projectRepo: projectRepo,
		snapshots:   snapshots,
		notiClient:  notiClient,
		exports:     exports,
		metrics:     m,
		autosaves:   newAutosaveRegistry(autosaveDelay, logger),
		logger:      logger,
		now:         time.Now,
	}
}

// CreateConfiguration starts an empty draft for a project
func (s *configurationServiceImpl) CreateConfiguration(ctx context.Context, projectID uuid.UUID, req *dto.CreateConfigurationRequest) (*dto.ConfigurationResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Configuration name is required", "")
	}

	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		s.logger.Error("Failed to check project", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify project", err.Error())
	}
	if !exists {
		return nil, response.NewNotFoundError("Project not found", projectID.String())
	}

	cfg := &domain.Configuration{
		ProjectID:     projectID,
		Name:          name,
		SelectionHash: wizard.Fingerprint(nil),
	}
	if err := s.configRepo.Create(ctx, cfg); err != nil {
		s.logger.Error("Failed to create configuration", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create configuration", err.Error())
	}

	s.recordMetric(func(m *metrics.Metrics) { m.IncrementConfigurationCreated() })
	s.logger.Info("Configuration created",
		zap.String("configuration_id", cfg.ID.String()),
		zap.String("project_id", projectID.String()),
	)
	return toConfigurationResponse(cfg), nil
}

// GetConfiguration retrieves a configuration with its selections
func (s *configurationServiceImpl) GetConfiguration(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error) {
	cfg, err := s.load(ctx, configurationID)
	if err != nil {
		return nil, err
	}
	return toConfigurationResponse(cfg), nil
}

// ListConfigurations lists the configurations of a project, newest first
func (s *configurationServiceImpl) ListConfigurations(ctx context.Context, projectID uuid.UUID) ([]dto.ConfigurationResponse, error) {
	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify project", err.Error())
	}
	if !exists {
		return nil, response.NewNotFoundError("Project not found", projectID.String())
	}

	configurations, err := s.configRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		s.logger.Error("Failed to list configurations", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list configurations", err.Error())
	}

	out := make([]dto.ConfigurationResponse, 0, len(configurations))
	for _, cfg := range configurations {
		out = append(out, *toConfigurationResponse(cfg))
	}
	return out, nil
}

// SaveSelections replaces the selections of a configuration from a request body
func (s *configurationServiceImpl) SaveSelections(ctx context.Context, configurationID uuid.UUID, req *dto.SaveSelectionsRequest) (*dto.SaveResultResponse, error) {
	selections, err := toSelections(req.Selections)
	if err != nil {
		s.rejectSave(response.ErrCodeValidation)
		return nil, err
	}
	trigger := metrics.TriggerExplicit
	if req.Autosave {
		trigger = metrics.TriggerAutosave
	}
	return s.Save(ctx, configurationID, SaveCommand{
		Selections:      selections,
		CategoryID:      req.CategoryID,
		ExpectedVersion: req.ExpectedVersion,
		Trigger:         trigger,
	})
}

// Save validates and persists a whole selection set together with the wizard position.
// A payload identical to the stored state is accepted without writing.
func (s *configurationServiceImpl) Save(ctx context.Context, configurationID uuid.UUID, cmd SaveCommand) (*dto.SaveResultResponse, error) {
	cfg, err := s.load(ctx, configurationID)
	if err != nil {
		return nil, err
	}
	if cfg.IsLocked {
		s.rejectSave(response.ErrCodeConfigurationLocked)
		return nil, errConfigurationLocked(configurationID.String())
	}

	snapshot, err := s.snapshots.Load(ctx, cfg.ProjectID)
	if err != nil {
		return nil, err
	}

	// duplicate keys collapse, last one wins
	selections := wizard.NewSelectionSet(cmd.Selections, nil).Items()

	carried := make(map[string]bool, len(cfg.Items))
	for _, sel := range selectionsOf(cfg.Items) {
		carried[sel.Key()] = true
	}
	if err := wizard.ValidateSelections(selections, carried, snapshot, s.now()); err != nil {
		s.rejectSave(response.ErrCodeValidation)
		return nil, toAppError(err, configurationID.String(), "save configuration")
	}
	if cmd.CategoryID != nil {
		if _, ok := snapshot.Catalog.Category(*cmd.CategoryID); !ok {
			s.rejectSave(response.ErrCodeValidation)
			return nil, response.NewValidationError("Unknown wizard category", cmd.CategoryID.String())
		}
	}

	hash := wizard.Fingerprint(selections)
	if hash == cfg.SelectionHash && samePosition(cfg.LastCategoryID, cmd.CategoryID) {
		// the caller's newest state is already stored; an older pending autosave must not land
		s.autosaves.abandon(configurationID)
		return &dto.SaveResultResponse{
			Configuration: *toConfigurationResponse(cfg),
			Saved:         false,
		}, nil
	}

	params := repository.ReplaceItemsParams{
		ConfigurationID: configurationID,
		Items:           itemsOf(configurationID, selections),
		LastCategoryID:  cmd.CategoryID,
		SelectionHash:   hash,
		ExpectedVersion: cmd.ExpectedVersion,
	}

	if cmd.Trigger == metrics.TriggerAutosave {
		err := s.autosaves.schedule(configurationID, func(ctx context.Context) error {
			_, err := s.write(ctx, params, metrics.TriggerAutosave)
			return err
		})
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to schedule autosave", err.Error())
		}
		return &dto.SaveResultResponse{
			Configuration: *toConfigurationResponse(cfg),
			Saved:         false,
			Pending:       true,
		}, nil
	}

	s.autosaves.abandon(configurationID)
	saved, err := s.write(ctx, params, cmd.Trigger)
	if err != nil {
		return nil, err
	}
	return &dto.SaveResultResponse{
		Configuration: *toConfigurationResponse(saved),
		Saved:         true,
	}, nil
}

// write runs the guarded whole-set replace
func (s *configurationServiceImpl) write(ctx context.Context, params repository.ReplaceItemsParams, trigger string) (*domain.Configuration, error) {
	saved, err := s.configRepo.ReplaceItems(ctx, params)
	if err != nil {
		appErr := toAppError(err, params.ConfigurationID.String(), "save configuration")
		var coded *response.AppError
		if errors.As(appErr, &coded) {
			s.rejectSave(coded.Code)
		}
		if coded == nil || coded.Code == response.ErrCodeInternal {
			s.logger.Error("Failed to save configuration",
				zap.String("configuration_id", params.ConfigurationID.String()),
				zap.Error(err),
			)
		}
		return nil, appErr
	}

	s.recordMetric(func(m *metrics.Metrics) { m.IncrementConfigurationSaved(trigger) })
	s.logger.Info("Configuration saved",
		zap.String("configuration_id", saved.ID.String()),
		zap.String("trigger", trigger),
		zap.Int("selections", len(saved.Items)),
		zap.Int("version", saved.Version),
	)
	return saved, nil
}

// CompleteConfiguration marks a configuration completed once every category
// offering standard items has one of them selected
func (s *configurationServiceImpl) CompleteConfiguration(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error) {
	s.flushAutosave(ctx, configurationID)

	cfg, err := s.load(ctx, configurationID)
	if err != nil {
		return nil, err
	}
	if cfg.IsLocked {
		return nil, errConfigurationLocked(configurationID.String())
	}

	snapshot, err := s.snapshots.Load(ctx, cfg.ProjectID)
	if err != nil {
		return nil, err
	}
	if missing := wizard.MissingStandards(snapshot, selectionsOf(cfg.Items), s.now()); len(missing) > 0 {
		return nil, errMissingStandards(missing)
	}

	if !cfg.IsCompleted {
		if err := s.configRepo.MarkCompleted(ctx, configurationID); err != nil {
			return nil, toAppError(err, configurationID.String(), "complete configuration")
		}
		cfg.IsCompleted = true
		s.recordMetric(func(m *metrics.Metrics) { m.IncrementConfigurationCompleted() })
		s.notify(ctx, client.NotificationConfigurationCompleted, cfg)
	}

	s.logger.Info("Configuration completed", zap.String("configuration_id", configurationID.String()))
	return toConfigurationResponse(cfg), nil
}

// LockConfiguration freezes a configuration for good. Locking twice is not an error.
func (s *configurationServiceImpl) LockConfiguration(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error) {
	s.flushAutosave(ctx, configurationID)

	cfg, err := s.load(ctx, configurationID)
	if err != nil {
		return nil, err
	}
	if cfg.IsLocked {
		return toConfigurationResponse(cfg), nil
	}

	if err := s.configRepo.Lock(ctx, configurationID); err != nil {
		return nil, toAppError(err, configurationID.String(), "lock configuration")
	}
	cfg.IsLocked = true

	s.recordMetric(func(m *metrics.Metrics) { m.IncrementConfigurationLocked() })
	s.notify(ctx, client.NotificationConfigurationLocked, cfg)
	s.logger.Info("Configuration locked", zap.String("configuration_id", configurationID.String()))
	return toConfigurationResponse(cfg), nil
}

// DuplicateConfiguration copies a configuration of any state into a new draft
func (s *configurationServiceImpl) DuplicateConfiguration(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error) {
	s.flushAutosave(ctx, configurationID)

	source, err := s.load(ctx, configurationID)
	if err != nil {
		return nil, err
	}

	selections := selectionsOf(source.Items)
	copied := &domain.Configuration{
		ProjectID:     source.ProjectID,
		Name:          source.Name + copySuffix,
		SelectionHash: wizard.Fingerprint(selections),
	}
	items := itemsOf(uuid.Nil, selections)
	if err := s.configRepo.CreateWithItems(ctx, copied, items); err != nil {
		s.logger.Error("Failed to duplicate configuration",
			zap.String("configuration_id", configurationID.String()),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to duplicate configuration", err.Error())
	}

	duplicated, err := s.load(ctx, copied.ID)
	if err != nil {
		return nil, err
	}

	s.recordMetric(func(m *metrics.Metrics) { m.IncrementConfigurationDuplicated() })
	s.logger.Info("Configuration duplicated",
		zap.String("source_id", configurationID.String()),
		zap.String("configuration_id", duplicated.ID.String()),
	)
	return toConfigurationResponse(duplicated), nil
}

// DeleteConfiguration removes a configuration of any state with all its selections
func (s *configurationServiceImpl) DeleteConfiguration(ctx context.Context, configurationID uuid.UUID) error {
	s.autosaves.abandon(configurationID)

	if err := s.configRepo.Delete(ctx, configurationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errConfigurationNotFound(configurationID.String())
		}
		s.logger.Error("Failed to delete configuration",
			zap.String("configuration_id", configurationID.String()),
			zap.Error(err),
		)
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete configuration", err.Error())
	}

	s.logger.Info("Configuration deleted", zap.String("configuration_id", configurationID.String()))
	return nil
}

// ExportConfiguration prices a configuration into a category-grouped breakdown.
// With publish the document is also stored and a download link is returned.
func (s *configurationServiceImpl) ExportConfiguration(ctx context.Context, configurationID uuid.UUID, publish bool) (*dto.ExportResponse, error) {
	s.flushAutosave(ctx, configurationID)

	cfg, err := s.load(ctx, configurationID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.snapshots.Load(ctx, cfg.ProjectID)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.NewEngine(snapshot.Catalog).Breakdown(selectionsOf(cfg.Items), snapshot.Project)
	export := &dto.ExportResponse{
		ConfigurationID: cfg.ID,
		ProjectID:       cfg.ProjectID,
		Name:            cfg.Name,
		Status:          statusOf(cfg),
		Version:         cfg.Version,
		Breakdown:       toBreakdownResponse(breakdown),
		GeneratedAt:     s.now().UTC(),
	}

	destination := metrics.ExportInline
	if publish {
		if s.exports == nil {
			return nil, response.NewValidationError("Export publishing is not configured", "")
		}
		document, err := json.Marshal(export)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to render export", err.Error())
		}
		url, err := s.exports.PublishExport(ctx, cfg.ID, document)
		if err != nil {
			s.logger.Error("Failed to publish export",
				zap.String("configuration_id", configurationID.String()),
				zap.Error(err),
			)
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to publish export", err.Error())
		}
		export.DocumentURL = url
		destination = metrics.ExportS3
	}

	if breakdown.OrphanedCount > 0 || breakdown.LegacyCount > 0 {
		s.logger.Warn("Export contains unpriced or legacy lines",
			zap.String("configuration_id", configurationID.String()),
			zap.Int("orphaned", breakdown.OrphanedCount),
			zap.Int("legacy", breakdown.LegacyCount),
		)
	}
	s.recordMetric(func(m *metrics.Metrics) { m.IncrementConfigurationExported(destination) })
	return export, nil
}

// FlushAutosave writes the pending autosave of a configuration, if any
func (s *configurationServiceImpl) FlushAutosave(ctx context.Context, configurationID uuid.UUID) error {
	return s.autosaves.flush(ctx, configurationID)
}

// Shutdown writes every pending autosave
func (s *configurationServiceImpl) Shutdown(ctx context.Context) error {
	return s.autosaves.flushAll(ctx)
}

func (s *configurationServiceImpl) load(ctx context.Context, configurationID uuid.UUID) (*domain.Configuration, error) {
	cfg, err := s.configRepo.FindByIDWithItems(ctx, configurationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errConfigurationNotFound(configurationID.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch configuration", err.Error())
	}
	return cfg, nil
}

// flushAutosave lands a pending autosave before a lifecycle operation reads the configuration.
// A failed autosave does not block the operation.
func (s *configurationServiceImpl) flushAutosave(ctx context.Context, configurationID uuid.UUID) {
	if err := s.autosaves.flush(ctx, configurationID); err != nil {
		s.logger.Warn("Pending autosave was not written",
			zap.String("configuration_id", configurationID.String()),
			zap.Error(err),
		)
	}
}

func (s *configurationServiceImpl) notify(ctx context.Context, kind client.NotificationType, cfg *domain.Configuration) {
	_ = s.notiClient.SendNotification(ctx, client.NewConfigurationEvent(kind, cfg))
}

func (s *configurationServiceImpl) rejectSave(reason string) {
	s.recordMetric(func(m *metrics.Metrics) { m.IncrementSaveRejected(reason) })
}

func (s *configurationServiceImpl) recordMetric(fn func(m *metrics.Metrics)) {
	if s.metrics != nil {
		fn(s.metrics)
	}
}

func samePosition(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
