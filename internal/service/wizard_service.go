package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-config-api/internal/domain"
	"project-config-api/internal/dto"
	"project-config-api/internal/metrics"
	"project-config-api/internal/pricing"
	"project-config-api/internal/repository"
	"project-config-api/internal/response"
	"project-config-api/internal/wizard"
)

// Navigation directions
const (
	directionStay = iota
	directionNext
	directionPrevious
)

// WizardService defines the interface for walking a configuration through the wizard
type WizardService interface {
	OpenWizard(ctx context.Context, configurationID uuid.UUID) (*dto.WizardViewResponse, error)
	Next(ctx context.Context, configurationID uuid.UUID) (*dto.WizardViewResponse, error)
	Previous(ctx context.Context, configurationID uuid.UUID) (*dto.WizardViewResponse, error)
	Jump(ctx context.Context, configurationID uuid.UUID, req *dto.JumpRequest) (*dto.WizardViewResponse, error)
	ToggleSelection(ctx context.Context, configurationID uuid.UUID, req *dto.ToggleSelectionRequest) (*dto.WizardViewResponse, error)
	Preview(ctx context.Context, configurationID uuid.UUID, req *dto.PreviewRequest) (*dto.BreakdownResponse, error)
}

// wizardServiceImpl is the implementation of WizardService
type wizardServiceImpl struct {
	configRepo repository.ConfigurationRepository
	configs    ConfigurationService
	snapshots  SnapshotLoader
	logger     *zap.Logger
	now        func() time.Time
}

// NewWizardService creates a new instance of WizardService
func NewWizardService(
	configRepo repository.ConfigurationRepository,
	configs ConfigurationService,
	snapshots SnapshotLoader,
	logger *zap.Logger,
) WizardService {
	return &wizardServiceImpl{
		configRepo: configRepo,
		configs:    configs,
		snapshots:  snapshots,
		logger:     logger,
		now:        time.Now,
	}
}

// session is one loaded wizard: the configuration, what it prices against and where it stands
type session struct {
	cfg      *domain.Configuration
	snapshot *pricing.Snapshot
	machine  *wizard.StateMachine
}

func (s *wizardServiceImpl) open(ctx context.Context, configurationID uuid.UUID) (*session, error) {
	cfg, err := s.configRepo.FindByIDWithItems(ctx, configurationID)
	if err != nil {
		return nil, toAppError(err, configurationID.String(), "fetch configuration")
	}
	snapshot, err := s.snapshots.Load(ctx, cfg.ProjectID)
	if err != nil {
		return nil, err
	}
	machine := wizard.NewStateMachine(snapshot.Catalog.Categories())
	machine.Resume(cfg.Position())
	return &session{cfg: cfg, snapshot: snapshot, machine: machine}, nil
}

// OpenWizard resumes a configuration at its saved position, or at the first category
func (s *wizardServiceImpl) OpenWizard(ctx context.Context, configurationID uuid.UUID) (*dto.WizardViewResponse, error) {
	sess, err := s.open(ctx, configurationID)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Next moves to the following category; on the last one it stays put
func (s *wizardServiceImpl) Next(ctx context.Context, configurationID uuid.UUID) (*dto.WizardViewResponse, error) {
	return s.navigate(ctx, configurationID, directionNext, nil)
}

// Previous moves to the preceding category; on the first one it stays put
func (s *wizardServiceImpl) Previous(ctx context.Context, configurationID uuid.UUID) (*dto.WizardViewResponse, error) {
	return s.navigate(ctx, configurationID, directionPrevious, nil)
}

// Jump moves to any category of the catalog
func (s *wizardServiceImpl) Jump(ctx context.Context, configurationID uuid.UUID, req *dto.JumpRequest) (*dto.WizardViewResponse, error) {
	return s.navigate(ctx, configurationID, directionStay, &req.CategoryID)
}

// navigate moves the wizard and stores the new position while the configuration is unlocked.
// Locked configurations can be browsed but the position is not persisted.
func (s *wizardServiceImpl) navigate(ctx context.Context, configurationID uuid.UUID, direction int, target *uuid.UUID) (*dto.WizardViewResponse, error) {
	if err := s.configs.FlushAutosave(ctx, configurationID); err != nil {
		s.logger.Warn("Pending autosave was not written before navigation",
			zap.String("configuration_id", configurationID.String()),
			zap.Error(err),
		)
	}

	sess, err := s.open(ctx, configurationID)
	if err != nil {
		return nil, err
	}

	switch {
	case target != nil:
		if err := sess.machine.JumpTo(*target); err != nil {
			if errors.Is(err, wizard.ErrUnknownCategory) {
				return nil, response.NewNotFoundError("Category not found", target.String())
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to move wizard", err.Error())
		}
	case direction == directionNext:
		sess.machine.Next()
	case direction == directionPrevious:
		sess.machine.Previous()
	}

	pos := sess.machine.Position()
	if !sess.cfg.IsLocked && !samePosition(sess.cfg.LastCategoryID, pos.CategoryID) {
		stored, err := s.configRepo.UpdatePosition(ctx, configurationID, pos.CategoryID)
		if err != nil {
			return nil, toAppError(err, configurationID.String(), "store wizard position")
		}
		if stored {
			sess.cfg.LastCategoryID = pos.CategoryID
		} else {
			// locked between read and write
			sess.cfg.IsLocked = true
		}
	}

	return s.view(sess), nil
}

// ToggleSelection adds or removes one selection at the current step and saves the whole set
func (s *wizardServiceImpl) ToggleSelection(ctx context.Context, configurationID uuid.UUID, req *dto.ToggleSelectionRequest) (*dto.WizardViewResponse, error) {
	sel, err := toSelection(req.SelectionRequest)
	if err != nil {
		return nil, err
	}

	// the toggle applies on top of whatever autosave is still waiting
	if err := s.configs.FlushAutosave(ctx, configurationID); err != nil {
		s.logger.Warn("Pending autosave was not written before toggle",
			zap.String("configuration_id", configurationID.String()),
			zap.Error(err),
		)
	}

	sess, err := s.open(ctx, configurationID)
	if err != nil {
		return nil, err
	}

	set := wizard.NewSelectionSet(selectionsOf(sess.cfg.Items), s.lockGuard(ctx, configurationID))
	added, err := set.Toggle(sel)
	if err != nil {
		return nil, toAppError(err, configurationID.String(), "toggle selection")
	}

	_, err = s.configs.Save(ctx, configurationID, SaveCommand{
		Selections:      set.Items(),
		CategoryID:      sess.machine.Position().CategoryID,
		ExpectedVersion: req.ExpectedVersion,
		Trigger:         metrics.TriggerToggle,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Selection toggled",
		zap.String("configuration_id", configurationID.String()),
		zap.String("item_id", sel.ItemID.String()),
		zap.Bool("selected", added),
	)
	return s.OpenWizard(ctx, configurationID)
}

// Preview prices arbitrary selections against the configuration's project without saving anything
func (s *wizardServiceImpl) Preview(ctx context.Context, configurationID uuid.UUID, req *dto.PreviewRequest) (*dto.BreakdownResponse, error) {
	selections, err := toSelections(req.Selections)
	if err != nil {
		return nil, err
	}
	cfg, err := s.configRepo.FindByID(ctx, configurationID)
	if err != nil {
		return nil, toAppError(err, configurationID.String(), "fetch configuration")
	}
	snapshot, err := s.snapshots.Load(ctx, cfg.ProjectID)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.NewEngine(snapshot.Catalog).Breakdown(selections, snapshot.Project)
	resp := toBreakdownResponse(breakdown)
	return &resp, nil
}

// lockGuard re-reads the lock flag on every mutation
func (s *wizardServiceImpl) lockGuard(ctx context.Context, configurationID uuid.UUID) wizard.LockGuard {
	return func() bool {
		cfg, err := s.configRepo.FindByID(ctx, configurationID)
		if err != nil {
			s.logger.Warn("Failed to read lock state", zap.String("configuration_id", configurationID.String()), zap.Error(err))
			return false
		}
		return cfg.IsLocked
	}
}

func (s *wizardServiceImpl) view(sess *session) *dto.WizardViewResponse {
	now := s.now()
	catalog := sess.snapshot.Catalog
	selections := selectionsOf(sess.cfg.Items)

	step := dto.WizardStepResponse{
		Index:   sess.machine.Index(),
		Count:   sess.machine.Len(),
		IsFirst: sess.machine.IsFirst(),
		IsLast:  sess.machine.IsLast(),
		Items:   []dto.ItemResponse{},
	}
	path := []dto.CategoryRefResponse{}
	if current, ok := sess.machine.Current(); ok {
		ref := toCategoryRef(current)
		step.Category = &ref
		step.Scope = string(current.Scope)
		step.Items = toItemResponses(catalog, current.ID, now)
		path = categoryPath(catalog, current)
	}

	total := pricing.NewEngine(catalog).Total(selections, sess.snapshot.Project)

	return &dto.WizardViewResponse{
		ConfigurationID:  sess.cfg.ID,
		Status:           statusOf(sess.cfg),
		ReadOnly:         sess.cfg.IsLocked,
		Version:          sess.cfg.Version,
		Step:             step,
		Path:             path,
		Selections:       toSelectionResponses(selections),
		Rooms:            toRoomResponses(sess.snapshot.Project),
		Bathrooms:        toBathroomResponses(sess.snapshot.Project),
		Total:            pricing.FormatMoney(total),
		MissingStandards: toCategoryRefs(wizard.MissingStandards(sess.snapshot, selections, now)),
	}
}

// categoryPath lists the ancestors of a category from the root down, the category last
func categoryPath(catalog *pricing.Catalog, current *domain.Category) []dto.CategoryRefResponse {
	chain := []dto.CategoryRefResponse{toCategoryRef(current)}
	seen := map[uuid.UUID]bool{current.ID: true}
	parentID := current.ParentID
	for parentID != nil && !seen[*parentID] {
		parent, ok := catalog.Category(*parentID)
		if !ok {
			break
		}
		seen[parent.ID] = true
		chain = append(chain, toCategoryRef(parent))
		parentID = parent.ParentID
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
