package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"project-config-api/internal/domain"
)

// ReplaceItemsParams describes a whole-set replace of a configuration's selections
type ReplaceItemsParams struct {
	ConfigurationID uuid.UUID
	Items           []domain.ConfigurationItem
	LastCategoryID  *uuid.UUID
	SelectionHash   string
	// ExpectedVersion enables optimistic concurrency when set
	ExpectedVersion *int
}

// ConfigurationStats is a point-in-time count used by the metrics collector
type ConfigurationStats struct {
	Total  int64
	Locked int64
}

// ConfigurationRepository defines the interface for configuration data access
type ConfigurationRepository interface {
	Create(ctx context.Context, configuration *domain.Configuration) error
	CreateWithItems(ctx context.Context, configuration *domain.Configuration, items []domain.ConfigurationItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Configuration, error)
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*domain.Configuration, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Configuration, error)
	ReplaceItems(ctx context.Context, params ReplaceItemsParams) (*domain.Configuration, error)
	UpdatePosition(ctx context.Context, id uuid.UUID, categoryID *uuid.UUID) (bool, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) error
	Lock(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountOrphanedItems(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*ConfigurationStats, error)
}

// configurationRepositoryImpl is the GORM implementation of ConfigurationRepository
type configurationRepositoryImpl struct {
	db *gorm.DB
}

// NewConfigurationRepository creates a new instance of ConfigurationRepository
func NewConfigurationRepository(db *gorm.DB) ConfigurationRepository {
	return &configurationRepositoryImpl{db: db}
}

// Create creates a new configuration
func (r *configurationRepositoryImpl) Create(ctx context.Context, configuration *domain.Configuration) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(configuration).Error
}

// CreateWithItems creates a configuration and its items in one transaction
func (r *configurationRepositoryImpl) CreateWithItems(ctx context.Context, configuration *domain.Configuration, items []domain.ConfigurationItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(configuration).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = uuid.Nil
			items[i].ConfigurationID = configuration.ID
			items[i].Seq = i
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		configuration.Items = items
		return nil
	})
}

// FindByID finds a configuration without its items
func (r *configurationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Configuration, error) {
	var configuration domain.Configuration
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&configuration).Error; err != nil {
		return nil, err
	}
	return &configuration, nil
}

// FindByIDWithItems finds a configuration with its items in insertion order
func (r *configurationRepositoryImpl) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*domain.Configuration, error) {
	return findWithItems(r.db.WithContext(ctx), id)
}

func findWithItems(db *gorm.DB, id uuid.UUID) (*domain.Configuration, error) {
	var configuration domain.Configuration
	if err := db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Where("id = ?", id).
		First(&configuration).Error; err != nil {
		return nil, err
	}
	return &configuration, nil
}

// FindByProjectID lists the configurations of a project, newest first
func (r *configurationRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Configuration, error) {
	var configurations []*domain.Configuration
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&configurations).Error; err != nil {
		return nil, err
	}
	return configurations, nil
}

// ReplaceItems swaps the full selection set of an unlocked configuration.
// The lock (and version, when expected) is checked in the same UPDATE that
// bumps the version, so a concurrent Lock can never be overwritten.
func (r *configurationRepositoryImpl) ReplaceItems(ctx context.Context, params ReplaceItemsParams) (*domain.Configuration, error) {
	var saved *domain.Configuration
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&domain.Configuration{}).
			Where("id = ? AND is_locked = ?", params.ConfigurationID, false)
		if params.ExpectedVersion != nil {
			query = query.Where("version = ?", *params.ExpectedVersion)
		}
		result := query.Updates(map[string]interface{}{
			"last_category_id": nullableUUID(params.LastCategoryID),
			"selection_hash":   params.SelectionHash,
			"version":          gorm.Expr("version + 1"),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return rejectedWrite(tx, params.ConfigurationID, params.ExpectedVersion != nil)
		}

		if err := tx.Where("configuration_id = ?", params.ConfigurationID).
			Delete(&domain.ConfigurationItem{}).Error; err != nil {
			return err
		}
		if len(params.Items) > 0 {
			items := make([]domain.ConfigurationItem, len(params.Items))
			copy(items, params.Items)
			for i := range items {
				items[i].ID = uuid.Nil
				items[i].ConfigurationID = params.ConfigurationID
				items[i].Seq = i
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		cfg, err := findWithItems(tx, params.ConfigurationID)
		if err != nil {
			return err
		}
		saved = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// UpdatePosition stores the wizard position of an unlocked configuration.
// It reports false without error when the configuration is locked.
func (r *configurationRepositoryImpl) UpdatePosition(ctx context.Context, id uuid.UUID, categoryID *uuid.UUID) (bool, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&domain.Configuration{}).
		Where("id = ? AND is_locked = ?", id, false).
		Update("last_category_id", nullableUUID(categoryID))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	if err := rejectedWrite(db, id, false); !errors.Is(err, ErrConfigurationLocked) {
		return false, err
	}
	return false, nil
}

// MarkCompleted sets the completed flag of an unlocked configuration
func (r *configurationRepositoryImpl) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&domain.Configuration{}).
		Where("id = ? AND is_locked = ?", id, false).
		Update("is_completed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return rejectedWrite(db, id, false)
	}
	return nil
}

// Lock sets the locked flag. Locking twice is not an error.
func (r *configurationRepositoryImpl) Lock(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Configuration{}).
		Where("id = ?", id).
		Update("is_locked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a configuration and all of its items in one transaction
func (r *configurationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("configuration_id = ?", id).
			Delete(&domain.ConfigurationItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&domain.Configuration{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountOrphanedItems counts selections whose item or variation no longer exists
func (r *configurationRepositoryImpl) CountOrphanedItems(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("configuration_items AS ci").
		Joins("LEFT JOIN items i ON i.id = ci.item_id").
		Joins("LEFT JOIN item_variations v ON v.id = ci.variation_id").
		Where("i.id IS NULL OR (ci.variation_id IS NOT NULL AND v.id IS NULL)").
		Count(&count).Error
	return count, err
}

// Stats counts all and locked configurations
func (r *configurationRepositoryImpl) Stats(ctx context.Context) (*ConfigurationStats, error) {
	var stats ConfigurationStats
	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Configuration{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Configuration{}).Where("is_locked = ?", true).Count(&stats.Locked).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// rejectedWrite explains why a guarded UPDATE matched no row
func rejectedWrite(db *gorm.DB, id uuid.UUID, versioned bool) error {
	var cfg domain.Configuration
	if err := db.Select("id", "is_locked", "version").Where("id = ?", id).First(&cfg).Error; err != nil {
		return err
	}
	if cfg.IsLocked {
		return ErrConfigurationLocked
	}
	if versioned {
		return ErrVersionConflict
	}
	return gorm.ErrRecordNotFound
}

func nullableUUID(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
