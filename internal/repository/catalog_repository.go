package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"project-config-api/internal/domain"
)

// CatalogRepository defines the interface for catalog data access
type CatalogRepository interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	UpdateCategories(ctx context.Context, categories []*domain.Category) error
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindAllCategories(ctx context.Context) ([]domain.Category, error)
	FindItems(ctx context.Context) ([]domain.Item, error)
	FindPriceTables(ctx context.Context) ([]*domain.PriceTable, error)
	FindPriceEntries(ctx context.Context, priceTableID uuid.UUID) ([]domain.PriceTableEntry, error)
}

// catalogRepositoryImpl is the GORM implementation of CatalogRepository
type catalogRepositoryImpl struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepositoryImpl{db: db}
}

// CreateCategory creates a new category without touching associations
func (r *catalogRepositoryImpl) CreateCategory(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error
}

// UpdateCategories saves a batch of categories in one transaction.
// Reparenting changes the depth of a whole subtree, which must land together.
func (r *catalogRepositoryImpl) UpdateCategories(ctx context.Context, categories []*domain.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range categories {
			if err := tx.Omit(clause.Associations).Save(c).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindCategoryByID finds a category by its ID
func (r *catalogRepositoryImpl) FindCategoryByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindAllCategories returns every category as a flat list
func (r *catalogRepositoryImpl) FindAllCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).
		Order("depth ASC").
		Order("sort_order ASC").
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindItems returns every item with its variations
func (r *catalogRepositoryImpl) FindItems(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	if err := r.db.WithContext(ctx).
		Preload("Variations", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindPriceTables returns all price tables without entries
func (r *catalogRepositoryImpl) FindPriceTables(ctx context.Context) ([]*domain.PriceTable, error) {
	var tables []*domain.PriceTable
	if err := r.db.WithContext(ctx).Order("year DESC").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// FindPriceEntries returns the overrides of one price table
func (r *catalogRepositoryImpl) FindPriceEntries(ctx context.Context, priceTableID uuid.UUID) ([]domain.PriceTableEntry, error) {
	var entries []domain.PriceTableEntry
	if err := r.db.WithContext(ctx).
		Where("price_table_id = ?", priceTableID).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
