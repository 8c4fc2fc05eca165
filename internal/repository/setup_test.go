package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"project-config-api/internal/domain"
)

// setupTestDB opens a private in-memory database shared by all connections of the pool
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.PriceTable{},
		&domain.Category{},
		&domain.Item{},
		&domain.ItemVariation{},
		&domain.PriceTableEntry{},
		&domain.ConstructionProject{},
		&domain.ProjectRoom{},
		&domain.ProjectBathroom{},
		&domain.Configuration{},
		&domain.ConfigurationItem{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedProject(t *testing.T, db *gorm.DB) *domain.ConstructionProject {
	project := &domain.ConstructionProject{
		Name:       "Semi-detached house",
		FacadeArea: decimal.NewFromInt(80),
		Rooms: []domain.ProjectRoom{
			{Name: "Kitchen", FloorSpace: decimal.NewFromInt(12)},
			{Name: "Bedroom", FloorSpace: decimal.NewFromInt(20)},
		},
		Bathrooms: []domain.ProjectBathroom{
			{RoomNumber: 2, HasShower: true},
			{RoomNumber: 1, HasToilet: true},
		},
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func seedItem(t *testing.T, db *gorm.DB, name string) (*domain.Category, *domain.Item) {
	category := &domain.Category{Name: name + " category", Scope: domain.ScopeWholeHouse, PricingRule: domain.PricingRuleGeneric}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	item := &domain.Item{
		CategoryID:     category.ID,
		Name:           name,
		AdditionalCost: decimal.NewFromInt(10),
		Variations: []domain.ItemVariation{
			{Type: domain.VariationTypeColor, Name: "White", Surcharge: decimal.NewFromInt(1)},
		},
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return category, item
}

func seedConfiguration(t *testing.T, db *gorm.DB, projectID uuid.UUID, name string) *domain.Configuration {
	cfg := &domain.Configuration{ProjectID: projectID, Name: name}
	if err := db.Create(cfg).Error; err != nil {
		t.Fatalf("failed to seed configuration: %v", err)
	}
	return cfg
}
