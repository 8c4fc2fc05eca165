package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"project-config-api/internal/cache"
	"project-config-api/internal/database"
	"project-config-api/internal/domain"
	"project-config-api/internal/metrics"
	"project-config-api/internal/repository"
)

// fixture is a seeded catalog and project wired to real repositories on sqlite.
//
// Wizard order: Flooring (room, floor), Facade (facade), Ventilation, Sanitary (bathroom).
// Standard items: Laminate in Flooring, Toilet in Sanitary.
// The kitchen prohibits Oak parquet.
type fixture struct {
	db *gorm.DB

	project  *domain.ConstructionProject
	bedroom  domain.ProjectRoom
	kitchen  domain.ProjectRoom
	bathroom domain.ProjectBathroom

	flooring    *domain.Category
	facade      *domain.Category
	ventilation *domain.Category
	sanitary    *domain.Category

	parquet  *domain.Item
	laminate *domain.Item
	clinker  *domain.Item
	ventUnit *domain.Item
	toilet   *domain.Item
	shower   *domain.Item

	configRepo repository.ConfigurationRepository
	snapshots  SnapshotLoader
	configs    ConfigurationService
	wizard     WizardService
	noti       *MockNotificationClient
	exports    *MockExportStore
	metrics    *metrics.Metrics
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newFixture(t *testing.T, autosaveDelay time.Duration) *fixture {
	t.Helper()
	db := setupTestDB(t)
	f := &fixture{db: db}

	f.flooring = f.category(t, "Flooring", 1, domain.ScopeRoom, domain.PricingRuleFloor)
	f.facade = f.category(t, "Facade", 2, domain.ScopeWholeHouse, domain.PricingRuleFacade)
	f.ventilation = f.category(t, "Ventilation", 3, domain.ScopeWholeHouse, domain.PricingRuleVentilation)
	f.sanitary = f.category(t, "Sanitary", 4, domain.ScopeWholeHouse, domain.PricingRuleBathroom)

	f.parquet = f.item(t, f.flooring, "Oak parquet", 10, false, domain.ItemVariation{
		Type: domain.VariationTypeColor, Name: "Smoked oak", Surcharge: decimal.RequireFromString("2.50"),
	})
	f.laminate = f.item(t, f.flooring, "Laminate", 25, true)
	f.clinker = f.item(t, f.facade, "Clinker brick", 5, false)
	f.ventUnit = f.item(t, f.ventilation, "Ventilation unit", 100, false)
	f.toilet = f.item(t, f.sanitary, "Toilet", 80, true)
	f.shower = f.item(t, f.sanitary, "Rain shower", 150, false)

	f.project = &domain.ConstructionProject{
		Name:       "Family house",
		FacadeArea: decimal.NewFromInt(120),
		Rooms: []domain.ProjectRoom{
			{Name: "Bedroom", FloorSpace: decimal.NewFromInt(20)},
			{Name: "Kitchen", FloorSpace: decimal.NewFromInt(15), ProhibitedItems: datatypes.NewJSONSlice([]uuid.UUID{f.parquet.ID})},
		},
		Bathrooms: []domain.ProjectBathroom{{RoomNumber: 1, HasToilet: true, HasShower: true}},
	}
	require.NoError(t, db.Create(f.project).Error)
	f.bedroom = f.project.Rooms[0]
	f.kitchen = f.project.Rooms[1]
	f.bathroom = f.project.Bathrooms[0]

	log := zap.NewNop()
	f.metrics = metrics.NewWithRegistry(prometheus.NewRegistry(), log)
	f.noti = &MockNotificationClient{}
	f.exports = &MockExportStore{}
	f.configRepo = repository.NewConfigurationRepository(db)
	f.snapshots = NewSnapshotLoader(
		repository.NewCatalogRepository(db),
		repository.NewProjectRepository(db),
		cache.NoopSnapshotCache{},
		f.metrics,
		log,
	)
	f.configs = NewConfigurationService(
		f.configRepo,
		repository.NewProjectRepository(db),
		f.snapshots,
		f.noti,
		f.exports,
		f.metrics,
		autosaveDelay,
		log,
	)
	f.wizard = NewWizardService(f.configRepo, f.configs, f.snapshots, log)
	t.Cleanup(func() { _ = f.configs.Shutdown(context.Background()) })
	return f
}

func (f *fixture) category(t *testing.T, name string, order int, scope domain.CategoryScope, rule domain.PricingRule) *domain.Category {
	t.Helper()
	c := &domain.Category{Name: name, Order: order, Scope: scope, PricingRule: rule}
	require.NoError(t, f.db.Create(c).Error)
	return c
}

func (f *fixture) item(t *testing.T, category *domain.Category, name string, cost int64, standard bool, variations ...domain.ItemVariation) *domain.Item {
	t.Helper()
	it := &domain.Item{
		CategoryID:     category.ID,
		Name:           name,
		AdditionalCost: decimal.NewFromInt(cost),
		IsStandard:     standard,
		Variations:     variations,
	}
	require.NoError(t, f.db.Create(it).Error)
	return it
}

func intPtr(v int) *int { return &v }
