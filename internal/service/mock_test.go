package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"project-config-api/internal/client"
	"project-config-api/internal/domain"
	"project-config-api/internal/pricing"
	"project-config-api/internal/repository"
)

// MockCatalogRepository is a mock implementation of CatalogRepository
type MockCatalogRepository struct {
	CreateCategoryFunc    func(ctx context.Context, category *domain.Category) error
	UpdateCategoriesFunc  func(ctx context.Context, categories []*domain.Category) error
	FindCategoryByIDFunc  func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindAllCategoriesFunc func(ctx context.Context) ([]domain.Category, error)
	FindItemsFunc         func(ctx context.Context) ([]domain.Item, error)
	FindPriceTablesFunc   func(ctx context.Context) ([]*domain.PriceTable, error)
	FindPriceEntriesFunc  func(ctx context.Context, priceTableID uuid.UUID) ([]domain.PriceTableEntry, error)
}

func (m *MockCatalogRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	if m.CreateCategoryFunc != nil {
		return m.CreateCategoryFunc(ctx, category)
	}
	category.ID = uuid.New()
	return nil
}

func (m *MockCatalogRepository) UpdateCategories(ctx context.Context, categories []*domain.Category) error {
	if m.UpdateCategoriesFunc != nil {
		return m.UpdateCategoriesFunc(ctx, categories)
	}
	return nil
}

func (m *MockCatalogRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if m.FindCategoryByIDFunc != nil {
		return m.FindCategoryByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCatalogRepository) FindAllCategories(ctx context.Context) ([]domain.Category, error) {
	if m.FindAllCategoriesFunc != nil {
		return m.FindAllCategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *MockCatalogRepository) FindItems(ctx context.Context) ([]domain.Item, error) {
	if m.FindItemsFunc != nil {
		return m.FindItemsFunc(ctx)
	}
	return nil, nil
}

func (m *MockCatalogRepository) FindPriceTables(ctx context.Context) ([]*domain.PriceTable, error) {
	if m.FindPriceTablesFunc != nil {
		return m.FindPriceTablesFunc(ctx)
	}
	return nil, nil
}

func (m *MockCatalogRepository) FindPriceEntries(ctx context.Context, priceTableID uuid.UUID) ([]domain.PriceTableEntry, error) {
	if m.FindPriceEntriesFunc != nil {
		return m.FindPriceEntriesFunc(ctx, priceTableID)
	}
	return nil, nil
}

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.ConstructionProject, error)
	ExistsFunc   func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ConstructionProject, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockProjectRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

// MockConfigurationRepository is a mock implementation of ConfigurationRepository
type MockConfigurationRepository struct {
	CreateFunc             func(ctx context.Context, configuration *domain.Configuration) error
	CreateWithItemsFunc    func(ctx context.Context, configuration *domain.Configuration, items []domain.ConfigurationItem) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Configuration, error)
	FindByIDWithItemsFunc  func(ctx context.Context, id uuid.UUID) (*domain.Configuration, error)
	FindByProjectIDFunc    func(ctx context.Context, projectID uuid.UUID) ([]*domain.Configuration, error)
	ReplaceItemsFunc       func(ctx context.Context, params repository.ReplaceItemsParams) (*domain.Configuration, error)
	UpdatePositionFunc     func(ctx context.Context, id uuid.UUID, categoryID *uuid.UUID) (bool, error)
	MarkCompletedFunc      func(ctx context.Context, id uuid.UUID) error
	LockFunc               func(ctx context.Context, id uuid.UUID) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	CountOrphanedItemsFunc func(ctx context.Context) (int64, error)
	StatsFunc              func(ctx context.Context) (*repository.ConfigurationStats, error)
}

func (m *MockConfigurationRepository) Create(ctx context.Context, configuration *domain.Configuration) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, configuration)
	}
	configuration.ID = uuid.New()
	return nil
}

func (m *MockConfigurationRepository) CreateWithItems(ctx context.Context, configuration *domain.Configuration, items []domain.ConfigurationItem) error {
	if m.CreateWithItemsFunc != nil {
		return m.CreateWithItemsFunc(ctx, configuration, items)
	}
	configuration.ID = uuid.New()
	return nil
}

func (m *MockConfigurationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Configuration, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockConfigurationRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*domain.Configuration, error) {
	if m.FindByIDWithItemsFunc != nil {
		return m.FindByIDWithItemsFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockConfigurationRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Configuration, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockConfigurationRepository) ReplaceItems(ctx context.Context, params repository.ReplaceItemsParams) (*domain.Configuration, error) {
	if m.ReplaceItemsFunc != nil {
		return m.ReplaceItemsFunc(ctx, params)
	}
	return &domain.Configuration{BaseModel: domain.BaseModel{ID: params.ConfigurationID}, Items: params.Items}, nil
}

func (m *MockConfigurationRepository) UpdatePosition(ctx context.Context, id uuid.UUID, categoryID *uuid.UUID) (bool, error) {
	if m.UpdatePositionFunc != nil {
		return m.UpdatePositionFunc(ctx, id, categoryID)
	}
	return true, nil
}

func (m *MockConfigurationRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(ctx, id)
	}
	return nil
}

func (m *MockConfigurationRepository) Lock(ctx context.Context, id uuid.UUID) error {
	if m.LockFunc != nil {
		return m.LockFunc(ctx, id)
	}
	return nil
}

func (m *MockConfigurationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockConfigurationRepository) CountOrphanedItems(ctx context.Context) (int64, error) {
	if m.CountOrphanedItemsFunc != nil {
		return m.CountOrphanedItemsFunc(ctx)
	}
	return 0, nil
}

func (m *MockConfigurationRepository) Stats(ctx context.Context) (*repository.ConfigurationStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &repository.ConfigurationStats{}, nil
}

// MockSnapshotLoader is a mock implementation of SnapshotLoader
type MockSnapshotLoader struct {
	LoadFunc      func(ctx context.Context, projectID uuid.UUID) (*pricing.Snapshot, error)
	Invalidations int
}

func (m *MockSnapshotLoader) Load(ctx context.Context, projectID uuid.UUID) (*pricing.Snapshot, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, projectID)
	}
	return &pricing.Snapshot{
		Catalog: pricing.NewCatalog(nil, nil, nil),
		Project: &pricing.ProjectContext{ProjectID: projectID},
	}, nil
}

func (m *MockSnapshotLoader) Invalidate(ctx context.Context) {
	m.Invalidations++
}

// MockNotificationClient records every event it is asked to send
type MockNotificationClient struct {
	mu     sync.Mutex
	Events []client.NotificationEvent
}

func (m *MockNotificationClient) SendNotification(ctx context.Context, event client.NotificationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockNotificationClient) types() []client.NotificationType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]client.NotificationType, 0, len(m.Events))
	for _, e := range m.Events {
		out = append(out, e.Type)
	}
	return out
}

// MockExportStore is a mock implementation of ExportStore
type MockExportStore struct {
	PublishExportFunc func(ctx context.Context, configurationID uuid.UUID, document []byte) (string, error)
	Documents         map[uuid.UUID][]byte
}

func (m *MockExportStore) PublishExport(ctx context.Context, configurationID uuid.UUID, document []byte) (string, error) {
	if m.PublishExportFunc != nil {
		return m.PublishExportFunc(ctx, configurationID, document)
	}
	if m.Documents == nil {
		m.Documents = make(map[uuid.UUID][]byte)
	}
	m.Documents[configurationID] = document
	return "https://exports.example.com/" + configurationID.String() + ".json", nil
}

var (
	_ repository.CatalogRepository       = (*MockCatalogRepository)(nil)
	_ repository.ProjectRepository       = (*MockProjectRepository)(nil)
	_ repository.ConfigurationRepository = (*MockConfigurationRepository)(nil)
	_ SnapshotLoader                     = (*MockSnapshotLoader)(nil)
	_ client.NotificationClient          = (*MockNotificationClient)(nil)
	_ ExportStore                        = (*MockExportStore)(nil)
)
