package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"project-config-api/internal/dto"
	"project-config-api/internal/service"
)

var errNotStubbed = errors.New("not stubbed")

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func intPtr(v int) *int { return &v }

// MockCatalogService is a mock implementation of service.CatalogService
type MockCatalogService struct {
	CreateCategoryFunc  func(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategoryFunc  func(ctx context.Context, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	GetCategoryTreeFunc func(ctx context.Context) ([]dto.CategoryResponse, error)
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if m.CreateCategoryFunc != nil {
		return m.CreateCategoryFunc(ctx, req)
	}
	return nil, errNotStubbed
}

func (m *MockCatalogService) UpdateCategory(ctx context.Context, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if m.UpdateCategoryFunc != nil {
		return m.UpdateCategoryFunc(ctx, categoryID, req)
	}
	return nil, errNotStubbed
}

func (m *MockCatalogService) GetCategoryTree(ctx context.Context) ([]dto.CategoryResponse, error) {
	if m.GetCategoryTreeFunc != nil {
		return m.GetCategoryTreeFunc(ctx)
	}
	return []dto.CategoryResponse{}, nil
}

// MockConfigurationService is a mock implementation of service.ConfigurationService
type MockConfigurationService struct {
	CreateConfigurationFunc    func(ctx context.Context, projectID uuid.UUID, req *dto.CreateConfigurationRequest) (*dto.ConfigurationResponse, error)
	GetConfigurationFunc       func(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error)
	ListConfigurationsFunc     func(ctx context.Context, projectID uuid.UUID) ([]dto.ConfigurationResponse, error)
	SaveSelectionsFunc         func(ctx context.Context, configurationID uuid.UUID, req *dto.SaveSelectionsRequest) (*dto.SaveResultResponse, error)
	CompleteConfigurationFunc  func(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error)
	LockConfigurationFunc      func(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error)
	DuplicateConfigurationFunc func(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error)
	DeleteConfigurationFunc    func(ctx context.Context, configurationID uuid.UUID) error
	ExportConfigurationFunc    func(ctx context.Context, configurationID uuid.UUID, publish bool) (*dto.ExportResponse, error)
}

func (m *MockConfigurationService) CreateConfiguration(ctx context.Context, projectID uuid.UUID, req *dto.CreateConfigurationRequest) (*dto.ConfigurationResponse, error) {
	if m.CreateConfigurationFunc != nil {
		return m.CreateConfigurationFunc(ctx, projectID, req)
	}
	return nil, errNotStubbed
}

func (m *MockConfigurationService) GetConfiguration(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error) {
	if m.GetConfigurationFunc != nil {
		return m.GetConfigurationFunc(ctx, configurationID)
	}
	return nil, errNotStubbed
}

func (m *MockConfigurationService) ListConfigurations(ctx context.Context, projectID uuid.UUID) ([]dto.ConfigurationResponse, error) {
	if m.ListConfigurationsFunc != nil {
		return m.ListConfigurationsFunc(ctx, projectID)
	}
	return []dto.ConfigurationResponse{}, nil
}

func (m *MockConfigurationService) SaveSelections(ctx context.Context, configurationID uuid.UUID, req *dto.SaveSelectionsRequest) (*dto.SaveResultResponse, error) {
	if m.SaveSelectionsFunc != nil {
		return m.SaveSelectionsFunc(ctx, configurationID, req)
	}
	return nil, errNotStubbed
}

func (m *MockConfigurationService) Save(ctx context.Context, configurationID uuid.UUID, cmd service.SaveCommand) (*dto.SaveResultResponse, error) {
	return nil, errNotStubbed
}

func (m *MockConfigurationService) CompleteConfiguration(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error) {
	if m.CompleteConfigurationFunc != nil {
		return m.CompleteConfigurationFunc(ctx, configurationID)
	}
	return nil, errNotStubbed
}

func (m *MockConfigurationService) LockConfiguration(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error) {
	if m.LockConfigurationFunc != nil {
		return m.LockConfigurationFunc(ctx, configurationID)
	}
	return nil, errNotStubbed
}

func (m *MockConfigurationService) DuplicateConfiguration(ctx context.Context, configurationID uuid.UUID) (*dto.ConfigurationResponse, error) {
	if m.DuplicateConfigurationFunc != nil {
		return m.DuplicateConfigurationFunc(ctx, configurationID)
	}
	return nil, errNotStubbed
}

func (m *MockConfigurationService) DeleteConfiguration(ctx context.Context, configurationID uuid.UUID) error {
	if m.DeleteConfigurationFunc != nil {
		return m.DeleteConfigurationFunc(ctx, configurationID)
	}
	return nil
}

func (m *MockConfigurationService) ExportConfiguration(ctx context.Context, configurationID uuid.UUID, publish bool) (*dto.ExportResponse, error) {
	if m.ExportConfigurationFunc != nil {
		return m.ExportConfigurationFunc(ctx, configurationID, publish)
	}
	return nil, errNotStubbed
}

func (m *MockConfigurationService) FlushAutosave(ctx context.Context, configurationID uuid.UUID) error {
	return nil
}

func (m *MockConfigurationService) Shutdown(ctx context.Context) error {
	return nil
}

// MockWizardService is a mock implementation of service.WizardService
type MockWizardService struct {
	OpenWizardFunc      func(ctx context.Context, configurationID uuid.UUID) (*dto.WizardViewResponse, error)
	NextFunc            func(ctx context.Context, configurationID uuid.UUID) (*dto.WizardViewResponse, error)
	PreviousFunc        func(ctx context.Context, configurationID uuid.UUID) (*dto.WizardViewResponse, error)
	JumpFunc            func(ctx context.Context, configurationID uuid.UUID, req *dto.JumpRequest) (*dto.WizardViewResponse, error)
	ToggleSelectionFunc func(ctx context.Context, configurationID uuid.UUID, req *dto.ToggleSelectionRequest) (*dto.WizardViewResponse, error)
	PreviewFunc         func(ctx context.Context, configurationID uuid.UUID, req *dto.PreviewRequest) (*dto.BreakdownResponse, error)
}

func (m *MockWizardService) OpenWizard(ctx context.Context, configurationID uuid.UUID) (*dto.WizardViewResponse, error) {
	if m.OpenWizardFunc != nil {
		return m.OpenWizardFunc(ctx, configurationID)
	}
	return nil, errNotStubbed
}

func (m *MockWizardService) Next(ctx context.Context, configurationID uuid.UUID) (*dto.WizardViewResponse, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, configurationID)
	}
	return nil, errNotStubbed
}

func (m *MockWizardService) Previous(ctx context.Context, configurationID uuid.UUID) (*dto.WizardViewResponse, error) {
	if m.PreviousFunc != nil {
		return m.PreviousFunc(ctx, configurationID)
	}
	return nil, errNotStubbed
}

func (m *MockWizardService) Jump(ctx context.Context, configurationID uuid.UUID, req *dto.JumpRequest) (*dto.WizardViewResponse, error) {
	if m.JumpFunc != nil {
		return m.JumpFunc(ctx, configurationID, req)
	}
	return nil, errNotStubbed
}

func (m *MockWizardService) ToggleSelection(ctx context.Context, configurationID uuid.UUID, req *dto.ToggleSelectionRequest) (*dto.WizardViewResponse, error) {
	if m.ToggleSelectionFunc != nil {
		return m.ToggleSelectionFunc(ctx, configurationID, req)
	}
	return nil, errNotStubbed
}

func (m *MockWizardService) Preview(ctx context.Context, configurationID uuid.UUID, req *dto.PreviewRequest) (*dto.BreakdownResponse, error) {
	if m.PreviewFunc != nil {
		return m.PreviewFunc(ctx, configurationID, req)
	}
	return nil, errNotStubbed
}

var (
	_ service.CatalogService       = (*MockCatalogService)(nil)
	_ service.ConfigurationService = (*MockConfigurationService)(nil)
	_ service.WizardService        = (*MockWizardService)(nil)
)
