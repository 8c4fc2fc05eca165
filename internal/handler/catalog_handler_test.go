package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-config-api/internal/dto"
	"project-config-api/internal/response"
)

func TestCatalogHandler_CreateCategory(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockService    func(*MockCatalogService)
		expectedStatus int
	}{
		{
			name:        "created",
			requestBody: dto.CreateCategoryRequest{Name: "Flooring", Scope: "room", PricingRule: "floor"},
			mockService: func(m *MockCatalogService) {
				m.CreateCategoryFunc = func(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
					return &dto.CategoryResponse{ID: uuid.New(), Name: req.Name, Scope: req.Scope, PricingRule: req.PricingRule}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			requestBody:    map[string]interface{}{"order": 1},
			mockService:    func(m *MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown pricing rule",
			requestBody:    dto.CreateCategoryRequest{Name: "Pool", PricingRule: "per_litre"},
			mockService:    func(m *MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "too deep",
			requestBody: dto.CreateCategoryRequest{Name: "Deep"},
			mockService: func(m *MockCatalogService) {
				m.CreateCategoryFunc = func(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
					return nil, response.NewValidationError("Category tree is limited to three levels", "parentId")
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockCatalogService{}
			tt.mockService(mockService)
			handler := NewCatalogHandler(mockService)

			router := setupTestRouter()
			router.POST("/categories", handler.CreateCategory)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCatalogHandler_UpdateCategory(t *testing.T) {
	categoryID := uuid.New()

	tests := []struct {
		name           string
		categoryID     string
		requestBody    interface{}
		mockService    func(*MockCatalogService)
		expectedStatus int
	}{
		{
			name:        "moved to root",
			categoryID:  categoryID.String(),
			requestBody: dto.UpdateCategoryRequest{MoveToRoot: true},
			mockService: func(m *MockCatalogService) {
				m.UpdateCategoryFunc = func(ctx context.Context, id uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
					assert.Equal(t, categoryID, id)
					assert.True(t, req.MoveToRoot)
					return &dto.CategoryResponse{ID: id, Name: "Floors"}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid id",
			categoryID:     "not-a-uuid",
			requestBody:    dto.UpdateCategoryRequest{},
			mockService:    func(m *MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid body",
			categoryID:     categoryID.String(),
			requestBody:    "invalid json",
			mockService:    func(m *MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "not found",
			categoryID:  categoryID.String(),
			requestBody: dto.UpdateCategoryRequest{},
			mockService: func(m *MockCatalogService) {
				m.UpdateCategoryFunc = func(ctx context.Context, id uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
					return nil, response.NewNotFoundError("Category not found", id.String())
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockCatalogService{}
			tt.mockService(mockService)
			handler := NewCatalogHandler(mockService)

			router := setupTestRouter()
			router.PATCH("/categories/:categoryId", handler.UpdateCategory)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPatch, "/categories/"+tt.categoryID, bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCatalogHandler_GetCategoryTree(t *testing.T) {
	rootID := uuid.New()
	mockService := &MockCatalogService{
		GetCategoryTreeFunc: func(ctx context.Context) ([]dto.CategoryResponse, error) {
			return []dto.CategoryResponse{{
				ID:       rootID,
				Name:     "Interior",
				Children: []dto.CategoryResponse{{ID: uuid.New(), Name: "Floors", ParentID: &rootID, Depth: 1, Children: []dto.CategoryResponse{}}},
			}}, nil
		},
	}
	handler := NewCatalogHandler(mockService)

	router := setupTestRouter()
	router.GET("/categories", handler.GetCategoryTree)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []dto.CategoryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.Len(t, body.Data[0].Children, 1)
	assert.Equal(t, "Floors", body.Data[0].Children[0].Name)
}
