package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"project-config-api/internal/domain"
	"project-config-api/internal/dto"
	"project-config-api/internal/pricing"
	"project-config-api/internal/repository"
	"project-config-api/internal/response"
)

// CatalogService defines the interface for category authoring
type CatalogService interface {
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	GetCategoryTree(ctx context.Context) ([]dto.CategoryResponse, error)
}

// catalogServiceImpl is the implementation of CatalogService
type catalogServiceImpl struct {
	catalogRepo repository.CatalogRepository
	snapshots   SnapshotLoader
	logger      *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(catalogRepo repository.CatalogRepository, snapshots SnapshotLoader, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{
		catalogRepo: catalogRepo,
		snapshots:   snapshots,
		logger:      logger,
	}
}

// CreateCategory creates a category below an optional parent
func (s *catalogServiceImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Category name is required", "")
	}

	scope := domain.ScopeWholeHouse
	if req.Scope != "" {
		scope = domain.CategoryScope(req.Scope)
	}
	rule := domain.PricingRuleGeneric
	if req.PricingRule != "" {
		rule = domain.PricingRule(req.PricingRule)
	}
	if err := validateCategoryTags(scope, rule); err != nil {
		return nil, err
	}

	category := &domain.Category{
		Name:        name,
		Order:       req.Order,
		Scope:       scope,
		PricingRule: rule,
	}

	if req.ParentID != nil {
		parent, err := s.findCategory(ctx, *req.ParentID, "Parent category not found")
		if err != nil {
			return nil, err
		}
		if parent.Depth+1 > domain.MaxCategoryDepth {
			return nil, response.NewValidationError("Category tree is limited to three levels", parent.Name)
		}
		category.ParentID = &parent.ID
		category.Depth = parent.Depth + 1
	}

	if err := s.catalogRepo.CreateCategory(ctx, category); err != nil {
		s.logger.Error("Failed to create category", zap.String("name", name), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create category", err.Error())
	}
	s.snapshots.Invalidate(ctx)

	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.Int("depth", category.Depth),
	)
	resp := toCategoryResponse(category)
	return &resp, nil
}

// UpdateCategory renames, reorders, retags or reparents a category.
// Reparenting moves the whole subtree and rewrites its depths.
func (s *catalogServiceImpl) UpdateCategory(ctx context.Context, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if req.ParentID != nil && req.MoveToRoot {
		return nil, response.NewValidationError("parentId and moveToRoot cannot be combined", "")
	}

	all, err := s.catalogRepo.FindAllCategories(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load categories", err.Error())
	}
	byID := make(map[uuid.UUID]*domain.Category, len(all))
	children := make(map[uuid.UUID][]uuid.UUID)
	for i := range all {
		byID[all[i].ID] = &all[i]
		if all[i].ParentID != nil {
			children[*all[i].ParentID] = append(children[*all[i].ParentID], all[i].ID)
		}
	}

	category, ok := byID[categoryID]
	if !ok {
		return nil, response.NewNotFoundError("Category not found", categoryID.String())
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.NewValidationError("Category name is required", "")
		}
		category.Name = name
	}
	if req.Order != nil {
		category.Order = *req.Order
	}
	if req.Scope != nil {
		category.Scope = domain.CategoryScope(*req.Scope)
	}
	rule := domain.PricingRuleGeneric
	if req.PricingRule != nil {
		rule = domain.PricingRule(*req.PricingRule)
		category.PricingRule = rule
	}
	if err := validateCategoryTags(category.Scope, rule); err != nil {
		return nil, err
	}

	subtree := collectSubtree(categoryID, children)
	changed := []*domain.Category{category}

	newDepth := category.Depth
	switch {
	case req.MoveToRoot:
		category.ParentID = nil
		newDepth = 0
	case req.ParentID != nil:
		parent, ok := byID[*req.ParentID]
		if !ok {
			return nil, response.NewNotFoundError("Parent category not found", req.ParentID.String())
		}
		if subtree[parent.ID] {
			return nil, response.NewValidationError("A category cannot be moved below itself", parent.Name)
		}
		category.ParentID = &parent.ID
		newDepth = parent.Depth + 1
	}

	if shift := newDepth - category.Depth; shift != 0 {
		for id := range subtree {
			c := byID[id]
			if c.Depth+shift > domain.MaxCategoryDepth {
				return nil, response.NewValidationError("Category tree is limited to three levels", c.Name)
			}
		}
		for id := range subtree {
			c := byID[id]
			c.Depth += shift
			if id != categoryID {
				changed = append(changed, c)
			}
		}
	}

	if err := s.catalogRepo.UpdateCategories(ctx, changed); err != nil {
		s.logger.Error("Failed to update category", zap.String("category_id", categoryID.String()), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update category", err.Error())
	}
	s.snapshots.Invalidate(ctx)

	s.logger.Info("Category updated",
		zap.String("category_id", categoryID.String()),
		zap.Int("rows", len(changed)),
	)
	resp := toCategoryResponse(category)
	return &resp, nil
}

// GetCategoryTree returns the catalog as a tree in wizard order
func (s *catalogServiceImpl) GetCategoryTree(ctx context.Context) ([]dto.CategoryResponse, error) {
	all, err := s.catalogRepo.FindAllCategories(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load categories", err.Error())
	}

	ordered := pricing.OrderCategories(all)
	known := make(map[uuid.UUID]bool, len(ordered))
	children := make(map[uuid.UUID][]*domain.Category)
	for i := range ordered {
		known[ordered[i].ID] = true
	}
	var roots []*domain.Category
	for i := range ordered {
		c := &ordered[i]
		if c.ParentID != nil && known[*c.ParentID] {
			children[*c.ParentID] = append(children[*c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	var build func(c *domain.Category) dto.CategoryResponse
	build = func(c *domain.Category) dto.CategoryResponse {
		resp := toCategoryResponse(c)
		for _, child := range children[c.ID] {
			resp.Children = append(resp.Children, build(child))
		}
		return resp
	}

	tree := make([]dto.CategoryResponse, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, build(root))
	}
	return tree, nil
}

func (s *catalogServiceImpl) findCategory(ctx context.Context, id uuid.UUID, notFound string) (*domain.Category, error) {
	category, err := s.catalogRepo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError(notFound, id.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch category", err.Error())
	}
	return category, nil
}

func validateCategoryTags(scope domain.CategoryScope, rule domain.PricingRule) error {
	if !scope.IsValid() {
		return response.NewValidationError("Invalid category scope", string(scope))
	}
	// unset rules are legacy rows, they may be kept but never written
	if !rule.IsValid() {
		return response.NewValidationError("Invalid pricing rule", string(rule))
	}
	return nil
}

// collectSubtree returns the ids of a category and all of its descendants
func collectSubtree(rootID uuid.UUID, children map[uuid.UUID][]uuid.UUID) map[uuid.UUID]bool {
	out := map[uuid.UUID]bool{rootID: true}
	queue := []uuid.UUID{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if !out[child] {
				out[child] = true
				queue = append(queue, child)
			}
		}
	}
	return out
}
