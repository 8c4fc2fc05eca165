package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"project-config-api/internal/dto"
	"project-config-api/internal/response"
	"project-config-api/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GetCategoryTree godoc
// @Summary      Get category tree
// @Description  Returns the catalog categories as a tree in wizard order
// @Tags         categories
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.CategoryResponse} "Category tree"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /categories [get]
func (h *CatalogHandler) GetCategoryTree(c *gin.Context) {
	tree, err := h.catalogService.GetCategoryTree(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, tree)
}

// CreateCategory godoc
// @Summary      Create category
// @Description  Creates a catalog category, at most three levels deep
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCategoryRequest true "Category"
// @Success      201 {object} response.SuccessResponse{data=dto.CategoryResponse} "Category created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Parent not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary      Update category
// @Description  Renames, reorders or reparents a category. Moving a category moves its subtree.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Param        request body dto.UpdateCategoryRequest true "Changes"
// @Success      200 {object} response.SuccessResponse{data=dto.CategoryResponse} "Category updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request or tree shape"
// @Failure      404 {object} response.ErrorResponse "Category not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /categories/{categoryId} [patch]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid category ID")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), categoryID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, category)
}
