package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"project-config-api/internal/dto"
	"project-config-api/internal/response"
	"project-config-api/internal/service"
)

type WizardHandler struct {
	wizardService service.WizardService
}

func NewWizardHandler(wizardService service.WizardService) *WizardHandler {
	return &WizardHandler{
		wizardService: wizardService,
	}
}

// OpenWizard godoc
// @Summary      Open wizard
// @Description  Returns the wizard view at the configuration's last visited category
// @Tags         wizard
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.WizardViewResponse} "Wizard view"
// @Failure      404 {object} response.ErrorResponse "Configuration not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId}/wizard [get]
func (h *WizardHandler) OpenWizard(c *gin.Context) {
	h.move(c, h.wizardService.OpenWizard)
}

// Next godoc
// @Summary      Next step
// @Tags         wizard
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.WizardViewResponse} "Wizard view"
// @Failure      404 {object} response.ErrorResponse "Configuration not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId}/wizard/next [post]
func (h *WizardHandler) Next(c *gin.Context) {
	h.move(c, h.wizardService.Next)
}

// Previous godoc
// @Summary      Previous step
// @Tags         wizard
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.WizardViewResponse} "Wizard view"
// @Failure      404 {object} response.ErrorResponse "Configuration not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId}/wizard/previous [post]
func (h *WizardHandler) Previous(c *gin.Context) {
	h.move(c, h.wizardService.Previous)
}

func (h *WizardHandler) move(c *gin.Context, step func(context.Context, uuid.UUID) (*dto.WizardViewResponse, error)) {
	configurationID, ok := parseConfigurationID(c)
	if !ok {
		return
	}

	view, err := step(c.Request.Context(), configurationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, view)
}

// Jump godoc
// @Summary      Jump to category
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Param        request body dto.JumpRequest true "Target category"
// @Success      200 {object} response.SuccessResponse{data=dto.WizardViewResponse} "Wizard view"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Configuration or category not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId}/wizard/jump [post]
func (h *WizardHandler) Jump(c *gin.Context) {
	configurationID, ok := parseConfigurationID(c)
	if !ok {
		return
	}

	var req dto.JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	view, err := h.wizardService.Jump(c.Request.Context(), configurationID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, view)
}

// ToggleSelection godoc
// @Summary      Toggle selection
// @Description  Adds the selection or removes it when already present, then saves immediately
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Param        request body dto.ToggleSelectionRequest true "Selection"
// @Success      200 {object} response.SuccessResponse{data=dto.WizardViewResponse} "Wizard view"
// @Failure      400 {object} response.ErrorResponse "Invalid selection"
// @Failure      404 {object} response.ErrorResponse "Configuration not found"
// @Failure      409 {object} response.ErrorResponse "Changed by another session"
// @Failure      423 {object} response.ErrorResponse "Configuration locked"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId}/wizard/toggle [post]
func (h *WizardHandler) ToggleSelection(c *gin.Context) {
	configurationID, ok := parseConfigurationID(c)
	if !ok {
		return
	}

	var req dto.ToggleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	view, err := h.wizardService.ToggleSelection(c.Request.Context(), configurationID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, view)
}

// Preview godoc
// @Summary      Preview price
// @Description  Prices a selection set against the configuration's project without saving it
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Param        request body dto.PreviewRequest true "Selections"
// @Success      200 {object} response.SuccessResponse{data=dto.BreakdownResponse} "Breakdown"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Configuration not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId}/wizard/preview [post]
func (h *WizardHandler) Preview(c *gin.Context) {
	configurationID, ok := parseConfigurationID(c)
	if !ok {
		return
	}

	var req dto.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	breakdown, err := h.wizardService.Preview(c.Request.Context(), configurationID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, breakdown)
}
