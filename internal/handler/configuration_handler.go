package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"project-config-api/internal/dto"
	"project-config-api/internal/response"
	"project-config-api/internal/service"
)

type ConfigurationHandler struct {
	configurationService service.ConfigurationService
}

func NewConfigurationHandler(configurationService service.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{
		configurationService: configurationService,
	}
}

func parseConfigurationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("configurationId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid configuration ID")
		return uuid.Nil, false
	}
	return id, true
}

// CreateConfiguration godoc
// @Summary      Create configuration
// @Description  Starts an empty draft configuration for a construction project
// @Tags         configurations
// @Accept       json
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        request body dto.CreateConfigurationRequest true "Configuration"
// @Success      201 {object} response.SuccessResponse{data=dto.ConfigurationResponse} "Configuration created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /projects/{projectId}/configurations [post]
func (h *ConfigurationHandler) CreateConfiguration(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
		return
	}

	var req dto.CreateConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	configuration, err := h.configurationService.CreateConfiguration(c.Request.Context(), projectID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, configuration)
}

// ListConfigurations godoc
// @Summary      List configurations
// @Description  Lists the configurations of a project without their selections
// @Tags         configurations
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ConfigurationResponse} "Configurations"
// @Failure      400 {object} response.ErrorResponse "Invalid project ID"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /projects/{projectId}/configurations [get]
func (h *ConfigurationHandler) ListConfigurations(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
		return
	}

	configurations, err := h.configurationService.ListConfigurations(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, configurations)
}

// GetConfiguration godoc
// @Summary      Get configuration
// @Tags         configurations
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ConfigurationResponse} "Configuration"
// @Failure      400 {object} response.ErrorResponse "Invalid configuration ID"
// @Failure      404 {object} response.ErrorResponse "Configuration not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId} [get]
func (h *ConfigurationHandler) GetConfiguration(c *gin.Context) {
	configurationID, ok := parseConfigurationID(c)
	if !ok {
		return
	}

	configuration, err := h.configurationService.GetConfiguration(c.Request.Context(), configurationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, configuration)
}

// SaveSelections godoc
// @Summary      Save selections
// @Description  Replaces the selection set. Autosaves are debounced and answered with 202.
// @Description  A save whose selections and position are unchanged is a no-op (saved=false).
// @Tags         configurations
// @Accept       json
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Param        request body dto.SaveSelectionsRequest true "Selections"
// @Success      200 {object} response.SuccessResponse{data=dto.SaveResultResponse} "Saved"
// @Success      202 {object} response.SuccessResponse{data=dto.SaveResultResponse} "Autosave scheduled"
// @Failure      400 {object} response.ErrorResponse "Invalid selection"
// @Failure      404 {object} response.ErrorResponse "Configuration not found"
// @Failure      409 {object} response.ErrorResponse "Changed by another session"
// @Failure      423 {object} response.ErrorResponse "Configuration locked"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId}/selections [put]
func (h *ConfigurationHandler) SaveSelections(c *gin.Context) {
	configurationID, ok := parseConfigurationID(c)
	if !ok {
		return
	}

	var req dto.SaveSelectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.configurationService.SaveSelections(c.Request.Context(), configurationID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if result.Pending {
		status = http.StatusAccepted
	}
	response.SendSuccess(c, status, result)
}

// CompleteConfiguration godoc
// @Summary      Complete configuration
// @Description  Marks the configuration completed once every standard-bearing category has a selection
// @Tags         configurations
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ConfigurationResponse} "Completed"
// @Failure      404 {object} response.ErrorResponse "Configuration not found"
// @Failure      422 {object} response.ErrorResponse "Standard selection missing"
// @Failure      423 {object} response.ErrorResponse "Configuration locked"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId}/complete [post]
func (h *ConfigurationHandler) CompleteConfiguration(c *gin.Context) {
	configurationID, ok := parseConfigurationID(c)
	if !ok {
		return
	}

	configuration, err := h.configurationService.CompleteConfiguration(c.Request.Context(), configurationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, configuration)
}

// LockConfiguration godoc
// @Summary      Lock configuration
// @Description  Freezes the configuration. Locking is permanent.
// @Tags         configurations
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ConfigurationResponse} "Locked"
// @Failure      404 {object} response.ErrorResponse "Configuration not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId}/lock [post]
func (h *ConfigurationHandler) LockConfiguration(c *gin.Context) {
	configurationID, ok := parseConfigurationID(c)
	if !ok {
		return
	}

	configuration, err := h.configurationService.LockConfiguration(c.Request.Context(), configurationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, configuration)
}

// DuplicateConfiguration godoc
// @Summary      Duplicate configuration
// @Description  Copies the selections into a new unlocked draft
// @Tags         configurations
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Success      201 {object} response.SuccessResponse{data=dto.ConfigurationResponse} "Duplicated"
// @Failure      404 {object} response.ErrorResponse "Configuration not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId}/duplicate [post]
func (h *ConfigurationHandler) DuplicateConfiguration(c *gin.Context) {
	configurationID, ok := parseConfigurationID(c)
	if !ok {
		return
	}

	configuration, err := h.configurationService.DuplicateConfiguration(c.Request.Context(), configurationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, configuration)
}

// DeleteConfiguration godoc
// @Summary      Delete configuration
// @Tags         configurations
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Success      200 {object} response.SuccessResponse "Deleted"
// @Failure      404 {object} response.ErrorResponse "Configuration not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId} [delete]
func (h *ConfigurationHandler) DeleteConfiguration(c *gin.Context) {
	configurationID, ok := parseConfigurationID(c)
	if !ok {
		return
	}

	if err := h.configurationService.DeleteConfiguration(c.Request.Context(), configurationID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Configuration deleted successfully"})
}

// ExportConfiguration godoc
// @Summary      Export configuration
// @Description  Returns the priced breakdown. With publish=true the document is also stored and its URL returned.
// @Tags         configurations
// @Produce      json
// @Param        configurationId path string true "Configuration ID (UUID)"
// @Param        publish query bool false "Publish the export document"
// @Success      200 {object} response.SuccessResponse{data=dto.ExportResponse} "Export"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Configuration not found"
// @Failure      500 {object} response.ErrorResponse "Internal error"
// @Router       /configurations/{configurationId}/export [get]
func (h *ConfigurationHandler) ExportConfiguration(c *gin.Context) {
	configurationID, ok := parseConfigurationID(c)
	if !ok {
		return
	}

	publish := false
	if raw := c.Query("publish"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "publish must be a boolean")
			return
		}
		publish = parsed
	}

	export, err := h.configurationService.ExportConfiguration(c.Request.Context(), configurationID, publish)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, export)
}
