package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benchlab/labnote-backend/internal/http/response"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/services"
)

type OutputConfigHandler struct {
	log     *logger.Logger
	outputs services.OutputConfigService
}

func NewOutputConfigHandler(log *logger.Logger, outputs services.OutputConfigService) *OutputConfigHandler {
	return &OutputConfigHandler{
		log:     log.With("handler", "OutputConfigHandler"),
		outputs: outputs,
	}
}

// GET /api/projects/:id/output-config
func (h *OutputConfigHandler) GetByProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	row, err := h.outputs.Get(c.Request.Context(), projectID)
	if err != nil {
		response.RespondServiceError(c, "get_output_config_failed", err)
		return
	}
	// No config saved yet is a valid state, rendered as null.
	response.RespondOK(c, row)
}

// PUT /api/output-config
func (h *OutputConfigHandler) Upsert(c *gin.Context) {
	var in services.UpsertOutputConfigInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	row, err := h.outputs.Upsert(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, "upsert_output_config_failed", err)
		return
	}
	response.RespondOK(c, row)
}
