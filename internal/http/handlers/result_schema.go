package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benchlab/labnote-backend/internal/http/response"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/services"
)

type ResultSchemaHandler struct {
	log     *logger.Logger
	schemas services.ResultSchemaService
}

func NewResultSchemaHandler(log *logger.Logger, schemas services.ResultSchemaService) *ResultSchemaHandler {
	return &ResultSchemaHandler{
		log:     log.With("handler", "ResultSchemaHandler"),
		schemas: schemas,
	}
}

// GET /api/projects/:id/result-schemas
func (h *ResultSchemaHandler) ListByProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.schemas.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		response.RespondServiceError(c, "list_result_schemas_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// POST /api/result-schemas
func (h *ResultSchemaHandler) Create(c *gin.Context) {
	var in services.CreateResultSchemaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	row, err := h.schemas.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, "create_result_schema_failed", err)
		return
	}
	response.RespondCreated(c, row)
}

// PATCH /api/result-schemas/:id
func (h *ResultSchemaHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.UpdateResultSchemaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	row, err := h.schemas.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondServiceError(c, "update_result_schema_failed", err)
		return
	}
	response.RespondOK(c, row)
}

// DELETE /api/result-schemas/:id
func (h *ResultSchemaHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.schemas.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, "delete_result_schema_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
