package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benchlab/labnote-backend/internal/http/response"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/services"
)

type ExperimentHandler struct {
	log         *logger.Logger
	experiments services.ExperimentService
}

func NewExperimentHandler(log *logger.Logger, experiments services.ExperimentService) *ExperimentHandler {
	return &ExperimentHandler{
		log:         log.With("handler", "ExperimentHandler"),
		experiments: experiments,
	}
}

// GET /api/projects/:id/experiments
func (h *ExperimentHandler) ListByProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.experiments.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		response.RespondServiceError(c, "list_experiments_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// POST /api/experiments
func (h *ExperimentHandler) Create(c *gin.Context) {
	var in services.CreateExperimentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	row, err := h.experiments.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, "create_experiment_failed", err)
		return
	}
	response.RespondCreated(c, row)
}

// GET /api/experiments/:id
func (h *ExperimentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	row, err := h.experiments.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, "get_experiment_failed", err)
		return
	}
	response.RespondOK(c, row)
}

// PATCH /api/experiments/:id
func (h *ExperimentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.UpdateExperimentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	row, err := h.experiments.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondServiceError(c, "update_experiment_failed", err)
		return
	}
	response.RespondOK(c, row)
}

// DELETE /api/experiments/:id
func (h *ExperimentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.experiments.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, "delete_experiment_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
