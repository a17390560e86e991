package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/benchlab/labnote-backend/internal/http/response"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/services"
)

type ProjectHandler struct {
	log      *logger.Logger
	projects services.ProjectService
}

func NewProjectHandler(log *logger.Logger, projects services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		log:      log.With("handler", "ProjectHandler"),
		projects: projects,
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	rows, err := h.projects.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "list_projects_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var in services.CreateProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	row, err := h.projects.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, "create_project_failed", err)
		return
	}
	response.RespondCreated(c, row)
}

// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	row, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, "get_project_failed", err)
		return
	}
	response.RespondOK(c, row)
}

// PATCH /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.UpdateProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	row, err := h.projects.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondServiceError(c, "update_project_failed", err)
		return
	}
	response.RespondOK(c, row)
}

// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, "delete_project_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
