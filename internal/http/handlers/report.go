package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/benchlab/labnote-backend/internal/http/response"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/reporting"
	"github.com/benchlab/labnote-backend/internal/services"
)

type ReportHandler struct {
	log     *logger.Logger
	reports services.ReportService
}

func NewReportHandler(log *logger.Logger, reports services.ReportService) *ReportHandler {
	return &ReportHandler{
		log:     log.With("handler", "ReportHandler"),
		reports: reports,
	}
}

// GET /api/projects/:id/reports/series?key=
func (h *ReportHandler) Series(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	key := strings.TrimSpace(c.Query("key"))
	points, err := h.reports.Series(c.Request.Context(), projectID, key)
	if err != nil {
		response.RespondServiceError(c, "build_series_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"key": key, "series": points})
}

// GET /api/projects/:id/reports/box-plot?key=
func (h *ReportHandler) BoxPlot(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	key := strings.TrimSpace(c.Query("key"))
	plot, err := h.reports.BoxPlot(c.Request.Context(), projectID, key)
	if err != nil {
		response.RespondServiceError(c, "build_box_plot_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"key": key, "series": plot.Series, "scale": plot.Scale})
}

// GET /api/projects/:id/reports/scatter?x=&y=
func (h *ReportHandler) Scatter(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	xKey := strings.TrimSpace(c.Query("x"))
	yKey := strings.TrimSpace(c.Query("y"))
	if xKey == "" || yKey == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_key", nil)
		return
	}
	points, err := h.reports.Scatter(c.Request.Context(), projectID, xKey, yKey)
	if err != nil {
		response.RespondServiceError(c, "build_scatter_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"x": xKey, "y": yKey, "points": points})
}

// GET /api/projects/:id/reports/default-keys?bar=&line=&box=&scatter_x=&scatter_y=
//
// The query carries the client's current selection; the response is the
// repaired one plus the valid key list.
func (h *ReportHandler) DefaultKeys(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sel := reporting.Selection{
		Bar:      strings.TrimSpace(c.Query("bar")),
		Line:     strings.TrimSpace(c.Query("line")),
		Box:      strings.TrimSpace(c.Query("box")),
		ScatterX: strings.TrimSpace(c.Query("scatter_x")),
		ScatterY: strings.TrimSpace(c.Query("scatter_y")),
	}
	result, err := h.reports.DefaultKeys(c.Request.Context(), projectID, sel)
	if err != nil {
		response.RespondServiceError(c, "default_keys_failed", err)
		return
	}
	response.RespondOK(c, result)
}
