package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/benchlab/labnote-backend/internal/repos"
	"github.com/benchlab/labnote-backend/internal/repos/testutil"
	"github.com/benchlab/labnote-backend/internal/services"
)

// newTestRouter wires the handler layer over the shared test database
// with the same route set the app registers.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn := testutil.DB(t)
	log := testutil.Logger(t)

	projectRepo := repos.NewProjectRepo(conn, log)
	experimentRepo := repos.NewExperimentRepo(conn, log)
	schemaRepo := repos.NewResultSchemaRepo(conn, log)
	outputRepo := repos.NewOutputConfigRepo(conn, log)

	projectSvc := services.NewProjectService(conn, log, projectRepo, experimentRepo, schemaRepo, outputRepo)
	experimentSvc := services.NewExperimentService(conn, log, projectRepo, experimentRepo, schemaRepo)
	schemaSvc := services.NewResultSchemaService(conn, log, projectRepo, schemaRepo)
	outputSvc := services.NewOutputConfigService(conn, log, projectRepo, schemaRepo, outputRepo)
	reportSvc := services.NewReportService(conn, log, projectRepo, experimentRepo, schemaRepo, outputSvc)

	projects := NewProjectHandler(log, projectSvc)
	experiments := NewExperimentHandler(log, experimentSvc)
	schemas := NewResultSchemaHandler(log, schemaSvc)
	outputs := NewOutputConfigHandler(log, outputSvc)
	reports := NewReportHandler(log, reportSvc)

	router := gin.New()
	router.GET("/healthcheck", HealthCheck)
	api := router.Group("/api")
	{
		api.GET("/projects", projects.List)
		api.POST("/projects", projects.Create)
		api.GET("/projects/:id", projects.Get)
		api.PATCH("/projects/:id", projects.Update)
		api.DELETE("/projects/:id", projects.Delete)

		api.GET("/projects/:id/experiments", experiments.ListByProject)
		api.POST("/experiments", experiments.Create)
		api.GET("/experiments/:id", experiments.Get)
		api.PATCH("/experiments/:id", experiments.Update)
		api.DELETE("/experiments/:id", experiments.Delete)

		api.GET("/projects/:id/result-schemas", schemas.ListByProject)
		api.POST("/result-schemas", schemas.Create)
		api.PATCH("/result-schemas/:id", schemas.Update)
		api.DELETE("/result-schemas/:id", schemas.Delete)

		api.GET("/projects/:id/output-config", outputs.GetByProject)
		api.PUT("/output-config", outputs.Upsert)

		api.GET("/projects/:id/reports/series", reports.Series)
		api.GET("/projects/:id/reports/box-plot", reports.BoxPlot)
		api.GET("/projects/:id/reports/scatter", reports.Scatter)
		api.GET("/projects/:id/reports/default-keys", reports.DefaultKeys)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
