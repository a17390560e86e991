package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/benchlab/labnote-backend/internal/http/handlers"
)

func buildRouter(cfg Config, h Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Projects
		api.GET("/projects", h.Projects.List)
		api.POST("/projects", h.Projects.Create)
		api.GET("/projects/:id", h.Projects.Get)
		api.PATCH("/projects/:id", h.Projects.Update)
		api.DELETE("/projects/:id", h.Projects.Delete)

		// Experiments
		api.GET("/projects/:id/experiments", h.Experiments.ListByProject)
		api.POST("/experiments", h.Experiments.Create)
		api.GET("/experiments/:id", h.Experiments.Get)
		api.PATCH("/experiments/:id", h.Experiments.Update)
		api.DELETE("/experiments/:id", h.Experiments.Delete)

		// Result schemas
		api.GET("/projects/:id/result-schemas", h.ResultSchemas.ListByProject)
		api.POST("/result-schemas", h.ResultSchemas.Create)
		api.PATCH("/result-schemas/:id", h.ResultSchemas.Update)
		api.DELETE("/result-schemas/:id", h.ResultSchemas.Delete)

		// Output config
		api.GET("/projects/:id/output-config", h.OutputConfigs.GetByProject)
		api.PUT("/output-config", h.OutputConfigs.Upsert)

		// Reports
		api.GET("/projects/:id/reports/series", h.Reports.Series)
		api.GET("/projects/:id/reports/box-plot", h.Reports.BoxPlot)
		api.GET("/projects/:id/reports/scatter", h.Reports.Scatter)
		api.GET("/projects/:id/reports/default-keys", h.Reports.DefaultKeys)
	}

	return router
}
