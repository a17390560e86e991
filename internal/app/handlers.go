package app

import (
	"github.com/benchlab/labnote-backend/internal/http/handlers"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
)

type Handlers struct {
	Projects      *handlers.ProjectHandler
	Experiments   *handlers.ExperimentHandler
	ResultSchemas *handlers.ResultSchemaHandler
	OutputConfigs *handlers.OutputConfigHandler
	Reports       *handlers.ReportHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	return Handlers{
		Projects:      handlers.NewProjectHandler(log, s.Projects),
		Experiments:   handlers.NewExperimentHandler(log, s.Experiments),
		ResultSchemas: handlers.NewResultSchemaHandler(log, s.ResultSchemas),
		OutputConfigs: handlers.NewOutputConfigHandler(log, s.OutputConfigs),
		Reports:       handlers.NewReportHandler(log, s.Reports),
	}
}
