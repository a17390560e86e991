package app

import (
	"gorm.io/gorm"

	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/services"
)

type Services struct {
	Projects      services.ProjectService
	Experiments   services.ExperimentService
	ResultSchemas services.ResultSchemaService
	OutputConfigs services.OutputConfigService
	Reports       services.ReportService
}

func wireServices(db *gorm.DB, log *logger.Logger, r Repos) Services {
	outputs := services.NewOutputConfigService(db, log, r.Projects, r.ResultSchemas, r.OutputConfigs)
	return Services{
		Projects:      services.NewProjectService(db, log, r.Projects, r.Experiments, r.ResultSchemas, r.OutputConfigs),
		Experiments:   services.NewExperimentService(db, log, r.Projects, r.Experiments, r.ResultSchemas),
		ResultSchemas: services.NewResultSchemaService(db, log, r.Projects, r.ResultSchemas),
		OutputConfigs: outputs,
		Reports:       services.NewReportService(db, log, r.Projects, r.Experiments, r.ResultSchemas, outputs),
	}
}
