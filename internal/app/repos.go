package app

import (
	"gorm.io/gorm"

	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/repos"
)

type Repos struct {
	Projects      repos.ProjectRepo
	Experiments   repos.ExperimentRepo
	ResultSchemas repos.ResultSchemaRepo
	OutputConfigs repos.OutputConfigRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Projects:      repos.NewProjectRepo(db, log),
		Experiments:   repos.NewExperimentRepo(db, log),
		ResultSchemas: repos.NewResultSchemaRepo(db, log),
		OutputConfigs: repos.NewOutputConfigRepo(db, log),
	}
}
