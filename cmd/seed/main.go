// Seeds a demo project with schemas, an output config and a few
// experiments, for prototype usage. Safe to run repeatedly: it does
// nothing when any project already exists.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/benchlab/labnote-backend/internal/db"
	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/repos"
	"github.com/benchlab/labnote-backend/internal/services"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("seed failed", "error", err)
	}
}

func run(log *logger.Logger) error {
	ctx := context.Background()

	dbService, err := db.New(log)
	if err != nil {
		return err
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		return err
	}
	theDB := dbService.DB()

	projectRepo := repos.NewProjectRepo(theDB, log)
	experimentRepo := repos.NewExperimentRepo(theDB, log)
	schemaRepo := repos.NewResultSchemaRepo(theDB, log)
	outputRepo := repos.NewOutputConfigRepo(theDB, log)

	existing, err := projectRepo.List(ctx, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("projects already present, skipping seed", "count", len(existing))
		return nil
	}

	projectService := services.NewProjectService(theDB, log, projectRepo, experimentRepo, schemaRepo, outputRepo)
	schemaService := services.NewResultSchemaService(theDB, log, projectRepo, schemaRepo)
	experimentService := services.NewExperimentService(theDB, log, projectRepo, experimentRepo, schemaRepo)
	outputService := services.NewOutputConfigService(theDB, log, projectRepo, schemaRepo, outputRepo)

	project, err := projectService.Create(ctx, services.CreateProjectInput{
		Name:        "Adhesive Optimization",
		ProjectType: domain.ProjectTypeRegular,
		Status:      domain.ProjectStatusOngoing,
	})
	if err != nil {
		return err
	}

	schemas := []services.CreateResultSchemaInput{
		{ProjectID: project.ID, Key: "viscosity_cps", Label: "Viscosity (cps)", ValueType: domain.ValueTypeQuantitative, Unit: "cps", Description: "Brookfield @25C"},
		{ProjectID: project.ID, Key: "ph", Label: "pH", ValueType: domain.ValueTypeQuantitative},
		{ProjectID: project.ID, Key: "peel_strength", Label: "Peel strength (N/cm)", ValueType: domain.ValueTypeQuantitative, Unit: "N/cm"},
		{ProjectID: project.ID, Key: "appearance", Label: "Appearance", ValueType: domain.ValueTypeCategorical, Options: []string{"clear", "cloudy", "opaque"}},
		{ProjectID: project.ID, Key: "notes", Label: "Notes", ValueType: domain.ValueTypeQualitative},
	}
	for _, in := range schemas {
		if _, err := schemaService.Create(ctx, in); err != nil {
			return err
		}
	}

	if _, err := outputService.Upsert(ctx, services.UpsertOutputConfigInput{
		ProjectID:    project.ID,
		IncludedKeys: []string{"viscosity_cps", "ph", "peel_strength", "appearance", "notes"},
	}); err != nil {
		return err
	}

	experiments := []services.CreateExperimentInput{
		{
			ProjectID: project.ID,
			Name:      "Batch A",
			Author:    "alice",
			Purpose:   "Baseline adhesive viscosity tuning",
			Materials: []domain.MaterialLine{
				{Name: "Resin", Amount: 1200, Unit: domain.MaterialUnitGram},
				{Name: "Solvent", Amount: 800, Unit: domain.MaterialUnitGram},
			},
			ResultValues: map[string]any{
				"viscosity_cps": []any{4200, 4150, 4280},
				"ph":            7.1,
				"peel_strength": 11.2,
				"appearance":    "clear",
				"notes":         "Looks stable",
			},
		},
		{
			ProjectID: project.ID,
			Name:      "Batch B",
			Author:    "bob",
			Purpose:   "Increase solid content",
			Materials: []domain.MaterialLine{
				{Name: "Resin", Amount: 1500, Unit: domain.MaterialUnitGram},
				{Name: "Solvent", Amount: 700, Unit: domain.MaterialUnitGram},
			},
			ResultValues: map[string]any{
				"viscosity_cps": []any{5100, 5210},
				"ph":            6.9,
				"peel_strength": 12.4,
				"appearance":    "cloudy",
				"notes":         "Slightly hazy",
			},
		},
		{
			ProjectID: project.ID,
			Name:      "Batch C",
			Author:    "chris",
			Purpose:   "pH adjustment",
			Materials: []domain.MaterialLine{
				{Name: "Resin", Amount: 1300, Unit: domain.MaterialUnitGram},
				{Name: "Solvent", Amount: 900, Unit: domain.MaterialUnitGram},
			},
			ResultValues: map[string]any{
				"viscosity_cps": 4600,
				"ph":            7.5,
				"peel_strength": 10.9,
				"appearance":    "clear",
				"notes":         "Better pH",
			},
		},
	}
	for _, in := range experiments {
		if _, err := experimentService.Create(ctx, in); err != nil {
			return err
		}
	}

	log.Info("seed complete", "project_id", project.ID)
	return nil
}
