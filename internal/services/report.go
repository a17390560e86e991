package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/platform/apierr"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/reporting"
	"github.com/benchlab/labnote-backend/internal/repos"
)

// DefaultKeysResult carries the repaired selection plus the key set it
// was repaired against, so clients can render pickers without a second
// round trip.
type DefaultKeysResult struct {
	Selection reporting.Selection `json:"selection"`
	ValidKeys []string            `json:"valid_keys"`
}

type ReportService interface {
	Series(ctx context.Context, projectID uuid.UUID, key string) ([]reporting.SeriesPoint, error)
	BoxPlot(ctx context.Context, projectID uuid.UUID, key string) (reporting.BoxPlot, error)
	Scatter(ctx context.Context, projectID uuid.UUID, xKey, yKey string) ([]reporting.ScatterPoint, error)
	DefaultKeys(ctx context.Context, projectID uuid.UUID, sel reporting.Selection) (DefaultKeysResult, error)
}

type reportService struct {
	db          *gorm.DB
	log         *logger.Logger
	projects    repos.ProjectRepo
	experiments repos.ExperimentRepo
	schemas     repos.ResultSchemaRepo
	outputs     OutputConfigService
}

func NewReportService(
	db *gorm.DB,
	log *logger.Logger,
	projects repos.ProjectRepo,
	experiments repos.ExperimentRepo,
	schemas repos.ResultSchemaRepo,
	outputs OutputConfigService,
) ReportService {
	return &reportService{
		db:          db,
		log:         log.With("service", "ReportService"),
		projects:    projects,
		experiments: experiments,
		schemas:     schemas,
		outputs:     outputs,
	}
}

func (s *reportService) Series(ctx context.Context, projectID uuid.UUID, key string) ([]reporting.SeriesPoint, error) {
	experiments, err := s.loadInputs(ctx, projectID, key)
	if err != nil {
		return nil, err
	}
	return reporting.BuildSeries(key, experiments), nil
}

func (s *reportService) BoxPlot(ctx context.Context, projectID uuid.UUID, key string) (reporting.BoxPlot, error) {
	experiments, err := s.loadInputs(ctx, projectID, key)
	if err != nil {
		return reporting.BoxPlot{}, err
	}
	return reporting.BuildBoxPlot(key, experiments), nil
}

func (s *reportService) Scatter(ctx context.Context, projectID uuid.UUID, xKey, yKey string) ([]reporting.ScatterPoint, error) {
	if _, err := s.requireQuantitativeKey(ctx, projectID, xKey); err != nil {
		return nil, err
	}
	if xKey != yKey {
		if _, err := s.requireQuantitativeKey(ctx, projectID, yKey); err != nil {
			return nil, err
		}
	}
	experiments, err := s.loadExperiments(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return reporting.BuildScatter(xKey, yKey, experiments), nil
}

// DefaultKeys repairs a chart-key selection against the project's
// quantitative, output-included keys, in schema order.
func (s *reportService) DefaultKeys(ctx context.Context, projectID uuid.UUID, sel reporting.Selection) (DefaultKeysResult, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return DefaultKeysResult{}, err
	}
	validKeys, err := s.quantitativeIncludedKeys(ctx, projectID)
	if err != nil {
		return DefaultKeysResult{}, err
	}
	return DefaultKeysResult{
		Selection: reporting.PickDefaultKeys(validKeys, sel),
		ValidKeys: validKeys,
	}, nil
}

func (s *reportService) loadInputs(ctx context.Context, projectID uuid.UUID, key string) ([]reporting.Experiment, error) {
	if _, err := s.requireQuantitativeKey(ctx, projectID, key); err != nil {
		return nil, err
	}
	return s.loadExperiments(ctx, projectID)
}

func (s *reportService) requireProject(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, nil, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return apierr.NotFound("project_not_found", fmt.Errorf("project not found"))
	}
	return nil
}

func (s *reportService) requireQuantitativeKey(ctx context.Context, projectID uuid.UUID, key string) (*domain.ResultSchema, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, apierr.BadRequest("missing_key", fmt.Errorf("key is required"))
	}
	schema, err := s.schemas.GetByProjectIDAndKey(ctx, nil, projectID, key)
	if err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, apierr.BadRequest("unknown_key", fmt.Errorf("key %q is not defined for this project", key))
	}
	if schema.ValueType != domain.ValueTypeQuantitative {
		return nil, apierr.BadRequest("non_quantitative_key", fmt.Errorf("key %q is not quantitative", key))
	}
	return schema, nil
}

// loadExperiments adapts stored rows into the reporting engine's input
// shape, newest-first as the engine expects. Rows whose result_values
// column fails to decode contribute an empty value map rather than an
// error; the engine excludes them per key.
func (s *reportService) loadExperiments(ctx context.Context, projectID uuid.UUID) ([]reporting.Experiment, error) {
	rows, err := s.experiments.GetByProjectID(ctx, nil, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]reporting.Experiment, 0, len(rows))
	for _, row := range rows {
		values := map[string]any{}
		if len(row.ResultValues) > 0 {
			if err := json.Unmarshal(row.ResultValues, &values); err != nil {
				s.log.Warn("undecodable result_values, excluding from report",
					"experiment_id", row.ID, "error", err)
				values = map[string]any{}
			}
		}
		out = append(out, reporting.Experiment{Name: row.Name, ResultValues: values})
	}
	return out, nil
}

func (s *reportService) quantitativeIncludedKeys(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	rows, err := s.schemas.GetByProjectID(ctx, nil, projectID)
	if err != nil {
		return nil, err
	}
	included, err := s.outputs.IncludedKeys(ctx, projectID)
	if err != nil {
		return nil, err
	}
	includedSet := make(map[string]struct{}, len(included))
	for _, key := range included {
		includedSet[key] = struct{}{}
	}

	// Schema order (sort_order, then insertion) drives the key order.
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ValueType != domain.ValueTypeQuantitative {
			continue
		}
		if _, ok := includedSet[row.Key]; !ok {
			continue
		}
		keys = append(keys, row.Key)
	}
	return keys, nil
}
