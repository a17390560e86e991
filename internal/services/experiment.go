package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/platform/apierr"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/repos"
)

type CreateExperimentInput struct {
	ProjectID    uuid.UUID             `json:"project_id"`
	Name         string                `json:"name"`
	Author       string                `json:"author"`
	Purpose      string                `json:"purpose"`
	Materials    []domain.MaterialLine `json:"materials"`
	ResultValues map[string]any        `json:"result_values"`
}

type UpdateExperimentInput struct {
	Name         *string                `json:"name"`
	Author       *string                `json:"author"`
	Purpose      *string                `json:"purpose"`
	Materials    *[]domain.MaterialLine `json:"materials"`
	ResultValues *map[string]any        `json:"result_values"`
}

type ExperimentService interface {
	Create(ctx context.Context, in CreateExperimentInput) (*domain.Experiment, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Experiment, error)
	// ListByProject returns the project's experiments newest-first.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Experiment, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateExperimentInput) (*domain.Experiment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type experimentService struct {
	db          *gorm.DB
	log         *logger.Logger
	projects    repos.ProjectRepo
	experiments repos.ExperimentRepo
	schemas     repos.ResultSchemaRepo
}

func NewExperimentService(
	db *gorm.DB,
	log *logger.Logger,
	projects repos.ProjectRepo,
	experiments repos.ExperimentRepo,
	schemas repos.ResultSchemaRepo,
) ExperimentService {
	return &experimentService{
		db:          db,
		log:         log.With("service", "ExperimentService"),
		projects:    projects,
		experiments: experiments,
		schemas:     schemas,
	}
}

func (s *experimentService) Create(ctx context.Context, in CreateExperimentInput) (*domain.Experiment, error) {
	project, err := s.projects.GetByID(ctx, nil, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apierr.BadRequest("invalid_project_id", fmt.Errorf("invalid project_id"))
	}

	if in.Name == "" || len(in.Name) > 200 {
		return nil, apierr.BadRequest("invalid_name", fmt.Errorf("name must be 1-200 characters"))
	}
	if in.Author == "" || len(in.Author) > 80 {
		return nil, apierr.BadRequest("invalid_author", fmt.Errorf("author must be 1-80 characters"))
	}
	if in.Purpose == "" {
		return nil, apierr.BadRequest("invalid_purpose", fmt.Errorf("purpose is required"))
	}

	materials, err := normalizeMaterials(in.Materials)
	if err != nil {
		return nil, err
	}
	values := in.ResultValues
	if values == nil {
		values = map[string]any{}
	}
	if err := s.validateResultValues(ctx, in.ProjectID, values); err != nil {
		return nil, err
	}

	materialsJSON, err := json.Marshal(materials)
	if err != nil {
		return nil, err
	}
	valuesJSON, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}

	row := &domain.Experiment{
		ProjectID:    in.ProjectID,
		Name:         in.Name,
		Author:       in.Author,
		Purpose:      in.Purpose,
		Materials:    datatypes.JSON(materialsJSON),
		ResultValues: datatypes.JSON(valuesJSON),
	}
	created, err := s.experiments.Create(ctx, nil, row)
	if err != nil {
		return nil, err
	}
	s.log.Info("experiment created", "project_id", in.ProjectID, "experiment_id", created.ID)
	return created, nil
}

func (s *experimentService) Get(ctx context.Context, id uuid.UUID) (*domain.Experiment, error) {
	row, err := s.experiments.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apierr.NotFound("experiment_not_found", fmt.Errorf("experiment not found"))
	}
	return row, nil
}

func (s *experimentService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Experiment, error) {
	return s.experiments.GetByProjectID(ctx, nil, projectID)
}

func (s *experimentService) Update(ctx context.Context, id uuid.UUID, in UpdateExperimentInput) (*domain.Experiment, error) {
	row, err := s.experiments.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apierr.NotFound("experiment_not_found", fmt.Errorf("experiment not found"))
	}

	if in.Name != nil {
		if *in.Name == "" || len(*in.Name) > 200 {
			return nil, apierr.BadRequest("invalid_name", fmt.Errorf("name must be 1-200 characters"))
		}
		row.Name = *in.Name
	}
	if in.Author != nil {
		if *in.Author == "" || len(*in.Author) > 80 {
			return nil, apierr.BadRequest("invalid_author", fmt.Errorf("author must be 1-80 characters"))
		}
		row.Author = *in.Author
	}
	if in.Purpose != nil {
		if *in.Purpose == "" {
			return nil, apierr.BadRequest("invalid_purpose", fmt.Errorf("purpose is required"))
		}
		row.Purpose = *in.Purpose
	}
	if in.Materials != nil {
		materials, err := normalizeMaterials(*in.Materials)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(materials)
		if err != nil {
			return nil, err
		}
		row.Materials = datatypes.JSON(raw)
	}
	if in.ResultValues != nil {
		values := *in.ResultValues
		if values == nil {
			values = map[string]any{}
		}
		if err := s.validateResultValues(ctx, row.ProjectID, values); err != nil {
			return nil, err
		}
		raw, err := json.Marshal(values)
		if err != nil {
			return nil, err
		}
		row.ResultValues = datatypes.JSON(raw)
	}

	if err := s.experiments.Update(ctx, nil, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *experimentService) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.experiments.DeleteByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NotFound("experiment_not_found", fmt.Errorf("experiment not found"))
	}
	return nil
}

// normalizeMaterials validates each line and recomputes the derived
// ratios. Ratios sum to 100 across materials with amount > 0; when the
// total amount is 0 every ratio is 0.
func normalizeMaterials(lines []domain.MaterialLine) ([]domain.MaterialLine, error) {
	out := make([]domain.MaterialLine, 0, len(lines))
	total := 0.0
	for i, line := range lines {
		if strings.TrimSpace(line.Name) == "" {
			return nil, apierr.BadRequest("invalid_material", fmt.Errorf("material %d: name is required", i+1))
		}
		if line.Amount <= 0 {
			return nil, apierr.BadRequest("invalid_material", fmt.Errorf("material %q: amount must be > 0", line.Name))
		}
		if !domain.ValidMaterialUnit(line.Unit) {
			return nil, apierr.BadRequest("invalid_material", fmt.Errorf("material %q: unit must be g or kg", line.Name))
		}
		total += line.Amount
		out = append(out, line)
	}
	for i := range out {
		if total > 0 {
			out[i].Ratio = out[i].Amount / total * 100
		} else {
			out[i].Ratio = 0
		}
	}
	return out, nil
}

// validateResultValues checks submitted values against the project's
// schemas. Keys without a schema pass through untouched; empty values are
// allowed. Quantitative scalars are coerced to numbers in place so the
// stored JSON is uniform.
func (s *experimentService) validateResultValues(ctx context.Context, projectID uuid.UUID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	rows, err := s.schemas.GetByProjectID(ctx, nil, projectID)
	if err != nil {
		return err
	}
	schemaByKey := make(map[string]*domain.ResultSchema, len(rows))
	for _, row := range rows {
		schemaByKey[row.Key] = row
	}

	for key, val := range values {
		schema, ok := schemaByKey[key]
		if !ok {
			continue
		}
		if val == nil || val == "" {
			continue
		}

		switch schema.ValueType {
		case domain.ValueTypeQuantitative:
			if arr, isArr := val.([]any); isArr {
				for _, el := range arr {
					if _, err := coerceNumber(el); err != nil {
						return apierr.BadRequest("invalid_result_value",
							fmt.Errorf("field %q: array contains a non-numeric value", schema.Label))
					}
				}
			} else {
				f, err := coerceNumber(val)
				if err != nil {
					return apierr.BadRequest("invalid_result_value",
						fmt.Errorf("field %q must be numeric (got %v)", schema.Label, val))
				}
				values[key] = f
			}
		case domain.ValueTypeCategorical:
			str, isStr := val.(string)
			if !isStr {
				return apierr.BadRequest("invalid_result_value",
					fmt.Errorf("field %q must be a string", schema.Label))
			}
			var options []string
			if len(schema.Options) > 0 {
				if err := json.Unmarshal(schema.Options, &options); err != nil {
					return err
				}
			}
			if len(options) > 0 && !containsString(options, str) {
				return apierr.BadRequest("invalid_result_value",
					fmt.Errorf("field %q must be one of %v (got %q)", schema.Label, options, str))
			}
		default: // qualitative
			if _, isStr := val.(string); !isStr {
				return apierr.BadRequest("invalid_result_value",
					fmt.Errorf("field %q must be text", schema.Label))
			}
		}
	}
	return nil
}

func coerceNumber(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
