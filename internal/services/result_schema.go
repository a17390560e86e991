package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/platform/apierr"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/repos"
)

var schemaKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

type CreateResultSchemaInput struct {
	ProjectID   uuid.UUID `json:"project_id"`
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	ValueType   string    `json:"value_type"`
	Unit        string    `json:"unit"`
	Description string    `json:"description"`
	Options     []string  `json:"options"`
	SortOrder   *int      `json:"sort_order"`
}

// UpdateResultSchemaInput deliberately has no Key field: a schema key is
// the identifier experiments store values under and never changes.
type UpdateResultSchemaInput struct {
	Label       *string   `json:"label"`
	ValueType   *string   `json:"value_type"`
	Unit        *string   `json:"unit"`
	Description *string   `json:"description"`
	Options     *[]string `json:"options"`
	SortOrder   *int      `json:"sort_order"`
}

type ResultSchemaService interface {
	Create(ctx context.Context, in CreateResultSchemaInput) (*domain.ResultSchema, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.ResultSchema, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateResultSchemaInput) (*domain.ResultSchema, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type resultSchemaService struct {
	db       *gorm.DB
	log      *logger.Logger
	projects repos.ProjectRepo
	schemas  repos.ResultSchemaRepo
}

func NewResultSchemaService(db *gorm.DB, log *logger.Logger, projects repos.ProjectRepo, schemas repos.ResultSchemaRepo) ResultSchemaService {
	return &resultSchemaService{
		db:       db,
		log:      log.With("service", "ResultSchemaService"),
		projects: projects,
		schemas:  schemas,
	}
}

func (s *resultSchemaService) Create(ctx context.Context, in CreateResultSchemaInput) (*domain.ResultSchema, error) {
	project, err := s.projects.GetByID(ctx, nil, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apierr.BadRequest("invalid_project_id", fmt.Errorf("invalid project_id"))
	}

	if in.Key == "" || len(in.Key) > 80 || !schemaKeyPattern.MatchString(in.Key) {
		return nil, apierr.BadRequest("invalid_key", fmt.Errorf("key must match %s", schemaKeyPattern.String()))
	}
	if in.Label == "" || len(in.Label) > 200 {
		return nil, apierr.BadRequest("invalid_label", fmt.Errorf("label must be 1-200 characters"))
	}
	if !domain.ValidValueType(in.ValueType) {
		return nil, apierr.BadRequest("invalid_value_type", fmt.Errorf("value_type must be quantitative, qualitative or categorical"))
	}
	if in.ValueType == domain.ValueTypeCategorical && len(in.Options) == 0 {
		return nil, apierr.Unprocessable("options_required", fmt.Errorf("options is required for categorical fields"))
	}

	existing, err := s.schemas.GetByProjectIDAndKey(ctx, nil, in.ProjectID, in.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierr.Conflict("duplicate_key", fmt.Errorf("key %q already defined for this project", in.Key))
	}

	sortOrder := 0
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	} else {
		rows, err := s.schemas.GetByProjectID(ctx, nil, in.ProjectID)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if row.SortOrder >= sortOrder {
				sortOrder = row.SortOrder + 1
			}
		}
	}

	row := &domain.ResultSchema{
		ProjectID:   in.ProjectID,
		Key:         in.Key,
		Label:       in.Label,
		ValueType:   in.ValueType,
		Unit:        in.Unit,
		Description: in.Description,
		SortOrder:   sortOrder,
	}
	if len(in.Options) > 0 {
		raw, err := json.Marshal(in.Options)
		if err != nil {
			return nil, err
		}
		row.Options = datatypes.JSON(raw)
	}

	created, err := s.schemas.Create(ctx, nil, row)
	if err != nil {
		return nil, err
	}
	s.log.Info("result schema created", "project_id", in.ProjectID, "key", in.Key)
	return created, nil
}

func (s *resultSchemaService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.ResultSchema, error) {
	return s.schemas.GetByProjectID(ctx, nil, projectID)
}

func (s *resultSchemaService) Update(ctx context.Context, id uuid.UUID, in UpdateResultSchemaInput) (*domain.ResultSchema, error) {
	row, err := s.schemas.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apierr.NotFound("result_schema_not_found", fmt.Errorf("result schema not found"))
	}

	if in.Label != nil {
		if *in.Label == "" || len(*in.Label) > 200 {
			return nil, apierr.BadRequest("invalid_label", fmt.Errorf("label must be 1-200 characters"))
		}
		row.Label = *in.Label
	}
	if in.ValueType != nil {
		if !domain.ValidValueType(*in.ValueType) {
			return nil, apierr.BadRequest("invalid_value_type", fmt.Errorf("value_type must be quantitative, qualitative or categorical"))
		}
		row.ValueType = *in.ValueType
	}
	if in.Unit != nil {
		row.Unit = *in.Unit
	}
	if in.Description != nil {
		row.Description = *in.Description
	}
	if in.Options != nil {
		raw, err := json.Marshal(*in.Options)
		if err != nil {
			return nil, err
		}
		row.Options = datatypes.JSON(raw)
	}
	if in.SortOrder != nil {
		row.SortOrder = *in.SortOrder
	}

	if row.ValueType == domain.ValueTypeCategorical {
		var opts []string
		if len(row.Options) > 0 {
			if err := json.Unmarshal(row.Options, &opts); err != nil {
				return nil, err
			}
		}
		if len(opts) == 0 {
			return nil, apierr.Unprocessable("options_required", fmt.Errorf("options is required for categorical fields"))
		}
	}

	if err := s.schemas.Update(ctx, nil, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *resultSchemaService) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.schemas.DeleteByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NotFound("result_schema_not_found", fmt.Errorf("result schema not found"))
	}
	return nil
}
