package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/platform/apierr"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/repos"
)

type CreateProjectInput struct {
	Name            string     `json:"name"`
	ProjectType     string     `json:"project_type"`
	ExpectedEndDate *time.Time `json:"expected_end_date"`
	Status          string     `json:"status"`
}

type UpdateProjectInput struct {
	Name            *string    `json:"name"`
	ProjectType     *string    `json:"project_type"`
	ExpectedEndDate *time.Time `json:"expected_end_date"`
	Status          *string    `json:"status"`
}

type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectService struct {
	db          *gorm.DB
	log         *logger.Logger
	projects    repos.ProjectRepo
	experiments repos.ExperimentRepo
	schemas     repos.ResultSchemaRepo
	outputs     repos.OutputConfigRepo
}

func NewProjectService(
	db *gorm.DB,
	log *logger.Logger,
	projects repos.ProjectRepo,
	experiments repos.ExperimentRepo,
	schemas repos.ResultSchemaRepo,
	outputs repos.OutputConfigRepo,
) ProjectService {
	return &projectService{
		db:          db,
		log:         log.With("service", "ProjectService"),
		projects:    projects,
		experiments: experiments,
		schemas:     schemas,
		outputs:     outputs,
	}
}

func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*domain.Project, error) {
	if in.Name == "" || len(in.Name) > 200 {
		return nil, apierr.BadRequest("invalid_name", fmt.Errorf("name must be 1-200 characters"))
	}
	if in.ProjectType == "" {
		in.ProjectType = domain.ProjectTypeRegular
	}
	if !domain.ValidProjectType(in.ProjectType) {
		return nil, apierr.BadRequest("invalid_project_type", fmt.Errorf("project_type must be VOC or REGULAR"))
	}
	if in.Status == "" {
		in.Status = domain.ProjectStatusOngoing
	}
	if !domain.ValidProjectStatus(in.Status) {
		return nil, apierr.BadRequest("invalid_status", fmt.Errorf("status must be ONGOING or CLOSED"))
	}

	existing, err := s.projects.GetByName(ctx, nil, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierr.Conflict("duplicate_name", fmt.Errorf("project %q already exists", in.Name))
	}

	row := &domain.Project{
		Name:            in.Name,
		ProjectType:     in.ProjectType,
		ExpectedEndDate: in.ExpectedEndDate,
		Status:          in.Status,
	}
	created, err := s.projects.Create(ctx, nil, row)
	if err != nil {
		return nil, err
	}
	s.log.Info("project created", "project_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	row, err := s.projects.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apierr.NotFound("project_not_found", fmt.Errorf("project not found"))
	}
	return row, nil
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx, nil)
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*domain.Project, error) {
	row, err := s.projects.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apierr.NotFound("project_not_found", fmt.Errorf("project not found"))
	}

	if in.Name != nil {
		if *in.Name == "" || len(*in.Name) > 200 {
			return nil, apierr.BadRequest("invalid_name", fmt.Errorf("name must be 1-200 characters"))
		}
		if *in.Name != row.Name {
			existing, err := s.projects.GetByName(ctx, nil, *in.Name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apierr.Conflict("duplicate_name", fmt.Errorf("project %q already exists", *in.Name))
			}
		}
		row.Name = *in.Name
	}
	if in.ProjectType != nil {
		if !domain.ValidProjectType(*in.ProjectType) {
			return nil, apierr.BadRequest("invalid_project_type", fmt.Errorf("project_type must be VOC or REGULAR"))
		}
		row.ProjectType = *in.ProjectType
	}
	if in.ExpectedEndDate != nil {
		row.ExpectedEndDate = in.ExpectedEndDate
	}
	if in.Status != nil {
		if !domain.ValidProjectStatus(*in.Status) {
			return nil, apierr.BadRequest("invalid_status", fmt.Errorf("status must be ONGOING or CLOSED"))
		}
		row.Status = *in.Status
	}

	if err := s.projects.Update(ctx, nil, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes the project and its children in one transaction. The
// schema disables FK constraints during migration, so the cascade is
// done explicitly here.
func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := s.projects.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if row == nil {
		return apierr.NotFound("project_not_found", fmt.Errorf("project not found"))
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.experiments.DeleteByProjectID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.schemas.DeleteByProjectID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.outputs.DeleteByProjectID(ctx, tx, id); err != nil {
			return err
		}
		_, err := s.projects.DeleteByID(ctx, tx, id)
		return err
	})
}
