package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/platform/apierr"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
	"github.com/benchlab/labnote-backend/internal/repos"
)

type UpsertOutputConfigInput struct {
	ProjectID    uuid.UUID `json:"project_id"`
	IncludedKeys []string  `json:"included_keys"`
}

type OutputConfigService interface {
	// Get returns the project's output config, or nil when none was saved.
	Get(ctx context.Context, projectID uuid.UUID) (*domain.OutputConfig, error)
	Upsert(ctx context.Context, in UpsertOutputConfigInput) (*domain.OutputConfig, error)
	// IncludedKeys decodes the stored key list for a project; missing
	// config means no keys.
	IncludedKeys(ctx context.Context, projectID uuid.UUID) ([]string, error)
}

type outputConfigService struct {
	db       *gorm.DB
	log      *logger.Logger
	projects repos.ProjectRepo
	schemas  repos.ResultSchemaRepo
	outputs  repos.OutputConfigRepo
}

func NewOutputConfigService(
	db *gorm.DB,
	log *logger.Logger,
	projects repos.ProjectRepo,
	schemas repos.ResultSchemaRepo,
	outputs repos.OutputConfigRepo,
) OutputConfigService {
	return &outputConfigService{
		db:       db,
		log:      log.With("service", "OutputConfigService"),
		projects: projects,
		schemas:  schemas,
		outputs:  outputs,
	}
}

func (s *outputConfigService) Get(ctx context.Context, projectID uuid.UUID) (*domain.OutputConfig, error) {
	return s.outputs.GetByProjectID(ctx, nil, projectID)
}

// Upsert stores the selection, silently dropping keys that have no schema
// in the project. Submitted order is preserved for the surviving keys.
func (s *outputConfigService) Upsert(ctx context.Context, in UpsertOutputConfigInput) (*domain.OutputConfig, error) {
	project, err := s.projects.GetByID(ctx, nil, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apierr.BadRequest("invalid_project_id", fmt.Errorf("invalid project_id"))
	}

	rows, err := s.schemas.GetByProjectID(ctx, nil, in.ProjectID)
	if err != nil {
		return nil, err
	}
	validKeys := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		validKeys[row.Key] = struct{}{}
	}

	filtered := make([]string, 0, len(in.IncludedKeys))
	for _, key := range in.IncludedKeys {
		if _, ok := validKeys[key]; ok {
			filtered = append(filtered, key)
		}
	}

	raw, err := json.Marshal(filtered)
	if err != nil {
		return nil, err
	}
	row := &domain.OutputConfig{
		ProjectID:    in.ProjectID,
		IncludedKeys: datatypes.JSON(raw),
	}
	saved, err := s.outputs.Upsert(ctx, nil, row)
	if err != nil {
		return nil, err
	}
	s.log.Info("output config saved", "project_id", in.ProjectID, "included_keys", filtered)
	return saved, nil
}

func (s *outputConfigService) IncludedKeys(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	cfg, err := s.outputs.GetByProjectID(ctx, nil, projectID)
	if err != nil {
		return nil, err
	}
	if cfg == nil || len(cfg.IncludedKeys) == 0 {
		return nil, nil
	}
	var keys []string
	if err := json.Unmarshal(cfg.IncludedKeys, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}
