package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
)

type OutputConfigRepo interface {
	GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*domain.OutputConfig, error)
	// Upsert creates the project's output config or replaces its
	// included keys when one already exists.
	Upsert(ctx context.Context, tx *gorm.DB, row *domain.OutputConfig) (*domain.OutputConfig, error)
	DeleteByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error
}

type outputConfigRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOutputConfigRepo(db *gorm.DB, baseLog *logger.Logger) OutputConfigRepo {
	return &outputConfigRepo{db: db, log: baseLog.With("repo", "OutputConfigRepo")}
}

func (r *outputConfigRepo) GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*domain.OutputConfig, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if projectID == uuid.Nil {
		return nil, nil
	}
	var out []*domain.OutputConfig
	if err := t.WithContext(ctx).
		Where("project_id = ?", projectID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *outputConfigRepo) Upsert(ctx context.Context, tx *gorm.DB, row *domain.OutputConfig) (*domain.OutputConfig, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	existing, err := r.GetByProjectID(ctx, t, row.ProjectID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.IncludedKeys = row.IncludedKeys
		if err := t.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *outputConfigRepo) DeleteByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if projectID == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("project_id = ?", projectID).Delete(&domain.OutputConfig{}).Error
}
