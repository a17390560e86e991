package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
)

type ExperimentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.Experiment) (*domain.Experiment, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Experiment, error)
	// GetByProjectID returns the project's experiments newest-first.
	GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*domain.Experiment, error)
	Update(ctx context.Context, tx *gorm.DB, row *domain.Experiment) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	DeleteByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error
}

type experimentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExperimentRepo(db *gorm.DB, baseLog *logger.Logger) ExperimentRepo {
	return &experimentRepo{db: db, log: baseLog.With("repo", "ExperimentRepo")}
}

func (r *experimentRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.Experiment) (*domain.Experiment, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *experimentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Experiment, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Experiment
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *experimentRepo) GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*domain.Experiment, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Experiment
	if projectID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *experimentRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.Experiment) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *experimentRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	res := t.WithContext(ctx).Where("id = ?", id).Delete(&domain.Experiment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *experimentRepo) DeleteByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if projectID == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("project_id = ?", projectID).Delete(&domain.Experiment{}).Error
}
