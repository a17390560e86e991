package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/platform/logger"
)

type ResultSchemaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.ResultSchema) (*domain.ResultSchema, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.ResultSchema, error)
	// GetByProjectID returns the project's schemas ordered by sort_order,
	// ties broken by insertion.
	GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*domain.ResultSchema, error)
	GetByProjectIDAndKey(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, key string) (*domain.ResultSchema, error)
	Update(ctx context.Context, tx *gorm.DB, row *domain.ResultSchema) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	DeleteByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error
}

type resultSchemaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResultSchemaRepo(db *gorm.DB, baseLog *logger.Logger) ResultSchemaRepo {
	return &resultSchemaRepo{db: db, log: baseLog.With("repo", "ResultSchemaRepo")}
}

func (r *resultSchemaRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.ResultSchema) (*domain.ResultSchema, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *resultSchemaRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.ResultSchema, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.ResultSchema
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *resultSchemaRepo) GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*domain.ResultSchema, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.ResultSchema
	if projectID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("sort_order ASC, created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *resultSchemaRepo) GetByProjectIDAndKey(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, key string) (*domain.ResultSchema, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if projectID == uuid.Nil || key == "" {
		return nil, nil
	}
	var out []*domain.ResultSchema
	if err := t.WithContext(ctx).
		Where("project_id = ? AND key = ?", projectID, key).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *resultSchemaRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.ResultSchema) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *resultSchemaRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	res := t.WithContext(ctx).Where("id = ?", id).Delete(&domain.ResultSchema{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *resultSchemaRepo) DeleteByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if projectID == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("project_id = ?", projectID).Delete(&domain.ResultSchema{}).Error
}
