package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/benchlab/labnote-backend/internal/domain"
)

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.Project {
	tb.Helper()
	p := &domain.Project{
		ID:          uuid.New(),
		Name:        name,
		ProjectType: domain.ProjectTypeRegular,
		Status:      domain.ProjectStatusOngoing,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedResultSchema(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID uuid.UUID, key, valueType string, sortOrder int) *domain.ResultSchema {
	tb.Helper()
	s := &domain.ResultSchema{
		ID:        uuid.New(),
		ProjectID: projectID,
		Key:       key,
		Label:     key,
		ValueType: valueType,
		SortOrder: sortOrder,
	}
	if valueType == domain.ValueTypeCategorical {
		s.Options = datatypes.JSON([]byte(`["a","b"]`))
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed result schema: %v", err)
	}
	return s
}

func SeedExperiment(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID uuid.UUID, name string, resultValues map[string]any) *domain.Experiment {
	tb.Helper()
	raw, err := json.Marshal(resultValues)
	if err != nil {
		tb.Fatalf("marshal result values: %v", err)
	}
	e := &domain.Experiment{
		ID:           uuid.New(),
		ProjectID:    projectID,
		Name:         name,
		Author:       "tester",
		Purpose:      "test",
		Materials:    datatypes.JSON([]byte(`[]`)),
		ResultValues: datatypes.JSON(raw),
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed experiment: %v", err)
	}
	return e
}
