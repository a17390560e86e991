package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/repos"
	"github.com/benchlab/labnote-backend/internal/repos/testutil"
)

// stack wires the full service layer over the shared test database.
// Services commit through the base connection, so each test isolates
// its state behind its own project rather than a rolled-back tx.
type stack struct {
	conn        *gorm.DB
	projects    ProjectService
	experiments ExperimentService
	schemas     ResultSchemaService
	outputs     OutputConfigService
	reports     ReportService
}

func newStack(t *testing.T) *stack {
	t.Helper()
	conn := testutil.DB(t)
	log := testutil.Logger(t)

	projectRepo := repos.NewProjectRepo(conn, log)
	experimentRepo := repos.NewExperimentRepo(conn, log)
	schemaRepo := repos.NewResultSchemaRepo(conn, log)
	outputRepo := repos.NewOutputConfigRepo(conn, log)

	outputs := NewOutputConfigService(conn, log, projectRepo, schemaRepo, outputRepo)
	return &stack{
		conn:        conn,
		projects:    NewProjectService(conn, log, projectRepo, experimentRepo, schemaRepo, outputRepo),
		experiments: NewExperimentService(conn, log, projectRepo, experimentRepo, schemaRepo),
		schemas:     NewResultSchemaService(conn, log, projectRepo, schemaRepo),
		outputs:     outputs,
		reports:     NewReportService(conn, log, projectRepo, experimentRepo, schemaRepo, outputs),
	}
}

func (s *stack) mustProject(t *testing.T, ctx context.Context, name string) *domain.Project {
	t.Helper()
	p, err := s.projects.Create(ctx, CreateProjectInput{Name: name})
	if err != nil {
		t.Fatalf("create project %q: %v", name, err)
	}
	t.Cleanup(func() {
		_ = s.projects.Delete(context.Background(), p.ID)
	})
	return p
}

func (s *stack) mustSchema(t *testing.T, ctx context.Context, in CreateResultSchemaInput) *domain.ResultSchema {
	t.Helper()
	row, err := s.schemas.Create(ctx, in)
	if err != nil {
		t.Fatalf("create schema %q: %v", in.Key, err)
	}
	return row
}

func (s *stack) mustExperiment(t *testing.T, ctx context.Context, in CreateExperimentInput) *domain.Experiment {
	t.Helper()
	row, err := s.experiments.Create(ctx, in)
	if err != nil {
		t.Fatalf("create experiment %q: %v", in.Name, err)
	}
	return row
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
