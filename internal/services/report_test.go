package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/platform/apierr"
	"github.com/benchlab/labnote-backend/internal/reporting"
)

// seedReportProject builds a project with two quantitative keys and three
// experiments carrying both scalar and repeated-measurement values.
func seedReportProject(t *testing.T, ctx context.Context, s *stack, name string) *domain.Project {
	t.Helper()
	p := s.mustProject(t, ctx, name)
	s.mustSchema(t, ctx, CreateResultSchemaInput{
		ProjectID: p.ID, Key: "viscosity_cps", Label: "Viscosity", ValueType: domain.ValueTypeQuantitative,
	})
	s.mustSchema(t, ctx, CreateResultSchemaInput{
		ProjectID: p.ID, Key: "ph", Label: "pH", ValueType: domain.ValueTypeQuantitative,
	})
	s.mustSchema(t, ctx, CreateResultSchemaInput{
		ProjectID: p.ID, Key: "notes", Label: "Notes", ValueType: domain.ValueTypeQualitative,
	})

	// Created in this order; listings return newest-first, the chart
	// builders flip back to oldest-first.
	s.mustExperiment(t, ctx, CreateExperimentInput{
		ProjectID: p.ID, Name: "Batch A", Author: "alice", Purpose: "report",
		ResultValues: map[string]any{"viscosity_cps": []any{10.0, 20.0}, "ph": 7.0},
	})
	s.mustExperiment(t, ctx, CreateExperimentInput{
		ProjectID: p.ID, Name: "Batch B", Author: "alice", Purpose: "report",
		ResultValues: map[string]any{"viscosity_cps": 30.0, "notes": "sticky"},
	})
	s.mustExperiment(t, ctx, CreateExperimentInput{
		ProjectID: p.ID, Name: "Batch C", Author: "alice", Purpose: "report",
		ResultValues: map[string]any{"viscosity_cps": []any{1.0, "2", 3.0}, "ph": 6.5},
	})
	return p
}

func TestReportSeries(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	p := seedReportProject(t, ctx, s, "report-series")

	points, err := s.reports.Series(ctx, p.ID, "viscosity_cps")
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	// Oldest first; Batch C's "2" string sample is coerced on read.
	if len(points) != 3 {
		t.Fatalf("Series: got %d points", len(points))
	}
	if points[0].Name != "Batch A" || points[0].Value != 15 {
		t.Fatalf("points[0] = %+v", points[0])
	}
	if points[1].Name != "Batch B" || points[1].Value != 30 {
		t.Fatalf("points[1] = %+v", points[1])
	}
	if points[2].Name != "Batch C" || points[2].Value != 2 {
		t.Fatalf("points[2] = %+v", points[2])
	}

	// Batch B has no ph value and is excluded from that key's series.
	points, err = s.reports.Series(ctx, p.ID, "ph")
	if err != nil {
		t.Fatalf("Series ph: %v", err)
	}
	if len(points) != 2 || points[0].Name != "Batch A" || points[1].Name != "Batch C" {
		t.Fatalf("ph series = %+v", points)
	}
}

func TestReportRejectsNonQuantitativeKey(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	p := seedReportProject(t, ctx, s, "report-keycheck")

	var ae *apierr.Error
	if _, err := s.reports.Series(ctx, p.ID, "notes"); !errors.As(err, &ae) || ae.Status != 400 {
		t.Fatalf("qualitative key: err = %v, want 400 apierr", err)
	}
	if _, err := s.reports.Series(ctx, p.ID, "missing"); !errors.As(err, &ae) || ae.Status != 400 {
		t.Fatalf("unknown key: err = %v, want 400 apierr", err)
	}
	if _, err := s.reports.BoxPlot(ctx, p.ID, ""); !errors.As(err, &ae) || ae.Status != 400 {
		t.Fatalf("empty key: err = %v, want 400 apierr", err)
	}
}

func TestReportBoxPlot(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	p := seedReportProject(t, ctx, s, "report-boxplot")

	plot, err := s.reports.BoxPlot(ctx, p.ID, "viscosity_cps")
	if err != nil {
		t.Fatalf("BoxPlot: %v", err)
	}
	if len(plot.Series) != 3 {
		t.Fatalf("BoxPlot: got %d boxes", len(plot.Series))
	}
	// Sample range across boxes is 1..30; the scale pads 10% each side.
	if math.Abs(plot.Scale.YMin+1.9) > 1e-9 || math.Abs(plot.Scale.YMax-32.9) > 1e-9 {
		t.Fatalf("Scale = %+v", plot.Scale)
	}
	a := plot.Series[0]
	if a.Name != "Batch A" || a.Stats.Min != 10 || a.Stats.Max != 20 || a.Stats.Median != 15 {
		t.Fatalf("Batch A stats = %+v", a.Stats)
	}
	b := plot.Series[1]
	if b.Stats.Min != 30 || b.Stats.Max != 30 {
		t.Fatalf("Batch B stats = %+v", b.Stats)
	}
}

func TestReportScatter(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	p := seedReportProject(t, ctx, s, "report-scatter")

	points, err := s.reports.Scatter(ctx, p.ID, "viscosity_cps", "ph")
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	// Batch B lacks ph, so only A and C pair up. Listing order is
	// newest-first and scatter keeps it.
	if len(points) != 2 {
		t.Fatalf("Scatter: got %d points", len(points))
	}
	if points[0].Name != "Batch C" || points[0].X != 2 || points[0].Y != 6.5 {
		t.Fatalf("points[0] = %+v", points[0])
	}
	if points[1].Name != "Batch A" || points[1].X != 15 || points[1].Y != 7 {
		t.Fatalf("points[1] = %+v", points[1])
	}

	// Same key on both axes is an explicit empty result.
	points, err = s.reports.Scatter(ctx, p.ID, "ph", "ph")
	if err != nil {
		t.Fatalf("Scatter same key: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("Scatter same key: got %d points", len(points))
	}
}

func TestReportDefaultKeys(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	p := seedReportProject(t, ctx, s, "report-defaults")
	if _, err := s.outputs.Upsert(ctx, UpsertOutputConfigInput{
		ProjectID: p.ID, IncludedKeys: []string{"viscosity_cps", "ph", "notes"},
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// notes is qualitative and never a valid chart key.
	res, err := s.reports.DefaultKeys(ctx, p.ID, reporting.Selection{})
	if err != nil {
		t.Fatalf("DefaultKeys: %v", err)
	}
	if len(res.ValidKeys) != 2 || res.ValidKeys[0] != "viscosity_cps" || res.ValidKeys[1] != "ph" {
		t.Fatalf("ValidKeys = %v", res.ValidKeys)
	}
	if res.Selection.Bar != "viscosity_cps" || res.Selection.ScatterY != "ph" {
		t.Fatalf("Selection = %+v", res.Selection)
	}

	// A still-valid choice is kept; a stale one is repaired.
	res, err = s.reports.DefaultKeys(ctx, p.ID, reporting.Selection{
		Bar: "ph", Line: "gone", Box: "ph", ScatterX: "ph", ScatterY: "gone",
	})
	if err != nil {
		t.Fatalf("DefaultKeys: %v", err)
	}
	if res.Selection.Bar != "ph" || res.Selection.Line != "viscosity_cps" {
		t.Fatalf("Selection = %+v", res.Selection)
	}
	if res.Selection.ScatterY != "ph" {
		t.Fatalf("ScatterY = %q", res.Selection.ScatterY)
	}
}
