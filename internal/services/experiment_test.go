package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/benchlab/labnote-backend/internal/domain"
	"github.com/benchlab/labnote-backend/internal/platform/apierr"
)

func TestNormalizeMaterialsRatios(t *testing.T) {
	out, err := normalizeMaterials([]domain.MaterialLine{
		{Name: "Resin", Amount: 60, Unit: domain.MaterialUnitGram},
		{Name: "Hardener", Amount: 30, Unit: domain.MaterialUnitGram},
		{Name: "Filler", Amount: 10, Unit: domain.MaterialUnitGram},
	})
	if err != nil {
		t.Fatalf("normalizeMaterials: %v", err)
	}
	sum := 0.0
	for _, line := range out {
		sum += line.Ratio
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("ratio sum = %v, want 100", sum)
	}
	if out[0].Ratio != 60 || out[1].Ratio != 30 || out[2].Ratio != 10 {
		t.Fatalf("ratios = %v,%v,%v", out[0].Ratio, out[1].Ratio, out[2].Ratio)
	}
}

func TestNormalizeMaterialsValidation(t *testing.T) {
	cases := []struct {
		name  string
		lines []domain.MaterialLine
	}{
		{"blank name", []domain.MaterialLine{{Name: "  ", Amount: 1, Unit: "g"}}},
		{"zero amount", []domain.MaterialLine{{Name: "Resin", Amount: 0, Unit: "g"}}},
		{"negative amount", []domain.MaterialLine{{Name: "Resin", Amount: -5, Unit: "g"}}},
		{"bad unit", []domain.MaterialLine{{Name: "Resin", Amount: 1, Unit: "lb"}}},
	}
	for _, tc := range cases {
		if _, err := normalizeMaterials(tc.lines); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}

	// Submitted ratios are ignored and recomputed.
	out, err := normalizeMaterials([]domain.MaterialLine{
		{Name: "Resin", Amount: 50, Unit: "kg", Ratio: 7},
		{Name: "Solvent", Amount: 50, Unit: "kg", Ratio: 7},
	})
	if err != nil {
		t.Fatalf("normalizeMaterials: %v", err)
	}
	if out[0].Ratio != 50 || out[1].Ratio != 50 {
		t.Fatalf("ratios = %v,%v, want 50,50", out[0].Ratio, out[1].Ratio)
	}
}

func TestExperimentCreateCoercesQuantitativeValues(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	p := s.mustProject(t, ctx, "exp-coerce")
	s.mustSchema(t, ctx, CreateResultSchemaInput{
		ProjectID: p.ID, Key: "viscosity_cps", Label: "Viscosity", ValueType: domain.ValueTypeQuantitative,
	})

	e := s.mustExperiment(t, ctx, CreateExperimentInput{
		ProjectID: p.ID,
		Name:      "Batch A",
		Author:    "alice",
		Purpose:   "coercion",
		ResultValues: map[string]any{
			"viscosity_cps": "1250.5",
			"free_note":     "anything goes",
		},
	})

	var stored map[string]any
	if err := json.Unmarshal(e.ResultValues, &stored); err != nil {
		t.Fatalf("decode result_values: %v", err)
	}
	if got, ok := stored["viscosity_cps"].(float64); !ok || got != 1250.5 {
		t.Fatalf("viscosity_cps = %v (%T), want float64 1250.5", stored["viscosity_cps"], stored["viscosity_cps"])
	}
	// Keys without a schema pass through untouched.
	if stored["free_note"] != "anything goes" {
		t.Fatalf("free_note = %v", stored["free_note"])
	}
}

func TestExperimentCreateRejectsBadValues(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	p := s.mustProject(t, ctx, "exp-reject")
	s.mustSchema(t, ctx, CreateResultSchemaInput{
		ProjectID: p.ID, Key: "ph", Label: "pH", ValueType: domain.ValueTypeQuantitative,
	})
	s.mustSchema(t, ctx, CreateResultSchemaInput{
		ProjectID: p.ID, Key: "appearance", Label: "Appearance",
		ValueType: domain.ValueTypeCategorical, Options: []string{"clear", "hazy"},
	})
	s.mustSchema(t, ctx, CreateResultSchemaInput{
		ProjectID: p.ID, Key: "notes", Label: "Notes", ValueType: domain.ValueTypeQualitative,
	})

	base := CreateExperimentInput{ProjectID: p.ID, Name: "Batch B", Author: "bob", Purpose: "validation"}

	cases := []struct {
		name   string
		values map[string]any
	}{
		{"non-numeric quantitative", map[string]any{"ph": "slippery"}},
		{"array with non-numeric element", map[string]any{"ph": []any{7.0, "x"}}},
		{"categorical outside options", map[string]any{"appearance": "sparkly"}},
		{"categorical non-string", map[string]any{"appearance": 3.0}},
		{"qualitative non-string", map[string]any{"notes": 42.0}},
	}
	for _, tc := range cases {
		in := base
		in.ResultValues = tc.values
		_, err := s.experiments.Create(ctx, in)
		var ae *apierr.Error
		if !errors.As(err, &ae) || ae.Status != 400 {
			t.Fatalf("%s: err = %v, want 400 apierr", tc.name, err)
		}
	}

	// Empty and nil values are allowed regardless of type.
	if _, err := s.experiments.Create(ctx, CreateExperimentInput{
		ProjectID: p.ID, Name: "Batch C", Author: "bob", Purpose: "empties",
		ResultValues: map[string]any{"ph": nil, "appearance": "", "notes": ""},
	}); err != nil {
		t.Fatalf("empty values should pass: %v", err)
	}
}

func TestExperimentUpdatePatchesFields(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	p := s.mustProject(t, ctx, "exp-update")
	s.mustSchema(t, ctx, CreateResultSchemaInput{
		ProjectID: p.ID, Key: "ph", Label: "pH", ValueType: domain.ValueTypeQuantitative,
	})

	e := s.mustExperiment(t, ctx, CreateExperimentInput{
		ProjectID: p.ID, Name: "Batch D", Author: "carol", Purpose: "patching",
		Materials: []domain.MaterialLine{{Name: "Resin", Amount: 100, Unit: "g"}},
	})

	values := map[string]any{"ph": 7.4}
	updated, err := s.experiments.Update(ctx, e.ID, UpdateExperimentInput{
		Author:       strPtr("dave"),
		ResultValues: &values,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Author != "dave" {
		t.Fatalf("Author = %q", updated.Author)
	}
	if updated.Name != "Batch D" {
		t.Fatalf("Name changed unexpectedly: %q", updated.Name)
	}

	var stored map[string]any
	if err := json.Unmarshal(updated.ResultValues, &stored); err != nil {
		t.Fatalf("decode result_values: %v", err)
	}
	if stored["ph"] != 7.4 {
		t.Fatalf("ph = %v", stored["ph"])
	}

	// Materials survive when the patch omits them.
	var materials []domain.MaterialLine
	if err := json.Unmarshal(updated.Materials, &materials); err != nil {
		t.Fatalf("decode materials: %v", err)
	}
	if len(materials) != 1 || materials[0].Ratio != 100 {
		t.Fatalf("materials = %+v", materials)
	}
}
