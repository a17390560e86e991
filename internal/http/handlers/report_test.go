package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestReportEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/projects", gin.H{"name": "handler-reports"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project: %d %s", rec.Code, rec.Body.String())
	}
	var project struct {
		ID string `json:"id"`
	}
	decode(t, rec, &project)

	for _, schema := range []gin.H{
		{"project_id": project.ID, "key": "viscosity_cps", "label": "Viscosity", "value_type": "quantitative"},
		{"project_id": project.ID, "key": "ph", "label": "pH", "value_type": "quantitative"},
	} {
		rec = doJSON(t, router, http.MethodPost, "/api/result-schemas", schema)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create schema: %d %s", rec.Code, rec.Body.String())
		}
	}

	for _, exp := range []gin.H{
		{
			"project_id": project.ID, "name": "Batch A", "author": "alice", "purpose": "report",
			"result_values": gin.H{"viscosity_cps": []any{10, 20}, "ph": 7.0},
		},
		{
			"project_id": project.ID, "name": "Batch B", "author": "alice", "purpose": "report",
			"result_values": gin.H{"viscosity_cps": 30},
		},
	} {
		rec = doJSON(t, router, http.MethodPost, "/api/experiments", exp)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create experiment: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec = doJSON(t, router, http.MethodPut, "/api/output-config", gin.H{
		"project_id": project.ID, "included_keys": []string{"viscosity_cps", "ph"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert output config: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/projects/"+project.ID+"/reports/series?key=viscosity_cps", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("series: %d %s", rec.Code, rec.Body.String())
	}
	var series struct {
		Key    string `json:"key"`
		Series []struct {
			Name  string  `json:"name"`
			Value float64 `json:"value"`
		} `json:"series"`
	}
	decode(t, rec, &series)
	if len(series.Series) != 2 || series.Series[0].Name != "Batch A" || series.Series[0].Value != 15 {
		t.Fatalf("series = %+v", series)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/projects/"+project.ID+"/reports/box-plot?key=viscosity_cps", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("box plot: %d %s", rec.Code, rec.Body.String())
	}
	var plot struct {
		Scale struct {
			YMin float64 `json:"y_min"`
			YMax float64 `json:"y_max"`
		} `json:"scale"`
		Series []struct {
			Name string `json:"name"`
		} `json:"series"`
	}
	decode(t, rec, &plot)
	if len(plot.Series) != 2 || plot.Scale.YMin >= plot.Scale.YMax {
		t.Fatalf("plot = %+v", plot)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/projects/"+project.ID+"/reports/scatter?x=viscosity_cps&y=ph", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("scatter: %d %s", rec.Code, rec.Body.String())
	}
	var scatter struct {
		Points []struct {
			Name string  `json:"name"`
			X    float64 `json:"x"`
			Y    float64 `json:"y"`
		} `json:"points"`
	}
	decode(t, rec, &scatter)
	// Batch B has no ph, so only Batch A pairs up.
	if len(scatter.Points) != 1 || scatter.Points[0].Name != "Batch A" {
		t.Fatalf("scatter = %+v", scatter)
	}

	// Missing axis params are rejected before hitting the service.
	rec = doJSON(t, router, http.MethodGet, "/api/projects/"+project.ID+"/reports/scatter?x=viscosity_cps", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("scatter missing y: %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/projects/"+project.ID+"/reports/default-keys?bar=gone", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("default keys: %d %s", rec.Code, rec.Body.String())
	}
	var keys struct {
		Selection struct {
			Bar      string `json:"bar"`
			ScatterY string `json:"scatter_y"`
		} `json:"selection"`
		ValidKeys []string `json:"valid_keys"`
	}
	decode(t, rec, &keys)
	if keys.Selection.Bar != "viscosity_cps" || keys.Selection.ScatterY != "ph" {
		t.Fatalf("selection = %+v", keys.Selection)
	}
	if len(keys.ValidKeys) != 2 {
		t.Fatalf("valid keys = %v", keys.ValidKeys)
	}

	// A non-quantitative or unknown key is a 400 from the report service.
	rec = doJSON(t, router, http.MethodGet, "/api/projects/"+project.ID+"/reports/series?key=missing", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown key: %d", rec.Code)
	}
}
