// Package reporting turns raw experiment result values into chart-ready
// aggregates: per-experiment means for bar/line series, five-number
// summaries with a shared padded scale for box plots, and paired means
// for scatter plots. Everything here is pure computation over the inputs;
// loading experiments and schemas is the caller's concern.
package reporting

// Experiment is the slice of an experiment the aggregation functions
// need. ResultValues maps schema key to a scalar, a string, or an array
// of repeated measurements, exactly as stored in the JSON column.
type Experiment struct {
	Name         string
	ResultValues map[string]any
}

// SeriesPoint is one bar/line point: the mean of an experiment's samples
// for the selected key, rounded for display.
type SeriesPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Stats is the five-number summary backing one box.
type Stats struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Scale is the vertical scale shared by every box in one box plot.
type Scale struct {
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// BoxPosition holds the stats of one box mapped to normalized, top-anchored
// screen coordinates (0 at YMax, 1 at YMin). It is a rendering convenience;
// the numeric contract is Stats plus the shared Scale.
type BoxPosition struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

type BoxPoint struct {
	Name     string      `json:"name"`
	Stats    Stats       `json:"stats"`
	Position BoxPosition `json:"position"`
}

type BoxPlot struct {
	Series []BoxPoint `json:"series"`
	Scale  Scale      `json:"scale"`
}

type ScatterPoint struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}
