package reporting

// scalePadding widens the box-plot scale by 10% of the sample range on
// each side. When every sample is the same value the range is treated as
// one unit split evenly, so the scale is [v-0.5, v+0.5] rather than a
// degenerate point.
const scalePadding = 0.10

// BuildSeries produces one mean point per experiment for the given key.
// Input is the newest-first experiment list; output is reversed so charts
// read oldest to newest left to right. Experiments with no numeric
// samples for the key are left out entirely.
func BuildSeries(key string, experiments []Experiment) []SeriesPoint {
	out := make([]SeriesPoint, 0, len(experiments))
	for i := len(experiments) - 1; i >= 0; i-- {
		exp := experiments[i]
		samples := Normalize(exp.ResultValues[key])
		if len(samples) == 0 {
			continue
		}
		out = append(out, SeriesPoint{
			Name:  exp.Name,
			Value: roundDisplay(mean(samples)),
		})
	}
	return out
}

// BuildBoxPlot computes a five-number summary per experiment plus the
// scale shared by all boxes. Ordering matches BuildSeries.
func BuildBoxPlot(key string, experiments []Experiment) BoxPlot {
	type entry struct {
		name    string
		stats   Stats
		samples []float64
	}

	entries := make([]entry, 0, len(experiments))
	for i := len(experiments) - 1; i >= 0; i-- {
		exp := experiments[i]
		samples := Normalize(exp.ResultValues[key])
		stats, ok := FiveNumber(samples)
		if !ok {
			continue
		}
		entries = append(entries, entry{name: exp.Name, stats: stats, samples: samples})
	}
	if len(entries) == 0 {
		return BoxPlot{Series: []BoxPoint{}}
	}

	globalMin := entries[0].samples[0]
	globalMax := entries[0].samples[0]
	for _, e := range entries {
		for _, v := range e.samples {
			if v < globalMin {
				globalMin = v
			}
			if v > globalMax {
				globalMax = v
			}
		}
	}
	scale := padScale(globalMin, globalMax)

	series := make([]BoxPoint, 0, len(entries))
	for _, e := range entries {
		series = append(series, BoxPoint{
			Name:  e.name,
			Stats: e.stats,
			Position: BoxPosition{
				Min:    PositionFor(e.stats.Min, scale),
				Q1:     PositionFor(e.stats.Q1, scale),
				Median: PositionFor(e.stats.Median, scale),
				Q3:     PositionFor(e.stats.Q3, scale),
				Max:    PositionFor(e.stats.Max, scale),
			},
		})
	}
	return BoxPlot{Series: series, Scale: scale}
}

func padScale(min, max float64) Scale {
	rng := max - min
	if rng == 0 {
		return Scale{YMin: min - 0.5, YMax: max + 0.5}
	}
	pad := rng * scalePadding
	return Scale{YMin: min - pad, YMax: max + pad}
}

// PositionFor maps a value onto the scale as a normalized top-anchored
// coordinate: larger values land closer to 0.
func PositionFor(v float64, scale Scale) float64 {
	return (scale.YMax - v) / (scale.YMax - scale.YMin)
}

// BuildScatter pairs the mean of xKey against the mean of yKey per
// experiment. An experiment missing samples on either side is skipped.
// Plotting a key against itself is defined as an empty result. Scatter
// points keep the input order; there is no chronology to preserve.
func BuildScatter(xKey, yKey string, experiments []Experiment) []ScatterPoint {
	out := make([]ScatterPoint, 0, len(experiments))
	if xKey == yKey {
		return out
	}
	for _, exp := range experiments {
		xs := Normalize(exp.ResultValues[xKey])
		if len(xs) == 0 {
			continue
		}
		ys := Normalize(exp.ResultValues[yKey])
		if len(ys) == 0 {
			continue
		}
		out = append(out, ScatterPoint{
			Name: exp.Name,
			X:    roundDisplay(mean(xs)),
			Y:    roundDisplay(mean(ys)),
		})
	}
	return out
}
