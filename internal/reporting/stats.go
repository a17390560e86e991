package reporting

import (
	"math"
	"sort"
)

// roundDisplay rounds chart means to 2 decimal digits without touching
// the stored values.
func roundDisplay(v float64) float64 {
	return math.Round(v*100) / 100
}

func mean(samples []float64) float64 {
	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

// FiveNumber computes min, Q1, median, Q3, max over the samples using the
// median-of-halves method: when the length is odd the overall median
// element belongs to both halves, and no rank interpolation is done. ok is
// false when there are no samples.
func FiveNumber(samples []float64) (Stats, bool) {
	n := len(samples)
	if n == 0 {
		return Stats{}, false
	}
	s := append([]float64(nil), samples...)
	sort.Float64s(s)

	lower := s[:n/2]
	upper := s[n/2:]
	if n%2 == 1 {
		lower = s[:n/2+1]
	}

	st := Stats{
		Min:    s[0],
		Median: medianSorted(s),
		Max:    s[n-1],
	}
	st.Q1 = st.Median
	st.Q3 = st.Median
	if len(lower) > 0 {
		st.Q1 = medianSorted(lower)
	}
	if len(upper) > 0 {
		st.Q3 = medianSorted(upper)
	}
	return st, true
}

func medianSorted(s []float64) float64 {
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2.0
}
