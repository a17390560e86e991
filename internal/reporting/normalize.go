package reporting

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Normalize converts one raw result value into the numeric samples it
// contains. Arrays keep their order with non-numeric entries dropped;
// scalars become a single sample or nothing. The result never contains
// NaN or infinities.
func Normalize(raw any) []float64 {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		out := make([]float64, 0, len(v))
		for _, el := range v {
			if f, ok := coerce(el); ok {
				out = append(out, f)
			}
		}
		return out
	case []float64:
		out := make([]float64, 0, len(v))
		for _, f := range v {
			if finite(f) {
				out = append(out, f)
			}
		}
		return out
	default:
		if f, ok := coerce(raw); ok {
			return []float64{f}
		}
		return nil
	}
}

func coerce(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, finite(x)
	case float32:
		return float64(x), finite(float64(x))
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil && finite(f)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil && finite(f)
	default:
		return 0, false
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
