package reporting

// Selection holds the schema key chosen for each chart.
type Selection struct {
	Bar      string `json:"bar"`
	Line     string `json:"line"`
	Box      string `json:"box"`
	ScatterX string `json:"scatter_x"`
	ScatterY string `json:"scatter_y"`
}

// PickDefaultKeys repairs a chart-key selection after the set of
// quantitative, output-included keys changed. A selection that is still
// valid is kept; anything stale or empty is replaced with the first valid
// key. ScatterY prefers the second valid key so a fresh scatter plot is
// not key-against-itself, but falls back to ScatterX's key when only one
// key exists (BuildScatter then yields an empty series, which is the
// intended behavior). An empty valid set clears every choice.
func PickDefaultKeys(validKeys []string, sel Selection) Selection {
	if len(validKeys) == 0 {
		return Selection{}
	}

	first := validKeys[0]
	repair := func(key string) string {
		if containsKey(validKeys, key) {
			return key
		}
		return first
	}

	out := Selection{
		Bar:      repair(sel.Bar),
		Line:     repair(sel.Line),
		Box:      repair(sel.Box),
		ScatterX: repair(sel.ScatterX),
	}
	if containsKey(validKeys, sel.ScatterY) {
		out.ScatterY = sel.ScatterY
	} else if len(validKeys) > 1 {
		out.ScatterY = validKeys[1]
	} else {
		out.ScatterY = out.ScatterX
	}
	return out
}

func containsKey(keys []string, key string) bool {
	if key == "" {
		return false
	}
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
