package strategy

// Params is a flat map of tunable threshold values used by ladder
// evaluation. Missing keys fall back to the default baked into the ladder.
type Params map[string]float64

// Get returns the named parameter or fallback when absent.
func (p Params) Get(name string, fallback float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}

	return fallback
}

// MergeParams overlays overrides on top of defaults, returning a new map.
// Neither input is mutated.
func MergeParams(defaults map[string]float64, overrides Params) Params {
	merged := make(Params, len(defaults)+len(overrides))

	for k, v := range defaults {
		merged[k] = v
	}

	for k, v := range overrides {
		merged[k] = v
	}

	return merged
}
