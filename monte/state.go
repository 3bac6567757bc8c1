package monte

// ValueMap holds named vector-valued quantities: thermodynamic conditions
// (temperature, exchange potential, composition) or state properties
// (formation energy, potential energy), depending on the calculation type.
type ValueMap map[string][]float64

// Scalar returns the first component of the named entry, and whether the
// entry exists and is non-empty.
func (v ValueMap) Scalar(name string) (float64, bool) {
	vec, ok := v[name]
	if !ok || len(vec) == 0 {
		return 0, false
	}
	return vec[0], true
}

// State is one state of a Monte Carlo calculation: a configuration plus the
// thermodynamic conditions and properties associated with it.
type State[C any] struct {
	Configuration C
	Conditions    ValueMap
	Properties    ValueMap
}

// NewState builds a State with empty condition/property maps.
func NewState[C any](configuration C) *State[C] {
	return &State[C]{
		Configuration: configuration,
		Conditions:    ValueMap{},
		Properties:    ValueMap{},
	}
}
