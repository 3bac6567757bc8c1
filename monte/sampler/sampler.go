package sampler

import (
	"fmt"
	"strconv"
)

// SamplerComponent identifies one scalar component of one named sampling
// function: e.g. the second component of a vector-valued "param_composition"
// observable. It is comparable and used as a map key by convergence and
// completion checking, which track requested precision per component.
type SamplerComponent struct {
	SamplerName    string
	ComponentIndex int
	ComponentName  string
}

func (c SamplerComponent) String() string {
	if c.ComponentName != "" {
		return c.SamplerName + "(" + c.ComponentName + ")"
	}
	return fmt.Sprintf("%s[%d]", c.SamplerName, c.ComponentIndex)
}

// Sampler accumulates observations of one named, vector-valued quantity:
// one push per Monte Carlo sample, one column per scalar component.
//
// Storage is column-major (one growable []float64 per component) rather
// than a single row-major buffer, so that Component(i) can hand back the
// full observed history of a single component without copying, which is
// exactly the shape monte/statistics and monte/checks need.
type Sampler struct {
	name           string
	componentNames []string
	columns        [][]float64
}

// New creates an empty Sampler for a named quantity. componentNames fixes
// each component's name and, by its length, the number of components; a
// duplicate name is a programming error and panics. If componentNames is
// empty, both the count and the names are deferred to the first PushBack,
// defaulting to row-major-unrolled "0", "1", ….
func New(name string, componentNames []string) *Sampler {
	assertUniqueNames(name, componentNames)
	return &Sampler{
		name:           name,
		componentNames: append([]string(nil), componentNames...),
		columns:        make([][]float64, len(componentNames)),
	}
}

func assertUniqueNames(name string, componentNames []string) {
	seen := make(map[string]bool, len(componentNames))
	for _, n := range componentNames {
		if seen[n] {
			panic(fmt.Sprintf("sampler %q: duplicate component name %q", name, n))
		}
		seen[n] = true
	}
}

func defaultComponentNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	return names
}

// Name returns the sampled quantity's name.
func (s *Sampler) Name() string { return s.name }

// NumComponents returns the number of scalar components per sample.
func (s *Sampler) NumComponents() int { return len(s.componentNames) }

// NumSamples returns the number of samples pushed so far.
func (s *Sampler) NumSamples() int {
	if len(s.columns) == 0 {
		return 0
	}
	return len(s.columns[0])
}

// ComponentNames returns the component name list. Callers must not mutate
// the returned slice.
func (s *Sampler) ComponentNames() []string { return s.componentNames }

// PushBack appends one sample. values must have exactly NumComponents
// entries, one per column, in component order. If this Sampler was
// constructed with no component names, the first call fixes the component
// count and default names from len(values).
func (s *Sampler) PushBack(values []float64) error {
	if len(s.columns) == 0 && len(s.componentNames) == 0 && len(values) > 0 {
		s.componentNames = defaultComponentNames(len(values))
		s.columns = make([][]float64, len(values))
	}
	if len(values) != len(s.columns) {
		return fmt.Errorf("sampler %q: pushed %d values, expected %d components", s.name, len(values), len(s.columns))
	}
	for i, v := range values {
		s.columns[i] = append(s.columns[i], v)
	}
	return nil
}

// Component returns the full observed history of component i, in sample
// order. The returned slice aliases internal storage: callers must treat it
// as read-only, exactly as Sampler itself only ever appends to it.
func (s *Sampler) Component(i int) []float64 {
	return s.columns[i]
}

// ComponentIndex returns the index of the named component, or -1 if this
// sampler has no such component.
func (s *Sampler) ComponentIndex(name string) int {
	for i, n := range s.componentNames {
		if n == name {
			return i
		}
	}
	return -1
}
