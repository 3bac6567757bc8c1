package kmc

import (
	"fmt"

	"github.com/bpuchala/CASMcode-monte/monte"
	"github.com/bpuchala/CASMcode-monte/monte/checks"
	"github.com/bpuchala/CASMcode-monte/monte/sampler"
	"github.com/bpuchala/CASMcode-monte/monte/statesampler"
)

// SamplingFixture pairs a schedule of sampling functions with the
// completion check that decides when its samples satisfy the requested
// convergence. A run typically has one fixture, but §4.7 allows more (e.g.
// a coarse fixture driving cutoffs and a fine one recording trajectory
// data).
type SamplingFixture struct {
	Label   string
	Sampler *statesampler.StateSampler
	Check   *checks.CompletionCheck

	// Weights, if non-nil, must stay parallel to Sampler's sample count and
	// supplies the per-sample weight for weighted ("N-fold way") convergence
	// checking (e.g. residence-time weights in rejection-free KMC).
	Weights []float64
}

// componentSource adapts a SamplingFixture's Samplers into the
// checks.ComponentSource interface CompletionCheck consumes.
type componentSource struct {
	fixture *SamplingFixture
}

func (s componentSource) Component(c sampler.SamplerComponent) ([]float64, []float64, error) {
	samp, ok := s.fixture.Sampler.Samplers[c.SamplerName]
	if !ok {
		return nil, nil, fmt.Errorf("kmc: fixture %q has no sampler named %q", s.fixture.Label, c.SamplerName)
	}
	if c.ComponentIndex < 0 || c.ComponentIndex >= samp.NumComponents() {
		return nil, nil, fmt.Errorf("kmc: fixture %q: component index %d out of range for %q", s.fixture.Label, c.ComponentIndex, c.SamplerName)
	}
	return samp.Component(c.ComponentIndex), s.fixture.Weights, nil
}

// checkCompletion evaluates this fixture's CompletionCheck against its
// StateSampler's current counters.
func (f *SamplingFixture) checkCompletion(clocktime float64, rng monte.RandSource) (checks.Results, error) {
	nSamples := int64(len(f.Sampler.SampleCount))
	return f.Check.Check(f.Sampler.Count, nSamples, f.Sampler.Time, clocktime, componentSource{fixture: f}, rng)
}
