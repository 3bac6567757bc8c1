package ising

import (
	"fmt"

	"github.com/bpuchala/CASMcode-monte/monte"
	"github.com/bpuchala/CASMcode-monte/monte/checks"
	"github.com/bpuchala/CASMcode-monte/monte/sampler"
	"github.com/bpuchala/CASMcode-monte/monte/statesampler"
)

// Run drives calc's Configuration through a semi-grand canonical Metropolis
// simulation to completion: on each iteration, fire any sample due at the
// current count against the not-yet-mutated configuration, then propose one
// flip and accept or reject it, then advance the sampler's counters, and repeat until
// check reports the run complete — the same sample-before-apply ordering as
// monte/kmc's driver loop. samp must already be configured
// (SampleMode/SampleMethod etc.) with calc.SamplingFunctions(); Run calls
// samp.Reset with stepsPerPass, the number of proposed flips that make up
// one pass (the reference implementation calls this a lattice "sweep").
//
// checkRand is consulted only if check's convergence criteria use weighted
// observations; it is independent of calc.Rand so that Metropolis proposals
// are unaffected by whether weighted convergence checking is enabled.
func Run(calc *Calculator, stepsPerPass int64, samp *statesampler.StateSampler, check *checks.CompletionCheck, checkRand monte.RandSource) (checks.Results, error) {
	if err := samp.Reset(stepsPerPass); err != nil {
		return checks.Results{}, fmt.Errorf("ising: %w", err)
	}

	source := samplerSource{sampler: samp}
	for {
		nSamples := int64(len(samp.SampleCount))
		results, err := check.Check(samp.Count, nSamples, samp.Time, 0, source, checkRand)
		if err != nil {
			return checks.Results{}, fmt.Errorf("ising: %w", err)
		}
		if results.IsComplete {
			return results, nil
		}

		if err := samp.SampleDataByCountIfDue(); err != nil {
			return checks.Results{}, fmt.Errorf("ising: %w", err)
		}
		calc.Step()
		samp.IncrementStep()
	}
}

// samplerSource adapts a StateSampler's Samplers into checks.ComponentSource;
// this model reports no per-sample weights.
type samplerSource struct {
	sampler *statesampler.StateSampler
}

func (s samplerSource) Component(c sampler.SamplerComponent) ([]float64, []float64, error) {
	samp, ok := s.sampler.Samplers[c.SamplerName]
	if !ok {
		return nil, nil, fmt.Errorf("no sampler named %q", c.SamplerName)
	}
	if c.ComponentIndex < 0 || c.ComponentIndex >= samp.NumComponents() {
		return nil, nil, fmt.Errorf("component index %d out of range for %q", c.ComponentIndex, c.SamplerName)
	}
	return samp.Component(c.ComponentIndex), nil, nil
}
