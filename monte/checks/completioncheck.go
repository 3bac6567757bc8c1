package checks

import (
	"fmt"
	"math"

	"github.com/bpuchala/CASMcode-monte/monte"
	"github.com/bpuchala/CASMcode-monte/monte/sampler"
	"github.com/bpuchala/CASMcode-monte/monte/statesampler"
	"github.com/bpuchala/CASMcode-monte/monte/statistics"
)

// ConvergenceRequest names one component to converge and the precision it
// must reach.
type ConvergenceRequest struct {
	Component sampler.SamplerComponent
	Precision RequestedPrecision
}

// CompletionCheckParams configures CompletionCheck: the hard cutoffs, the
// schedule on which equilibration/convergence are (re-)evaluated, the
// statistics confidence level, and the components that must converge.
type CompletionCheckParams struct {
	Cutoff CutoffParams

	// Schedule for when a convergence check is actually run, indexed in
	// number of samples taken, following the same LINEAR/LOG grammar as
	// monte/statesampler's sample scheduling.
	CheckSpacing    statesampler.SampleMethod
	CheckBegin      float64
	CheckPeriod     float64
	ChecksPerPeriod float64
	CheckShift      float64

	Confidence                 float64
	WeightedObservationsMethod statistics.WeightedObservationsMethod
	NResamples                 int

	Convergence []ConvergenceRequest
}

// Results is the completion-check report exposed to callers and, ultimately,
// to serialization.
type Results struct {
	IsComplete        bool
	HasAllMinimumsMet bool
	HasAnyMaximumMet  bool

	Count     int64
	Time      float64
	Clocktime float64
	NSamples  int64

	NSamplesAtConvergenceCheck int64
	EquilibrationCheckResults  map[sampler.SamplerComponent]EquilibrationResult
	ConvergenceCheckResults    map[sampler.SamplerComponent]ConvergenceResult
}

// ComponentSource looks up the observed history and, if weighted
// observations are in use, the sample weights, of a SamplerComponent.
type ComponentSource interface {
	Component(c sampler.SamplerComponent) (values []float64, weights []float64, err error)
}

// CompletionCheck evaluates CompletionCheckParams on its configured
// schedule and reports whether a run is complete.
type CompletionCheck struct {
	params      CompletionCheckParams
	checksRun   int64
	lastResults Results

	// lastNSamples is the NSamples argument of the most recent Check call,
	// or -1 before the first call. It makes the check-schedule gate a pure
	// function of NSamples: repeated calls with no new samples replay
	// lastResults rather than re-evaluating (and re-advancing) the schedule.
	lastNSamples int64
}

// New builds a CompletionCheck. NResamples and Confidence must already
// carry their effective defaults (0.95 confidence, 10000 resamples, method
// 1) — CompletionCheck applies none itself.
func New(params CompletionCheckParams) *CompletionCheck {
	return &CompletionCheck{params: params, lastNSamples: -1}
}

// checkSampleAt returns the sample count at which the k-th scheduled check
// should run, using the same LINEAR/LOG spacing formulas as
// monte/statesampler, deterministic only (the check schedule has no
// stochastic mode).
func (c *CompletionCheck) checkSampleAt(k int64) float64 {
	n := float64(k)
	p := c.params
	if p.CheckSpacing == statesampler.Log {
		return p.CheckBegin + math.Pow(p.CheckPeriod, (n+p.CheckShift)/p.ChecksPerPeriod)
	}
	return p.CheckBegin + (p.CheckPeriod/p.ChecksPerPeriod)*n
}

// Check evaluates the completion predicate against the run's current
// counters. source resolves each requested component's sampled history (and
// weights, if any) on demand. rng is only consulted if weighted convergence
// checking is configured.
func (c *CompletionCheck) Check(count, nSamples int64, simTime, clocktime float64, source ComponentSource, rng monte.RandSource) (Results, error) {
	if nSamples == c.lastNSamples {
		return c.lastResults, nil
	}

	cutoff := CheckCutoff(c.params.Cutoff, count, nSamples, simTime, clocktime)
	results := Results{
		HasAllMinimumsMet: cutoff.HasAllMinimumsMet,
		HasAnyMaximumMet:  cutoff.HasAnyMaximumMet,
		Count:             count,
		Time:              simTime,
		Clocktime:         clocktime,
		NSamples:          nSamples,
	}

	if !cutoff.HasAllMinimumsMet {
		results.IsComplete = false
		c.record(nSamples, results)
		return results, nil
	}
	if cutoff.HasAnyMaximumMet {
		results.IsComplete = true
		c.record(nSamples, results)
		return results, nil
	}

	nextCheckAt := int64(math.Round(c.checkSampleAt(c.checksRun)))
	if nSamples < nextCheckAt {
		results.IsComplete = false
		c.record(nSamples, results)
		return results, nil
	}
	c.checksRun++

	results.NSamplesAtConvergenceCheck = nSamples
	results.EquilibrationCheckResults = make(map[sampler.SamplerComponent]EquilibrationResult, len(c.params.Convergence))
	results.ConvergenceCheckResults = make(map[sampler.SamplerComponent]ConvergenceResult, len(c.params.Convergence))

	allEquilibrated := true
	componentValues := make(map[sampler.SamplerComponent][]float64, len(c.params.Convergence))
	componentWeights := make(map[sampler.SamplerComponent][]float64, len(c.params.Convergence))
	for _, req := range c.params.Convergence {
		values, weights, err := source.Component(req.Component)
		if err != nil {
			return Results{}, fmt.Errorf("checks: %s: %w", req.Component, err)
		}
		componentValues[req.Component] = values
		componentWeights[req.Component] = weights

		eq := CheckEquilibration(values, req.Precision)
		results.EquilibrationCheckResults[req.Component] = eq
		if !eq.IsEquilibrated {
			allEquilibrated = false
		}
	}

	if !allEquilibrated {
		results.IsComplete = false
		c.record(nSamples, results)
		return results, nil
	}

	allConverged := true
	for _, req := range c.params.Convergence {
		values := componentValues[req.Component]
		weights := componentWeights[req.Component]
		neq := results.EquilibrationCheckResults[req.Component].NEquil
		tail := values[neq:]

		var conv ConvergenceResult
		var err error
		if weights != nil {
			conv, err = CheckConvergenceWeighted(tail, weights[neq:], req.Precision, c.params.Confidence, c.params.WeightedObservationsMethod, c.params.NResamples, rng)
		} else {
			conv = CheckConvergence(tail, req.Precision, c.params.Confidence)
		}
		if err != nil {
			return Results{}, fmt.Errorf("checks: %s: %w", req.Component, err)
		}
		results.ConvergenceCheckResults[req.Component] = conv
		if !conv.IsConverged {
			allConverged = false
		}
	}

	results.IsComplete = allConverged
	c.record(nSamples, results)
	return results, nil
}

// record caches results as the decision for nSamples, so a later Check call
// with the same nSamples replays it instead of re-evaluating the schedule.
func (c *CompletionCheck) record(nSamples int64, results Results) {
	c.lastNSamples = nSamples
	c.lastResults = results
}

// LastResults returns the most recent Results computed by Check, useful for
// idempotent re-reporting between polls.
func (c *CompletionCheck) LastResults() Results { return c.lastResults }
