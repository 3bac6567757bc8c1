package kmc

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bpuchala/CASMcode-monte/monte"
	"github.com/bpuchala/CASMcode-monte/monte/checks"
)

// RunManager owns the sampling fixtures for one run and decides overall
// completion: the run is complete once every fixture's own CompletionCheck
// reports complete.
type RunManager struct {
	Fixtures []*SamplingFixture

	rng       monte.RandSource
	startTime time.Time

	// LastResults holds each fixture's most recent Results, keyed by label,
	// for reporting after the run stops.
	LastResults map[string]checks.Results

	lastStatusWrite float64
}

// NewRunManager builds a RunManager. rng is consulted only by fixtures using
// weighted convergence checking.
func NewRunManager(fixtures []*SamplingFixture, rng monte.RandSource) *RunManager {
	return &RunManager{
		Fixtures:        fixtures,
		rng:             rng,
		startTime:       time.Now(),
		LastResults:     make(map[string]checks.Results, len(fixtures)),
		lastStatusWrite: math.Inf(-1),
	}
}

// Clocktime returns the wall-clock time elapsed since the RunManager was
// constructed.
func (m *RunManager) Clocktime() float64 {
	return time.Since(m.startTime).Seconds()
}

// IsComplete evaluates every fixture's CompletionCheck and reports whether
// all of them have reached completion.
func (m *RunManager) IsComplete() (bool, error) {
	clocktime := m.Clocktime()
	complete := true
	for _, f := range m.Fixtures {
		results, err := f.checkCompletion(clocktime, m.rng)
		if err != nil {
			return false, err
		}
		m.LastResults[f.Label] = results
		if !results.IsComplete {
			complete = false
		}
	}
	return complete, nil
}

// WriteStatusIfDue logs one status entry per fixture, at Info level, if at
// least interval seconds of wall-clock time have elapsed since the last
// write (or since the RunManager was constructed, before any write) —
// a throttled counterpart to a per-tick trace log for runs whose event
// count makes logging every step impractical. logger defaults to
// logrus.StandardLogger() if nil. Returns whether it wrote.
func (m *RunManager) WriteStatusIfDue(interval float64, logger logrus.FieldLogger) bool {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	now := m.Clocktime()
	if now-m.lastStatusWrite < interval {
		return false
	}
	m.lastStatusWrite = now

	for _, f := range m.Fixtures {
		results := m.LastResults[f.Label]
		logger.WithFields(logrus.Fields{
			"fixture":   f.Label,
			"count":     results.Count,
			"n_samples": results.NSamples,
			"time":      results.Time,
			"clocktime": results.Clocktime,
			"complete":  results.IsComplete,
		}).Info("kmc: status")
	}
	return true
}

// Finalize evaluates functions against each fixture's most recent Results
// and runData, keyed first by fixture label and then by function name. It
// is meant to be called once, after RunManager.IsComplete reports true, to
// compute post-run aggregates (§7 category 3's results-analysis contract).
func Finalize[C any](m *RunManager, runData monte.RunData[C], functions map[string][]checks.AnalysisFunction[C]) map[string]map[string][]float64 {
	out := make(map[string]map[string][]float64, len(m.Fixtures))
	for _, f := range m.Fixtures {
		out[f.Label] = checks.RunAnalyses(functions[f.Label], runData, m.LastResults[f.Label], nil)
	}
	return out
}
