package checks

import (
	"github.com/bpuchala/CASMcode-monte/monte"
	"github.com/bpuchala/CASMcode-monte/monte/statistics"
)

// ConvergenceResult is the outcome of testing one component's statistics
// against its requested precision.
type ConvergenceResult struct {
	Mean                float64
	CalculatedPrecision float64
	Requested           RequestedPrecision
	IsConverged         bool
}

// CheckConvergence computes unweighted statistics for y and tests them
// against requested at the given confidence level.
func CheckConvergence(y []float64, requested RequestedPrecision, confidence float64) ConvergenceResult {
	s := statistics.Calculate(y, confidence)
	return ConvergenceResult{
		Mean:                s.Mean,
		CalculatedPrecision: s.CalculatedPrecision,
		Requested:           requested,
		IsConverged:         requested.Satisfies(s.CalculatedPrecision, s.Mean),
	}
}

// CheckConvergenceWeighted is CheckConvergence for a weighted ("N-fold way")
// observation series.
func CheckConvergenceWeighted(y, w []float64, requested RequestedPrecision, confidence float64, method statistics.WeightedObservationsMethod, nResamples int, rng monte.RandSource) (ConvergenceResult, error) {
	s, err := statistics.CalculateWeighted(y, w, confidence, method, nResamples, rng)
	if err != nil {
		return ConvergenceResult{}, err
	}
	return ConvergenceResult{
		Mean:                s.Mean,
		CalculatedPrecision: s.CalculatedPrecision,
		Requested:           requested,
		IsConverged:         requested.Satisfies(s.CalculatedPrecision, s.Mean),
	}, nil
}
