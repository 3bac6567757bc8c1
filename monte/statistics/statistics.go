package statistics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bpuchala/CASMcode-monte/monte"
)

// WeightedObservationsMethod selects how weighted ("N-fold way") sample
// weights are folded into the summary statistics.
type WeightedObservationsMethod int

const (
	// Method1 computes the weighted sample variance directly from (y, w),
	// and estimates the autocorrelation factor from an unweighted
	// resampling of the weighted series.
	Method1 WeightedObservationsMethod = 1
	// Method2 computes every statistic from the resampled series.
	Method2 WeightedObservationsMethod = 2
)

// Statistics is the summary of one observed component: its mean, the
// lag-1-autocorrelation inflation factor, and the resulting calculated
// precision on the mean at a given confidence level.
type Statistics struct {
	Mean                  float64
	Variance              float64
	AutocorrelationFactor float64
	CalculatedPrecision   float64
	N                     int
}

// ZScore returns the two-tailed standard normal quantile for confidence,
// e.g. ZScore(0.95) ~= 1.96.
func ZScore(confidence float64) float64 {
	return distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
}

// Calculate computes unweighted mean/autocorrelation/precision statistics
// for y at the given confidence level.
func Calculate(y []float64, confidence float64) Statistics {
	n := len(y)
	if n == 0 {
		return Statistics{}
	}
	mean := stat.Mean(y, nil)
	variance := stat.Variance(y, nil)
	kappa := autocorrelationFactor(y)
	precision := ZScore(confidence) * math.Sqrt(kappa*variance/float64(n))
	return Statistics{
		Mean:                  mean,
		Variance:              variance,
		AutocorrelationFactor: kappa,
		CalculatedPrecision:   precision,
		N:                     n,
	}
}

// CalculateWeighted computes weighted ("N-fold way") statistics for (y, w).
// nResamples observations are drawn (with replacement, probability
// proportional to weight) using rng to estimate the effect of
// autocorrelation on the resampled chain.
func CalculateWeighted(y, w []float64, confidence float64, method WeightedObservationsMethod, nResamples int, rng monte.RandSource) (Statistics, error) {
	if len(y) != len(w) {
		return Statistics{}, fmt.Errorf("statistics: %d observations but %d weights", len(y), len(w))
	}
	if len(y) == 0 {
		return Statistics{}, nil
	}
	if nResamples <= 1 {
		return Statistics{}, fmt.Errorf("statistics: n_resamples must be > 1, got %d", nResamples)
	}

	resampled := resample(y, w, nResamples, rng)

	switch method {
	case Method1:
		mean := stat.Mean(y, w)
		variance := stat.Variance(y, w)
		kappa := autocorrelationFactor(resampled)
		precision := ZScore(confidence) * math.Sqrt(kappa*variance/float64(len(y)))
		return Statistics{
			Mean:                  mean,
			Variance:              variance,
			AutocorrelationFactor: kappa,
			CalculatedPrecision:   precision,
			N:                     len(y),
		}, nil
	case Method2:
		s := Calculate(resampled, confidence)
		s.N = len(y)
		return s, nil
	default:
		return Statistics{}, fmt.Errorf("statistics: unknown weighted observations method %d", method)
	}
}

// autocorrelationFactor returns kappa = (1+rho)/(1-rho) where rho is the
// lag-1 autocorrelation of y. A series too short to estimate rho (n < 2) or
// with a degenerate (zero-variance) lag correlation is treated as
// uncorrelated, kappa = 1.
func autocorrelationFactor(y []float64) float64 {
	n := len(y)
	if n < 2 {
		return 1.0
	}
	rho := stat.Correlation(y[:n-1], y[1:], nil)
	if math.IsNaN(rho) {
		return 1.0
	}
	// Guard against a pathological rho >= 1 from a near-perfectly
	// correlated short series, which would make kappa blow up or go
	// negative.
	if rho >= 1.0 {
		rho = 1.0 - 1e-9
	}
	if rho <= -1.0 {
		rho = -1.0 + 1e-9
	}
	return (1 + rho) / (1 - rho)
}

// resample draws n observations from y with replacement, with probability
// proportional to w, using rng.
func resample(y, w []float64, n int, rng monte.RandSource) []float64 {
	cumulative := make([]float64, len(w))
	total := 0.0
	for i, wi := range w {
		total += wi
		cumulative[i] = total
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		target := rng.Float64() * total
		idx := sort.Search(len(cumulative), func(j int) bool { return cumulative[j] >= target })
		if idx == len(cumulative) {
			idx = len(cumulative) - 1
		}
		out[i] = y[idx]
	}
	return out
}
