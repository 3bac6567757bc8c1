package checks

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// EquilibrationResult is the outcome of testing one component for
// equilibration: the earliest prefix length beyond which the chain is
// judged to have settled, or a report that it never did.
type EquilibrationResult struct {
	IsEquilibrated bool
	NEquil         int // earliest index into y considered post-equilibration
}

// CheckEquilibration locates the earliest prefix length N_eq such that the
// mean over y[N_eq:] agrees with the mean over the second half of that
// range, y[N_eq+(len-N_eq)/2:], to within requested. Only prefix lengths
// that leave at least two observations are tried; if none satisfies this,
// the component is reported as still drifting (NEquil == len(y)).
func CheckEquilibration(y []float64, requested RequestedPrecision) EquilibrationResult {
	n := len(y)
	for neq := 0; neq < n; neq++ {
		remaining := n - neq
		if remaining < 2 {
			break
		}
		half := neq + remaining/2
		if half >= n {
			break
		}
		meanFull := stat.Mean(y[neq:], nil)
		meanSecondHalf := stat.Mean(y[half:], nil)
		if requested.Satisfies(math.Abs(meanFull-meanSecondHalf), meanSecondHalf) {
			return EquilibrationResult{IsEquilibrated: true, NEquil: neq}
		}
	}
	return EquilibrationResult{IsEquilibrated: false, NEquil: n}
}
