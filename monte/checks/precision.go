package checks

import "math"

// RequestedPrecision is the convergence criterion for one sampled
// component: an absolute bound, a relative bound, or both. A component is
// converged only when every active criterion is met simultaneously.
//
// The zero value requires nothing (equivalent to CASM's "infinite
// precision" default) and is always satisfied.
type RequestedPrecision struct {
	AbsRequired  bool
	AbsPrecision float64
	RelRequired  bool
	RelPrecision float64
}

// Abs requests convergence to an absolute precision.
func Abs(value float64) RequestedPrecision {
	return RequestedPrecision{AbsRequired: true, AbsPrecision: value}
}

// Rel requests convergence to a precision relative to the observed mean.
func Rel(value float64) RequestedPrecision {
	return RequestedPrecision{RelRequired: true, RelPrecision: value}
}

// AbsAndRel requires both an absolute and a relative precision.
func AbsAndRel(abs, rel float64) RequestedPrecision {
	return RequestedPrecision{AbsRequired: true, AbsPrecision: abs, RelRequired: true, RelPrecision: rel}
}

// Satisfies reports whether value (a calculated precision, or an
// equilibration-check mean difference) meets every active criterion, given
// the reference mean the relative criterion scales against.
func (p RequestedPrecision) Satisfies(value, referenceMean float64) bool {
	if p.AbsRequired && value > p.AbsPrecision {
		return false
	}
	if p.RelRequired && value > p.RelPrecision*math.Abs(referenceMean) {
		return false
	}
	return true
}
