package checks

// CutoffParams bounds a run on four independent axes, each with an optional
// min and max. A nil bound means that axis is not checked.
type CutoffParams struct {
	CountMin, CountMax         *int64
	SampleMin, SampleMax       *int64
	TimeMin, TimeMax           *float64
	ClocktimeMin, ClocktimeMax *float64
}

// CutoffResult is the joint outcome of every configured axis.
type CutoffResult struct {
	// HasAllMinimumsMet is true iff every specified min bound has been
	// reached. Completion is gated on this.
	HasAllMinimumsMet bool
	// HasAnyMaximumMet is true iff any specified max bound has been
	// reached. Completion is forced on this, independent of convergence.
	HasAnyMaximumMet bool
}

// CheckCutoff evaluates every configured axis against the run's current
// count, number of samples taken, simulated time, and wall-clock time.
func CheckCutoff(params CutoffParams, count, nSamples int64, simTime, clocktime float64) CutoffResult {
	minsMet := true
	maxMet := false

	checkIntMin := func(value int64, min *int64) {
		if min != nil && value < *min {
			minsMet = false
		}
	}
	checkIntMax := func(value int64, max *int64) {
		if max != nil && value >= *max {
			maxMet = true
		}
	}
	checkFloatMin := func(value float64, min *float64) {
		if min != nil && value < *min {
			minsMet = false
		}
	}
	checkFloatMax := func(value float64, max *float64) {
		if max != nil && value >= *max {
			maxMet = true
		}
	}

	checkIntMin(count, params.CountMin)
	checkIntMax(count, params.CountMax)
	checkIntMin(nSamples, params.SampleMin)
	checkIntMax(nSamples, params.SampleMax)
	checkFloatMin(simTime, params.TimeMin)
	checkFloatMax(simTime, params.TimeMax)
	checkFloatMin(clocktime, params.ClocktimeMin)
	checkFloatMax(clocktime, params.ClocktimeMax)

	return CutoffResult{HasAllMinimumsMet: minsMet, HasAnyMaximumMet: maxMet}
}
