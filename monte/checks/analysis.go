package checks

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/bpuchala/CASMcode-monte/monte"
)

// AnalysisFunction is a named, shaped function of a run's data and its final
// Results, evaluated once after a run completes to compute a derived
// aggregate that isn't itself part of the sampled trajectory (e.g. a heat
// capacity from an energy sampler's variance).
type AnalysisFunction[C any] struct {
	Name           string
	Description    string
	ComponentNames []string
	Function       func(monte.RunData[C], Results) ([]float64, error)
}

// RunAnalyses evaluates every function in functions once against runData and
// results, keyed by name. A function that panics or returns an error is
// caught individually — its entry is filled with NaN and a warning is
// logged — so that one broken analysis never prevents the rest from being
// reported. logger defaults to logrus.StandardLogger() if nil.
func RunAnalyses[C any](functions []AnalysisFunction[C], runData monte.RunData[C], results Results, logger logrus.FieldLogger) map[string][]float64 {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	out := make(map[string][]float64, len(functions))
	for _, f := range functions {
		out[f.Name] = evaluateAnalysis(f, runData, results, logger)
	}
	return out
}

func evaluateAnalysis[C any](f AnalysisFunction[C], runData monte.RunData[C], results Results, logger logrus.FieldLogger) (values []float64) {
	values = nanFilled(len(f.ComponentNames))
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{"analysis": f.Name, "panic": r}).Warn("checks: results analysis panicked, filling with NaN")
			values = nanFilled(len(f.ComponentNames))
		}
	}()

	result, err := f.Function(runData, results)
	if err != nil {
		logger.WithFields(logrus.Fields{"analysis": f.Name, "error": err}).Warn("checks: results analysis failed, filling with NaN")
		return nanFilled(len(f.ComponentNames))
	}
	if len(result) != len(f.ComponentNames) {
		logger.WithFields(logrus.Fields{"analysis": f.Name, "got": len(result), "want": len(f.ComponentNames)}).Warn("checks: results analysis returned wrong shape, filling with NaN")
		return nanFilled(len(f.ComponentNames))
	}
	return result
}

func nanFilled(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = math.NaN()
	}
	return values
}
