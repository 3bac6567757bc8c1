package monte

// RunData bundles the initial and final states of one completed run, for
// use by post-run analysis functions and by ConfigGenerators that condition
// the next run's starting configuration on the runs already completed.
type RunData[C any] struct {
	InitialState *State[C]
	FinalState   *State[C]
}
