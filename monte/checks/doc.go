// Package checks implements the completion-decision pipeline: cutoff gating
// on hard count/sample/time/clocktime bounds, per-component equilibration
// detection, per-component convergence testing against a requested
// precision, and CompletionCheck, which composes all three into the single
// predicate a driver polls to decide when a run is done.
package checks
