// Package config loads and validates the two YAML-driven parameter records
// external callers configure a run with: SamplingParams (what a
// StateSampler samples, and how often) and CompletionCheckParams (cutoffs
// and convergence criteria). SamplingParams.Validate and
// CompletionCheckParams.Build aggregate every error found,
// each tagged with the field path that caused it, rather than stopping at
// the first.
package config
