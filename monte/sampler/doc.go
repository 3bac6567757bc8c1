// Package sampler implements Sampler, the append-only column-store matrix
// that a sampling function's observations accumulate into: one row per
// sample, one column per scalar component of the observable.
//
// Sampler grows its backing storage geometrically so that a long run's
// repeated push-backs amortize to O(1) rather than reallocating on every
// sample.
package sampler
