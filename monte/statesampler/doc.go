// Package statesampler implements StateSampler: sample-cadence scheduling
// (deterministic LINEAR/LOG spacing, or stochastic cadence with a matching
// mean rate) and dispatch of state sampling functions into monte/sampler
// Samplers.
//
// A StateSampler owns the step/pass/count/time counters a driver advances as
// it runs, and decides, from those counters alone, whether the current
// count or time is "due" for a sample.
package statesampler
