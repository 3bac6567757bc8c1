// Package monte defines the shared data model for the CASMcode-monte
// kinetic Monte Carlo / semi-grand-canonical runtime: the occupant/site
// bookkeeping types (Mol, Atom, OccEvent), the run state (State, ValueMap),
// and the small capability interfaces (RandSource) that let the rest of the
// core stay polymorphic over engine and configuration types without deep
// generic chains.
//
// # Reading Guide
//
// Start here, then:
//   - monte/occloc: the bidirectional site<->occupant index (OccLocation)
//   - monte/sampler: the append-only sampled-observable matrix (Sampler)
//   - monte/statesampler: sample scheduling and dispatch (StateSampler)
//   - monte/statistics: mean/variance/autocorrelation/precision
//   - monte/checks: equilibration, convergence, cutoff, completion
//   - monte/kmc: the outer KMC driver loop
//
// Sub-packages depend on this package for the shared vocabulary; this
// package never imports them.
package monte
