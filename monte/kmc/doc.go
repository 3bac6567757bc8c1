// Package kmc implements the outer kinetic Monte Carlo driver loop: it
// couples an event selector, an occloc.OccLocation, one or more sampling
// fixtures, and their completion checks into a single reproducible
// trajectory.
//
// Package layout mirrors the loop's responsibilities: EventSelector and
// EventLookup are the capability interfaces a physical model implements;
// SamplingFixture pairs a StateSampler with the CompletionCheck that
// decides when its samples are sufficient; RunManager combines fixtures
// into one completion predicate; Driver runs the loop itself.
package kmc
