// Package ising implements the 2D square-lattice Ising semi-grand canonical
// model used throughout this module's tests and its bundled CLI: a
// Configuration of +1/-1 occupants, formation-energy/composition/potential
// calculators, and the Metropolis proposal/acceptance loop that drives them
// to completion via monte/statesampler and monte/checks.
//
// Unlike monte/kmc's rate-weighted, occloc-backed event loop, this model's
// run loop is a plain Metropolis sweep: every proposed flip counts as one
// step whether accepted or rejected, and there is no notion of relative
// event rate or simulated physical time. The two loops are grounded on two
// distinct drivers in the reference implementation and are not meant to
// share a common interface.
package ising
