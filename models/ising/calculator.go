package ising

import (
	"math"

	"github.com/bpuchala/CASMcode-monte/monte"
	"github.com/bpuchala/CASMcode-monte/monte/statesampler"
)

// Calculator bundles a Configuration under fixed Conditions with the
// calculators used to drive a semi-grand canonical Metropolis run and its
// state sampling functions.
type Calculator struct {
	Config      *Configuration
	Formation   FormationEnergyCalculator
	Composition CompositionCalculator
	Potential   Potential
	Rand        monte.RandSource

	NAccept int64
	NReject int64
}

// NewCalculator builds a Calculator over config at the given exchange
// interaction J and thermodynamic conditions, drawing Metropolis proposals
// from rng.
func NewCalculator(config *Configuration, j float64, conditions Conditions, rng monte.RandSource) *Calculator {
	formation := FormationEnergyCalculator{J: j}
	composition := CompositionCalculator{}
	return &Calculator{
		Config:      config,
		Formation:   formation,
		Composition: composition,
		Potential:   Potential{Formation: formation, Composition: composition, Conditions: conditions},
		Rand:        rng,
	}
}

// Step proposes one uniformly random single-site flip and accepts it with
// Metropolis probability min(1, exp(-dE/T)), mutating Config in place.
func (c *Calculator) Step() {
	l := c.Rand.Intn(c.Config.NSites())
	oldOcc := c.Config.Occupation[l]
	newOcc := -oldOcc

	dE := c.Potential.OccDeltaExtensiveValue(c.Config, l, newOcc)
	if dE <= 0 || c.Rand.Float64() < math.Exp(-dE/c.Potential.Conditions.Temperature) {
		c.Config.Occupation[l] = newOcc
		c.NAccept++
		return
	}
	c.NReject++
}

// SamplingFunctions returns the default state sampling functions
// (parametric composition, formation energy, potential energy), each
// reporting the current intensive value, matching the sampling functions the
// reference implementation registers for this model.
func (c *Calculator) SamplingFunctions() []statesampler.StateSamplingFunction {
	return []statesampler.StateSamplingFunction{
		{
			Name:           "param_composition",
			Description:    "Composition (fraction of +1-species sites)",
			ComponentNames: []string{"0"},
			Function:       func() []float64 { return c.Composition.IntensiveValue(c.Config) },
		},
		{
			Name:           "formation_energy",
			Description:    "Formation energy per site",
			ComponentNames: []string{"0"},
			Function:       func() []float64 { return []float64{c.Formation.IntensiveValue(c.Config)} },
		},
		{
			Name:           "potential_energy",
			Description:    "Semi-grand canonical potential energy per site",
			ComponentNames: []string{"0"},
			Function:       func() []float64 { return []float64{c.Potential.IntensiveValue(c.Config)} },
		},
	}
}
