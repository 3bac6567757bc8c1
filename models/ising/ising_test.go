package ising

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpuchala/CASMcode-monte/monte"
	"github.com/bpuchala/CASMcode-monte/monte/checks"
	"github.com/bpuchala/CASMcode-monte/monte/sampler"
	"github.com/bpuchala/CASMcode-monte/monte/statesampler"
)

func TestConfigurationNeighborSumWrapsPeriodically(t *testing.T) {
	c := NewConfiguration(3, 3, 1)
	c.Occupation[c.wrap(2, 1)] = -1 // the neighbor directly "above" (0,1) via wraparound
	assert.Equal(t, 2, c.NeighborSum(1))
}

func TestFormationEnergyMatchesUniformLatticeFormula(t *testing.T) {
	J := 0.1
	config := NewConfiguration(25, 25, 1)
	f := FormationEnergyCalculator{J: J}

	extensive := f.ExtensiveValue(config)
	assert.InDelta(t, 25*25*2.0*-J, extensive, 1e-9)

	intensive := f.IntensiveValue(config)
	assert.InDelta(t, 2.0*-J, intensive, 1e-9)
}

func TestFormationEnergyDeltaOnFlipAndNoOp(t *testing.T) {
	J := 0.1
	config := NewConfiguration(25, 25, 1)
	f := FormationEnergyCalculator{J: J}

	dEf := f.OccDeltaExtensiveValue(config, 0, -1)
	assert.InDelta(t, 8.0*J, dEf, 1e-9)

	dEfNoOp := f.OccDeltaExtensiveValue(config, 0, 1)
	assert.InDelta(t, 0.0, dEfNoOp, 1e-9)
}

func TestCompositionMatchesUniformLatticeFormula(t *testing.T) {
	config := NewConfiguration(25, 25, 1)
	comp := CompositionCalculator{}

	nx := comp.ExtensiveValue(config)
	assert.InDelta(t, float64(config.NSites())*1.0, nx[0], 1e-9)

	x := comp.IntensiveValue(config)
	assert.InDelta(t, 1.0, x[0], 1e-9)
}

func TestCompositionDeltaOnFlipAndNoOp(t *testing.T) {
	config := NewConfiguration(25, 25, 1)
	comp := CompositionCalculator{}

	dNx := comp.OccDeltaExtensiveValue(config, 0, -1)
	assert.InDelta(t, -1.0, dNx[0], 1e-9)

	dNxNoOp := comp.OccDeltaExtensiveValue(config, 0, 1)
	assert.InDelta(t, 0.0, dNxNoOp[0], 1e-9)
}

func TestPotentialMatchesUniformLatticeFormula(t *testing.T) {
	J := 0.1
	mu := 2.0
	config := NewConfiguration(25, 25, 1)
	p := Potential{
		Formation:   FormationEnergyCalculator{J: J},
		Composition: CompositionCalculator{},
		Conditions:  Conditions{Temperature: 2000.0, ExchangePotential: mu},
	}

	extensive := p.ExtensiveValue(config)
	assert.InDelta(t, float64(config.NSites())*(2.0*-J-mu*1.0), extensive, 1e-9)

	intensive := p.IntensiveValue(config)
	assert.InDelta(t, 2.0*-J-mu*1.0, intensive, 1e-9)

	dSgc := p.OccDeltaExtensiveValue(config, 0, -1)
	assert.InDelta(t, 8.0*J-mu*(-1), dSgc, 1e-9)

	dSgcNoOp := p.OccDeltaExtensiveValue(config, 0, 1)
	assert.InDelta(t, 0.0, dSgcNoOp, 1e-9)
}

func TestCalculatorStepOnlyEverFlipsOneSite(t *testing.T) {
	config := NewConfiguration(5, 5, 1)
	rng := rand.New(rand.NewSource(7))
	calc := NewCalculator(config, 0.1, Conditions{Temperature: 2000.0, ExchangePotential: 0.0}, rng)

	before := append([]int(nil), config.Occupation...)
	calc.Step()

	changed := 0
	for i := range before {
		if before[i] != config.Occupation[i] {
			changed++
		}
	}
	assert.LessOrEqual(t, changed, 1)
	assert.Equal(t, int64(1), calc.NAccept+calc.NReject)
}

// TestSemiGrandCanonicalRunReachesFiftyFiftyComposition exercises scenario 1
// from the end-to-end test set: a 25x25 lattice, mu=0, T=2000K, J=0.1,
// initial all-up, converging param_composition[0] and potential_energy[0] to
// absolute precision 0.001 with a minimum of 100 samples.
func TestSemiGrandCanonicalRunReachesFiftyFiftyComposition(t *testing.T) {
	engine := monte.NewRandEngine(42)
	config := NewConfiguration(25, 25, 1)
	calc := NewCalculator(config, 0.1, Conditions{Temperature: 2000.0, ExchangePotential: 0.0}, engine.ForSubsystem("metropolis"))

	samp := statesampler.New(
		engine.ForSubsystem("sampling"), statesampler.ByPass, statesampler.Linear,
		0, 1, 1, 0,
		false, false, false,
		calc.SamplingFunctions(),
	)

	minSamples := int64(100)
	check := checks.New(checks.CompletionCheckParams{
		Cutoff:          checks.CutoffParams{SampleMin: &minSamples},
		CheckPeriod:     10,
		ChecksPerPeriod: 1,
		CheckBegin:      100,
		Confidence:      0.95,
		Convergence: []checks.ConvergenceRequest{
			{
				Component: sampler.SamplerComponent{SamplerName: "param_composition", ComponentIndex: 0, ComponentName: "0"},
				Precision: checks.Abs(0.001),
			},
			{
				Component: sampler.SamplerComponent{SamplerName: "potential_energy", ComponentIndex: 0, ComponentName: "0"},
				Precision: checks.Abs(0.001),
			},
		},
	})

	results, err := Run(calc, int64(config.NSites()), samp, check, engine.ForSubsystem("checks"))
	require.NoError(t, err)

	assert.True(t, results.IsComplete)
	assert.True(t, results.HasAllMinimumsMet)
	assert.GreaterOrEqual(t, results.NSamples, minSamples)

	compSampler := samp.Samplers["param_composition"]
	mean := 0.0
	values := compSampler.Component(0)
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	assert.InDelta(t, 0.5, mean, 0.1)

	// At T=2000 against J=0.1 the lattice is deep in the disordered,
	// high-temperature regime, so the mean potential energy per site should
	// sit close to zero rather than the strongly negative value it would
	// take near the ordering transition.
	potSampler := samp.Samplers["potential_energy"]
	potMean := 0.0
	potValues := potSampler.Component(0)
	for _, v := range potValues {
		potMean += v
	}
	potMean /= float64(len(potValues))
	assert.InDelta(t, 0.0, potMean, 0.1)
}
