package statesampler

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterFunction(counter *float64) StateSamplingFunction {
	return StateSamplingFunction{
		Name:           "counter",
		ComponentNames: []string{"0"},
		Function:       func() []float64 { return []float64{*counter} },
	}
}

func TestLinearSpacingSamplesAtExpectedCounts(t *testing.T) {
	var value float64
	s := New(rand.New(rand.NewSource(1)), BySteps, Linear, 0, 10, 1, 0, false, false, false, []StateSamplingFunction{counterFunction(&value)})
	require.NoError(t, s.Reset(1))

	var sampledAt []int64
	for count := int64(0); count <= 40; count++ {
		s.Count = count
		require.NoError(t, s.SampleDataByCountIfDue())
		if len(s.SampleCount) > 0 && s.SampleCount[len(s.SampleCount)-1] == count && (len(sampledAt) == 0 || sampledAt[len(sampledAt)-1] != count) {
			sampledAt = append(sampledAt, count)
		}
	}
	assert.Equal(t, []int64{0, 10, 20, 30, 40}, sampledAt)
}

func TestLogSpacingSamplesGrowWithGaps(t *testing.T) {
	var value float64
	s := New(rand.New(rand.NewSource(1)), BySteps, Log, 0, 2, 1, 0, false, false, false, []StateSamplingFunction{counterFunction(&value)})
	require.NoError(t, s.Reset(1))

	for count := int64(0); count <= 32; count++ {
		s.Count = count
		require.NoError(t, s.SampleDataByCountIfDue())
	}
	// LOG spacing with period=2 samples at counts 1, 2, 4, 8, 16, 32, so the
	// gap doubles each time.
	require.True(t, len(s.SampleCount) >= 5)
	for i := 1; i < len(s.SampleCount); i++ {
		assert.Greater(t, s.SampleCount[i], s.SampleCount[i-1])
	}
}

func TestStochasticCadenceMatchesMeanRateOverManySamples(t *testing.T) {
	var value float64
	period := 10.0
	s := New(rand.New(rand.NewSource(7)), BySteps, Linear, 0, period, 1, 0, true, false, false, []StateSamplingFunction{counterFunction(&value)})
	require.NoError(t, s.Reset(1))

	for count := int64(0); count <= 100000; count++ {
		s.Count = count
		require.NoError(t, s.SampleDataByCountIfDue())
	}

	n := len(s.SampleCount)
	require.Greater(t, n, 1)
	meanGap := float64(s.SampleCount[n-1]-s.SampleCount[0]) / float64(n-1)
	assert.InDelta(t, period, meanGap, period*0.15)
}

func TestIncrementStepRollsOverIntoPass(t *testing.T) {
	var value float64
	s := New(rand.New(rand.NewSource(1)), ByPass, Linear, 0, 1, 1, 0, false, false, false, []StateSamplingFunction{counterFunction(&value)})
	require.NoError(t, s.Reset(4))

	for i := 0; i < 4; i++ {
		s.IncrementStep()
	}
	assert.Equal(t, int64(1), s.Pass)
	assert.Equal(t, int64(0), s.Step)
	assert.Equal(t, int64(1), s.Count)
}

func TestSampleDataEvaluatesAllFunctions(t *testing.T) {
	value := 3.5
	s := New(rand.New(rand.NewSource(1)), BySteps, Linear, 0, 1, 1, 0, false, false, false, []StateSamplingFunction{counterFunction(&value)})
	require.NoError(t, s.Reset(1))

	require.NoError(t, s.SampleData())
	got := s.Samplers["counter"].Component(0)
	require.Len(t, got, 1)
	assert.True(t, math.Abs(got[0]-3.5) < 1e-12)
}
