package kmc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpuchala/CASMcode-monte/monte"
	"github.com/bpuchala/CASMcode-monte/monte/checks"
	"github.com/bpuchala/CASMcode-monte/monte/occloc"
	"github.com/bpuchala/CASMcode-monte/monte/sampler"
	"github.com/bpuchala/CASMcode-monte/monte/statesampler"
)

// alternatingSelector cycles through a fixed sequence of two-site swap
// events with a constant time increment, mimicking a rejection-free KMC
// event list without any physics behind it.
type alternatingSelector struct {
	events []EventID
	next   int
	dt     float64
}

func (s *alternatingSelector) TotalRate() float64 { return float64(len(s.events)) }

func (s *alternatingSelector) SelectEvent() (EventID, float64) {
	id := s.events[s.next%len(s.events)]
	s.next++
	return id, s.dt
}

type fixedEventLookup struct {
	events map[EventID]*monte.OccEvent
}

func (l fixedEventLookup) Event(id EventID) *monte.OccEvent { return l.events[id] }

func newTwoSiteLoop() (*occloc.OccLocation, []int, *monte.Conversions) {
	conversions := monte.NewConversions(
		[]int{0, 0},
		[][]int{{0, 1}},
		[][]int{nil, nil},
	)
	candidates := monte.NewOccCandidateList([]monte.OccCandidate{
		{Asym: 0, Species: 0},
		{Asym: 0, Species: 1},
	})
	loc := occloc.New(conversions, candidates, false)
	occupation := []int{0, 1}
	if err := loc.Initialize(occupation); err != nil {
		panic(err)
	}
	return loc, occupation, conversions
}

func TestDriverRunAppliesEventsUntilComplete(t *testing.T) {
	loc, occupation, _ := newTwoSiteLoop()

	events := fixedEventLookup{events: map[EventID]*monte.OccEvent{
		0: {LinearSiteIndex: []int{0, 1}, NewOcc: []int{1, 0}},
		1: {LinearSiteIndex: []int{0, 1}, NewOcc: []int{0, 1}},
	}}
	selector := &alternatingSelector{events: []EventID{0, 1}, dt: 1.0}

	fn := statesampler.StateSamplingFunction{
		Name:           "comp",
		ComponentNames: []string{"a"},
		Function: func() []float64 {
			sum := 0
			for _, occ := range occupation {
				sum += occ
			}
			return []float64{float64(sum) / float64(len(occupation))}
		},
	}

	rng := rand.New(rand.NewSource(1))
	samp := statesampler.New(rng, statesampler.BySteps, statesampler.Linear, 0, 1, 1, 0, false, false, false, []statesampler.StateSamplingFunction{fn})
	require.NoError(t, samp.Reset(1))

	minSamples := int64(5)
	check := checks.New(checks.CompletionCheckParams{
		Cutoff:          checks.CutoffParams{SampleMin: &minSamples},
		CheckPeriod:     1,
		ChecksPerPeriod: 1,
		Confidence:      0.95,
		Convergence: []checks.ConvergenceRequest{{
			Component: sampler.SamplerComponent{SamplerName: "comp", ComponentIndex: 0, ComponentName: "a"},
			Precision: checks.Abs(1e9),
		}},
	})

	fixture := &SamplingFixture{Label: "main", Sampler: samp, Check: check}
	manager := NewRunManager([]*SamplingFixture{fixture}, rng)

	driver := NewDriver(loc, occupation, selector, events, manager)
	err := driver.Run()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, int64(len(samp.SampleCount)), minSamples)
	results := manager.LastResults["main"]
	assert.True(t, results.IsComplete)
	assert.True(t, results.HasAllMinimumsMet)
}

func TestDriverRunRejectsNonPositiveTimeIncrement(t *testing.T) {
	loc, occupation, _ := newTwoSiteLoop()
	events := fixedEventLookup{events: map[EventID]*monte.OccEvent{
		0: {LinearSiteIndex: []int{0, 1}, NewOcc: []int{0, 1}},
	}}
	selector := &alternatingSelector{events: []EventID{0}, dt: 0}

	rng := rand.New(rand.NewSource(1))
	samp := statesampler.New(rng, statesampler.BySteps, statesampler.Linear, 0, 1, 1, 0, false, false, false, nil)
	require.NoError(t, samp.Reset(1))

	minSamples := int64(1000)
	check := checks.New(checks.CompletionCheckParams{
		Cutoff:          checks.CutoffParams{SampleMin: &minSamples},
		CheckPeriod:     1,
		ChecksPerPeriod: 1,
	})
	fixture := &SamplingFixture{Label: "main", Sampler: samp, Check: check}
	manager := NewRunManager([]*SamplingFixture{fixture}, rng)

	driver := NewDriver(loc, occupation, selector, events, manager)
	err := driver.Run()
	assert.Error(t, err)
}

func TestDriverRunFiresByTimeSamplesAtScheduledTimes(t *testing.T) {
	loc, occupation, _ := newTwoSiteLoop()
	events := fixedEventLookup{events: map[EventID]*monte.OccEvent{
		0: {LinearSiteIndex: []int{0, 1}, NewOcc: []int{0, 1}},
	}}
	// each event advances simulated time by 0.3, so BY_TIME samples spaced
	// at period 1 will sometimes fall inside a single event's interval and
	// sometimes span several events.
	selector := &alternatingSelector{events: []EventID{0}, dt: 0.3}

	fn := statesampler.StateSamplingFunction{
		Name:           "clock",
		ComponentNames: []string{"t"},
		Function:       func() []float64 { return []float64{0} },
	}

	rng := rand.New(rand.NewSource(2))
	samp := statesampler.New(rng, statesampler.ByTime, statesampler.Linear, 0, 1, 1, 0, false, false, true, []statesampler.StateSamplingFunction{fn})
	require.NoError(t, samp.Reset(1))

	minSamples := int64(3)
	check := checks.New(checks.CompletionCheckParams{
		Cutoff:          checks.CutoffParams{SampleMin: &minSamples},
		CheckPeriod:     1,
		ChecksPerPeriod: 1,
	})
	fixture := &SamplingFixture{Label: "main", Sampler: samp, Check: check}
	manager := NewRunManager([]*SamplingFixture{fixture}, rng)

	driver := NewDriver(loc, occupation, selector, events, manager)
	require.NoError(t, driver.Run())

	sampleTimes := samp.SampleTime
	require.GreaterOrEqual(t, len(sampleTimes), 3)
	for i, st := range sampleTimes {
		assert.InDelta(t, float64(i), st, 1e-9)
	}
}
