package occloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpuchala/CASMcode-monte/monte"
)

// twoSpeciesConversions builds a Conversions table for a single asymmetric
// unit with two atomic species (occupant indices 0 and 1), mirroring the
// binary Ising spin site.
func twoSpeciesConversions(numSites int) *monte.Conversions {
	siteAsym := make([]int, numSites)
	occupantSpecies := [][]int{{0, 1}}
	speciesComponents := [][]int{nil, nil}
	return monte.NewConversions(siteAsym, occupantSpecies, speciesComponents)
}

func allCandidates() *monte.OccCandidateList {
	return monte.NewOccCandidateList([]monte.OccCandidate{
		{Asym: 0, Species: 0},
		{Asym: 0, Species: 1},
	})
}

func TestInitializeAssignsBucketsAndInverse(t *testing.T) {
	conversions := twoSpeciesConversions(4)
	loc := New(conversions, allCandidates(), false)

	occupation := []int{0, 1, 0, 1}
	require.NoError(t, loc.Initialize(occupation))

	assert.Equal(t, 4, loc.MolSize())
	assert.Equal(t, 2, loc.CandSize(0))
	assert.Equal(t, 2, loc.CandSize(1))

	for l, occIndex := range occupation {
		molID := loc.LToMolID(l)
		m := loc.Mol(molID)
		assert.Equal(t, l, m.L)
		wantSpecies := occIndex // species index equals occupant index here
		assert.Equal(t, wantSpecies, m.SpeciesIndex)
	}
}

// threeSpeciesConversions builds a Conversions table for a single asymmetric
// unit with three occupant species (0, 1, 2), where species 2 is a fixed
// occupant with no matching OccCandidate — modeling a site whose occupant
// never takes part in Monte Carlo moves.
func threeSpeciesConversions(numSites int) *monte.Conversions {
	siteAsym := make([]int, numSites)
	occupantSpecies := [][]int{{0, 1, 2}}
	speciesComponents := [][]int{nil, nil, nil}
	return monte.NewConversions(siteAsym, occupantSpecies, speciesComponents)
}

func TestInitializeSkipsMolRecordsForNonCandidateSites(t *testing.T) {
	conversions := threeSpeciesConversions(5)
	loc := New(conversions, allCandidates(), false)

	occupation := []int{0, 1, 2, 0, 2}
	require.NoError(t, loc.Initialize(occupation))

	assert.Equal(t, 3, loc.MolSize(), "only sites with a matching OccCandidate get Mol records")

	for l, occIndex := range occupation {
		if occIndex == 2 {
			assert.Equal(t, loc.MolSize(), loc.LToMolID(l), "non-mutating site must report the |mol| sentinel")
			continue
		}
		molID := loc.LToMolID(l)
		require.Less(t, molID, loc.MolSize())
		m := loc.Mol(molID)
		assert.Equal(t, l, m.L)
		assert.Equal(t, occIndex, m.SpeciesIndex)
	}
}

func TestChooseMolOnlyReturnsMembersOfClass(t *testing.T) {
	conversions := twoSpeciesConversions(6)
	loc := New(conversions, allCandidates(), false)
	require.NoError(t, loc.Initialize([]int{0, 1, 0, 1, 1, 1}))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		molID, err := loc.ChooseMol(1, rng)
		require.NoError(t, err)
		m := loc.Mol(molID)
		assert.Equal(t, 1, m.SpeciesIndex)
	}
}

func TestChooseMolErrorsOnEmptyClass(t *testing.T) {
	conversions := twoSpeciesConversions(3)
	loc := New(conversions, allCandidates(), false)
	require.NoError(t, loc.Initialize([]int{0, 0, 0}))

	_, err := loc.ChooseMol(1, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestApplyMovesMolBetweenBucketsAndKeepsBucketsDense(t *testing.T) {
	conversions := twoSpeciesConversions(4)
	loc := New(conversions, allCandidates(), false)
	occupation := []int{0, 0, 0, 1}
	require.NoError(t, loc.Initialize(occupation))

	molID := loc.LToMolID(1)
	event := &monte.OccEvent{
		LinearSiteIndex: []int{1},
		NewOcc:          []int{1},
	}
	require.NoError(t, loc.Apply(event, occupation))

	assert.Equal(t, 1, occupation[1])
	assert.Equal(t, 1, loc.Mol(molID).SpeciesIndex)
	assert.Equal(t, 1, loc.CandSize(0))
	assert.Equal(t, 3, loc.CandSize(1))
	require.Len(t, event.OccTransform, 1)
	assert.Equal(t, 0, event.OccTransform[0].FromSpecies)
	assert.Equal(t, 1, event.OccTransform[0].ToSpecies)

	// Every mol still reachable in class 0 must still report class 0.
	for i := 0; i < loc.CandSize(0); i++ {
		id, err := loc.ChooseMol(0, rand.New(rand.NewSource(int64(i))))
		require.NoError(t, err)
		assert.Equal(t, 0, loc.Mol(id).SpeciesIndex)
	}
}

func TestApplyNoOpFlipRecordsNoTransform(t *testing.T) {
	conversions := twoSpeciesConversions(2)
	loc := New(conversions, allCandidates(), false)
	occupation := []int{0, 1}
	require.NoError(t, loc.Initialize(occupation))

	event := &monte.OccEvent{LinearSiteIndex: []int{0}, NewOcc: []int{0}}
	require.NoError(t, loc.Apply(event, occupation))
	assert.Empty(t, event.OccTransform)
	assert.Equal(t, 0, occupation[0])
}

// atomicHopConversions builds a Conversions table where species 0 carries
// one atom (atom-species 0) and species 1 is a bare vacancy (no atoms), so
// that a species-0/species-1 swap models a vacancy-mediated atom hop.
func atomicHopConversions(numSites int) *monte.Conversions {
	siteAsym := make([]int, numSites)
	occupantSpecies := [][]int{{0, 1}}
	speciesComponents := [][]int{{0}, nil}
	return monte.NewConversions(siteAsym, occupantSpecies, speciesComponents)
}

func TestApplyCarriesAtomIdentityAndDeltaIJKAcrossAHop(t *testing.T) {
	conversions := atomicHopConversions(4)
	loc := New(conversions, allCandidates(), true)
	occupation := []int{0, 1, 0, 1}
	require.NoError(t, loc.Initialize(occupation))

	molAtSite0 := loc.LToMolID(0)
	molAtSite1 := loc.LToMolID(1)
	atomBeforeHop := loc.Mol(molAtSite0).Component[0]
	bijkBefore := loc.Atom(atomBeforeHop).BijkBegin

	event := &monte.OccEvent{
		LinearSiteIndex: []int{0, 1},
		NewOcc:          []int{1, 0}, // site 0 becomes vacant; site 1 gains the atom
		AtomTraj: []monte.AtomTraj{
			{
				From:     monte.AtomLocation{L: 0, MolID: molAtSite0, MolComp: 0},
				To:       monte.AtomLocation{L: 1, MolID: molAtSite1, MolComp: 0},
				DeltaIJK: monte.UnitCell{I: 1},
			},
		},
	}
	require.NoError(t, loc.Apply(event, occupation))

	assert.Equal(t, 1, occupation[0])
	assert.Equal(t, 0, occupation[1])
	require.Len(t, loc.Mol(molAtSite1).Component, 1)

	movedAtomID := loc.Mol(molAtSite1).Component[0]
	assert.Equal(t, atomBeforeHop, movedAtomID, "the hopping atom keeps its id across the hop")

	moved := loc.Atom(movedAtomID)
	assert.Equal(t, bijkBefore, moved.BijkBegin, "bijk_begin is set once, at creation, never on a hop")
	assert.Equal(t, monte.UnitCell{I: 1}, moved.DeltaIJK)

	// Re-initializing from scratch and replaying the same event stream
	// reproduces the same unwrapped position (bijk_begin + delta_ijk).
	replay := New(conversions, allCandidates(), true)
	replayOcc := []int{0, 1, 0, 1}
	require.NoError(t, replay.Initialize(replayOcc))
	replayEvent := &monte.OccEvent{
		LinearSiteIndex: []int{0, 1},
		NewOcc:          []int{1, 0},
		AtomTraj: []monte.AtomTraj{
			{
				From:     monte.AtomLocation{L: 0, MolID: replay.LToMolID(0), MolComp: 0},
				To:       monte.AtomLocation{L: 1, MolID: replay.LToMolID(1), MolComp: 0},
				DeltaIJK: monte.UnitCell{I: 1},
			},
		},
	}
	require.NoError(t, replay.Apply(replayEvent, replayOcc))
	replayAtom := replay.Atom(replay.Mol(replay.LToMolID(1)).Component[0])
	assert.Equal(t, moved.BijkBegin, replayAtom.BijkBegin)
	assert.Equal(t, moved.DeltaIJK, replayAtom.DeltaIJK)
}

func TestApplyWithoutMatchingTrajCreatesFreshAtomOnSpeciesConversion(t *testing.T) {
	conversions := atomicHopConversions(2)
	loc := New(conversions, allCandidates(), true)
	occupation := []int{1, 1}
	require.NoError(t, loc.Initialize(occupation))
	require.Equal(t, 0, loc.AtomSize())

	molID := loc.LToMolID(0)
	event := &monte.OccEvent{LinearSiteIndex: []int{0}, NewOcc: []int{0}}
	require.NoError(t, loc.Apply(event, occupation))

	require.Len(t, loc.Mol(molID).Component, 1)
	newAtomID := loc.Mol(molID).Component[0]
	assert.Equal(t, 1, loc.AtomSize())
	assert.Equal(t, monte.UnitCell{}, loc.Atom(newAtomID).DeltaIJK)
}

func TestApplyManyRandomFlipsKeepsInvariants(t *testing.T) {
	numSites := 25
	conversions := twoSpeciesConversions(numSites)
	loc := New(conversions, allCandidates(), false)
	occupation := make([]int, numSites)
	require.NoError(t, loc.Initialize(occupation))

	rng := rand.New(rand.NewSource(42))
	for step := 0; step < 500; step++ {
		l := rng.Intn(numSites)
		newOcc := 1 - occupation[l]
		event := &monte.OccEvent{LinearSiteIndex: []int{l}, NewOcc: []int{newOcc}}
		require.NoError(t, loc.Apply(event, occupation))

		assert.Equal(t, occupation[l], loc.Mol(loc.LToMolID(l)).SpeciesIndex)
		assert.Equal(t, numSites, loc.CandSize(0)+loc.CandSize(1))
	}
}
