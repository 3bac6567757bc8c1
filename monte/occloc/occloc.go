package occloc

import (
	"fmt"

	"github.com/bpuchala/CASMcode-monte/monte"
)

// OccLocation is the bidirectional site<->occupant index described in
// package doc.go. It owns the dense Mol (and, if TrackAtoms, Atom) arrays
// and the per-OccCandidate buckets used for O(1) random occupant selection.
type OccLocation struct {
	conversions *monte.Conversions
	candidates  *monte.OccCandidateList
	trackAtoms  bool

	mol      []monte.Mol
	atoms    []monte.Atom
	lToMolID []int

	// loc[candIndex] is the dense, swap-pop-maintained list of mol ids
	// currently belonging to that OccCandidate class.
	loc [][]int
}

// New builds an OccLocation for a fixed Conversions table and candidate
// list. trackAtoms enables per-atom bookkeeping (BijkBegin/DeltaIJK) for
// molecular species; it costs an Atom record per occupant atom and is
// unnecessary for purely occupational (atomic, non-diffusing) models.
func New(conversions *monte.Conversions, candidates *monte.OccCandidateList, trackAtoms bool) *OccLocation {
	return &OccLocation{
		conversions: conversions,
		candidates:  candidates,
		trackAtoms:  trackAtoms,
		loc:         make([][]int, candidates.Len()),
	}
}

// Initialize (re)populates the Mol/Atom/loc tables from an occupation
// vector, one occupant-index entry per site. It discards any previously
// tracked mol/atom ids: mol and atom ids are only stable between calls to
// Apply, not across Initialize.
func (o *OccLocation) Initialize(occupation []int) error {
	numSites := o.conversions.NumSites()
	if len(occupation) != numSites {
		return fmt.Errorf("occloc: occupation has %d entries, expected %d", len(occupation), numSites)
	}

	o.mol = make([]monte.Mol, 0, numSites)
	o.atoms = o.atoms[:0]
	o.lToMolID = make([]int, numSites)
	for i := range o.loc {
		o.loc[i] = o.loc[i][:0]
	}

	var nonMutating []int
	for l, occIndex := range occupation {
		asym := o.conversions.AsymOfSite(l)
		species, err := o.conversions.SpeciesIndex(asym, occIndex)
		if err != nil {
			return fmt.Errorf("occloc: site %d: %w", l, err)
		}

		candIndex, ok := o.candidates.IndexOf(monte.OccCandidate{Asym: asym, Species: species})
		if !ok {
			// Non-mutating site: no Mol record. lToMolID[l] is fixed up to
			// the sentinel |mol| once the final mutating-site count is known.
			nonMutating = append(nonMutating, l)
			continue
		}

		components := o.conversions.Components(species)
		comp := make([]int, len(components))
		if o.trackAtoms {
			for i, atomSpecies := range components {
				atomID := len(o.atoms)
				o.atoms = append(o.atoms, monte.Atom{
					SpeciesIndex: atomSpecies,
					AtomIndex:    i,
					ID:           atomID,
					MolCompBegin: i,
				})
				comp[i] = atomID
			}
		}

		molID := len(o.mol)
		m := monte.Mol{
			ID:           molID,
			L:            l,
			Asym:         asym,
			SpeciesIndex: species,
			Component:    comp,
			Loc:          len(o.loc[candIndex]),
		}
		o.loc[candIndex] = append(o.loc[candIndex], molID)
		o.mol = append(o.mol, m)
		o.lToMolID[l] = molID
	}

	for _, l := range nonMutating {
		o.lToMolID[l] = len(o.mol)
	}
	return nil
}

// MolSize returns the number of tracked mol records.
func (o *OccLocation) MolSize() int { return len(o.mol) }

// CandSize returns the number of occupants currently in OccCandidate class
// candIndex.
func (o *OccLocation) CandSize(candIndex int) int { return len(o.loc[candIndex]) }

// Mol returns a copy of the mol record with the given id.
func (o *OccLocation) Mol(molID int) monte.Mol { return o.mol[molID] }

// AtomSize returns the number of tracked atom records.
func (o *OccLocation) AtomSize() int { return len(o.atoms) }

// Atom returns a copy of the atom record with the given id. Only valid when
// this OccLocation was constructed with trackAtoms.
func (o *OccLocation) Atom(atomID int) monte.Atom { return o.atoms[atomID] }

// LToMolID returns the mol id currently occupying site l.
func (o *OccLocation) LToMolID(l int) int { return o.lToMolID[l] }

// ChooseMol draws a uniformly random mol id from OccCandidate class
// candIndex using rng. It returns an error if the class is currently empty
// (e.g. all occupants of that species have been transformed away).
func (o *OccLocation) ChooseMol(candIndex int, rng monte.RandSource) (int, error) {
	bucket := o.loc[candIndex]
	if len(bucket) == 0 {
		return 0, fmt.Errorf("occloc: OccCandidate %d has no occupants to choose from", candIndex)
	}
	return bucket[rng.Intn(len(bucket))], nil
}

// Apply updates the Mol/loc tables and occupation vector to reflect event,
// and records the resulting OccTransform entries onto event (overwriting
// any it already held) for callers that need to know exactly which mol
// records changed species.
//
// If atoms are tracked, event.AtomTraj entries carry atom identity and
// accumulated lattice-vector displacement through the transformation: an
// atom named as a traj's From location keeps its id, species, and
// BijkBegin, with DeltaIJK incremented by the traj's displacement, and is
// relocated to the traj's To location. Every destination atom slot with no
// matching traj entry is treated as newly created by a species conversion
// and gets a fresh record with zero DeltaIJK.
func (o *OccLocation) Apply(event *monte.OccEvent, occupation []int) error {
	event.OccTransform = event.OccTransform[:0]
	if len(event.LinearSiteIndex) != len(event.NewOcc) {
		return fmt.Errorf("occloc: event has %d sites but %d new occupants", len(event.LinearSiteIndex), len(event.NewOcc))
	}

	var atomAt map[monte.AtomLocation]int
	var trajByTarget map[monte.AtomLocation]monte.AtomTraj
	if o.trackAtoms {
		atomAt = make(map[monte.AtomLocation]int)
		for _, l := range event.LinearSiteIndex {
			molID := o.lToMolID[l]
			for j, atomID := range o.mol[molID].Component {
				atomAt[monte.AtomLocation{L: l, MolID: molID, MolComp: j}] = atomID
			}
		}
		trajByTarget = make(map[monte.AtomLocation]monte.AtomTraj, len(event.AtomTraj))
		for _, traj := range event.AtomTraj {
			trajByTarget[traj.To] = traj
		}
	}

	for i, l := range event.LinearSiteIndex {
		newOccIndex := event.NewOcc[i]
		asym := o.conversions.AsymOfSite(l)
		newSpecies, err := o.conversions.SpeciesIndex(asym, newOccIndex)
		if err != nil {
			return fmt.Errorf("occloc: site %d: %w", l, err)
		}

		molID := o.lToMolID[l]
		m := &o.mol[molID]
		oldSpecies := m.SpeciesIndex
		occupation[l] = newOccIndex
		if oldSpecies == newSpecies {
			continue
		}

		event.OccTransform = append(event.OccTransform, monte.OccTransform{
			L:           l,
			MolID:       molID,
			Asym:        asym,
			FromSpecies: oldSpecies,
			ToSpecies:   newSpecies,
		})

		if oldIndex, ok := o.candidates.IndexOf(monte.OccCandidate{Asym: asym, Species: oldSpecies}); ok {
			o.removeFromBucket(oldIndex, m.Loc)
		}

		components := o.conversions.Components(newSpecies)
		comp := make([]int, len(components))
		if o.trackAtoms {
			for j, atomSpecies := range components {
				target := monte.AtomLocation{L: l, MolID: molID, MolComp: j}
				if traj, ok := trajByTarget[target]; ok {
					atomID, ok := atomAt[traj.From]
					if !ok {
						return fmt.Errorf("occloc: atom traj references unknown source atom at site %d mol %d comp %d", traj.From.L, traj.From.MolID, traj.From.MolComp)
					}
					atom := &o.atoms[atomID]
					atom.DeltaIJK = atom.DeltaIJK.Add(traj.DeltaIJK)
					atom.SpeciesIndex = atomSpecies
					comp[j] = atomID
					continue
				}
				atomID := len(o.atoms)
				o.atoms = append(o.atoms, monte.Atom{
					SpeciesIndex: atomSpecies,
					AtomIndex:    j,
					ID:           atomID,
					MolCompBegin: j,
				})
				comp[j] = atomID
			}
		}
		m.SpeciesIndex = newSpecies
		m.Component = comp

		if newIndex, ok := o.candidates.IndexOf(monte.OccCandidate{Asym: asym, Species: newSpecies}); ok {
			m.Loc = len(o.loc[newIndex])
			o.loc[newIndex] = append(o.loc[newIndex], molID)
		} else {
			m.Loc = -1
		}
	}
	return nil
}

// removeFromBucket removes the mol at position loc in candidate bucket
// candIndex by swapping in the last element and truncating, keeping the
// bucket dense in O(1). The swapped-in mol's Loc field is updated to match
// its new position.
func (o *OccLocation) removeFromBucket(candIndex, loc int) {
	bucket := o.loc[candIndex]
	last := len(bucket) - 1
	movedMolID := bucket[last]
	bucket[loc] = movedMolID
	o.mol[movedMolID].Loc = loc
	o.loc[candIndex] = bucket[:last]
}
