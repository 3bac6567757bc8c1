package monte

// Mol describes one currently-resident occupant at one site.
//
// Invariants (§3, §8): mol[i].id == i for the mol this record lives at in
// OccLocation's table; mol.loc points back to this mol's slot in its
// OccCandidate bucket.
type Mol struct {
	ID            int   // dense index inside OccLocation's mol array
	L             int   // site index
	Asym          int   // asymmetric-unit index of L
	SpeciesIndex  int   // current species index; consistent with occupation[L]
	Component     []int // atom-record ids in OccLocation's atom array; empty for atomic species
	Loc           int   // position inside the bucket for this Mol's OccCandidate class
}

// Atom is a per-atom record used when KMC trajectories are tracked.
//
// BijkBegin + DeltaIJK encode the atom's current position as its initial
// unit-cell coordinate plus accumulated lattice-vector drift, allowing
// unwrapped displacement across periodic boundaries.
type Atom struct {
	SpeciesIndex  int           // species type index of the parent molecule
	AtomIndex     int           // index into the molecule's component list for this species
	ID            int           // dense index inside OccLocation's atom array
	BijkBegin     UnitCellCoord // initial position
	DeltaIJK      UnitCell      // accumulated change in position
	MolCompBegin  int           // initial index into the parent Mol's Component slice
}

// OccTransform is bookkeeping attached to one entry of an OccEvent: it
// records which Mol changed species as a result of applying the event.
type OccTransform struct {
	L           int // site index being transformed
	MolID       int // OccLocation mol array index
	Asym        int // asymmetric-unit index
	FromSpecies int // species index before the transformation
	ToSpecies   int // species index after the transformation
}

// AtomLocation locates one atom component of one Mol.
type AtomLocation struct {
	L       int // site index
	MolID   int // OccLocation mol array index
	MolComp int // index into the Mol's Component slice
}

// AtomTraj records that the atom at From moved to To, displaced by
// DeltaIJK lattice vectors — used to keep unwrapped atom positions correct
// across periodic boundaries and to record atom hops for transport analysis.
type AtomTraj struct {
	From     AtomLocation
	To       AtomLocation
	DeltaIJK UnitCell
}

// OccEvent describes a Monte Carlo event that modifies occupation.
//
// LinearSiteIndex and NewOcc form the minimal event: which sites change and
// their new occupant indices. OccTransform and AtomTraj are derived
// bookkeeping OccLocation needs to keep its Mol/Atom tables consistent.
type OccEvent struct {
	LinearSiteIndex []int
	NewOcc          []int
	OccTransform    []OccTransform
	AtomTraj        []AtomTraj
}
