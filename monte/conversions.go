package monte

import "fmt"

// UnitCell is an integer lattice-vector displacement (i, j, k).
type UnitCell struct {
	I, J, K int
}

// Add returns the component-wise sum of two lattice vectors.
func (u UnitCell) Add(other UnitCell) UnitCell {
	return UnitCell{u.I + other.I, u.J + other.J, u.K + other.K}
}

// UnitCellCoord locates a site as a sublattice index within a unit cell.
type UnitCellCoord struct {
	Sublattice int
	Cell       UnitCell
}

// Conversions is the immutable, shared lookup table between site indices,
// asymmetric-unit indices, species indices, and atom composition. Hosts
// build one Conversions per supercell and share it (read-only) across
// OccLocation, calculators, and event generators.
type Conversions struct {
	// siteAsym[l] is the asymmetric-unit index of site l.
	siteAsym []int

	// occToSpecies[asym][occIndex] is the species index of occupant slot
	// occIndex at an asym-unit-asym site (i.e. the value occupation[l] takes
	// on when the site holds that species).
	occToSpecies [][]int

	// speciesToOcc[asym] maps species index -> occupant index, the inverse
	// of occToSpecies[asym].
	speciesToOcc []map[int]int

	// speciesComponents[speciesIndex] lists the atom-species index of each
	// atom in the molecule at that species index; empty for atomic species.
	speciesComponents [][]int
}

// NewConversions builds a Conversions table.
//
// siteAsym has one entry per lattice site. occupantSpecies[asym] lists,
// in occupant-index order, the species index each allowed occupant of that
// asymmetric unit corresponds to (this is the site's allowed-species list
// from §3). speciesComponents[speciesIndex] lists the atom-species indices
// of the molecule's constituent atoms (nil or empty for atomic species).
func NewConversions(siteAsym []int, occupantSpecies [][]int, speciesComponents [][]int) *Conversions {
	speciesToOcc := make([]map[int]int, len(occupantSpecies))
	for asym, species := range occupantSpecies {
		m := make(map[int]int, len(species))
		for occIndex, sp := range species {
			m[sp] = occIndex
		}
		speciesToOcc[asym] = m
	}
	return &Conversions{
		siteAsym:          append([]int(nil), siteAsym...),
		occToSpecies:      occupantSpecies,
		speciesToOcc:      speciesToOcc,
		speciesComponents: speciesComponents,
	}
}

// NumSites returns the number of lattice sites.
func (c *Conversions) NumSites() int { return len(c.siteAsym) }

// AsymOfSite returns the asymmetric-unit index of site l.
func (c *Conversions) AsymOfSite(l int) int { return c.siteAsym[l] }

// SpeciesIndex converts (asym, occupant-index) -> species-index.
func (c *Conversions) SpeciesIndex(asym, occIndex int) (int, error) {
	species := c.occToSpecies[asym]
	if occIndex < 0 || occIndex >= len(species) {
		return 0, fmt.Errorf("monte: occupant index %d out of range for asym %d", occIndex, asym)
	}
	return species[occIndex], nil
}

// OccIndex converts (asym, species-index) -> occupant-index, the inverse of
// SpeciesIndex. Returns an error if species is not a legal occupant of asym.
func (c *Conversions) OccIndex(asym, species int) (int, error) {
	occIndex, ok := c.speciesToOcc[asym][species]
	if !ok {
		return 0, fmt.Errorf("monte: species %d is not a legal occupant of asym %d", species, asym)
	}
	return occIndex, nil
}

// Components lists the atom-species indices of the molecule at speciesIndex;
// empty for atomic species.
func (c *Conversions) Components(speciesIndex int) []int {
	if speciesIndex < 0 || speciesIndex >= len(c.speciesComponents) {
		return nil
	}
	return c.speciesComponents[speciesIndex]
}
