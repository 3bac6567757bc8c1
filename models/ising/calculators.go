package ising

// FormationEnergyCalculator computes the nearest-neighbor square-lattice
// Ising formation energy, E = -(J/2) * sum_i occ[i]*NeighborSum(i); the 1/2
// corrects for each bond being counted from both of its endpoints.
type FormationEnergyCalculator struct {
	J float64
}

// ExtensiveValue returns the total formation energy of c.
func (f FormationEnergyCalculator) ExtensiveValue(c *Configuration) float64 {
	total := 0.0
	for l, occ := range c.Occupation {
		total += float64(occ * c.NeighborSum(l))
	}
	return -f.J / 2.0 * total
}

// IntensiveValue returns the formation energy per site.
func (f FormationEnergyCalculator) IntensiveValue(c *Configuration) float64 {
	return f.ExtensiveValue(c) / float64(c.NSites())
}

// OccDeltaExtensiveValue returns the change in extensive formation energy if
// site l were set to newOcc, without mutating c.
func (f FormationEnergyCalculator) OccDeltaExtensiveValue(c *Configuration, l, newOcc int) float64 {
	oldOcc := c.Occupation[l]
	return -f.J * float64(newOcc-oldOcc) * float64(c.NeighborSum(l))
}

// CompositionCalculator tracks the fraction of sites holding the +1
// species, x_i = (occ_i+1)/2, as a single-component parametric composition.
type CompositionCalculator struct{}

// ExtensiveValue returns [sum_i x_i].
func (CompositionCalculator) ExtensiveValue(c *Configuration) []float64 {
	sum := 0.0
	for _, occ := range c.Occupation {
		sum += float64(occ+1) / 2.0
	}
	return []float64{sum}
}

// IntensiveValue returns [mean_i x_i].
func (CompositionCalculator) IntensiveValue(c *Configuration) []float64 {
	ext := CompositionCalculator{}.ExtensiveValue(c)[0]
	return []float64{ext / float64(c.NSites())}
}

// OccDeltaExtensiveValue returns the change in extensive composition if site
// l were set to newOcc.
func (CompositionCalculator) OccDeltaExtensiveValue(c *Configuration, l, newOcc int) []float64 {
	oldOcc := c.Occupation[l]
	return []float64{float64(newOcc-oldOcc) / 2.0}
}

// Conditions is the thermodynamic state driving a semi-grand canonical run.
// Temperature is in the same energy units as J (kB is folded in, following
// the reference implementation's convention), and ExchangePotential (mu) is
// conjugate to CompositionCalculator's single component.
type Conditions struct {
	Temperature       float64
	ExchangePotential float64
}

// Potential is the semi-grand canonical potential E_sgc = Ef - mu*Nx.
type Potential struct {
	Formation   FormationEnergyCalculator
	Composition CompositionCalculator
	Conditions  Conditions
}

// ExtensiveValue returns the total semi-grand canonical potential energy.
func (p Potential) ExtensiveValue(c *Configuration) float64 {
	ef := p.Formation.ExtensiveValue(c)
	nx := p.Composition.ExtensiveValue(c)[0]
	return ef - p.Conditions.ExchangePotential*nx
}

// IntensiveValue returns the potential energy per site.
func (p Potential) IntensiveValue(c *Configuration) float64 {
	return p.ExtensiveValue(c) / float64(c.NSites())
}

// OccDeltaExtensiveValue returns the change in extensive potential energy if
// site l were set to newOcc.
func (p Potential) OccDeltaExtensiveValue(c *Configuration, l, newOcc int) float64 {
	dEf := p.Formation.OccDeltaExtensiveValue(c, l, newOcc)
	dNx := p.Composition.OccDeltaExtensiveValue(c, l, newOcc)[0]
	return dEf - p.Conditions.ExchangePotential*dNx
}
