// Package occloc implements OccLocation, the bidirectional index between
// lattice sites and the occupants (molecules and, optionally, atoms) that
// occupy them.
//
// OccLocation exists so that choosing a random occupant of a given species
// at a given asymmetric unit — the core operation of both semi-grand-
// canonical Monte Carlo and KMC event proposal — is O(1) rather than a scan
// over all sites. It keeps occupants of each (asymmetric unit, species)
// class in a dense, swap-pop-maintained bucket, alongside a site -> mol and
// mol -> site mapping that Apply keeps consistent as occupation changes.
package occloc
