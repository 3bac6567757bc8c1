// Package statistics computes the summary statistics equilibration,
// convergence, and completion checking are built on: mean, lag-1
// autocorrelation, calculated precision on the mean, and weighted ("N-fold
// way") variants of all three.
package statistics
