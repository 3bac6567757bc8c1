package ising

// Configuration is a 2D square lattice of +1/-1 occupants, stored row-major
// with periodic boundary conditions.
type Configuration struct {
	Rows, Cols int
	Occupation []int
}

// NewConfiguration builds a Rows x Cols Configuration with every site set to
// fillValue, which must be +1 or -1.
func NewConfiguration(rows, cols, fillValue int) *Configuration {
	occ := make([]int, rows*cols)
	for i := range occ {
		occ[i] = fillValue
	}
	return &Configuration{Rows: rows, Cols: cols, Occupation: occ}
}

// NSites returns the total number of lattice sites.
func (c *Configuration) NSites() int { return len(c.Occupation) }

func (c *Configuration) wrap(row, col int) int {
	row = ((row % c.Rows) + c.Rows) % c.Rows
	col = ((col % c.Cols) + c.Cols) % c.Cols
	return row*c.Cols + col
}

// NeighborSum returns the sum of the occupation values of site l's four
// periodic nearest neighbors.
func (c *Configuration) NeighborSum(l int) int {
	row, col := l/c.Cols, l%c.Cols
	return c.Occupation[c.wrap(row-1, col)] +
		c.Occupation[c.wrap(row+1, col)] +
		c.Occupation[c.wrap(row, col-1)] +
		c.Occupation[c.wrap(row, col+1)]
}
