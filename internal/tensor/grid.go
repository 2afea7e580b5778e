package tensor

import "math"

// Grid is a square spatial map of scalar intensities, row-major.
type Grid struct {
	Size  int
	cells []float64
}

// NewGrid allocates a zeroed size x size grid.
func NewGrid(size int) *Grid {
	return &Grid{Size: size, cells: make([]float64, size*size)}
}

// GridFromPatches reshapes a flat per-patch score slice into a square
// grid with side round(sqrt(len(patches))). Patches beyond the square
// are dropped and missing trailing cells stay zero, which tolerates the
// occasional non-square token count.
func GridFromPatches(patches []float64) *Grid {
	size := int(math.Round(math.Sqrt(float64(len(patches)))))
	if size < 1 {
		size = 1
	}
	g := NewGrid(size)
	n := len(patches)
	if n > size*size {
		n = size * size
	}
	copy(g.cells, patches[:n])
	return g
}

// At reads the cell at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.cells[row*g.Size+col]
}

// Set writes the cell at (row, col).
func (g *Grid) Set(row, col int, v float64) {
	g.cells[row*g.Size+col] = v
}

// Add accumulates into the cell at (row, col).
func (g *Grid) Add(row, col int, v float64) {
	g.cells[row*g.Size+col] += v
}

// Max returns the largest cell value, or 0 for an empty grid.
func (g *Grid) Max() float64 {
	max := 0.0
	for _, v := range g.cells {
		if v > max {
			max = v
		}
	}
	return max
}

// Min returns the smallest cell value, or 0 for an empty grid.
func (g *Grid) Min() float64 {
	if len(g.cells) == 0 {
		return 0
	}
	min := g.cells[0]
	for _, v := range g.cells[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Normalized returns a copy scaled so the maximum cell is 1. An
// all-zero grid normalizes to all zeros rather than dividing by zero.
func (g *Grid) Normalized() *Grid {
	out := NewGrid(g.Size)
	max := g.Max()
	if max == 0 {
		return out
	}
	for i, v := range g.cells {
		out.cells[i] = v / max
	}
	return out
}

// Rows renders the grid as nested rows for serialization.
func (g *Grid) Rows() [][]float64 {
	rows := make([][]float64, g.Size)
	for r := 0; r < g.Size; r++ {
		rows[r] = make([]float64, g.Size)
		copy(rows[r], g.cells[r*g.Size:(r+1)*g.Size])
	}
	return rows
}
