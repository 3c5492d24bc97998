// Package grid tracks which floor cells of the bay were reserved when shapes
// were first placed.
package grid

import (
	"math"
	"strings"

	"github.com/piwi3910/shelfpack/internal/model"
)

// Grid is a rows x cols occupancy map. Rows run along the bay depth and
// columns along the back wall.
type Grid struct {
	rows  int
	cols  int
	cells []bool
}

// New creates an empty grid. Negative sizes, and sizes whose cell count
// would overflow, give an empty 0x0 grid.
func New(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	if cols != 0 && rows > math.MaxInt/cols {
		rows, cols = 0, 0
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]bool, rows*cols),
	}
}

// ForDimensions creates an empty grid sized to the bay floor.
func ForDimensions(d model.Dimensions) *Grid {
	return New(d.DepthFront, d.WidthBack)
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Center returns the cell placement starts from.
func (g *Grid) Center() (row, col int) {
	return g.rows / 2, g.cols / 2
}

// InBounds reports whether (row, col) names a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Occupied reports whether a cell is reserved. Cells outside the grid are
// reported as free.
func (g *Grid) Occupied(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	return g.cells[row*g.cols+col]
}

// CanPlace reports whether every block of cfg, offset by (row, col), lands on
// a free cell inside the grid.
func (g *Grid) CanPlace(row, col int, cfg model.Configuration) bool {
	for _, b := range cfg {
		r, c := row+b.Z, col+b.X
		if !g.InBounds(r, c) || g.cells[r*g.cols+c] {
			return false
		}
	}
	return true
}

// Mark sets every in-bounds cell covered by cfg at (row, col) to value.
// Blocks that fall outside the grid are skipped.
func (g *Grid) Mark(row, col int, cfg model.Configuration, value bool) {
	for _, b := range cfg {
		r, c := row+b.Z, col+b.X
		if g.InBounds(r, c) {
			g.cells[r*g.cols+c] = value
		}
	}
}

// OccupiedCount returns the number of reserved cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// Reset frees every cell.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = false
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cp := &Grid{rows: g.rows, cols: g.cols, cells: make([]bool, len(g.cells))}
	copy(cp.cells, g.cells)
	return cp
}

// String renders the grid one row per line, '#' for reserved cells.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r*g.cols+c] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
