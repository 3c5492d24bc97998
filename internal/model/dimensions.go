package model

import (
	"fmt"
	"math"
)

// Bounds offered by the dimension controls.
const (
	MinCells       = 1
	MaxCells       = 20
	MinCellSize    = 8.0
	MaxCellSize    = 14.0
	CellSizeStep   = 2.0
	DefaultCells   = 6
	DefaultCellLen = 8.0
)

// Dimensions describes the bay: the cell edge length and the cell count
// along each wall.
type Dimensions struct {
	CellSize   float64 `json:"cellSize"`
	WidthBack  int     `json:"widthBack"`  // cells along x
	HeightLeft int     `json:"heightLeft"` // cells along y
	DepthFront int     `json:"depthFront"` // cells along z
}

// DefaultDimensions returns the 6x6x6 bay with 8-unit cells.
func DefaultDimensions() Dimensions {
	return Dimensions{
		CellSize:   DefaultCellLen,
		WidthBack:  DefaultCells,
		HeightLeft: DefaultCells,
		DepthFront: DefaultCells,
	}
}

// Validate checks that the dimensions describe a usable bay. Cell counts
// must lie within MinCells..MaxCells.
func (d Dimensions) Validate() error {
	if !(d.CellSize > 0) || math.IsInf(d.CellSize, 0) {
		return fmt.Errorf("cell size must be positive, got %g", d.CellSize)
	}
	for _, n := range []int{d.WidthBack, d.HeightLeft, d.DepthFront} {
		if n < MinCells || n > MaxCells {
			return fmt.Errorf("cell counts must be between %d and %d, got %dx%dx%d",
				MinCells, MaxCells, d.WidthBack, d.HeightLeft, d.DepthFront)
		}
	}
	return nil
}

// Width returns the world width of the back wall.
func (d Dimensions) Width() float64 {
	return float64(d.WidthBack) * d.CellSize
}

// Height returns the world height of the left wall.
func (d Dimensions) Height() float64 {
	return float64(d.HeightLeft) * d.CellSize
}

// Depth returns the world depth of the floor.
func (d Dimensions) Depth() float64 {
	return float64(d.DepthFront) * d.CellSize
}

// Clamp forces every field into the range the dimension controls allow.
func (d Dimensions) Clamp() Dimensions {
	d.WidthBack = clampInt(d.WidthBack, MinCells, MaxCells)
	d.HeightLeft = clampInt(d.HeightLeft, MinCells, MaxCells)
	d.DepthFront = clampInt(d.DepthFront, MinCells, MaxCells)
	if d.CellSize < MinCellSize {
		d.CellSize = MinCellSize
	}
	if d.CellSize > MaxCellSize {
		d.CellSize = MaxCellSize
	}
	return d
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
