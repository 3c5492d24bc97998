package engine

import (
	"fmt"
	"math"

	"github.com/kamstrup/intmap"

	"github.com/piwi3910/shelfpack/internal/model"
)

// Cell is a whole-cell coordinate in the bay volume.
type Cell struct {
	X, Y, Z int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// cellBias keeps packed keys non-negative for cells a little outside the bay.
const cellBias = 1 << 20

func (c Cell) key() uint64 {
	return uint64(c.X+cellBias)<<42 | uint64(c.Y+cellBias)<<21 | uint64(c.Z+cellBias)
}

// InBay reports whether c lies inside the bay volume.
func (c Cell) InBay(d model.Dimensions) bool {
	return c.X >= 0 && c.X < d.WidthBack &&
		c.Y >= 0 && c.Y < d.HeightLeft &&
		c.Z >= 0 && c.Z < d.DepthFront
}

// CellsAt returns the cells covered by cfg when anchored at pos. Each block
// centre is floored to the cell that contains it.
func CellsAt(pos model.Vec3, cfg model.Configuration, cellSize float64) []Cell {
	cells := make([]Cell, len(cfg))
	for i, b := range cfg {
		cells[i] = Cell{
			X: int(math.Floor((pos.X + float64(b.X)*cellSize) / cellSize)),
			Y: int(math.Floor((pos.Y + float64(b.Y)*cellSize) / cellSize)),
			Z: int(math.Floor((pos.Z + float64(b.Z)*cellSize) / cellSize)),
		}
	}
	return cells
}

// Cells returns the live cells of a placed shape.
func Cells(s model.PlacedShape, cellSize float64) []Cell {
	return CellsAt(s.Position, s.Configuration, cellSize)
}

// anchorFor returns the world anchor of the cell (row, col) on level 0.
func anchorFor(row, col int, cellSize float64) model.Vec3 {
	half := cellSize / 2
	return model.Vec3{
		X: float64(col)*cellSize + half,
		Y: half,
		Z: float64(row)*cellSize + half,
	}
}

// cellCenter returns the world centre of a cell.
func cellCenter(c Cell, cellSize float64) model.Vec3 {
	half := cellSize / 2
	return model.Vec3{
		X: float64(c.X)*cellSize + half,
		Y: float64(c.Y)*cellSize + half,
		Z: float64(c.Z)*cellSize + half,
	}
}

// occupancy indexes the live cells of every shape so collision checks do not
// rescan the scene for each block.
type occupancy struct {
	owners *intmap.Map[uint64, int]
}

func newOccupancy(capacity int) *occupancy {
	return &occupancy{owners: intmap.New[uint64, int](capacity)}
}

// build indexes every shape except skip (pass NoSelection to index all).
func (o *occupancy) build(shapes []model.PlacedShape, cellSize float64, skip int) {
	o.owners.Clear()
	for i, s := range shapes {
		if i == skip {
			continue
		}
		for _, c := range Cells(s, cellSize) {
			o.owners.Put(c.key(), i)
		}
	}
}

// owner returns the index of the shape covering c.
func (o *occupancy) owner(c Cell) (int, bool) {
	return o.owners.Get(c.key())
}

// Violation describes why a candidate footprint was rejected.
type Violation struct {
	Cell    Cell
	Outside bool // cell is outside the bay
	Owner   int  // index of the colliding shape when !Outside
}

func (v Violation) String() string {
	if v.Outside {
		return fmt.Sprintf("cell %s outside bay", v.Cell)
	}
	return fmt.Sprintf("cell %s occupied by shape %d", v.Cell, v.Owner)
}

// checkFootprint validates cells against the bay bounds and the indexed
// shapes. It returns the first violation found.
func checkFootprint(cells []Cell, d model.Dimensions, occ *occupancy) (Violation, bool) {
	for _, c := range cells {
		if !c.InBay(d) {
			return Violation{Cell: c, Outside: true, Owner: NoSelection}, false
		}
	}
	for _, c := range cells {
		if owner, hit := occ.owner(c); hit {
			return Violation{Cell: c, Owner: owner}, false
		}
	}
	return Violation{}, true
}
