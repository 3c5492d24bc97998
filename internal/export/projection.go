package export

import (
	"sort"

	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/model"
)

// ProjectedCell is one visible square of a flattened bay view.
// U runs left to right, V runs away from the reader (top view) or upward
// (front view).
type ProjectedCell struct {
	U, V  int
	Shape int
	Color model.Color
}

type projected struct {
	depth int
	shape int
}

// TopView flattens the bay onto the floor. Where shapes stack, the highest
// block is the one seen.
func TopView(st engine.State) []ProjectedCell {
	return project(st, func(c engine.Cell) (u, v, depth int) { return c.X, c.Z, c.Y })
}

// FrontView flattens the bay onto the back wall as seen from the open front.
// The block nearest the front is the one seen.
func FrontView(st engine.State) []ProjectedCell {
	return project(st, func(c engine.Cell) (u, v, depth int) { return c.X, c.Y, c.Z })
}

func project(st engine.State, axes func(engine.Cell) (u, v, depth int)) []ProjectedCell {
	seen := make(map[[2]int]projected)
	for i, s := range st.Shapes {
		for _, c := range engine.Cells(s, st.Dimensions.CellSize) {
			if !c.InBay(st.Dimensions) {
				continue
			}
			u, v, depth := axes(c)
			key := [2]int{u, v}
			if cur, ok := seen[key]; ok && cur.depth >= depth {
				continue
			}
			seen[key] = projected{depth: depth, shape: i}
		}
	}

	out := make([]ProjectedCell, 0, len(seen))
	for k, p := range seen {
		out = append(out, ProjectedCell{U: k[0], V: k[1], Shape: p.shape, Color: st.Shapes[p.shape].Color})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].V != out[j].V {
			return out[i].V < out[j].V
		}
		return out[i].U < out[j].U
	})
	return out
}

// FillRatio returns the share of bay cells covered by shapes, 0..1.
func FillRatio(st engine.State) float64 {
	d := st.Dimensions
	total := d.WidthBack * d.HeightLeft * d.DepthFront
	if total <= 0 {
		return 0
	}
	covered := make(map[engine.Cell]struct{})
	for _, s := range st.Shapes {
		for _, c := range engine.Cells(s, d.CellSize) {
			if c.InBay(d) {
				covered[c] = struct{}{}
			}
		}
	}
	return float64(len(covered)) / float64(total)
}

// anchorCell returns the (col, row, level) cell holding a shape's anchor.
func anchorCell(s model.PlacedShape, cellSize float64) engine.Cell {
	return engine.CellsAt(s.Position, model.Configuration{{}}, cellSize)[0]
}

// outside reports whether any block of s lies beyond the bay.
func outside(s model.PlacedShape, d model.Dimensions) bool {
	for _, c := range engine.Cells(s, d.CellSize) {
		if !c.InBay(d) {
			return true
		}
	}
	return false
}
