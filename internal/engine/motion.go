package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/shape"
)

// Move shifts the active shape one cell in dir. The move is applied only if
// every block stays inside the bay and clear of all other shapes.
func (s *Session) Move(dir model.Direction) error {
	cur, ok := s.scene.ActiveShape()
	if !ok {
		s.logger.Printf("move %s rejected: no active shape", dir)
		return ErrInvalidSelection
	}
	dx, dy, dz := dir.Delta()
	if dx == 0 && dy == 0 && dz == 0 {
		s.logger.Printf("move rejected: unknown direction %q", dir)
		return fmt.Errorf("%w: %q", ErrUnknownDirection, dir)
	}

	step := model.Vec3{X: float64(dx), Y: float64(dy), Z: float64(dz)}.Scale(s.dims.CellSize)
	cand := cur
	cand.Position = cur.Position.Add(step)
	return s.commit(cand, "Move "+string(dir))
}

// RotateActive turns the active shape by deg degrees on top of its current
// rotation. The layout is recomputed from the base shape, the anchor is
// shifted by whole cells so the footprint centre stays put, and the shape is
// lifted if a block would end up below the floor.
func (s *Session) RotateActive(deg int) error {
	cur, ok := s.scene.ActiveShape()
	if !ok {
		s.logger.Printf("rotate %d rejected: no active shape", deg)
		return ErrInvalidSelection
	}
	if deg%90 != 0 {
		s.logger.Printf("rotate %d rejected: not a quarter turn", deg)
		return fmt.Errorf("%w: %d", ErrInvalidRotation, deg)
	}

	rot := shape.NormalizeDegrees(cur.Rotation + deg)
	cfg := shape.Rotate(cur.Type, rot)
	if len(cfg) == 0 {
		s.logger.Printf("rotate %d rejected: shape %s has no layout", deg, cur.Type)
		return fmt.Errorf("%w: %q", ErrUnknownShape, cur.Type)
	}

	cs := s.dims.CellSize
	oldZ, oldX, _ := cur.Configuration.Center()
	newZ, newX, _ := cfg.Center()

	cand := cur
	cand.Rotation = rot
	cand.Configuration = cfg
	cand.Position.X += math.Round(oldX-newX) * cs
	cand.Position.Z += math.Round(oldZ-newZ) * cs

	lowest := math.MaxInt
	for _, c := range CellsAt(cand.Position, cfg, cs) {
		if c.Y < lowest {
			lowest = c.Y
		}
	}
	if lowest < 0 {
		cand.Position.Y += float64(-lowest) * cs
	}

	return s.commit(cand, fmt.Sprintf("Rotate %d", deg))
}

// DragTo moves the active shape so its anchor sits in the floor cell under
// point. The height of the shape is kept. Each drag sample is validated on
// its own.
func (s *Session) DragTo(point model.Vec3) error {
	cur, ok := s.scene.ActiveShape()
	if !ok {
		s.logger.Printf("drag rejected: no active shape")
		return ErrInvalidSelection
	}
	cs := s.dims.CellSize
	target := Cell{
		X: int(math.Floor(point.X / cs)),
		Z: int(math.Floor(point.Z / cs)),
	}
	center := cellCenter(target, cs)

	cand := cur
	cand.Position.X = center.X
	cand.Position.Z = center.Z
	if cand.Position == cur.Position {
		return nil
	}
	return s.commit(cand, "Drag")
}

// commit validates cand as the new state of the active shape and applies it.
func (s *Session) commit(cand model.PlacedShape, label string) error {
	idx := s.scene.ActiveIndex
	s.occ.build(s.scene.Shapes, s.dims.CellSize, idx)
	if v, ok := checkFootprint(Cells(cand, s.dims.CellSize), s.dims, s.occ); !ok {
		s.logger.Printf("%s of shape %s rejected: %s", label, cand.ID, v)
		return fmt.Errorf("%w: %s", ErrBlockedMove, v)
	}
	s.record(label)
	s.scene.Shapes[idx] = cand
	return nil
}

// Collisions returns every pair of shapes whose live cells overlap. Moves
// never produce overlaps, but a bay resize or a loaded save can.
func (s *Session) Collisions() [][2]int {
	var pairs [][2]int
	seen := make(map[[2]int]bool)
	occ := newOccupancy(4 * len(s.scene.Shapes))
	for i, sh := range s.scene.Shapes {
		for _, c := range Cells(sh, s.dims.CellSize) {
			owner, hit := occ.owner(c)
			if !hit {
				occ.owners.Put(c.key(), i)
				continue
			}
			p := [2]int{owner, i}
			if !seen[p] {
				seen[p] = true
				pairs = append(pairs, p)
			}
		}
	}
	return pairs
}

// OutOfBounds returns the indices of shapes with at least one cell outside
// the bay.
func (s *Session) OutOfBounds() []int {
	var out []int
	for i, sh := range s.scene.Shapes {
		for _, c := range Cells(sh, s.dims.CellSize) {
			if !c.InBay(s.dims) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}
