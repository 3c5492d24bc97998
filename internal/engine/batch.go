package engine

import (
	"fmt"

	"github.com/piwi3910/shelfpack/internal/grid"
	"github.com/piwi3910/shelfpack/internal/model"
)

// BatchResult summarizes an AddBatch run.
type BatchResult struct {
	Placed []model.PlacedShape
	Errors []string
}

// AddBatch places every shape requested by orders. Failures are collected
// and the run carries on with the next shape. The whole batch is a single
// undo step.
func (s *Session) AddBatch(orders []model.ShapeOrder) BatchResult {
	var res BatchResult
	if len(orders) == 0 {
		return res
	}

	s.record(fmt.Sprintf("Import %d orders", len(orders)))
	s.batching = true
	defer func() { s.batching = false }()

	res = s.placeOrders(orders)
	if len(res.Placed) == 0 {
		// nothing changed, drop the snapshot pushed above
		s.history.dropLast()
	}
	return res
}

func (s *Session) placeOrders(orders []model.ShapeOrder) BatchResult {
	var res BatchResult
	for i, o := range orders {
		qty := o.Quantity
		if qty < 1 {
			qty = 1
		}
		for n := 0; n < qty; n++ {
			placed, err := s.AddShape(o.Type)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("order %d (%s #%d): %v", i+1, o.Type, n+1, err))
				continue
			}
			if o.Rotation != 0 {
				if err := s.RotateActive(o.Rotation); err != nil {
					res.Errors = append(res.Errors, fmt.Sprintf("order %d (%s #%d): rotate: %v", i+1, o.Type, n+1, err))
				}
			}
			if o.Color != nil {
				if err := s.SetActiveColor(*o.Color); err != nil {
					res.Errors = append(res.Errors, fmt.Sprintf("order %d (%s #%d): colour: %v", i+1, o.Type, n+1, err))
				}
			}
			placed, _ = s.scene.ActiveShape()
			res.Placed = append(res.Placed, placed)
		}
	}
	return res
}

// ApplyTemplate clears the bay, resizes it to the template and places the
// template's shapes. It is a single undo step.
func (s *Session) ApplyTemplate(t model.BayTemplate) (BatchResult, error) {
	if err := t.Dimensions.Validate(); err != nil {
		s.logger.Printf("template %q rejected: %v", t.Name, err)
		return BatchResult{}, fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}
	s.record("Template " + t.Name)
	s.batching = true
	s.scene = NewScene()
	s.walls = t.Walls
	s.dims = t.Dimensions
	s.grid = grid.ForDimensions(t.Dimensions)
	defer func() { s.batching = false }()
	return s.placeOrders(t.Orders), nil
}
