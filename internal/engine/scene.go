package engine

import "github.com/piwi3910/shelfpack/internal/model"

// NoSelection is the ActiveIndex of a scene with nothing selected.
const NoSelection = -1

// Scene is the ordered list of placed shapes plus the selection pointer.
type Scene struct {
	Shapes      []model.PlacedShape `json:"shapes"`
	ActiveIndex int                 `json:"activeIndex"`
}

// NewScene returns an empty scene with no selection.
func NewScene() Scene {
	return Scene{Shapes: []model.PlacedShape{}, ActiveIndex: NoSelection}
}

// Len returns the number of placed shapes.
func (s Scene) Len() int {
	return len(s.Shapes)
}

// HasActive reports whether ActiveIndex points at an existing shape.
func (s Scene) HasActive() bool {
	return s.ActiveIndex >= 0 && s.ActiveIndex < len(s.Shapes)
}

// ActiveShape returns a copy of the selected shape.
func (s Scene) ActiveShape() (model.PlacedShape, bool) {
	if !s.HasActive() {
		return model.PlacedShape{}, false
	}
	return s.Shapes[s.ActiveIndex].Clone(), true
}

// Clone deep-copies the scene, including every configuration.
func (s Scene) Clone() Scene {
	cp := Scene{ActiveIndex: s.ActiveIndex, Shapes: make([]model.PlacedShape, len(s.Shapes))}
	for i, sh := range s.Shapes {
		cp.Shapes[i] = sh.Clone()
	}
	return cp
}
