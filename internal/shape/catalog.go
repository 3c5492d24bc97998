// Package shape holds the canonical shape catalogue and the quarter-turn
// transforms applied to it.
package shape

import "github.com/piwi3910/shelfpack/internal/model"

// Canonical block layouts as (z, x, y) offsets. Every shape lies flat on
// level 0 in its base orientation.
var catalog = map[model.ShapeType]model.Configuration{
	model.ShapeL: {{Z: 0, X: 0, Y: 0}, {Z: 0, X: 1, Y: 0}, {Z: 0, X: 2, Y: 0}, {Z: 1, X: 2, Y: 0}},
	model.ShapeJ: {{Z: 1, X: 0, Y: 0}, {Z: 1, X: 1, Y: 0}, {Z: 1, X: 2, Y: 0}, {Z: 0, X: 2, Y: 0}},
	model.ShapeT: {{Z: 0, X: 0, Y: 0}, {Z: 1, X: 0, Y: 0}, {Z: 2, X: 0, Y: 0}, {Z: 1, X: 1, Y: 0}},
	model.ShapeO: {{Z: 0, X: 0, Y: 0}, {Z: 0, X: 1, Y: 0}, {Z: 1, X: 0, Y: 0}, {Z: 1, X: 1, Y: 0}},
	model.ShapeZ: {{Z: 0, X: 0, Y: 0}, {Z: 1, X: 0, Y: 0}, {Z: 1, X: 1, Y: 0}, {Z: 2, X: 1, Y: 0}},
	model.ShapeI: {{Z: 0, X: 0, Y: 0}, {Z: 0, X: 1, Y: 0}, {Z: 0, X: 2, Y: 0}, {Z: 0, X: 3, Y: 0}},
}

// order is the button order used by the front ends.
var order = []model.ShapeType{
	model.ShapeL, model.ShapeJ, model.ShapeT, model.ShapeO, model.ShapeZ, model.ShapeI,
}

// All returns every catalogued shape type.
func All() []model.ShapeType {
	out := make([]model.ShapeType, len(order))
	copy(out, order)
	return out
}

// ConfigurationFor returns a fresh copy of the base configuration for t.
// Unknown types yield an empty configuration.
func ConfigurationFor(t model.ShapeType) model.Configuration {
	cfg, ok := catalog[t]
	if !ok {
		return model.Configuration{}
	}
	return cfg.Clone()
}
