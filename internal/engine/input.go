package engine

import "github.com/piwi3910/shelfpack/internal/model"

// keyDirections maps key names to moves. Arrow keys slide the shape across
// the floor, page keys lift and lower it. Both the short names and the
// names desktop toolkits report for the page keys are accepted.
var keyDirections = map[string]model.Direction{
	"Left":     model.DirLeft,
	"Right":    model.DirRight,
	"Up":       model.DirBackward,
	"Down":     model.DirForward,
	"PageUp":   model.DirUp,
	"Prior":    model.DirUp,
	"PageDown": model.DirDown,
	"Next":     model.DirDown,
}

// DirectionForKey returns the move bound to a key name.
func DirectionForKey(name string) (model.Direction, bool) {
	d, ok := keyDirections[name]
	return d, ok
}

// RotationSteps are the turns offered by the rotate buttons.
var RotationSteps = []int{90, 180, 270}
