package bay

import (
	"fmt"
	"strings"

	"github.com/piwi3910/shelfpack/internal/model"
)

// ViewName names a camera preset.
type ViewName string

const (
	ViewDefault ViewName = "default"
	ViewFront   ViewName = "front"
	ViewSide    ViewName = "side"
	ViewTop     ViewName = "top"
)

// View is a camera preset: where the eye sits relative to the bay.
type View struct {
	Name   ViewName
	Title  string
	Camera model.Vec3
}

// Views lists the presets in the order the toolbar shows them.
var Views = []View{
	{Name: ViewFront, Title: "Front view", Camera: model.Vec3{X: 0, Y: 0, Z: 10}},
	{Name: ViewSide, Title: "Side view", Camera: model.Vec3{X: 10, Y: 0, Z: 0}},
	{Name: ViewTop, Title: "Top view", Camera: model.Vec3{X: 0, Y: 10, Z: 0}},
	{Name: ViewDefault, Title: "Default view", Camera: model.Vec3{X: 10, Y: 10, Z: 10}},
}

// FindView looks a preset up by name, ignoring case.
func FindView(name string) (View, error) {
	n := ViewName(strings.ToLower(strings.TrimSpace(name)))
	for _, v := range Views {
		if v.Name == n {
			return v, nil
		}
	}
	return View{}, fmt.Errorf("unknown view %q", name)
}

// Background returns the colour painted behind the bay for a view. Front
// shows the front colour, side the left wall, top the back wall. The default
// view keeps a white background.
func (v View) Background(w model.WallColors) model.Color {
	switch v.Name {
	case ViewFront:
		return w.Front
	case ViewSide:
		return w.Left
	case ViewTop:
		return w.Back
	default:
		return model.ColorWhite
	}
}
