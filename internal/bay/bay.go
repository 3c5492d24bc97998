// Package bay builds the reference geometry drawn around the packing volume:
// the three-sided cell grid, its dimension labels and the camera presets.
package bay

import (
	"fmt"

	"github.com/piwi3910/shelfpack/internal/model"
)

// Plane identifies which face of the bay a grid line lies on.
type Plane string

const (
	PlaneFloor Plane = "floor"
	PlaneLeft  Plane = "left"
	PlaneBack  Plane = "back"
)

// Segment is a single straight grid line in world coordinates.
type Segment struct {
	Plane Plane
	From  model.Vec3
	To    model.Vec3
}

// Lines returns every reference line of the bay. The floor is drawn as a
// widthBack x widthBack square, matching the square footprint the bay is
// normally configured with. The left wall lies on x = 0, the back wall on
// z = 0.
func Lines(d model.Dimensions) []Segment {
	cs := d.CellSize
	w := float64(d.WidthBack) * cs
	h := float64(d.HeightLeft) * cs

	segs := make([]Segment, 0, 4*(d.WidthBack+1)+2*(d.HeightLeft+1))

	for i := 0; i <= d.WidthBack; i++ {
		p := float64(i) * cs
		segs = append(segs,
			Segment{PlaneFloor, model.Vec3{X: 0, Y: 0, Z: p}, model.Vec3{X: w, Y: 0, Z: p}},
			Segment{PlaneFloor, model.Vec3{X: p, Y: 0, Z: 0}, model.Vec3{X: p, Y: 0, Z: w}},
		)
	}

	for i := 0; i <= d.HeightLeft; i++ {
		p := float64(i) * cs
		segs = append(segs, Segment{PlaneLeft, model.Vec3{X: 0, Y: p, Z: 0}, model.Vec3{X: 0, Y: p, Z: w}})
	}
	for i := 0; i <= d.WidthBack; i++ {
		p := float64(i) * cs
		segs = append(segs, Segment{PlaneLeft, model.Vec3{X: 0, Y: 0, Z: p}, model.Vec3{X: 0, Y: h, Z: p}})
	}

	for i := 0; i <= d.HeightLeft; i++ {
		p := float64(i) * cs
		segs = append(segs, Segment{PlaneBack, model.Vec3{X: 0, Y: p, Z: 0}, model.Vec3{X: w, Y: p, Z: 0}})
	}
	for i := 0; i <= d.WidthBack; i++ {
		p := float64(i) * cs
		segs = append(segs, Segment{PlaneBack, model.Vec3{X: p, Y: 0, Z: 0}, model.Vec3{X: p, Y: h, Z: 0}})
	}

	return segs
}

// Label is a dimension annotation placed in the scene.
type Label struct {
	Text     string
	Position model.Vec3
	FontSize float64
}

// Labels returns the width annotation along the top of the back wall and
// the height annotation beside the left wall.
func Labels(d model.Dimensions) []Label {
	cs := d.CellSize
	w := float64(d.WidthBack) * cs
	h := float64(d.HeightLeft) * cs
	return []Label{
		{Text: FormatCM(w), Position: model.Vec3{X: w / 2, Y: h, Z: 0}, FontSize: cs / 2},
		{Text: FormatCM(h), Position: model.Vec3{X: 0, Y: h / 2, Z: w}, FontSize: cs / 2},
	}
}

// FormatCM renders a length for an annotation, e.g. "48cm" or "40.5cm".
func FormatCM(v float64) string {
	return fmt.Sprintf("%scm", trimFloat(v))
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}
