package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/shelfpack/internal/bay"
	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/model"
)

// DXF layer names.
const (
	LayerGrid       = "GRID"
	LayerShapes     = "SHAPES"
	LayerDimensions = "DIMENSIONS"
)

// cubeEdges lists the 12 edges of a unit cube as corner offset pairs.
var cubeEdges = [12][2][3]float64{
	{{0, 0, 0}, {1, 0, 0}}, {{0, 1, 0}, {1, 1, 0}}, {{0, 0, 1}, {1, 0, 1}}, {{0, 1, 1}, {1, 1, 1}},
	{{0, 0, 0}, {0, 1, 0}}, {{1, 0, 0}, {1, 1, 0}}, {{0, 0, 1}, {0, 1, 1}}, {{1, 0, 1}, {1, 1, 1}},
	{{0, 0, 0}, {0, 0, 1}}, {{1, 0, 0}, {1, 0, 1}}, {{0, 1, 0}, {0, 1, 1}}, {{1, 1, 0}, {1, 1, 1}},
}

// ExportDXF writes the bay as a 3D wireframe drawing: the reference grid on
// GRID, one wire cube per shape block on SHAPES and the size annotations on
// DIMENSIONS. DXF is Z-up, so the bay's vertical axis is written as Z.
func ExportDXF(path string, st engine.State) error {
	if err := st.Dimensions.Validate(); err != nil {
		return fmt.Errorf("cannot export bay: %w", err)
	}

	d := dxf.NewDrawing()
	if err := writeDXF(d, st); err != nil {
		return err
	}
	return d.SaveAs(path)
}

func writeDXF(d *drawing.Drawing, st engine.State) error {
	if _, err := d.AddLayer(LayerGrid, color.Grey128, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerGrid, err)
	}
	for _, s := range bay.Lines(st.Dimensions) {
		if err := line(d, s.From, s.To); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer(LayerShapes, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerShapes, err)
	}
	cs := st.Dimensions.CellSize
	for _, s := range st.Shapes {
		for _, c := range engine.Cells(s, cs) {
			origin := model.Vec3{X: float64(c.X) * cs, Y: float64(c.Y) * cs, Z: float64(c.Z) * cs}
			for _, e := range cubeEdges {
				from := origin.Add(model.Vec3{X: e[0][0], Y: e[0][1], Z: e[0][2]}.Scale(cs))
				to := origin.Add(model.Vec3{X: e[1][0], Y: e[1][1], Z: e[1][2]}.Scale(cs))
				if err := line(d, from, to); err != nil {
					return err
				}
			}
		}
	}

	if _, err := d.AddLayer(LayerDimensions, color.Cyan, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerDimensions, err)
	}
	for _, l := range bay.Labels(st.Dimensions) {
		if _, err := d.Text(l.Text, l.Position.X, l.Position.Z, l.Position.Y, l.FontSize); err != nil {
			return fmt.Errorf("failed to write label %q: %w", l.Text, err)
		}
	}
	for i, s := range st.Shapes {
		a := s.Position
		if _, err := d.Text(fmt.Sprintf("%d %s", i+1, s.Type), a.X, a.Z, a.Y, cs/3); err != nil {
			return fmt.Errorf("failed to write shape tag: %w", err)
		}
	}
	return nil
}

func line(d *drawing.Drawing, from, to model.Vec3) error {
	if _, err := d.Line(from.X, from.Z, from.Y, to.X, to.Z, to.Y); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	return nil
}
