package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/shelfpack/internal/bay"
	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/export"
	"github.com/piwi3910/shelfpack/internal/model"
)

// Projection selects which face of the bay a BayCanvas shows.
type Projection int

const (
	// ProjectTop looks down on the floor; rows run from the back wall forward.
	ProjectTop Projection = iota
	// ProjectFront looks at the back wall from the open front; rows are levels.
	ProjectFront
)

var (
	gridColor   = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	strokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	activeColor = color.NRGBA{R: 255, G: 200, B: 0, A: 255}
	labelColor  = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
)

const labelMargin = 18

// cellGeometry maps between pixels and view cells.
type cellGeometry struct {
	cols, rows int
	cell       float32
	upward     bool
}

func newCellGeometry(cols, rows int, maxW, maxH float32, upward bool) cellGeometry {
	g := cellGeometry{cols: cols, rows: rows, upward: upward}
	if cols > 0 && rows > 0 {
		g.cell = float32(math.Min(float64(maxW/float32(cols)), float64(maxH/float32(rows))))
	}
	return g
}

// origin returns the top-left pixel of view cell (u, v).
func (g cellGeometry) origin(u, v int) fyne.Position {
	row := v
	if g.upward {
		row = g.rows - 1 - v
	}
	return fyne.NewPos(labelMargin+float32(u)*g.cell, float32(row)*g.cell)
}

// cellAt returns the view cell under pixel p.
func (g cellGeometry) cellAt(p fyne.Position) (u, v int, ok bool) {
	if g.cell <= 0 {
		return 0, 0, false
	}
	u = int(math.Floor(float64((p.X - labelMargin) / g.cell)))
	row := int(math.Floor(float64(p.Y / g.cell)))
	if u < 0 || u >= g.cols || row < 0 || row >= g.rows {
		return 0, 0, false
	}
	v = row
	if g.upward {
		v = g.rows - 1 - row
	}
	return u, v, true
}

func (g cellGeometry) size() fyne.Size {
	return fyne.NewSize(labelMargin+float32(g.cols)*g.cell, float32(g.rows)*g.cell+labelMargin)
}

// BayCanvas draws a flattened view of the bay and reports taps and drags as
// view cells.
type BayCanvas struct {
	widget.BaseWidget
	projection Projection
	state      engine.State
	active     int
	maxWidth   float32
	maxHeight  float32

	// OnCellTapped receives the view cell and the shape seen there, or -1.
	OnCellTapped func(u, v, shape int)
	// OnCellDragged receives every view cell a drag passes over.
	OnCellDragged func(u, v int)
}

func NewBayCanvas(p Projection, maxW, maxH float32) *BayCanvas {
	bc := &BayCanvas{
		projection: p,
		active:     engine.NoSelection,
		maxWidth:   maxW,
		maxHeight:  maxH,
	}
	bc.ExtendBaseWidget(bc)
	return bc
}

// SetState replaces what the canvas shows.
func (bc *BayCanvas) SetState(st engine.State, active int) {
	bc.state = st
	bc.active = active
	bc.Refresh()
}

func (bc *BayCanvas) geometry() cellGeometry {
	d := bc.state.Dimensions
	if bc.projection == ProjectFront {
		return newCellGeometry(d.WidthBack, d.HeightLeft, bc.maxWidth, bc.maxHeight, true)
	}
	return newCellGeometry(d.WidthBack, d.DepthFront, bc.maxWidth, bc.maxHeight, false)
}

func (bc *BayCanvas) cells() []export.ProjectedCell {
	if bc.projection == ProjectFront {
		return export.FrontView(bc.state)
	}
	return export.TopView(bc.state)
}

// shapeAt returns the index of the shape seen at (u, v), or -1.
func (bc *BayCanvas) shapeAt(u, v int) int {
	for _, c := range bc.cells() {
		if c.U == u && c.V == v {
			return c.Shape
		}
	}
	return engine.NoSelection
}

// Tapped implements fyne.Tappable.
func (bc *BayCanvas) Tapped(ev *fyne.PointEvent) {
	u, v, ok := bc.geometry().cellAt(ev.Position)
	if !ok || bc.OnCellTapped == nil {
		return
	}
	bc.OnCellTapped(u, v, bc.shapeAt(u, v))
}

// Dragged implements fyne.Draggable.
func (bc *BayCanvas) Dragged(ev *fyne.DragEvent) {
	u, v, ok := bc.geometry().cellAt(ev.Position)
	if !ok || bc.OnCellDragged == nil {
		return
	}
	bc.OnCellDragged(u, v)
}

// DragEnd implements fyne.Draggable.
func (bc *BayCanvas) DragEnd() {}

func (bc *BayCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &bayCanvasRenderer{bc: bc}
	r.rebuild()
	return r
}

type bayCanvasRenderer struct {
	bc      *BayCanvas
	objects []fyne.CanvasObject
}

func nrgba(c model.Color, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

func (r *bayCanvasRenderer) rebuild() {
	r.objects = nil
	g := r.bc.geometry()
	if g.cell <= 0 {
		return
	}
	st := r.bc.state

	view := bay.ViewTop
	if r.bc.projection == ProjectFront {
		view = bay.ViewFront
	}
	preset, _ := bay.FindView(string(view))

	w := float32(g.cols) * g.cell
	h := float32(g.rows) * g.cell

	bg := canvas.NewRectangle(nrgba(preset.Background(st.Colors), 255))
	bg.StrokeColor = gridColor
	bg.StrokeWidth = 2
	bg.Resize(fyne.NewSize(w, h))
	bg.Move(fyne.NewPos(labelMargin, 0))
	r.objects = append(r.objects, bg)

	for i := 1; i < g.cols; i++ {
		x := labelMargin + float32(i)*g.cell
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(x, 0)
		line.Position2 = fyne.NewPos(x, h)
		r.objects = append(r.objects, line)
	}
	for i := 1; i < g.rows; i++ {
		y := float32(i) * g.cell
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(labelMargin, y)
		line.Position2 = fyne.NewPos(labelMargin+w, y)
		r.objects = append(r.objects, line)
	}

	for _, c := range r.bc.cells() {
		rect := canvas.NewRectangle(nrgba(c.Color, 220))
		rect.StrokeColor = strokeColor
		rect.StrokeWidth = 1
		if c.Shape == r.bc.active {
			rect.StrokeColor = activeColor
			rect.StrokeWidth = 3
		}
		rect.Resize(fyne.NewSize(g.cell, g.cell))
		rect.Move(g.origin(c.U, c.V))
		r.objects = append(r.objects, rect)
	}

	d := st.Dimensions
	across := canvas.NewText(bay.FormatCM(d.Width()), labelColor)
	across.TextSize = 10
	across.Move(fyne.NewPos(labelMargin+w/2-20, h+2))
	r.objects = append(r.objects, across)

	alongValue := d.Depth()
	if r.bc.projection == ProjectFront {
		alongValue = d.Height()
	}
	along := canvas.NewText(bay.FormatCM(alongValue), labelColor)
	along.TextSize = 10
	along.Move(fyne.NewPos(0, h/2))
	r.objects = append(r.objects, along)
}

func (r *bayCanvasRenderer) Layout(size fyne.Size)        {}
func (r *bayCanvasRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.bc) }
func (r *bayCanvasRenderer) Destroy()                     {}
func (r *bayCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *bayCanvasRenderer) MinSize() fyne.Size           { return r.bc.geometry().size() }
