package ui

import (
	"fmt"
	"image/color"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/shelfpack/internal/bay"
	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/model"
)

// wallColourChoices are the colours offered for each wall.
var wallColourChoices = map[string]model.Color{
	"white": model.ColorWhite,
	"red":   model.ColorRed,
	"green": model.ColorGreen,
	"blue":  model.ColorBlue,
}

func wallColourNames() []string {
	names := make([]string, 0, len(wallColourChoices))
	for n := range wallColourChoices {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type dimensionSliders struct {
	cellSize, width, height, depth *widget.Slider
	labels                         [4]*widget.Label
}

func (d dimensionSliders) read() model.Dimensions {
	return model.Dimensions{
		CellSize:   d.cellSize.Value,
		WidthBack:  int(d.width.Value),
		HeightLeft: int(d.height.Value),
		DepthFront: int(d.depth.Value),
	}
}

func (a *App) buildBayPanel() fyne.CanvasObject {
	slider := func(lo, hi, step float64) *widget.Slider {
		s := widget.NewSlider(lo, hi)
		s.Step = step
		s.OnChangeEnded = func(float64) { a.applyDimensions() }
		return s
	}
	ds := dimensionSliders{
		cellSize: slider(model.MinCellSize, model.MaxCellSize, model.CellSizeStep),
		width:    slider(model.MinCells, model.MaxCells, 1),
		height:   slider(model.MinCells, model.MaxCells, 1),
		depth:    slider(model.MinCells, model.MaxCells, 1),
	}
	for i := range ds.labels {
		ds.labels[i] = widget.NewLabel("")
	}
	a.dimSliders = ds

	form := widget.NewForm(
		widget.NewFormItem("Cell size", container.NewBorder(nil, nil, nil, ds.labels[0], ds.cellSize)),
		widget.NewFormItem("Width (back)", container.NewBorder(nil, nil, nil, ds.labels[1], ds.width)),
		widget.NewFormItem("Height (left)", container.NewBorder(nil, nil, nil, ds.labels[2], ds.height)),
		widget.NewFormItem("Depth (front)", container.NewBorder(nil, nil, nil, ds.labels[3], ds.depth)),
	)

	walls := widget.NewForm()
	for i, name := range []string{"Back wall", "Left wall", "Front wall"} {
		sel := widget.NewSelect(wallColourNames(), func(string) { a.applyWallColours() })
		a.wallSelects[i] = sel
		walls.Append(name, sel)
	}

	previews := container.NewGridWithColumns(len(bay.Views))
	a.swatches = nil
	for _, v := range bay.Views {
		r := canvas.NewRectangle(color.White)
		r.StrokeColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
		r.StrokeWidth = 1
		r.SetMinSize(fyne.NewSize(40, 24))
		a.swatches = append(a.swatches, r)
		previews.Add(container.NewVBox(r, widget.NewLabel(v.Title)))
	}

	return widget.NewCard("Bay", "", container.NewVBox(form, walls, previews))
}

func (a *App) applyDimensions() {
	if a.syncing {
		return
	}
	d := a.dimSliders.read()
	if d == a.session.Dimensions() {
		return
	}
	a.run(func() error {
		if err := a.session.SetDimensions(d); err != nil {
			return err
		}
		a.warnStrays()
		return nil
	})
}

// warnStrays reports shapes a resize left overlapping or outside the bay.
func (a *App) warnStrays() {
	out := a.session.OutOfBounds()
	hits := a.session.Collisions()
	if len(out) == 0 && len(hits) == 0 {
		return
	}
	a.setStatus(fmt.Sprintf("%d blocks outside the bay, %d overlapping pairs", len(out), len(hits)))
}

func (a *App) applyWallColours() {
	if a.syncing {
		return
	}
	var w model.WallColors
	targets := []*model.Color{&w.Back, &w.Left, &w.Front}
	for i, sel := range a.wallSelects {
		c, ok := wallColourChoices[sel.Selected]
		if !ok {
			return
		}
		*targets[i] = c
	}
	if w == a.session.WallColors() {
		return
	}
	a.session.SetWallColors(w)
	a.refresh()
}

// syncBayControls moves the bay controls to st without firing their handlers.
func (a *App) syncBayControls(st engine.State) {
	if a.dimSliders.cellSize == nil {
		return
	}
	a.syncing = true
	defer func() { a.syncing = false }()

	d := st.Dimensions
	ds := a.dimSliders
	ds.cellSize.SetValue(d.CellSize)
	ds.width.SetValue(float64(d.WidthBack))
	ds.height.SetValue(float64(d.HeightLeft))
	ds.depth.SetValue(float64(d.DepthFront))
	ds.labels[0].SetText(bay.FormatCM(d.CellSize))
	ds.labels[1].SetText(bay.FormatCM(d.Width()))
	ds.labels[2].SetText(bay.FormatCM(d.Height()))
	ds.labels[3].SetText(bay.FormatCM(d.Depth()))

	for i, c := range []model.Color{st.Colors.Back, st.Colors.Left, st.Colors.Front} {
		if name, ok := paletteName(c); ok {
			a.wallSelects[i].SetSelected(name)
		}
	}
	for i, v := range bay.Views {
		bg := v.Background(st.Colors)
		a.swatches[i].FillColor = color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}
		a.swatches[i].Refresh()
	}
}
