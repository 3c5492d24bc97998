package ui

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
	"github.com/piwi3910/shelfpack/internal/shape"
	"github.com/piwi3910/shelfpack/internal/ui/widgets"
)

const maxRecentFiles = 8

// App holds all application state and UI references.
type App struct {
	app        fyne.App
	window     fyne.Window
	config     model.AppConfig
	configPath string
	templates  model.TemplateStore
	session    *engine.Session
	store      project.Store
	logger     *log.Logger

	tabs        *container.AppTabs
	topView     *widgets.BayCanvas
	frontView   *widgets.BayCanvas
	topBoth     *widgets.BayCanvas
	frontBoth   *widgets.BayCanvas
	shapeList   *widget.List
	status      *widget.Label
	selection   *widget.Label
	undoBtn     *widget.Button
	redoBtn     *widget.Button
	dimSliders  dimensionSliders
	wallSelects [3]*widget.Select
	swatches    []*canvas.Rectangle
	syncing     bool
}

// NewApp loads preferences and templates, then restores the last autosaved
// bay if there is one.
func NewApp(application fyne.App, window fyne.Window, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	a := &App{
		app:        application,
		window:     window,
		configPath: project.DefaultConfigPath(),
		store:      NewPrefsStore(application.Preferences()),
		logger:     logger,
	}

	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		logger.Printf("[CONFIG] using defaults: %v", err)
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg
	application.Settings().SetTheme(ThemeForName(cfg.Theme))

	templates, warnings, err := project.LoadTemplates(project.DefaultTemplatePath())
	if err != nil {
		logger.Printf("[TEMPLATES] using built-ins: %v", err)
		templates = project.BuiltinTemplates()
	}
	for _, w := range warnings {
		logger.Printf("[TEMPLATES] %s", w)
	}
	a.templates = templates

	a.session = a.newSession()
	if st, ok, err := project.LoadState(a.store); err != nil {
		logger.Printf("[STATE] could not read autosave: %v", err)
	} else if ok {
		if err := a.session.Restore(st); err != nil {
			logger.Printf("[STATE] autosave discarded: %v", err)
		} else {
			logger.Printf("[STATE] restored %d shapes", len(st.Shapes))
		}
	}
	return a
}

func (a *App) newSession() *engine.Session {
	opts := engine.OptionsFromConfig(a.config)
	opts.Logger = a.logger
	s, err := engine.NewSession(opts)
	if err != nil {
		a.logger.Printf("[CONFIG] default bay rejected, using stock bay: %v", err)
		opts.Dimensions = model.DefaultDimensions()
		s, _ = engine.NewSession(opts)
	}
	return s
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Bay", func() {
			a.confirmReset()
		}),
		fyne.NewMenuItem("Open Bay...", func() {
			a.openBay()
		}),
		fyne.NewMenuItem("Save Bay...", func() {
			a.saveBay()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Orders from CSV...", func() {
			a.importCSV()
		}),
		fyne.NewMenuItem("Import Orders from Excel...", func() {
			a.importExcel()
		}),
		fyne.NewMenuItem("Apply Template...", func() {
			a.showTemplateDialog()
		}),
		fyne.NewMenuItem("Save as Template...", func() {
			a.showSaveTemplateDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", func() {
			a.exportPDF()
		}),
		fyne.NewMenuItem("Export Labels...", func() {
			a.exportLabels()
		}),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportDXF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
		fyne.NewMenuItem("Backup && Restore...", func() {
			a.showBackupDialog()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Selection", func() {
			a.session.ClearSelection()
			a.refresh()
		}),
		fyne.NewMenuItem("Clear Bay", func() {
			a.confirmReset()
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Top", func() { a.tabs.SelectIndex(0) }),
		fyne.NewMenuItem("Front", func() { a.tabs.SelectIndex(1) }),
		fyne.NewMenuItem("Top and Front", func() { a.tabs.SelectIndex(2) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Keyboard", func() {
			a.showKeysDialog()
		}),
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About ShelfPack",
		"ShelfPack - Shelf Bay Planner\n\n"+
			"Place, turn and stack tetromino blocks inside a\n"+
			"three-walled bay without overlaps.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

func (a *App) showKeysDialog() {
	dialog.ShowInformation("Keyboard",
		"Left / Right    slide along the back wall\n"+
			"Up / Down       slide away from / towards the front\n"+
			"Page Up / Down  lift / lower\n"+
			"Escape          clear selection",
		a.window)
}

// Build assembles the main window content.
func (a *App) Build() fyne.CanvasObject {
	a.status = widget.NewLabel("")
	a.status.Wrapping = fyne.TextWrapWord
	a.selection = widget.NewLabel("")

	a.topView = a.newTopCanvas(620, 560)
	a.frontView = a.newFrontCanvas(620, 560)
	a.topBoth = a.newTopCanvas(380, 380)
	a.frontBoth = a.newFrontCanvas(380, 380)

	a.tabs = container.NewAppTabs(
		container.NewTabItem("Top", container.NewCenter(a.topView)),
		container.NewTabItem("Front", container.NewCenter(a.frontView)),
		container.NewTabItem("Top and Front", container.NewCenter(
			container.NewHBox(a.topBoth, a.frontBoth))),
	)

	controls := container.NewVScroll(container.NewVBox(
		a.buildShapePanel(),
		a.buildMovePanel(),
		a.buildColourPanel(),
		a.buildBayPanel(),
	))
	controls.SetMinSize(fyne.NewSize(300, 0))

	split := container.NewHSplit(controls, container.NewBorder(nil, nil, nil,
		a.buildShapeListPanel(), a.tabs))
	split.Offset = 0.25

	footer := container.NewBorder(nil, nil, a.selection, nil, a.status)
	content := container.NewBorder(nil, footer, nil, nil, split)

	a.window.Canvas().SetOnTypedKey(a.typedKey)
	a.refresh()
	return content
}

func (a *App) newTopCanvas(w, h float32) *widgets.BayCanvas {
	c := widgets.NewBayCanvas(widgets.ProjectTop, w, h)
	c.OnCellTapped = func(u, v, idx int) {
		if idx != engine.NoSelection {
			a.run(func() error { return a.session.Select(idx) })
			return
		}
		a.run(func() error { return a.session.DragTo(a.floorPoint(u, v)) })
	}
	c.OnCellDragged = func(u, v int) {
		a.run(func() error { return a.session.DragTo(a.floorPoint(u, v)) })
	}
	return c
}

func (a *App) newFrontCanvas(w, h float32) *widgets.BayCanvas {
	c := widgets.NewBayCanvas(widgets.ProjectFront, w, h)
	c.OnCellTapped = func(_, _, idx int) {
		if idx != engine.NoSelection {
			a.run(func() error { return a.session.Select(idx) })
		}
	}
	return c
}

// floorPoint returns the world point at the centre of top-view cell (u, v).
func (a *App) floorPoint(u, v int) model.Vec3 {
	cs := a.session.Dimensions().CellSize
	return model.Vec3{X: (float64(u) + 0.5) * cs, Z: (float64(v) + 0.5) * cs}
}

func (a *App) buildShapePanel() fyne.CanvasObject {
	shapes := container.NewGridWithColumns(3)
	for _, t := range shape.All() {
		t := t
		shapes.Add(newButtonWithTooltip(string(t), theme.ContentAddIcon(),
			fmt.Sprintf("Add a %s block to the bay", t), func() {
				a.addShape(t)
			}))
	}

	rotate := container.NewGridWithColumns(len(engine.RotationSteps))
	for _, deg := range engine.RotationSteps {
		deg := deg
		rotate.Add(newButtonWithTooltip(fmt.Sprintf("%d°", deg), theme.ViewRefreshIcon(),
			fmt.Sprintf("Turn the selected block %d degrees", deg), func() {
				a.run(func() error { return a.session.RotateActive(deg) })
			}))
	}

	a.undoBtn = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), a.undo)
	a.redoBtn = widget.NewButtonWithIcon("Redo", theme.ContentRedoIcon(), a.redo)

	return widget.NewCard("Blocks", "", container.NewVBox(
		shapes,
		widget.NewLabel("Rotate"),
		rotate,
		container.NewGridWithColumns(2, a.undoBtn, a.redoBtn),
	))
}

func (a *App) buildMovePanel() fyne.CanvasObject {
	btn := func(label string, icon fyne.Resource, d model.Direction) fyne.CanvasObject {
		return widget.NewButtonWithIcon(label, icon, func() { a.move(d) })
	}
	floor := container.NewGridWithColumns(3,
		widget.NewLabel(""), btn("Back", theme.MoveUpIcon(), model.DirBackward), widget.NewLabel(""),
		btn("Left", theme.NavigateBackIcon(), model.DirLeft), widget.NewLabel(""), btn("Right", theme.NavigateNextIcon(), model.DirRight),
		widget.NewLabel(""), btn("Front", theme.MoveDownIcon(), model.DirForward), widget.NewLabel(""),
	)
	lift := container.NewGridWithColumns(2,
		btn("Up", theme.MenuDropUpIcon(), model.DirUp),
		btn("Down", theme.MenuDropDownIcon(), model.DirDown),
	)
	return widget.NewCard("Move", "", container.NewVBox(floor, lift))
}

func (a *App) buildColourPanel() fyne.CanvasObject {
	row := container.NewGridWithColumns(len(model.Palette) + 1)
	for _, c := range model.Palette {
		c := c
		row.Add(widget.NewButton(colourName(c), func() {
			a.run(func() error { return a.session.SetActiveColor(c) })
		}))
	}
	row.Add(widget.NewButton("Custom", a.showColourPicker))
	return widget.NewCard("Colour", "", row)
}

func (a *App) buildShapeListPanel() fyne.CanvasObject {
	a.shapeList = widget.NewList(
		func() int { return a.session.View().Len() },
		func() fyne.CanvasObject { return widget.NewLabel("template shape row") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			scene := a.session.View()
			if id >= scene.Len() {
				return
			}
			s := scene.Shapes[id]
			marker := "  "
			if id == scene.ActiveIndex {
				marker = "▶ "
			}
			obj.(*widget.Label).SetText(fmt.Sprintf("%s%d. %s %d° %s", marker, id+1, s.Type, s.Rotation, colourName(s.Color)))
		},
	)
	a.shapeList.OnSelected = func(id widget.ListItemID) {
		if id != a.session.View().ActiveIndex {
			a.run(func() error { return a.session.Select(id) })
		}
	}
	scroll := container.NewVScroll(a.shapeList)
	scroll.SetMinSize(fyne.NewSize(200, 0))
	return widget.NewCard("Placed", "", scroll)
}

func (a *App) typedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape {
		a.session.ClearSelection()
		a.refresh()
		return
	}
	if d, ok := engine.DirectionForKey(string(ev.Name)); ok {
		a.move(d)
	}
}

func (a *App) addShape(t model.ShapeType) {
	a.run(func() error {
		_, err := a.session.AddShape(t)
		return err
	})
}

func (a *App) move(d model.Direction) {
	a.run(func() error { return a.session.Move(d) })
}

func (a *App) undo() {
	a.run(func() error {
		label, err := a.session.Undo()
		if err == nil {
			a.setStatus("Undid " + label)
		}
		return err
	})
}

func (a *App) redo() {
	a.run(func() error {
		label, err := a.session.Redo()
		if err == nil {
			a.setStatus("Redid " + label)
		}
		return err
	})
}

func (a *App) confirmReset() {
	dialog.ShowConfirm("Clear Bay", "Remove every block from the bay?", func(ok bool) {
		if !ok {
			return
		}
		a.session.Reset()
		a.setStatus("Bay cleared")
		a.refresh()
	}, a.window)
}

// run applies one intent. A full bay gets a notice; any other rejection
// only updates the status line.
func (a *App) run(fn func() error) {
	a.setStatus("")
	err := fn()
	if err != nil {
		a.setStatus(err.Error())
	}
	a.refresh()
	if errors.Is(err, engine.ErrPlacementFailed) {
		dialog.ShowInformation("No space", "There is no free space left for this block.", a.window)
	}
}

func (a *App) setStatus(msg string) {
	if a.status != nil {
		a.status.SetText(msg)
	}
}

// refresh pushes session state to every view and autosaves.
func (a *App) refresh() {
	if a.topView == nil {
		return
	}
	st := a.session.State()
	active := a.session.View().ActiveIndex
	for _, c := range []*widgets.BayCanvas{a.topView, a.frontView, a.topBoth, a.frontBoth} {
		c.SetState(st, active)
	}
	a.shapeList.Refresh()
	if active == engine.NoSelection {
		a.shapeList.UnselectAll()
	} else {
		a.shapeList.Select(active)
	}

	if s, ok := a.session.Active(); ok {
		a.selection.SetText(fmt.Sprintf("%s  %d°  at %.0f, %.0f, %.0f", s.Type, s.Rotation, s.Position.X, s.Position.Y, s.Position.Z))
	} else {
		a.selection.SetText(fmt.Sprintf("%d blocks", len(st.Shapes)))
	}

	h := a.session.History()
	setHistoryButton(a.undoBtn, "Undo", h.CanUndo(), h.UndoLabel())
	setHistoryButton(a.redoBtn, "Redo", h.CanRedo(), h.RedoLabel())
	a.syncBayControls(st)

	if a.config.AutoSave {
		if err := project.SaveState(a.store, st); err != nil {
			a.logger.Printf("[STATE] autosave failed: %v", err)
		}
	}
}

func setHistoryButton(b *widget.Button, verb string, enabled bool, label string) {
	if enabled {
		b.SetText(verb + " " + label)
		b.Enable()
		return
	}
	b.SetText(verb)
	b.Disable()
}

// paletteName returns the lower-case name of a named colour.
func paletteName(c model.Color) (string, bool) {
	for name, pc := range wallColourChoices {
		if pc == c {
			return name, true
		}
	}
	return "", false
}

// colourName returns the display name of c, or its hex code.
func colourName(c model.Color) string {
	if name, ok := paletteName(c); ok {
		return strings.ToUpper(name[:1]) + name[1:]
	}
	return c.Hex()
}
