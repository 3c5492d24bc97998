// Package engine owns the bay scene and applies every placement, move,
// rotation and colour intent to it. Rejected intents leave the scene
// untouched.
package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/piwi3910/shelfpack/internal/grid"
	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/shape"
)

// Options configures a new Session.
type Options struct {
	Dimensions model.Dimensions
	WallColors model.WallColors
	ShapeColor model.Color
	Placement  PlacementConfig
	Seed       int64 // 0 picks a time-based seed
	Logger     *log.Logger
}

// DefaultOptions returns options for a stock 6x6x6 bay.
func DefaultOptions() Options {
	return Options{
		Dimensions: model.DefaultDimensions(),
		WallColors: model.DefaultWallColors(),
		ShapeColor: model.DefaultShapeColor,
		Placement:  DefaultPlacementConfig(),
	}
}

// OptionsFromConfig builds session options from the saved app preferences.
func OptionsFromConfig(cfg model.AppConfig) Options {
	opts := DefaultOptions()
	if cfg.DefaultDimensions.Validate() == nil {
		opts.Dimensions = cfg.DefaultDimensions
	}
	opts.WallColors = cfg.DefaultWallColors
	opts.ShapeColor = cfg.DefaultShapeColor
	if cfg.PlacementAttempts > 0 {
		opts.Placement.MaxAttempts = cfg.PlacementAttempts
	}
	opts.Placement.Exhaustive = cfg.ExhaustivePlacement
	opts.Seed = cfg.Seed
	return opts
}

// State is everything a save captures: the bay, the wall colours and the shapes.
type State struct {
	Dimensions model.Dimensions    `json:"dimensions"`
	Colors     model.WallColors    `json:"colors"`
	Shapes     []model.PlacedShape `json:"shapes"`
}

// Session is the single owner of a bay scene. It is not safe for concurrent
// use; callers serialize intents.
type Session struct {
	dims       model.Dimensions
	walls      model.WallColors
	shapeColor model.Color
	scene      Scene
	grid       *grid.Grid
	placer     *Placer
	occ        *occupancy
	history    *History
	batching   bool
	logger     *log.Logger
}

// NewSession creates an empty session.
func NewSession(opts Options) (*Session, error) {
	if err := opts.Dimensions.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		dims:       opts.Dimensions,
		walls:      opts.WallColors,
		shapeColor: opts.ShapeColor,
		scene:      NewScene(),
		grid:       grid.ForDimensions(opts.Dimensions),
		placer:     NewPlacer(opts.Placement, seed),
		occ:        newOccupancy(64),
		history:    NewHistory(),
		logger:     logger,
	}, nil
}

// Dimensions returns the current bay size.
func (s *Session) Dimensions() model.Dimensions { return s.dims }

// WallColors returns the current wall colours.
func (s *Session) WallColors() model.WallColors { return s.walls }

// View returns a copy of the scene for rendering.
func (s *Session) View() Scene { return s.scene.Clone() }

// Grid returns a copy of the placement grid.
func (s *Session) Grid() *grid.Grid { return s.grid.Clone() }

// Active returns a copy of the selected shape.
func (s *Session) Active() (model.PlacedShape, bool) { return s.scene.ActiveShape() }

// History exposes the undo/redo stacks.
func (s *Session) History() *History { return s.history }

// State returns a deep copy of the savable state.
func (s *Session) State() State {
	view := s.scene.Clone()
	return State{Dimensions: s.dims, Colors: s.walls, Shapes: view.Shapes}
}

// AddShape places a new shape of type t on the first free cell the placer
// finds and selects it.
func (s *Session) AddShape(t model.ShapeType) (model.PlacedShape, error) {
	if !t.Valid() {
		s.logger.Printf("add shape %q rejected: unknown type", t)
		return model.PlacedShape{}, fmt.Errorf("%w: %q", ErrUnknownShape, t)
	}
	cfg := shape.ConfigurationFor(t)
	row, col, ok := s.placer.Find(s.grid, cfg)
	if !ok {
		s.logger.Printf("add shape %s rejected: no free cell in %dx%d grid", t, s.grid.Rows(), s.grid.Cols())
		return model.PlacedShape{}, fmt.Errorf("%w: %s", ErrPlacementFailed, t)
	}

	s.record("Add " + t.String())
	s.grid.Mark(row, col, cfg, true)
	placed := model.NewPlacedShape(t, cfg, anchorFor(row, col, s.dims.CellSize))
	placed.Color = s.shapeColor
	s.scene.Shapes = append(s.scene.Shapes, placed)
	s.scene.ActiveIndex = len(s.scene.Shapes) - 1
	return placed.Clone(), nil
}

// Select makes the shape at index the active shape.
func (s *Session) Select(index int) error {
	if index < 0 || index >= len(s.scene.Shapes) {
		s.logger.Printf("select %d rejected: scene has %d shapes", index, len(s.scene.Shapes))
		return fmt.Errorf("%w: index %d", ErrInvalidSelection, index)
	}
	s.scene.ActiveIndex = index
	return nil
}

// ClearSelection drops the active shape.
func (s *Session) ClearSelection() {
	s.scene.ActiveIndex = NoSelection
}

// SetColor recolours the shape at index.
func (s *Session) SetColor(index int, c model.Color) error {
	if index < 0 || index >= len(s.scene.Shapes) {
		s.logger.Printf("colour change for %d rejected: scene has %d shapes", index, len(s.scene.Shapes))
		return fmt.Errorf("%w: index %d", ErrInvalidSelection, index)
	}
	if s.scene.Shapes[index].Color == c {
		return nil
	}
	s.record("Colour")
	s.scene.Shapes[index].Color = c
	return nil
}

// SetActiveColor recolours the active shape.
func (s *Session) SetActiveColor(c model.Color) error {
	return s.SetColor(s.scene.ActiveIndex, c)
}

// SetWallColors replaces the wall colours.
func (s *Session) SetWallColors(w model.WallColors) {
	if w == s.walls {
		return
	}
	s.record("Wall colours")
	s.walls = w
}

// SetDimensions resizes the bay. Changing the floor size rebuilds an empty
// placement grid; existing shapes are kept where they are and are not
// re-checked. Changing the cell size rescales shape anchors so every shape
// keeps its cells.
func (s *Session) SetDimensions(d model.Dimensions) error {
	if err := d.Validate(); err != nil {
		s.logger.Printf("dimension change rejected: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}
	if d == s.dims {
		return nil
	}
	s.record("Resize bay")
	if d.CellSize != s.dims.CellSize {
		scale := d.CellSize / s.dims.CellSize
		for i := range s.scene.Shapes {
			s.scene.Shapes[i].Position = s.scene.Shapes[i].Position.Scale(scale)
		}
	}
	if d.WidthBack != s.dims.WidthBack || d.DepthFront != s.dims.DepthFront {
		s.grid = grid.ForDimensions(d)
	}
	s.dims = d
	return nil
}

// Reset removes every shape and frees the grid.
func (s *Session) Reset() {
	if len(s.scene.Shapes) == 0 && s.grid.OccupiedCount() == 0 {
		return
	}
	s.record("Clear bay")
	s.scene = NewScene()
	s.grid = grid.ForDimensions(s.dims)
}

// Restore replaces the whole session state with st. The grid is rebuilt
// empty and the selection cleared, as after a bay resize.
func (s *Session) Restore(st State) error {
	if err := st.Dimensions.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}
	s.record("Load")
	s.dims = st.Dimensions
	s.walls = st.Colors
	s.scene = Scene{Shapes: make([]model.PlacedShape, len(st.Shapes)), ActiveIndex: NoSelection}
	for i, sh := range st.Shapes {
		s.scene.Shapes[i] = sh.Clone()
	}
	s.grid = grid.ForDimensions(st.Dimensions)
	return nil
}

// Undo reverts the last change and returns its label.
func (s *Session) Undo() (string, error) {
	snap, ok := s.history.Undo(s.snapshot(""))
	if !ok {
		return "", ErrNothingToUndo
	}
	s.apply(snap)
	return snap.Label, nil
}

// Redo re-applies the last undone change and returns its label.
func (s *Session) Redo() (string, error) {
	snap, ok := s.history.Redo(s.snapshot(""))
	if !ok {
		return "", ErrNothingToRedo
	}
	s.apply(snap)
	return snap.Label, nil
}

// record pushes the current state before a mutation.
func (s *Session) record(label string) {
	if s.batching {
		return
	}
	s.history.Push(s.snapshot(label))
}

func (s *Session) snapshot(label string) Snapshot {
	return MakeSnapshot(s.scene, s.dims, s.walls, s.grid, label)
}

func (s *Session) apply(snap Snapshot) {
	s.scene = snap.Scene.Clone()
	s.dims = snap.Dimensions
	s.walls = snap.Walls
	s.grid = snap.Grid.Clone()
}
