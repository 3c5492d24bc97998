package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/piwi3910/shelfpack/internal/bay"
	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/importer"
	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
)

type stateResponse struct {
	Dimensions  model.Dimensions    `json:"dimensions"`
	Colors      model.WallColors    `json:"colors"`
	Shapes      []model.PlacedShape `json:"shapes"`
	ActiveIndex int                 `json:"activeIndex"`
	CanUndo     bool                `json:"canUndo"`
	CanRedo     bool                `json:"canRedo"`
	UndoLabel   string              `json:"undoLabel,omitempty"`
	RedoLabel   string              `json:"redoLabel,omitempty"`
}

type addRequest struct {
	Type string `json:"type"`
}

type moveRequest struct {
	Direction string `json:"direction"`
}

type rotateRequest struct {
	Degrees int `json:"degrees"`
}

type colorRequest struct {
	Color model.Color `json:"color"`
}

// snapshot must be called with s.mu held.
func (s *Server) snapshot() stateResponse {
	view := s.session.View()
	h := s.session.History()
	shapes := view.Shapes
	if shapes == nil {
		shapes = []model.PlacedShape{}
	}
	return stateResponse{
		Dimensions:  s.session.Dimensions(),
		Colors:      s.session.WallColors(),
		Shapes:      shapes,
		ActiveIndex: view.ActiveIndex,
		CanUndo:     h.CanUndo(),
		CanRedo:     h.CanRedo(),
		UndoLabel:   h.UndoLabel(),
		RedoLabel:   h.RedoLabel(),
	}
}

var (
	errEmptyBody   = errors.New("empty body")
	errInvalidJSON = errors.New("invalid json")
	errBadIndex    = errors.New("index must be a number")
)

// decode reads the JSON body into v. The returned error is meant for the client.
func decode(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return errInvalidJSON
	}
	return nil
}

// intent runs fn under the lock and answers with the resulting state.
func (s *Server) intent(c fiber.Ctx, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(); err != nil {
		return failErr(c, err)
	}
	return c.JSON(s.snapshot())
}

func indexParam(c fiber.Ctx) (int, error) {
	idx, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return 0, errBadIndex
	}
	return idx, nil
}

// GetState returns the scene, the bay and the undo state.
func (s *Server) GetState(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(s.snapshot())
}

// GetGrid returns the placement grid as rows of '#' and '.'.
func (s *Server) GetGrid(c fiber.Ctx) error {
	s.mu.Lock()
	g := s.session.Grid()
	s.mu.Unlock()

	rows := make([]string, 0, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		var b bytes.Buffer
		for col := 0; col < g.Cols(); col++ {
			if g.Occupied(r, col) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		rows = append(rows, b.String())
	}
	return c.JSON(fiber.Map{
		"rows":     g.Rows(),
		"cols":     g.Cols(),
		"occupied": g.OccupiedCount(),
		"cells":    rows,
	})
}

// GetBay returns the reference grid lines, labels and camera presets.
func (s *Server) GetBay(c fiber.Ctx) error {
	s.mu.Lock()
	d := s.session.Dimensions()
	walls := s.session.WallColors()
	s.mu.Unlock()

	views := make([]fiber.Map, 0, len(bay.Views))
	for _, v := range bay.Views {
		views = append(views, fiber.Map{
			"name":       v.Name,
			"title":      v.Title,
			"camera":     v.Camera,
			"background": v.Background(walls),
		})
	}
	return c.JSON(fiber.Map{
		"lines":  bay.Lines(d),
		"labels": bay.Labels(d),
		"views":  views,
	})
}

// GetReport lists overlapping shape pairs and shapes outside the bay.
func (s *Server) GetReport(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	collisions := s.session.Collisions()
	if collisions == nil {
		collisions = [][2]int{}
	}
	outside := s.session.OutOfBounds()
	if outside == nil {
		outside = []int{}
	}
	return c.JSON(fiber.Map{"collisions": collisions, "outOfBounds": outside})
}

// AddShape places a new shape and answers 201 with it.
func (s *Server) AddShape(c fiber.Ctx) error {
	var req addRequest
	if err := decode(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	placed, err := s.session.AddShape(model.ShapeType(req.Type))
	if err != nil {
		return failErr(c, err)
	}
	return c.Status(http.StatusCreated).JSON(placed)
}

// Select makes the shape at :index active.
func (s *Server) Select(c fiber.Ctx) error {
	idx, err := indexParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	return s.intent(c, func() error { return s.session.Select(idx) })
}

// ClearSelection drops the active shape.
func (s *Server) ClearSelection(c fiber.Ctx) error {
	return s.intent(c, func() error {
		s.session.ClearSelection()
		return nil
	})
}

// SetColor recolours the shape at :index.
func (s *Server) SetColor(c fiber.Ctx) error {
	idx, err := indexParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	var req colorRequest
	if err := decode(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	return s.intent(c, func() error { return s.session.SetColor(idx, req.Color) })
}

// Move shifts the active shape one cell.
func (s *Server) Move(c fiber.Ctx) error {
	var req moveRequest
	if err := decode(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	return s.intent(c, func() error { return s.session.Move(model.Direction(req.Direction)) })
}

// Rotate turns the active shape.
func (s *Server) Rotate(c fiber.Ctx) error {
	var req rotateRequest
	if err := decode(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	return s.intent(c, func() error { return s.session.RotateActive(req.Degrees) })
}

// Drag moves the active shape under a world point.
func (s *Server) Drag(c fiber.Ctx) error {
	var req model.Vec3
	if err := decode(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	return s.intent(c, func() error { return s.session.DragTo(req) })
}

// Key applies a keyboard key the way the desktop app does.
func (s *Server) Key(c fiber.Ctx) error {
	key := c.Params("key")
	dir, ok := engine.DirectionForKey(key)
	if !ok {
		return fail(c, http.StatusBadRequest, fmt.Sprintf("key %q is not bound", key))
	}
	return s.intent(c, func() error { return s.session.Move(dir) })
}

// SetWalls replaces the wall colours.
func (s *Server) SetWalls(c fiber.Ctx) error {
	var req model.WallColors
	if err := decode(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	return s.intent(c, func() error {
		s.session.SetWallColors(req)
		return nil
	})
}

// SetDimensions resizes the bay.
func (s *Server) SetDimensions(c fiber.Ctx) error {
	var req model.Dimensions
	if err := decode(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	return s.intent(c, func() error { return s.session.SetDimensions(req) })
}

// ImportOrders reads a CSV order list from the body and places the shapes.
func (s *Server) ImportOrders(c fiber.Ctx) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return fail(c, http.StatusBadRequest, "empty body")
	}
	res := importer.ImportCSVFromReader(bytes.NewReader(body), importer.DetectCSVDelimiter(body))
	if len(res.Orders) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":    "no usable orders",
			"errors":   res.Errors,
			"warnings": res.Warnings,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	batch := s.session.AddBatch(res.Orders)
	s.logger.Printf("[ORDERS] placed %d of %d shapes", len(batch.Placed), res.ShapeCount())
	return c.JSON(fiber.Map{
		"placed":    len(batch.Placed),
		"requested": res.ShapeCount(),
		"errors":    append(res.Errors, batch.Errors...),
		"warnings":  res.Warnings,
		"state":     s.snapshot(),
	})
}

// Reset clears the bay.
func (s *Server) Reset(c fiber.Ctx) error {
	return s.intent(c, func() error {
		s.session.Reset()
		return nil
	})
}

// Undo reverts the last change.
func (s *Server) Undo(c fiber.Ctx) error {
	return s.intent(c, func() error {
		_, err := s.session.Undo()
		return err
	})
}

// Redo re-applies the last undone change.
func (s *Server) Redo(c fiber.Ctx) error {
	return s.intent(c, func() error {
		_, err := s.session.Redo()
		return err
	})
}

// Save writes the bay to the store.
func (s *Server) Save(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := project.SaveState(s.store, s.session.State()); err != nil {
		s.logger.Printf("[STORE] save failed: %v", err)
		return fail(c, http.StatusInternalServerError, "save failed")
	}
	return c.JSON(fiber.Map{"status": "saved"})
}

// Load restores the bay from the store. A missing or damaged save is a 404.
func (s *Server) Load(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok, err := project.LoadState(s.store)
	if err != nil {
		s.logger.Printf("[STORE] load failed: %v", err)
		return fail(c, http.StatusInternalServerError, "load failed")
	}
	if !ok {
		return fail(c, http.StatusNotFound, "no saved state")
	}
	if err := s.session.Restore(st); err != nil {
		return failErr(c, err)
	}
	return c.JSON(s.snapshot())
}
