package engine

import (
	"github.com/piwi3910/shelfpack/internal/grid"
	"github.com/piwi3910/shelfpack/internal/model"
)

const defaultMaxDepth = 50

// Snapshot captures the session at a point in time.
type Snapshot struct {
	Scene      Scene
	Dimensions model.Dimensions
	Walls      model.WallColors
	Grid       *grid.Grid
	Label      string // Human-readable description (e.g. "Add L")
}

// MakeSnapshot deep-copies the given state into a snapshot.
func MakeSnapshot(scene Scene, dims model.Dimensions, walls model.WallColors, g *grid.Grid, label string) Snapshot {
	return Snapshot{
		Scene:      scene.Clone(),
		Dimensions: dims,
		Walls:      walls,
		Grid:       g.Clone(),
		Label:      label,
	}
}

// History manages undo/redo stacks of session snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// Call it before the change is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot and parks current on the redo stack
// under the same label.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	current.Label = last.Label
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent redo snapshot and parks current on the undo
// stack under the same label.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	current.Label = last.Label
	h.undoStack = append(h.undoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one snapshot to undo.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one snapshot to redo.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoLabel returns the label of the change Undo would revert.
func (h *History) UndoLabel() string {
	if len(h.undoStack) == 0 {
		return ""
	}
	return h.undoStack[len(h.undoStack)-1].Label
}

// RedoLabel returns the label of the change Redo would re-apply.
func (h *History) RedoLabel() string {
	if len(h.redoStack) == 0 {
		return ""
	}
	return h.redoStack[len(h.redoStack)-1].Label
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// dropLast discards the most recent undo snapshot.
func (h *History) dropLast() {
	if len(h.undoStack) > 0 {
		h.undoStack = h.undoStack[:len(h.undoStack)-1]
	}
}
