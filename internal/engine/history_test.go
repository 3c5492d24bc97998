package engine

import (
	"testing"

	"github.com/piwi3910/shelfpack/internal/grid"
	"github.com/piwi3910/shelfpack/internal/model"
)

func sceneWith(n int) Scene {
	sc := NewScene()
	for i := 0; i < n; i++ {
		sc.Shapes = append(sc.Shapes, placedAt(model.ShapeO, 0, 2*i, 8))
	}
	return sc
}

func snap(n int, label string) Snapshot {
	return MakeSnapshot(sceneWith(n), model.DefaultDimensions(), model.DefaultWallColors(), grid.New(6, 6), label)
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestHistoryPushAndUndo(t *testing.T) {
	h := NewHistory()
	h.Push(snap(0, "Add O"))

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}
	if h.UndoLabel() != "Add O" {
		t.Errorf("expected undo label 'Add O', got %q", h.UndoLabel())
	}

	restored, ok := h.Undo(snap(1, ""))
	if !ok {
		t.Fatal("undo should succeed")
	}
	if restored.Scene.Len() != 0 {
		t.Errorf("expected 0 shapes after undo, got %d", restored.Scene.Len())
	}
	if h.RedoLabel() != "Add O" {
		t.Errorf("expected redo label 'Add O', got %q", h.RedoLabel())
	}
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory()
	h.Push(snap(0, "first"))
	h.Push(snap(1, "second"))

	restored, ok := h.Undo(snap(2, ""))
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if restored.Scene.Len() != 1 {
		t.Errorf("expected 1 shape, got %d", restored.Scene.Len())
	}

	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if redone.Scene.Len() != 2 {
		t.Errorf("expected 2 shapes after redo, got %d", redone.Scene.Len())
	}
	if redone.Label != "second" {
		t.Errorf("expected label 'second', got %q", redone.Label)
	}
}

func TestHistoryPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(snap(0, "a"))
	h.Undo(snap(1, ""))
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}
	h.Push(snap(0, "b"))
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
}

func TestHistoryMaxDepth(t *testing.T) {
	h := NewHistory()
	for i := 0; i < defaultMaxDepth+10; i++ {
		h.Push(snap(0, "step"))
	}
	if len(h.undoStack) != defaultMaxDepth {
		t.Errorf("expected %d snapshots, got %d", defaultMaxDepth, len(h.undoStack))
	}
}

func TestHistoryEmptyStacks(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Undo(snap(0, "")); ok {
		t.Error("undo on empty history should fail")
	}
	if _, ok := h.Redo(snap(0, "")); ok {
		t.Error("redo on empty history should fail")
	}
	if h.UndoLabel() != "" || h.RedoLabel() != "" {
		t.Error("labels should be empty")
	}
}

func TestMakeSnapshotDeepCopies(t *testing.T) {
	sc := sceneWith(1)
	g := grid.New(6, 6)
	s := MakeSnapshot(sc, model.DefaultDimensions(), model.DefaultWallColors(), g, "x")

	sc.Shapes[0].Configuration[0].X = 42
	g.Mark(0, 0, model.Configuration{{Z: 0, X: 0, Y: 0}}, true)

	if s.Scene.Shapes[0].Configuration[0].X == 42 {
		t.Error("snapshot shares configuration storage with the scene")
	}
	if s.Grid.OccupiedCount() != 0 {
		t.Error("snapshot shares grid storage")
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory()
	h.Push(snap(0, "a"))
	h.Undo(snap(0, ""))
	h.Push(snap(0, "b"))
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("clear should empty both stacks")
	}
}
