package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/shape"
)

func TestNewGridIsEmpty(t *testing.T) {
	g := New(6, 4)
	assert.Equal(t, 6, g.Rows())
	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, 0, g.OccupiedCount())

	row, col := g.Center()
	assert.Equal(t, 3, row)
	assert.Equal(t, 2, col)
}

func TestNegativeSizeClampsToZero(t *testing.T) {
	g := New(-1, 3)
	assert.Equal(t, 0, g.Rows())
	assert.False(t, g.CanPlace(0, 0, shape.ConfigurationFor(model.ShapeO)))
}

func TestOverflowingSizeGivesEmptyGrid(t *testing.T) {
	g := New(1<<32, 1<<32)
	assert.Equal(t, 0, g.Rows())
	assert.Equal(t, 0, g.Cols())
	row, col := g.Center()
	assert.False(t, g.InBounds(row, col))
	assert.False(t, g.CanPlace(row, col, shape.ConfigurationFor(model.ShapeO)))
}

func TestForDimensions(t *testing.T) {
	g := ForDimensions(model.Dimensions{CellSize: 8, WidthBack: 5, HeightLeft: 2, DepthFront: 7})
	assert.Equal(t, 7, g.Rows())
	assert.Equal(t, 5, g.Cols())
}

func TestCanPlaceBounds(t *testing.T) {
	g := New(6, 6)
	i := shape.ConfigurationFor(model.ShapeI)

	assert.True(t, g.CanPlace(0, 0, i))
	assert.True(t, g.CanPlace(5, 2, i))
	assert.False(t, g.CanPlace(0, 3, i), "I spans four columns")
	assert.False(t, g.CanPlace(-1, 0, i))
	assert.False(t, g.CanPlace(6, 0, i))
}

func TestCanPlaceIsMonotonicAfterMark(t *testing.T) {
	g := New(6, 6)
	for _, st := range shape.All() {
		cfg := shape.ConfigurationFor(st)
		g.Reset()
		if !g.CanPlace(2, 1, cfg) {
			t.Fatalf("%s: expected empty grid to accept placement", st)
		}
		g.Mark(2, 1, cfg, true)
		if g.CanPlace(2, 1, cfg) {
			t.Errorf("%s: placement accepted twice at the same cell", st)
		}
		assert.Equal(t, 4, g.OccupiedCount(), st)
	}
}

func TestMarkIgnoresOutOfBounds(t *testing.T) {
	g := New(2, 2)
	g.Mark(1, 1, shape.ConfigurationFor(model.ShapeO), true)
	assert.Equal(t, 1, g.OccupiedCount())
	assert.True(t, g.Occupied(1, 1))
	assert.False(t, g.Occupied(5, 5))
}

func TestMarkFalseReleases(t *testing.T) {
	g := New(4, 4)
	cfg := shape.ConfigurationFor(model.ShapeT)
	g.Mark(0, 0, cfg, true)
	g.Mark(0, 0, cfg, false)
	assert.Equal(t, 0, g.OccupiedCount())
}

func TestCloneIsIndependent(t *testing.T) {
	g := New(3, 3)
	cp := g.Clone()
	cp.Mark(0, 0, model.Configuration{{Z: 0, X: 0, Y: 0}}, true)
	assert.False(t, g.Occupied(0, 0))
	assert.True(t, cp.Occupied(0, 0))
}

func TestString(t *testing.T) {
	g := New(2, 3)
	g.Mark(0, 1, model.Configuration{{Z: 0, X: 0, Y: 0}, {Z: 1, X: 1, Y: 0}}, true)
	assert.Equal(t, ".#.\n..#\n", g.String())
}
