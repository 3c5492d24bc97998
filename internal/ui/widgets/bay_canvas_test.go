package widgets

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
)

func TestCellGeometryTopView(t *testing.T) {
	g := newCellGeometry(6, 4, 600, 600, false)
	assert.Equal(t, float32(100), g.cell)

	u, v, ok := g.cellAt(fyne.NewPos(labelMargin+250, 10))
	assert.True(t, ok)
	assert.Equal(t, 2, u)
	assert.Equal(t, 0, v)

	assert.Equal(t, fyne.NewPos(labelMargin+200, 300), g.origin(2, 3))

	_, _, ok = g.cellAt(fyne.NewPos(5, 10))
	assert.False(t, ok)
	_, _, ok = g.cellAt(fyne.NewPos(labelMargin+10, 450))
	assert.False(t, ok)
}

func TestCellGeometryFrontViewCountsLevelsUpward(t *testing.T) {
	g := newCellGeometry(4, 5, 400, 500, true)

	// The bottom row of pixels is level 0.
	u, v, ok := g.cellAt(fyne.NewPos(labelMargin+50, 490))
	assert.True(t, ok)
	assert.Equal(t, 0, u)
	assert.Equal(t, 0, v)

	_, v, _ = g.cellAt(fyne.NewPos(labelMargin+50, 10))
	assert.Equal(t, 4, v)

	for level := 0; level < 5; level++ {
		p := g.origin(1, level)
		_, got, ok := g.cellAt(fyne.NewPos(p.X+1, p.Y+1))
		assert.True(t, ok)
		assert.Equal(t, level, got)
	}
}

func TestCellGeometryEmpty(t *testing.T) {
	g := newCellGeometry(0, 0, 100, 100, false)
	_, _, ok := g.cellAt(fyne.NewPos(30, 30))
	assert.False(t, ok)
}
