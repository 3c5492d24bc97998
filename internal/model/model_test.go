package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShapeType(t *testing.T) {
	for _, s := range []string{"L", "j", " t ", "O", "z", "I"} {
		st, err := ParseShapeType(s)
		require.NoError(t, err, s)
		assert.True(t, st.Valid())
	}
	_, err := ParseShapeType("S")
	assert.Error(t, err)
	_, err = ParseShapeType("")
	assert.Error(t, err)
}

func TestConfigurationSameSetIgnoresOrder(t *testing.T) {
	a := Configuration{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}}
	b := Configuration{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}}
	assert.True(t, a.SameSet(b))
	assert.False(t, a.Equal(b))
	assert.False(t, a.SameSet(Configuration{{0, 0, 0}, {0, 0, 0}, {0, 1, 0}}))
}

func TestConfigurationHasDuplicates(t *testing.T) {
	assert.False(t, Configuration{{0, 0, 0}, {0, 1, 0}}.HasDuplicates())
	assert.True(t, Configuration{{0, 1, 0}, {0, 1, 0}}.HasDuplicates())
}

func TestConfigurationExtents(t *testing.T) {
	c := Configuration{{0, 0, 1}, {1, 3, -2}, {2, 1, 0}}
	assert.Equal(t, -2, c.MinY())
	assert.Equal(t, 3, c.MaxX())
	assert.Equal(t, 1, c.MaxY())

	z, x, y := Configuration{{0, 0, 0}, {0, 2, 0}}.Center()
	assert.Equal(t, 0.0, z)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 0.0, y)
}

func TestConfigurationCloneIsIndependent(t *testing.T) {
	c := Configuration{{0, 0, 0}}
	cp := c.Clone()
	cp[0].X = 5
	assert.Equal(t, 0, c[0].X)
	assert.Nil(t, Configuration(nil).Clone())
}

func TestNewPlacedShape(t *testing.T) {
	cfg := Configuration{{0, 0, 0}, {0, 1, 0}}
	s := NewPlacedShape(ShapeO, cfg, Vec3{X: 4, Y: 4, Z: 4})
	assert.Len(t, s.ID, 8)
	assert.Equal(t, 0, s.Rotation)
	assert.Equal(t, DefaultShapeColor, s.Color)

	cfg[0].X = 9
	assert.Equal(t, 0, s.Configuration[0].X, "configuration must be copied")
}

func TestDirectionDelta(t *testing.T) {
	cases := map[Direction][3]int{
		DirLeft:     {-1, 0, 0},
		DirRight:    {1, 0, 0},
		DirUp:       {0, 1, 0},
		DirDown:     {0, -1, 0},
		DirForward:  {0, 0, 1},
		DirBackward: {0, 0, -1},
	}
	for d, want := range cases {
		dx, dy, dz := d.Delta()
		assert.Equal(t, want, [3]int{dx, dy, dz}, string(d))
	}

	d, err := ParseDirection("Forward")
	require.NoError(t, err)
	assert.Equal(t, DirForward, d)
	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestColorParseAndJSON(t *testing.T) {
	c, err := ParseColor("#00ff00")
	require.NoError(t, err)
	assert.Equal(t, ColorGreen, c)

	c, err = ParseColor("fff")
	require.NoError(t, err)
	assert.Equal(t, ColorWhite, c)

	_, err = ParseColor("#12")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)

	data, err := json.Marshal(ColorBlue)
	require.NoError(t, err)
	assert.Equal(t, `"#0000ff"`, string(data))

	var back Color
	require.NoError(t, json.Unmarshal([]byte(`"#FF0000"`), &back))
	assert.Equal(t, ColorRed, back)
}

func TestDimensionsValidate(t *testing.T) {
	assert.NoError(t, DefaultDimensions().Validate())

	d := DefaultDimensions()
	d.CellSize = 0
	assert.Error(t, d.Validate())

	d = DefaultDimensions()
	d.DepthFront = 0
	assert.Error(t, d.Validate())

	d = DefaultDimensions()
	d.WidthBack = MaxCells
	assert.NoError(t, d.Validate())
	d.WidthBack = MaxCells + 1
	assert.Error(t, d.Validate())

	d = Dimensions{CellSize: 8, WidthBack: 1 << 32, HeightLeft: 1, DepthFront: 1 << 32}
	assert.Error(t, d.Validate())
	assert.NoError(t, d.Clamp().Validate())
}

func TestDimensionsWorldExtents(t *testing.T) {
	d := Dimensions{CellSize: 10, WidthBack: 3, HeightLeft: 4, DepthFront: 5}
	assert.Equal(t, 30.0, d.Width())
	assert.Equal(t, 40.0, d.Height())
	assert.Equal(t, 50.0, d.Depth())
}

func TestDimensionsClamp(t *testing.T) {
	d := Dimensions{CellSize: 30, WidthBack: 0, HeightLeft: 50, DepthFront: 7}.Clamp()
	assert.Equal(t, MaxCellSize, d.CellSize)
	assert.Equal(t, MinCells, d.WidthBack)
	assert.Equal(t, MaxCells, d.HeightLeft)
	assert.Equal(t, 7, d.DepthFront)
}

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	if cfg.PlacementAttempts != 100 {
		t.Errorf("expected 100 placement attempts, got %d", cfg.PlacementAttempts)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentFiles == nil {
		t.Error("RecentFiles should not be nil")
	}
	if cfg.DefaultDimensions != DefaultDimensions() {
		t.Errorf("unexpected default dimensions %+v", cfg.DefaultDimensions)
	}
}

func TestAddRecentFile(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentFile("a", 2)
	cfg.AddRecentFile("b", 2)
	cfg.AddRecentFile("a", 2)
	cfg.AddRecentFile("c", 2)
	assert.Equal(t, []string{"c", "a"}, cfg.RecentFiles)
}
