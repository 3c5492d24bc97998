package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/shelfpack/internal/bay"
	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/model"
)

func TestExportDXF_WritesGridAndShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bay.dxf")
	st := buildTestState()

	require.NoError(t, ExportDXF(path, st))

	drawing, err := dxf.Open(path)
	require.NoError(t, err)

	lines := 0
	for _, ent := range drawing.Entities() {
		if _, ok := ent.(*entity.Line); ok {
			lines++
		}
	}

	blocks := 0
	for _, s := range st.Shapes {
		blocks += len(s.Configuration)
	}
	assert.Equal(t, len(bay.Lines(st.Dimensions))+12*blocks, lines)
}

func TestExportDXF_EmptyBay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	st := engine.State{Dimensions: model.DefaultDimensions()}

	require.NoError(t, ExportDXF(path, st))
}

func TestExportDXF_InvalidDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dxf")
	st := engine.State{Dimensions: model.Dimensions{CellSize: 0, WidthBack: 6, HeightLeft: 6, DepthFront: 6}}

	assert.Error(t, ExportDXF(path, st))
}
