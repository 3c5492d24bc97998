package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
)

func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	quiet := log.New(io.Discard, "", 0)
	opts := engine.DefaultOptions()
	opts.Seed = 11
	opts.Logger = quiet
	session, err := engine.NewSession(opts)
	require.NoError(t, err)

	srv := New(session, project.NewMemoryStore(), quiet)
	app := NewApp(&Config{Environment: "test", ReadTimeout: 5, WriteTimeout: 5}, srv)
	return app, srv
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

func decodeState(t *testing.T, data []byte) stateResponse {
	t.Helper()
	var st stateResponse
	require.NoError(t, json.Unmarshal(data, &st))
	return st
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := do(t, app, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"alive"}`, string(body))
}

func TestEmptyState(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := do(t, app, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	st := decodeState(t, body)
	assert.Equal(t, model.DefaultDimensions(), st.Dimensions)
	assert.Empty(t, st.Shapes)
	assert.Equal(t, engine.NoSelection, st.ActiveIndex)
	assert.False(t, st.CanUndo)
	assert.Contains(t, string(body), `"shapes":[]`)
}

func TestAddShapeAndUndo(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := do(t, app, http.MethodPost, "/api/shapes", `{"type":"T"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var placed model.PlacedShape
	require.NoError(t, json.Unmarshal(body, &placed))
	assert.Equal(t, model.ShapeT, placed.Type)
	assert.Equal(t, model.Vec3{X: 28, Y: 4, Z: 28}, placed.Position)

	_, body = do(t, app, http.MethodGet, "/api/state", "")
	st := decodeState(t, body)
	require.Len(t, st.Shapes, 1)
	assert.Equal(t, 0, st.ActiveIndex)
	assert.Equal(t, "Add T", st.UndoLabel)

	resp, body = do(t, app, http.MethodPost, "/api/undo", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st = decodeState(t, body)
	assert.Empty(t, st.Shapes)
	assert.True(t, st.CanRedo)

	resp, _ = do(t, app, http.MethodPost, "/api/undo", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAddShapeRejectsBadInput(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := do(t, app, http.MethodPost, "/api/shapes", `{"type":"S"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/shapes", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/shapes", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMoveWithoutSelectionIsNotFound(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := do(t, app, http.MethodPost, "/api/active/move", `{"direction":"left"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "error")
}

func TestMoveRotateAndBlocked(t *testing.T) {
	app, _ := newTestApp(t)
	do(t, app, http.MethodPost, "/api/shapes", `{"type":"O"}`)

	resp, body := do(t, app, http.MethodPost, "/api/active/move", `{"direction":"left"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decodeState(t, body)
	assert.Equal(t, 20.0, st.Shapes[0].Position.X)

	resp, _ = do(t, app, http.MethodPost, "/api/active/move", `{"direction":"down"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/active/move", `{"direction":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, http.MethodPost, "/api/active/rotate", `{"degrees":90}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 90, decodeState(t, body).Shapes[0].Rotation)

	resp, _ = do(t, app, http.MethodPost, "/api/active/rotate", `{"degrees":45}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestKeyBinding(t *testing.T) {
	app, _ := newTestApp(t)
	do(t, app, http.MethodPost, "/api/shapes", `{"type":"O"}`)

	resp, body := do(t, app, http.MethodPost, "/api/keys/PageUp", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 12.0, decodeState(t, body).Shapes[0].Position.Y)

	resp, _ = do(t, app, http.MethodPost, "/api/keys/Escape", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSelectAndColor(t *testing.T) {
	app, _ := newTestApp(t)
	do(t, app, http.MethodPost, "/api/shapes", `{"type":"O"}`)
	do(t, app, http.MethodDelete, "/api/selection", "")

	resp, body := do(t, app, http.MethodPost, "/api/shapes/0/select", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decodeState(t, body).ActiveIndex)

	resp, _ = do(t, app, http.MethodPost, "/api/shapes/3/select", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/shapes/x/select", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, http.MethodPut, "/api/shapes/0/color", `{"color":"#0000ff"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.ColorBlue, decodeState(t, body).Shapes[0].Color)

	resp, _ = do(t, app, http.MethodPut, "/api/shapes/0/color", `{"color":"blueish"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDimensionsAndWalls(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := do(t, app, http.MethodPut, "/api/dimensions",
		`{"cellSize":10,"widthBack":8,"heightLeft":5,"depthFront":9}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.Dimensions{CellSize: 10, WidthBack: 8, HeightLeft: 5, DepthFront: 9}, decodeState(t, body).Dimensions)

	resp, _ = do(t, app, http.MethodPut, "/api/dimensions",
		`{"cellSize":10,"widthBack":0,"heightLeft":5,"depthFront":9}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPut, "/api/dimensions",
		`{"cellSize":8,"widthBack":4294967296,"heightLeft":1,"depthFront":4294967296}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/shapes", `{"type":"O"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body = do(t, app, http.MethodGet, "/api/grid", "")
	var g struct {
		Rows  int      `json:"rows"`
		Cols  int      `json:"cols"`
		Cells []string `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(body, &g))
	assert.Equal(t, 9, g.Rows)
	assert.Equal(t, 8, g.Cols)
	assert.Len(t, g.Cells, 9)

	resp, body = do(t, app, http.MethodPut, "/api/walls",
		`{"backColor":"#ff0000","leftColor":"#00ff00","frontColor":"#0000ff"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.ColorGreen, decodeState(t, body).Colors.Left)
}

func TestBayGeometry(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := do(t, app, http.MethodGet, "/api/bay", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Lines  []json.RawMessage `json:"lines"`
		Labels []struct {
			Text string `json:"Text"`
		} `json:"labels"`
		Views []json.RawMessage `json:"views"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Len(t, out.Lines, 4*7+2*7)
	require.Len(t, out.Labels, 2)
	assert.Equal(t, "48cm", out.Labels[0].Text)
	assert.Len(t, out.Views, 4)
}

func TestImportOrders(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := do(t, app, http.MethodPost, "/api/orders", "type,qty\nO,2\nS,1\n")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Placed    int           `json:"placed"`
		Requested int           `json:"requested"`
		Errors    []string      `json:"errors"`
		State     stateResponse `json:"state"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, 2, out.Placed)
	assert.Equal(t, 2, out.Requested)
	assert.Len(t, out.Errors, 1)
	assert.Len(t, out.State.Shapes, 2)
	assert.Equal(t, "Import 1 orders", out.State.UndoLabel)

	resp, _ = do(t, app, http.MethodPost, "/api/orders", "type\nS\n")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaveResetLoad(t *testing.T) {
	app, _ := newTestApp(t)
	do(t, app, http.MethodPost, "/api/shapes", `{"type":"I"}`)
	do(t, app, http.MethodPost, "/api/shapes", `{"type":"L"}`)

	_, before := do(t, app, http.MethodGet, "/api/state", "")
	want := decodeState(t, before)

	resp, _ := do(t, app, http.MethodPost, "/api/save", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := do(t, app, http.MethodPost, "/api/reset", "")
	assert.Empty(t, decodeState(t, body).Shapes)

	resp, body = do(t, app, http.MethodPost, "/api/load", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeState(t, body)
	assert.Equal(t, want.Shapes, got.Shapes)
	assert.Equal(t, engine.NoSelection, got.ActiveIndex)
}

func TestLoadWithoutSave(t *testing.T) {
	app, _ := newTestApp(t)
	resp, _ := do(t, app, http.MethodPost, "/api/load", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLoadRejectsOversizedSave(t *testing.T) {
	app, srv := newTestApp(t)
	blob := `{"dimensions":{"cellSize":8,"widthBack":100000,"heightLeft":6,"depthFront":100000},"shapes":[]}`
	require.NoError(t, srv.store.Set(project.StateKey, blob))

	resp, _ := do(t, app, http.MethodPost, "/api/load", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, body := do(t, app, http.MethodGet, "/api/state", "")
	assert.Equal(t, model.DefaultDimensions(), decodeState(t, body).Dimensions)
}

func TestReport(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := do(t, app, http.MethodGet, "/api/report", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"collisions":[],"outOfBounds":[]}`, string(body))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SHELFPACK_SEED", "42")
	t.Setenv("READ_TIMEOUT", "nope")

	cfg := LoadConfig()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 10, cfg.ReadTimeout)
	assert.Equal(t, "data/shelfpack.db", cfg.DBPath)
	assert.Empty(t, cfg.StateFile)
}

func TestSaveAndLoadThroughStateFile(t *testing.T) {
	t.Setenv("SHELFPACK_STATE_FILE", filepath.Join(t.TempDir(), "state.json"))
	cfg := LoadConfig()
	require.NotEmpty(t, cfg.StateFile)

	quiet := log.New(io.Discard, "", 0)
	opts := engine.DefaultOptions()
	opts.Logger = quiet
	session, err := engine.NewSession(opts)
	require.NoError(t, err)
	app := NewApp(cfg, New(session, project.NewFileStore(cfg.StateFile), quiet))

	do(t, app, http.MethodPost, "/api/shapes", `{"type":"O"}`)
	resp, _ := do(t, app, http.MethodPost, "/api/save", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	st, ok, err := project.LoadState(project.NewFileStore(cfg.StateFile))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, st.Shapes, 1)
}
