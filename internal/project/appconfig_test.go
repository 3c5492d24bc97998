package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/shelfpack/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultDimensions.WidthBack = 12
	cfg.DefaultShapeColor = model.ColorGreen
	cfg.Theme = "dark"
	cfg.PlacementAttempts = 250
	cfg.RecentFiles = []string{"/tmp/bay1.json", "/tmp/bay2.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultDimensions.WidthBack != 12 {
		t.Errorf("expected WidthBack=12, got %d", loaded.DefaultDimensions.WidthBack)
	}
	if loaded.DefaultShapeColor != model.ColorGreen {
		t.Errorf("expected green default colour, got %s", loaded.DefaultShapeColor)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if loaded.PlacementAttempts != 250 {
		t.Errorf("expected PlacementAttempts=250, got %d", loaded.PlacementAttempts)
	}
	if len(loaded.RecentFiles) != 2 {
		t.Errorf("expected 2 recent files, got %d", len(loaded.RecentFiles))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultDimensions != defaults.DefaultDimensions {
		t.Errorf("expected default dimensions %+v, got %+v", defaults.DefaultDimensions, cfg.DefaultDimensions)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigFillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"theme":"light","recent_files":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentFiles == nil {
		t.Error("RecentFiles should not be nil after loading")
	}
	if cfg.DefaultDimensions != model.DefaultDimensions() {
		t.Errorf("expected default dimensions, got %+v", cfg.DefaultDimensions)
	}
	if cfg.PlacementAttempts != 100 {
		t.Errorf("expected 100 placement attempts, got %d", cfg.PlacementAttempts)
	}
	if cfg.Theme != "light" {
		t.Errorf("expected theme=light, got %s", cfg.Theme)
	}
}

func TestLoadAppConfigClampsOversizedBay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"default_dimensions":{"cellSize":10,"widthBack":100000,"heightLeft":6,"depthFront":0}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	want := model.Dimensions{CellSize: 10, WidthBack: model.MaxCells, HeightLeft: 6, DepthFront: model.MinCells}
	if cfg.DefaultDimensions != want {
		t.Errorf("expected %+v, got %+v", want, cfg.DefaultDimensions)
	}
}
