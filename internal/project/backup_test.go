package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/shelfpack/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultDimensions.HeightLeft = 9
	cfg.Theme = "dark"
	st := sampleState()

	if err := ExportAllData(path, cfg, BuiltinTemplates(), &st); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultDimensions.HeightLeft != 9 {
		t.Errorf("expected HeightLeft=9, got %d", backup.Config.DefaultDimensions.HeightLeft)
	}
	if backup.Config.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", backup.Config.Theme)
	}
	if len(backup.Templates.Templates) != len(BuiltinTemplates().Templates) {
		t.Errorf("expected %d templates, got %d", len(BuiltinTemplates().Templates), len(backup.Templates.Templates))
	}
	if backup.State == nil || len(backup.State.Shapes) != 3 {
		t.Fatalf("expected bay with 3 shapes, got %+v", backup.State)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	data := []byte(`{"config":{"theme":"dark"}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "backup.json")

	if err := ExportAllData(path, model.DefaultAppConfig(), model.NewTemplateStore(), nil); err != nil {
		t.Fatalf("ExportAllData should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataDropsInvalidBay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"recent_files":null},
		"state":{"dimensions":{"cellSize":0,"widthBack":6,"heightLeft":6,"depthFront":6},"shapes":[]}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentFiles == nil {
		t.Error("RecentFiles should not be nil after import")
	}
	if backup.State != nil {
		t.Error("invalid bay should be dropped")
	}
	if backup.Templates.Templates == nil {
		t.Error("templates should not be nil")
	}
}
