package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/shelfpack/internal/model"
)

// DefaultTemplatePath returns ~/.shelfpack/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// BuiltinTemplates returns the starter layouts offered when no template file
// exists yet.
func BuiltinTemplates() model.TemplateStore {
	store := model.NewTemplateStore()
	store.Add(model.NewBayTemplate("Empty 6x6x6", "Stock bay, no shapes",
		model.DefaultDimensions(), model.DefaultWallColors(), nil))
	store.Add(model.NewBayTemplate("One of each", "Every shape once on a 10x6x10 bay",
		model.Dimensions{CellSize: 8, WidthBack: 10, HeightLeft: 6, DepthFront: 10},
		model.DefaultWallColors(), []model.ShapeOrder{
			{Type: model.ShapeL, Quantity: 1},
			{Type: model.ShapeJ, Quantity: 1},
			{Type: model.ShapeT, Quantity: 1},
			{Type: model.ShapeO, Quantity: 1},
			{Type: model.ShapeZ, Quantity: 1},
			{Type: model.ShapeI, Quantity: 1},
		}))
	return store
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store model.TemplateStore) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create template directory: %w", err)
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplates reads a template store from a JSON file. A missing file
// yields the built-in templates. Templates with an unusable bay or an unknown
// shape type are skipped and reported in the returned warnings.
func LoadTemplates(path string) (model.TemplateStore, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return BuiltinTemplates(), nil, nil
		}
		return model.TemplateStore{}, nil, err
	}
	var raw model.TemplateStore
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.TemplateStore{}, nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	store := model.NewTemplateStore()
	var warnings []string
	for _, t := range raw.Templates {
		if err := validateTemplate(t); err != nil {
			warnings = append(warnings, fmt.Sprintf("template %q skipped: %v", t.Name, err))
			continue
		}
		store.Add(t)
	}
	return store, warnings, nil
}

func validateTemplate(t model.BayTemplate) error {
	if err := t.Dimensions.Validate(); err != nil {
		return err
	}
	for i, o := range t.Orders {
		if !o.Type.Valid() {
			return fmt.Errorf("order %d: unknown shape type %q", i+1, o.Type)
		}
		if o.Rotation%90 != 0 {
			return fmt.Errorf("order %d: rotation %d is not a quarter turn", i+1, o.Rotation)
		}
	}
	return nil
}
