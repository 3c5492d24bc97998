package project

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/model"
)

// StateKey is the store key the scene is saved under.
const StateKey = "appState"

// Encode serializes a session state into a single blob.
func Encode(st engine.State) (string, error) {
	if st.Shapes == nil {
		st.Shapes = []model.PlacedShape{}
	}
	data, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}
	return string(data), nil
}

// Decode parses a blob produced by Encode. It returns false for an empty,
// unparsable or invalid blob; a blob is either restored whole or not at all.
// Shapes saved without an ID get a fresh one.
func Decode(blob string) (engine.State, bool) {
	if strings.TrimSpace(blob) == "" {
		return engine.State{}, false
	}
	var st engine.State
	if err := json.Unmarshal([]byte(blob), &st); err != nil {
		return engine.State{}, false
	}
	if err := Validate(st); err != nil {
		return engine.State{}, false
	}
	if st.Shapes == nil {
		st.Shapes = []model.PlacedShape{}
	}
	for i := range st.Shapes {
		if st.Shapes[i].ID == "" {
			st.Shapes[i].ID = uuid.New().String()[:8]
		}
	}
	return st, true
}

// Validate checks that a decoded state can be restored as-is.
func Validate(st engine.State) error {
	if err := st.Dimensions.Validate(); err != nil {
		return err
	}
	for i, s := range st.Shapes {
		if !s.Type.Valid() {
			return fmt.Errorf("shape %d: unknown type %q", i, s.Type)
		}
		if len(s.Configuration) == 0 {
			return fmt.Errorf("shape %d: empty configuration", i)
		}
		if s.Configuration.HasDuplicates() {
			return fmt.Errorf("shape %d: duplicate blocks", i)
		}
		if s.Configuration.MinY() < 0 {
			return fmt.Errorf("shape %d: block below the floor", i)
		}
		if !model.ValidRotation(s.Rotation) {
			return fmt.Errorf("shape %d: rotation %d", i, s.Rotation)
		}
	}
	return nil
}

// SaveState writes st to the store under StateKey.
func SaveState(store Store, st engine.State) error {
	blob, err := Encode(st)
	if err != nil {
		return err
	}
	if err := store.Set(StateKey, blob); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// LoadState reads the saved state. ok is false when nothing usable is stored;
// err is only set when the store itself fails.
func LoadState(store Store) (st engine.State, ok bool, err error) {
	blob, found, err := store.Get(StateKey)
	if err != nil {
		return engine.State{}, false, fmt.Errorf("failed to load state: %w", err)
	}
	if !found {
		return engine.State{}, false, nil
	}
	st, ok = Decode(blob)
	return st, ok, nil
}
