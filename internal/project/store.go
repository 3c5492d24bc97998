package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store is a flat string key-value store holding opaque save blobs.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// MemoryStore keeps values in a map. The zero value is not usable; call
// NewMemoryStore.
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}

// FileStore keeps all keys in one JSON object on disk. Every call reads or
// rewrites the whole file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the JSON file at path. The file is
// created on the first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath returns ~/.shelfpack/state.json.
func DefaultStorePath() string {
	return filepath.Join(DefaultConfigDir(), "state.json")
}

func (f *FileStore) Get(key string) (string, bool, error) {
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0644)
}

func (f *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read store: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse store: %w", err)
	}
	return values, nil
}
