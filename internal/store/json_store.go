package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/secmux/sqlmux/internal/model"
)

var (
	// ErrNotFound is returned when a preset is not found.
	ErrNotFound = errors.New("not found")
	// ErrBuiltIn is returned when modifying or deleting a built-in preset.
	ErrBuiltIn = errors.New("preset is built-in")
)

// data represents the JSON file structure.
type data struct {
	Presets []model.Preset `json:"presets"`
}

// JSONStore implements PresetStore using JSON file persistence. The built-in
// seed presets are installed on first run and re-added if missing, so users
// always see them even after hand-editing the file.
type JSONStore struct {
	mu       sync.RWMutex
	path     string
	data     *data
	modified bool
}

// NewJSONStore creates a new JSON file-based store under configDir.
func NewJSONStore(configDir string) (*JSONStore, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}

	path := filepath.Join(configDir, "presets.json")
	s := &JSONStore{
		path: path,
		data: &data{Presets: []model.Preset{}},
	}

	if _, err := os.Stat(path); err == nil {
		if err := s.load(); err != nil {
			return nil, err
		}
	}
	if s.ensureSeeds() {
		if err := s.save(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// load reads presets from the JSON file.
func (s *JSONStore) load() error {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, s.data)
}

// save writes presets to the JSON file.
func (s *JSONStore) save() error {
	content, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, content, 0644)
}

// ensureSeeds adds any missing built-in preset. Reports whether the data
// changed.
func (s *JSONStore) ensureSeeds() bool {
	changed := false
	for _, seed := range seedPresets() {
		if s.indexOf(seed.Name) < 0 {
			s.data.Presets = append(s.data.Presets, seed)
			changed = true
		}
	}
	return changed
}

// indexOf returns the position of the named preset, or -1. Caller holds the
// lock.
func (s *JSONStore) indexOf(name string) int {
	for i := range s.data.Presets {
		if s.data.Presets[i].Name == name {
			return i
		}
	}
	return -1
}

// Close persists any pending changes.
func (s *JSONStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modified {
		return s.save()
	}
	return nil
}

// List returns all presets, built-in seeds first, then user presets sorted
// by name.
func (s *JSONStore) List(_ context.Context) ([]model.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Preset, len(s.data.Presets))
	copy(result, s.data.Presets)

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].BuiltIn != result[j].BuiltIn {
			return result[i].BuiltIn
		}
		if result[i].BuiltIn {
			// Seeds keep their installation order.
			return false
		}
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})

	return result, nil
}

// Get retrieves a preset by name.
func (s *JSONStore) Get(_ context.Context, name string) (*model.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(name); i >= 0 {
		return s.data.Presets[i].Clone(), nil
	}
	return nil, ErrNotFound
}

// Put saves a preset, overwriting any user preset with the same name.
func (s *JSONStore) Put(_ context.Context, p *model.Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(p.Name); i >= 0 {
		if s.data.Presets[i].BuiltIn {
			return ErrBuiltIn
		}
		s.data.Presets[i] = *p.Clone()
	} else {
		s.data.Presets = append(s.data.Presets, *p.Clone())
	}
	s.modified = true
	return s.save()
}

// Delete removes a preset by name.
func (s *JSONStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return ErrNotFound
	}
	if s.data.Presets[i].BuiltIn {
		return ErrBuiltIn
	}
	s.data.Presets = append(s.data.Presets[:i], s.data.Presets[i+1:]...)
	s.modified = true
	return s.save()
}
