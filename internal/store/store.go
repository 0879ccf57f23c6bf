// Package store provides preset persistence for sqlmux.
package store

import (
	"context"

	"github.com/secmux/sqlmux/internal/model"
)

// PresetStore defines the interface for preset persistence. Presets are
// addressed by name; names are unique within the store.
type PresetStore interface {
	// List returns all presets, built-in seeds first, then user presets
	// sorted by name.
	List(ctx context.Context) ([]model.Preset, error)
	// Get retrieves a preset by name.
	Get(ctx context.Context, name string) (*model.Preset, error)
	// Put saves a preset. An existing preset with the same name is
	// overwritten; built-in presets cannot be overwritten.
	Put(ctx context.Context, p *model.Preset) error
	// Delete removes a preset by name. Built-in presets cannot be deleted.
	Delete(ctx context.Context, name string) error
	// Close releases any resources held by the store.
	Close() error
}
