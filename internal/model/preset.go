package model

import (
	"time"

	"github.com/google/uuid"
)

// Preset is a named, reusable partial snapshot of option values. Only keys
// holding non-default values are stored; applying a preset overwrites those
// keys and leaves the rest of the option model untouched.
type Preset struct {
	// ID is the unique identifier for this preset.
	ID string `json:"id" yaml:"id"`
	// Name is the display name; unique within the store.
	Name string `json:"name" yaml:"name"`
	// Values maps option keys to their stored values.
	Values map[string]string `json:"values" yaml:"values"`
	// BuiltIn marks seed presets, which cannot be deleted.
	BuiltIn bool `json:"built_in,omitempty" yaml:"built_in,omitempty"`
	// CreatedAt records when the preset was captured.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewPreset captures a value subset under a name.
func NewPreset(name string, values map[string]string) *Preset {
	vals := make(map[string]string, len(values))
	for k, v := range values {
		vals[k] = v
	}
	return &Preset{
		ID:        uuid.New().String(),
		Name:      name,
		Values:    vals,
		CreatedAt: time.Now(),
	}
}

// Clone returns a deep copy of the preset.
func (p *Preset) Clone() *Preset {
	vals := make(map[string]string, len(p.Values))
	for k, v := range p.Values {
		vals[k] = v
	}
	c := *p
	c.Values = vals
	return &c
}
