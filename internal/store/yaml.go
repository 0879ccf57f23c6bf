package store

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/secmux/sqlmux/internal/model"
)

// presetFile is the YAML exchange format for sharing presets between
// installations.
type presetFile struct {
	Presets []model.Preset `yaml:"presets"`
}

// ExportYAML writes presets to w in the exchange format. Built-in presets
// are skipped; the receiving side already has them.
func ExportYAML(w io.Writer, presets []model.Preset) error {
	file := presetFile{}
	for _, p := range presets {
		if p.BuiltIn {
			continue
		}
		file.Presets = append(file.Presets, p)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	return enc.Close()
}

// ImportYAML reads presets from r. Entries without a name are rejected;
// missing IDs are assigned so imports from hand-written files work.
func ImportYAML(r io.Reader) ([]model.Preset, error) {
	var file presetFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode presets: %w", err)
	}

	for i := range file.Presets {
		p := &file.Presets[i]
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i)
		}
		p.BuiltIn = false
		if p.ID == "" {
			fresh := model.NewPreset(p.Name, p.Values)
			p.ID = fresh.ID
			if p.CreatedAt.IsZero() {
				p.CreatedAt = fresh.CreatedAt
			}
		}
	}
	return file.Presets, nil
}
