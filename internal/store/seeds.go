package store

import (
	"time"

	"github.com/secmux/sqlmux/internal/model"
)

// seedPresets returns the built-in presets installed on first run. They are
// partial option snapshots like any user preset, but cannot be modified or
// deleted.
func seedPresets() []model.Preset {
	now := time.Now()
	seed := func(name string, values map[string]string) model.Preset {
		p := model.NewPreset(name, values)
		p.BuiltIn = true
		p.CreatedAt = now
		return *p
	}

	return []model.Preset{
		seed("Quick Scan", map[string]string{
			"risk":         "2",
			"level":        "3",
			"batch":        "true",
			"verbose":      "true",
			"random_agent": "true",
		}),
		seed("Comprehensive Scan", map[string]string{
			"risk":         "3",
			"level":        "5",
			"threads":      "10",
			"batch":        "true",
			"verbose":      "true",
			"enum_dbs":     "true",
			"enum_tables":  "true",
			"enum_columns": "true",
			"random_agent": "true",
		}),
		seed("Database Enumeration", map[string]string{
			"risk":         "2",
			"level":        "3",
			"batch":        "true",
			"enum_dbs":     "true",
			"enum_tables":  "true",
			"enum_columns": "true",
			"verbose":      "true",
		}),
		seed("Data Extraction", map[string]string{
			"risk":         "3",
			"level":        "4",
			"batch":        "true",
			"dump_all":     "true",
			"verbose":      "true",
			"random_agent": "true",
		}),
		seed("Stealth Mode", map[string]string{
			"risk":         "1",
			"level":        "2",
			"delay":        "2",
			"batch":        "true",
			"tor":          "true",
			"random_agent": "true",
		}),
		seed("Aggressive Scan", map[string]string{
			"risk":         "3",
			"level":        "5",
			"threads":      "15",
			"batch":        "true",
			"verbose":      "true",
			"enum_dbs":     "true",
			"enum_tables":  "true",
			"enum_columns": "true",
			"dump_all":     "true",
		}),
	}
}
