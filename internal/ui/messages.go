// Package ui provides the terminal user interface for sqlmux.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/secmux/sqlmux/internal/model"
	"github.com/secmux/sqlmux/internal/runtime"
)

// ---------- Preset Messages ----------

// PresetsLoadedMsg is sent when presets are loaded from store.
type PresetsLoadedMsg struct {
	Presets []model.Preset
	Err     error
}

// PresetSavedMsg is sent when a preset is created or updated.
type PresetSavedMsg struct {
	Name string
}

// PresetDeletedMsg is sent when a preset is deleted.
type PresetDeletedMsg struct {
	Name string
}

// ---------- Scan Messages ----------

// ScanEventsMsg carries a batch of scan events in process output order.
type ScanEventsMsg struct {
	Events []runtime.Event
}

// ScanClosedMsg is sent when the event stream closes.
type ScanClosedMsg struct{}

// ---------- UI Messages ----------

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Err error
}

// StatusExpiredMsg clears a transient status bar message.
type StatusExpiredMsg struct {
	ID int
}

// ExportedMsg is sent after the transcript was written.
type ExportedMsg struct {
	Path string
}

// ---------- Command Functions ----------

// LoadPresets returns a command to load presets from store.
func LoadPresets(loader func() ([]model.Preset, error)) tea.Cmd {
	return func() tea.Msg {
		presets, err := loader()
		return PresetsLoadedMsg{Presets: presets, Err: err}
	}
}

// WaitForEvents returns a command that waits for scan events. It batches
// opportunistically: after a blocking read it drains whatever is already
// queued, so a fast scan produces few render cycles while a slow one stays
// responsive.
func WaitForEvents(events <-chan runtime.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return ScanClosedMsg{}
		}

		batch := []runtime.Event{ev}
		const maxBatch = 128
		for len(batch) < maxBatch {
			select {
			case next, ok := <-events:
				if !ok {
					return ScanEventsMsg{Events: batch}
				}
				batch = append(batch, next)
			default:
				return ScanEventsMsg{Events: batch}
			}
		}
		return ScanEventsMsg{Events: batch}
	}
}

// ExpireStatus returns a command that clears the status message after the
// given delay. The ID guards against clearing a newer message.
func ExpireStatus(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return StatusExpiredMsg{ID: id}
	})
}
