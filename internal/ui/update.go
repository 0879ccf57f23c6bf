package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/secmux/sqlmux/internal/model"
	"github.com/secmux/sqlmux/internal/notify"
	"github.com/secmux/sqlmux/internal/report"
	"github.com/secmux/sqlmux/internal/runtime"
	"github.com/secmux/sqlmux/internal/store"
	"github.com/secmux/sqlmux/internal/ui/components/dialog"
	"github.com/secmux/sqlmux/pkg/utils"
)

func statusTTL(isError bool) time.Duration {
	if isError {
		return 8 * time.Second
	}
	return 4 * time.Second
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case PresetsLoadedMsg:
		if msg.Err != nil {
			return a, a.setStatus("failed to load presets: "+msg.Err.Error(), true)
		}
		a.presets = msg.Presets
		a.presetList.SetPresets(msg.Presets)
		return a, nil

	case PresetSavedMsg:
		return a, tea.Batch(
			a.reloadPresets(),
			a.setStatus("Preset '"+msg.Name+"' saved", false),
		)

	case PresetDeletedMsg:
		return a, tea.Batch(
			a.reloadPresets(),
			a.setStatus("Preset '"+msg.Name+"' deleted", false),
		)

	case ScanEventsMsg:
		return a.handleScanEvents(msg)

	case ScanClosedMsg:
		a.events = nil
		a.statusBar.SetScanStatus(a.scanStatus())
		return a, nil

	case ExportedMsg:
		return a, a.setStatus("Output saved to "+msg.Path, false)

	case ErrorMsg:
		return a, a.setStatus(msg.Err.Error(), true)

	case StatusExpiredMsg:
		if msg.ID == a.statusID {
			a.statusBar.ClearMessage()
		}
		return a, nil
	}

	return a, nil
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.ready = width >= minAppWidth && height >= minAppHeight

	bodyHeight := height - 3
	a.form.SetSize(width, bodyHeight)
	a.presetList.SetSize(width, bodyHeight)
	a.output.SetSize(width, bodyHeight)
	a.statusBar.SetWidth(width)
	a.inputDialog.SetSize(width, height)
	a.confirmDialog.SetSize(width, height)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.dialogMode != DialogNone {
		return a.handleDialogKey(msg)
	}

	// The inline editor owns every key while open.
	if a.tab == TabOptions && a.form.Editing() {
		_, err := a.form.HandleKey(msg)
		a.recompile()
		if err != nil {
			return a, a.setStatus(err.Error(), true)
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		_ = a.engine.CloseAll()
		return a, tea.Quit
	case key.Matches(msg, a.keys.Tab):
		a.switchTab(1)
		return a, nil
	case key.Matches(msg, a.keys.ShiftTab):
		a.switchTab(-1)
		return a, nil
	case key.Matches(msg, a.keys.Run):
		return a, a.startScan()
	case key.Matches(msg, a.keys.Stop):
		return a, a.stopScan()
	case key.Matches(msg, a.keys.ClearOutput):
		a.output.Clear()
		return a, nil
	case key.Matches(msg, a.keys.SavePreset):
		return a.openSavePresetDialog()
	case key.Matches(msg, a.keys.Export):
		return a.openExportDialog()
	case key.Matches(msg, a.keys.Reset):
		a.options.Reset()
		a.recompile()
		return a, a.setStatus("Options reset to defaults", false)
	case key.Matches(msg, a.keys.Help):
		a.dialogMode = DialogHelp
		return a, nil
	}

	switch a.tab {
	case TabOptions:
		handled, err := a.form.HandleKey(msg)
		if handled {
			a.recompile()
		}
		if err != nil {
			return a, a.setStatus(err.Error(), true)
		}
	case TabPresets:
		switch {
		case key.Matches(msg, a.keys.Enter):
			return a, a.applySelectedPreset()
		case key.Matches(msg, a.keys.Delete):
			return a.openDeletePresetDialog()
		default:
			a.presetList.HandleKey(msg.String())
		}
	case TabOutput:
		a.output.HandleKey(msg)
	}
	return a, nil
}

func (a *App) switchTab(dir int) {
	a.tab = Tab((int(a.tab) + dir + len(tabTitles)) % len(tabTitles))
	a.form.SetFocused(a.tab == TabOptions)
	a.presetList.SetFocused(a.tab == TabPresets)
	a.output.SetFocused(a.tab == TabOutput)
}

// ---------- Scan lifecycle ----------

func (a *App) startScan() tea.Cmd {
	if a.options.Get("url") == "" {
		return a.setStatus("Target URL is required", true)
	}

	session, err := a.engine.Start(a.ctx, a.command, a.config.Interactive)
	if err != nil {
		switch {
		case errors.Is(err, runtime.ErrAlreadyRunning):
			return a.setStatus("A scan is already running", true)
		case errors.Is(err, runtime.ErrNoCommand):
			return a.setStatus("Nothing to run", true)
		default:
			return a.setStatus("Failed to start scan: "+err.Error(), true)
		}
	}

	a.events = session.Events()
	a.output.Clear()
	a.output.SetTitle("Output - " + session.Display())
	a.tab = TabOutput
	a.switchTab(0)
	a.statusBar.SetScanStatus(string(model.ScanStatusRunning))
	return tea.Batch(
		WaitForEvents(a.events),
		a.setStatus("Scan started", false),
	)
}

func (a *App) stopScan() tea.Cmd {
	if !a.engine.Running() {
		return a.setStatus("No scan running", true)
	}
	if err := a.engine.Stop(); err != nil {
		return a.setStatus("Failed to stop scan: "+err.Error(), true)
	}
	return a.setStatus("Stopping scan...", false)
}

func (a App) handleScanEvents(msg ScanEventsMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var lines []string

	for _, ev := range msg.Events {
		switch ev.Type {
		case runtime.EventStarted:
			a.statusBar.SetScanStatus(string(model.ScanStatusRunning))
		case runtime.EventLine:
			lines = append(lines, ev.Line)
		case runtime.EventFinished:
			a.statusBar.SetScanStatus(a.scanStatus())
			cmds = append(cmds,
				a.setStatus(ev.Message, !ev.Success),
				a.notifyFinished(ev),
			)
		}
	}
	if len(lines) > 0 {
		a.output.Append(lines...)
	}
	if a.events != nil {
		cmds = append(cmds, WaitForEvents(a.events))
	}
	return a, tea.Batch(cmds...)
}

// notifyFinished dispatches the completion notification off the UI loop.
func (a *App) notifyFinished(ev runtime.Event) tea.Cmd {
	session, ok := a.engine.Active()
	if !ok {
		return nil
	}
	cfg := a.config.Notifications
	notifier := a.notifier
	result := session.Result()
	display := session.Display()

	eventType := notify.EventScanCompleted
	switch {
	case result.Cancelled:
		eventType = notify.EventScanCancelled
	case result.Outcome == model.OutcomeFailure:
		eventType = notify.EventScanFailed
	}

	return func() tea.Msg {
		notifier.Dispatch(context.Background(), cfg, notify.Event{
			Type:      eventType,
			Command:   display,
			Message:   ev.Message,
			Duration:  result.FinishedAt.Sub(result.StartedAt),
			Timestamp: ev.Timestamp,
		})
		return nil
	}
}

// ---------- Presets ----------

func (a *App) reloadPresets() tea.Cmd {
	return LoadPresets(func() ([]model.Preset, error) {
		return a.store.List(a.ctx)
	})
}

func (a App) openSavePresetDialog() (tea.Model, tea.Cmd) {
	if len(a.options.Changed()) == 0 {
		return a, a.setStatus("No options changed; nothing to save", true)
	}
	a.inputDialog = dialog.NewInputDialog("Save Preset", "Preset name", "my-target", "")
	a.inputDialog.SetSize(a.width, a.height)
	a.dialogMode = DialogSavePreset
	return a, nil
}

func (a *App) savePreset(name string) tea.Cmd {
	if name == "" {
		return a.setStatus("Preset name cannot be empty", true)
	}
	p := model.NewPreset(name, a.options.Changed())
	if err := a.store.Put(a.ctx, p); err != nil {
		if errors.Is(err, store.ErrBuiltIn) {
			return a.setStatus("Cannot overwrite built-in preset '"+name+"'", true)
		}
		return a.setStatus("Failed to save preset: "+err.Error(), true)
	}
	a.logger.Info("preset saved", "name", name, "options", len(p.Values))
	return func() tea.Msg { return PresetSavedMsg{Name: name} }
}

func (a *App) applySelectedPreset() tea.Cmd {
	p := a.presetList.Selected()
	if p == nil {
		return a.setStatus("No preset selected", true)
	}
	a.options.Apply(p.Values)
	a.recompile()
	return a.setStatus("Applied preset '"+p.Name+"'", false)
}

func (a App) openDeletePresetDialog() (tea.Model, tea.Cmd) {
	p := a.presetList.Selected()
	if p == nil {
		return a, a.setStatus("No preset selected", true)
	}
	if p.BuiltIn {
		return a, a.setStatus("Built-in presets cannot be deleted", true)
	}
	a.confirmDialog = dialog.NewConfirmDialog("Delete Preset", "Delete preset '"+p.Name+"'?")
	a.confirmDialog.SetSize(a.width, a.height)
	a.dialogMode = DialogDeletePreset
	return a, nil
}

func (a *App) deleteSelectedPreset() tea.Cmd {
	p := a.presetList.Selected()
	if p == nil {
		return nil
	}
	name := p.Name
	if err := a.store.Delete(a.ctx, name); err != nil {
		return a.setStatus("Failed to delete preset: "+err.Error(), true)
	}
	return func() tea.Msg { return PresetDeletedMsg{Name: name} }
}

// ---------- Export ----------

func (a App) openExportDialog() (tea.Model, tea.Cmd) {
	session, ok := a.engine.Active()
	if !ok || len(session.History()) == 0 {
		return a, a.setStatus("No scan output to export", true)
	}
	suggested := filepath.Join(a.exportDir(), report.DefaultFilename(a.transcript(session)))
	a.inputDialog = dialog.NewInputDialog("Export Output", "File path", "", suggested)
	a.inputDialog.SetSize(a.width, a.height)
	a.dialogMode = DialogExport
	return a, nil
}

func (a *App) transcript(session runtime.Session) report.Transcript {
	return report.Transcript{
		Command: session.Display(),
		Lines:   session.History(),
		Result:  session.Result(),
	}
}

func (a *App) exportTranscript(path string) tea.Cmd {
	session, ok := a.engine.Active()
	if !ok {
		return a.setStatus("No scan output to export", true)
	}
	if path == "" {
		return a.setStatus("Export path cannot be empty", true)
	}
	path = utils.ExpandPath(path)
	transcript := a.transcript(session)

	return func() tea.Msg {
		if err := report.Write(path, transcript); err != nil {
			return ErrorMsg{Err: fmt.Errorf("export failed: %w", err)}
		}
		return ExportedMsg{Path: path}
	}
}

// ---------- Dialogs ----------

func (a App) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.dialogMode {
	case DialogHelp:
		a.dialogMode = DialogNone
		return a, nil

	case DialogSavePreset, DialogExport:
		var cmd tea.Cmd
		a.inputDialog, cmd = a.inputDialog.Update(msg)
		if a.inputDialog.Cancelled() {
			a.dialogMode = DialogNone
			return a, nil
		}
		if a.inputDialog.Submitted() {
			mode := a.dialogMode
			a.dialogMode = DialogNone
			if mode == DialogSavePreset {
				return a, a.savePreset(a.inputDialog.Value())
			}
			return a, a.exportTranscript(a.inputDialog.Value())
		}
		return a, cmd

	case DialogDeletePreset:
		a.confirmDialog = a.confirmDialog.Update(msg)
		if a.confirmDialog.Decided() {
			a.dialogMode = DialogNone
			if a.confirmDialog.Confirmed() {
				return a, a.deleteSelectedPreset()
			}
		}
		return a, nil
	}

	a.dialogMode = DialogNone
	return a, nil
}
