package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secmux/sqlmux/internal/app"
	"github.com/secmux/sqlmux/internal/runtime"
	"github.com/secmux/sqlmux/internal/store"
)

func newTestApp(t *testing.T) App {
	t.Helper()

	dir := t.TempDir()
	s, err := store.NewJSONStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	cfg, err := app.LoadConfig(dir)
	require.NoError(t, err)

	a := New(s, runtime.NewEngine("", nil), cfg, dir, nil)
	a.resize(100, 40)
	return a
}

func press(t *testing.T, a App, msg tea.KeyMsg) App {
	t.Helper()
	m, _ := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)
	return next
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyBindingsSwitchTabs(t *testing.T) {
	a := newTestApp(t)
	assert.Equal(t, TabOptions, a.tab)

	a = press(t, a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabPresets, a.tab)

	a = press(t, a, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabOptions, a.tab)
}

func TestKeyBindingsOpenAndCloseHelp(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, runeKey("?"))
	assert.Equal(t, DialogHelp, a.dialogMode)

	// Any key closes the overlay.
	a = press(t, a, runeKey("x"))
	assert.Equal(t, DialogNone, a.dialogMode)
}

func TestKeyBindingsClearOutput(t *testing.T) {
	a := newTestApp(t)
	a.output.Append("leftover line")

	a = press(t, a, runeKey("c"))
	assert.Empty(t, a.output.Lines())
}

func TestKeyBindingsRunWithoutURL(t *testing.T) {
	a := newTestApp(t)

	m, cmd := a.Update(runeKey("r"))
	a = m.(App)
	require.NotNil(t, cmd)
	assert.Contains(t, a.statusBar.View(), "Target URL is required")
}

func TestStatusBarShowsKeyHints(t *testing.T) {
	a := newTestApp(t)

	view := a.statusBar.View()
	for _, hint := range []string{"run scan", "stop scan", "save preset", "export", "help", "quit"} {
		assert.Contains(t, view, hint)
	}
}

func TestHelpViewListsAllBindings(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, runeKey("?"))

	view := a.View()
	for _, group := range a.keys.FullHelp() {
		for _, b := range group {
			assert.Contains(t, view, b.Help().Desc)
		}
	}
}
