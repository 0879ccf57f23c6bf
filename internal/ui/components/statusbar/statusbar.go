// Package statusbar provides the status bar UI component.
package statusbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/secmux/sqlmux/internal/ui/styles"
)

// Model is the status bar component.
type Model struct {
	width      int
	message    string
	isError    bool
	scanStatus string
	keys       []key.Binding
}

// New creates a status bar showing hints for the given key bindings.
func New(bindings []key.Binding) Model {
	return Model{scanStatus: "idle", keys: bindings}
}

// SetWidth updates the status bar width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetMessage sets a temporary message.
func (m *Model) SetMessage(msg string, isError bool) {
	m.message = msg
	m.isError = isError
}

// ClearMessage clears the temporary message.
func (m *Model) ClearMessage() {
	m.message = ""
	m.isError = false
}

// SetScanStatus updates the scan status badge.
func (m *Model) SetScanStatus(status string) {
	m.scanStatus = status
}

// View renders the status bar.
func (m Model) View() string {
	brand := styles.StatusBarBrand.Render(" sqlmux ")

	badge := lipgloss.NewStyle().
		Foreground(styles.Base).
		Background(styles.StatusColor(m.scanStatus)).
		Bold(true).
		Padding(0, 1).
		Render(strings.ToUpper(m.scanStatus))

	hints := make([]string, 0, len(m.keys))
	for _, b := range m.keys {
		h := b.Help()
		hints = append(hints, m.renderKey(h.Key, h.Desc))
	}
	help := strings.Join(hints, " ")

	var msgArea string
	if m.message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		if m.isError {
			msgStyle = lipgloss.NewStyle().Foreground(styles.Danger).Bold(true)
		}
		msgArea = msgStyle.Render(" " + m.message + " ")
	}

	left := brand + badge
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(help)
	middleWidth := lipgloss.Width(msgArea)

	padding := m.width - leftWidth - rightWidth - middleWidth
	if padding < 0 {
		padding = 0
	}
	leftPad := padding / 2
	rightPad := padding - leftPad

	content := left +
		strings.Repeat(" ", leftPad) +
		msgArea +
		strings.Repeat(" ", rightPad) +
		help

	return lipgloss.NewStyle().
		Background(styles.Mantle).
		Foreground(styles.TextMuted).
		Width(m.width).
		Render(content)
}

// renderKey renders a key binding hint.
func (m Model) renderKey(key, desc string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(styles.Overlay0)
	return keyStyle.Render(key) + descStyle.Render(":"+desc)
}
