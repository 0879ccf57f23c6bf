// Package outputview provides the scan output pane.
package outputview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/secmux/sqlmux/internal/ui/styles"
)

// Model is the scroll-back output pane. It follows the tail while the user
// is at the bottom and stops following once they scroll up.
type Model struct {
	viewport viewport.Model
	lines    []string
	follow   bool
	focused  bool
	width    int
	height   int
	title    string
}

// New creates a new output pane.
func New() Model {
	return Model{
		viewport: viewport.New(0, 0),
		follow:   true,
		title:    "Output",
	}
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 4
	m.refresh()
}

// SetFocused updates the focus state.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// SetTitle sets the pane title, shown with the scan status.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// Append adds output lines to the pane.
func (m *Model) Append(lines ...string) {
	m.lines = append(m.lines, lines...)
	m.refresh()
}

// SetLines replaces the pane content, e.g. when restoring history.
func (m *Model) SetLines(lines []string) {
	m.lines = append([]string(nil), lines...)
	m.refresh()
}

// Clear empties the pane.
func (m *Model) Clear() {
	m.lines = nil
	m.follow = true
	m.refresh()
}

// Lines returns the pane content.
func (m Model) Lines() []string {
	return m.lines
}

func (m *Model) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

// HandleKey processes a key event, scrolling the viewport.
func (m *Model) HandleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k", "pgup", "b":
		m.follow = false
	case "down", "j", "pgdown", "f":
		// Re-enable following once the user returns to the bottom.
	case "end", "G":
		m.follow = true
		m.viewport.GotoBottom()
		return true
	case "home", "g":
		m.follow = false
		m.viewport.GotoTop()
		return true
	default:
		return false
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	_ = cmd
	if m.viewport.AtBottom() {
		m.follow = true
	}
	return true
}

// View renders the output pane.
func (m Model) View() string {
	innerWidth := m.width - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	title := m.title
	if m.focused {
		title = styles.PanelTitleFocused.Render(title)
	} else {
		title = styles.PanelTitle.Render(title)
	}

	body := m.viewport.View()
	if len(m.lines) == 0 {
		body = styles.OutputPlaceholder.Render("No output yet. Press 'r' to run a scan.")
	}

	border := styles.BorderStyle
	if m.focused {
		border = styles.FocusedBorderStyle
	}
	return border.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			strings.Repeat("─", innerWidth),
			body,
		))
}
