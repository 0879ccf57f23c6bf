// Package presetlist provides the preset list UI component.
package presetlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/secmux/sqlmux/internal/model"
	"github.com/secmux/sqlmux/internal/ui/styles"
)

// Model is the preset list component.
type Model struct {
	presets []model.Preset
	cursor  int
	offset  int
	focused bool
	width   int
	height  int
}

// New creates a new preset list component.
func New() Model {
	return Model{}
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetFocused updates the focus state.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// SetPresets updates the preset list.
func (m *Model) SetPresets(presets []model.Preset) {
	m.presets = presets
	if m.cursor >= len(m.presets) && len(m.presets) > 0 {
		m.cursor = len(m.presets) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

// Selected returns the currently selected preset.
func (m Model) Selected() *model.Preset {
	if m.cursor >= 0 && m.cursor < len(m.presets) {
		return m.presets[m.cursor].Clone()
	}
	return nil
}

// HandleKey processes a key event.
func (m *Model) HandleKey(key string) bool {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
		return true
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
			m.ensureVisible()
		}
		return true
	case "home", "g":
		m.cursor = 0
		m.offset = 0
		return true
	case "end", "G":
		if len(m.presets) > 0 {
			m.cursor = len(m.presets) - 1
			m.ensureVisible()
		}
		return true
	}
	return false
}

// View renders the preset list.
func (m Model) View() string {
	innerWidth := m.width - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	title := "Presets"
	if m.focused {
		title = styles.PanelTitleFocused.Render(title)
	} else {
		title = styles.PanelTitle.Render(title)
	}
	count := styles.ListItemDim.Render(fmt.Sprintf("(%d)", len(m.presets)))
	header := title + " " + count

	var rows []string
	if len(m.presets) == 0 {
		rows = append(rows, "",
			styles.OutputPlaceholder.Render("No presets yet"),
			styles.ListItemDim.Render("Press 'w' on the options tab to save one"))
	} else {
		visible := m.visibleRows()
		end := m.offset + visible
		if end > len(m.presets) {
			end = len(m.presets)
		}
		for i := m.offset; i < end; i++ {
			rows = append(rows, m.renderItem(m.presets[i], i == m.cursor, innerWidth-2))
		}
		if len(m.presets) > visible {
			rows = append(rows, styles.ListItemDim.Render(fmt.Sprintf(" %d/%d ", m.cursor+1, len(m.presets))))
		}
	}

	help := styles.ListItemDim.Render("Enter: apply - d: delete - Tab: next tab")
	content := lipgloss.JoinVertical(lipgloss.Left, append(rows, "", help)...)

	border := styles.BorderStyle
	if m.focused {
		border = styles.FocusedBorderStyle
	}
	return border.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			strings.Repeat("─", innerWidth),
			content,
		))
}

func (m Model) renderItem(p model.Preset, selected bool, maxWidth int) string {
	mark := "☆"
	if p.BuiltIn {
		mark = "★"
	}
	content := fmt.Sprintf("%s %s - %d options", mark, p.Name, len(p.Values))
	content = styles.TruncateWithEllipsis(content, maxWidth)
	if selected {
		return styles.ListItemSelected.Render(content)
	}
	return styles.ListItem.Render(content)
}

func (m *Model) visibleRows() int {
	v := m.height - 7
	if v < 1 {
		v = 1
	}
	return v
}

func (m *Model) ensureVisible() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}
