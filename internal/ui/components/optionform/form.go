// Package optionform provides the scan option form UI component.
package optionform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/secmux/sqlmux/internal/model"
	"github.com/secmux/sqlmux/internal/ui/styles"
	"github.com/secmux/sqlmux/pkg/utils"
)

// groupOrder is the display order of option groups.
var groupOrder = []string{
	model.GroupTarget,
	model.GroupAdvanced,
	model.GroupEnumeration,
	model.GroupBruteforce,
	model.GroupTechniques,
}

// row is one rendered line: a group header or an option.
type row struct {
	header string
	spec   model.OptionSpec
}

// Model is the option form component. It owns the cursor and the inline
// text editor; the option values themselves live in the shared option
// model.
type Model struct {
	opts *model.Options
	rows []row

	cursor  int
	offset  int
	width   int
	height  int
	focused bool

	editing bool
	input   textinput.Model
}

// New creates the form over the given option model.
func New(opts *model.Options) Model {
	var rows []row
	for _, group := range groupOrder {
		rows = append(rows, row{header: group})
		for _, spec := range model.Schema() {
			if spec.Group == group {
				rows = append(rows, row{spec: spec})
			}
		}
	}

	input := textinput.New()
	input.CharLimit = 512
	input.Width = 48

	m := Model{
		opts:  opts,
		rows:  rows,
		input: input,
	}
	m.cursor = m.nextSelectable(0, 1)
	return m
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// SetFocused updates the focus state.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
	if !focused {
		m.cancelEdit()
	}
}

// Editing reports whether the inline editor is open; while it is, all key
// input belongs to the form.
func (m *Model) Editing() bool {
	return m.editing
}

// Selected returns the spec under the cursor.
func (m *Model) Selected() (model.OptionSpec, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) || m.rows[m.cursor].header != "" {
		return model.OptionSpec{}, false
	}
	return m.rows[m.cursor].spec, true
}

// HandleKey processes a key event. It returns true when the key was
// consumed and an optional error to surface in the status bar.
func (m *Model) HandleKey(msg tea.KeyMsg) (bool, error) {
	if m.editing {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		m.move(-1)
		return true, nil
	case "down", "j":
		m.move(1)
		return true, nil
	case "home", "g":
		m.cursor = m.nextSelectable(0, 1)
		m.ensureVisible()
		return true, nil
	case "end", "G":
		m.cursor = m.nextSelectable(len(m.rows)-1, -1)
		m.ensureVisible()
		return true, nil
	case "left", "h":
		return m.cycleChoice(-1)
	case "right", "l":
		return m.cycleChoice(1)
	case " ":
		return m.toggle()
	case "enter":
		spec, ok := m.Selected()
		if !ok {
			return false, nil
		}
		switch spec.Kind {
		case model.KindBool, model.KindTechnique:
			return m.toggle()
		default:
			m.beginEdit(spec)
			return true, nil
		}
	case "backspace":
		// Clear a text option without opening the editor.
		spec, ok := m.Selected()
		if ok && spec.Kind == model.KindText {
			return true, m.opts.Set(spec.Key, "")
		}
		return false, nil
	}
	return false, nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (bool, error) {
	switch msg.String() {
	case "enter":
		spec, _ := m.Selected()
		value := strings.TrimSpace(m.input.Value())
		m.editing = false
		m.input.Blur()
		normalized, err := m.normalize(spec, value)
		if err != nil {
			return true, err
		}
		return true, m.opts.Set(spec.Key, normalized)
	case "esc":
		m.cancelEdit()
		return true, nil
	}
	m.input, _ = m.input.Update(msg)
	return true, nil
}

// normalize validates a value and brings it into the form the flag expects
// before it is stored. Headers are re-joined with literal \n separators.
func (m *Model) normalize(spec model.OptionSpec, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	switch spec.Key {
	case "headers":
		headers, err := utils.ParseHeaders(value)
		if err != nil {
			return "", err
		}
		return utils.FormatHeaders(headers), nil
	case "wordlist":
		if !utils.FileExists(value) {
			return "", fmt.Errorf("wordlist not found: %s", value)
		}
	}
	return value, nil
}

func (m *Model) beginEdit(spec model.OptionSpec) {
	m.editing = true
	m.input.SetValue(m.opts.Get(spec.Key))
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) cancelEdit() {
	m.editing = false
	m.input.Blur()
}

func (m *Model) toggle() (bool, error) {
	spec, ok := m.Selected()
	if !ok || (spec.Kind != model.KindBool && spec.Kind != model.KindTechnique) {
		return false, nil
	}
	m.opts.Toggle(spec.Key)
	return true, nil
}

// cycleChoice steps a choice option through its declared set.
func (m *Model) cycleChoice(dir int) (bool, error) {
	spec, ok := m.Selected()
	if !ok || spec.Kind != model.KindChoice || len(spec.Choices) == 0 {
		return false, nil
	}
	current := m.opts.Get(spec.Key)
	idx := 0
	for i, c := range spec.Choices {
		if c == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(spec.Choices)) % len(spec.Choices)
	return true, m.opts.Set(spec.Key, spec.Choices[idx])
}

func (m *Model) move(dir int) {
	next := m.nextSelectable(m.cursor+dir, dir)
	if next >= 0 {
		m.cursor = next
		m.ensureVisible()
	}
}

// nextSelectable finds the first option row at or beyond start, walking in
// dir. Returns -1 when none remain.
func (m *Model) nextSelectable(start, dir int) int {
	for i := start; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].header == "" {
			return i
		}
	}
	return -1
}

func (m *Model) ensureVisible() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) visibleRows() int {
	v := m.height - 2
	if v < 1 {
		v = 1
	}
	return v
}

// View renders the form.
func (m Model) View() string {
	innerWidth := m.width - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	end := m.offset + m.visibleRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}

	var lines []string
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, innerWidth))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)

	border := styles.BorderStyle
	if m.focused {
		border = styles.FocusedBorderStyle
	}
	return border.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(body)
}

func (m Model) renderRow(i, width int) string {
	r := m.rows[i]
	if r.header != "" {
		return styles.GroupHeader.Render(r.header)
	}

	spec := r.spec
	selected := i == m.cursor && m.focused

	label := spec.Title
	value := m.renderValue(spec)
	if selected && m.editing {
		value = styles.OptionEditing.Render(m.input.View())
	}

	line := fmt.Sprintf("  %-28s %s", styles.TruncateWithEllipsis(label, 28), value)
	line = ansi.Truncate(line, width, "...")
	if selected {
		return styles.OptionLabelSelected.Render(line)
	}
	return styles.OptionLabel.Render(line)
}

func (m Model) renderValue(spec model.OptionSpec) string {
	switch spec.Kind {
	case model.KindBool, model.KindTechnique:
		if m.opts.Bool(spec.Key) {
			return styles.OptionValue.Render("[x]")
		}
		return styles.OptionValueDefault.Render("[ ]")
	case model.KindChoice:
		v := m.opts.Get(spec.Key)
		if m.opts.IsDefault(spec.Key) {
			return styles.OptionValueDefault.Render(v)
		}
		return styles.OptionValue.Render(v)
	default:
		v := m.opts.Get(spec.Key)
		if v == "" {
			return styles.OptionValueDefault.Render("-")
		}
		return styles.OptionValue.Render(v)
	}
}
