// Package dialog provides modal dialog components for sqlmux.
package dialog

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/secmux/sqlmux/internal/ui/styles"
)

// InputDialog is a modal dialog for a single text value.
type InputDialog struct {
	title     string
	label     string
	input     textinput.Model
	width     int
	height    int
	submitted bool
	cancelled bool
}

// NewInputDialog creates a new input dialog.
func NewInputDialog(title, label, placeholder, value string) InputDialog {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()
	ti.CursorEnd()

	return InputDialog{
		title: title,
		label: label,
		input: ti,
	}
}

// SetSize updates the dialog dimensions.
func (d *InputDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Update processes a message.
func (d InputDialog) Update(msg tea.Msg) (InputDialog, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			d.submitted = true
			return d, nil
		case "esc":
			d.cancelled = true
			return d, nil
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

// Submitted reports whether the dialog was confirmed.
func (d InputDialog) Submitted() bool {
	return d.submitted
}

// Cancelled reports whether the dialog was dismissed.
func (d InputDialog) Cancelled() bool {
	return d.cancelled
}

// Value returns the entered text.
func (d InputDialog) Value() string {
	return strings.TrimSpace(d.input.Value())
}

// View renders the dialog centered in the available area.
func (d InputDialog) View() string {
	label := lipgloss.NewStyle().Foreground(styles.TextMuted).Render(d.label)
	help := lipgloss.NewStyle().Foreground(styles.TextMuted).MarginTop(1).
		Render("Enter: confirm - Esc: cancel")

	box := styles.DialogBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		styles.DialogTitle.Render(d.title),
		label,
		d.input.View(),
		help,
	))

	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, box)
}

// ConfirmDialog is a modal yes/no prompt.
type ConfirmDialog struct {
	title     string
	question  string
	yes       bool
	decided   bool
	confirmed bool
	width     int
	height    int
}

// NewConfirmDialog creates a new confirmation dialog. "No" starts focused.
func NewConfirmDialog(title, question string) ConfirmDialog {
	return ConfirmDialog{
		title:    title,
		question: question,
	}
}

// SetSize updates the dialog dimensions.
func (d *ConfirmDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Update processes a key event.
func (d ConfirmDialog) Update(msg tea.Msg) ConfirmDialog {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d
	}
	switch key.String() {
	case "left", "right", "h", "l", "tab":
		d.yes = !d.yes
	case "y":
		d.decided = true
		d.confirmed = true
	case "n", "esc":
		d.decided = true
		d.confirmed = false
	case "enter":
		d.decided = true
		d.confirmed = d.yes
	}
	return d
}

// Decided reports whether a choice was made.
func (d ConfirmDialog) Decided() bool {
	return d.decided
}

// Confirmed reports whether "yes" was chosen.
func (d ConfirmDialog) Confirmed() bool {
	return d.confirmed
}

// View renders the dialog centered in the available area.
func (d ConfirmDialog) View() string {
	question := lipgloss.NewStyle().Foreground(styles.TextCol).Render(d.question)

	yesBtn := styles.DialogButton.Render("Yes")
	noBtn := styles.DialogButtonActive.Render("No")
	if d.yes {
		yesBtn = styles.DialogButtonActive.Render("Yes")
		noBtn = styles.DialogButton.Render("No")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yesBtn, noBtn)

	box := styles.DialogBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		styles.DialogTitle.Render(d.title),
		question,
		"",
		buttons,
	))

	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, box)
}
