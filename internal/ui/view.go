package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/secmux/sqlmux/internal/ui/styles"
)

// View implements tea.Model.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	if a.width == 0 {
		return "loading..."
	}
	if !a.ready {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			styles.OutputPlaceholder.Render(
				fmt.Sprintf("Terminal too small (need at least %dx%d)", minAppWidth, minAppHeight)))
	}

	switch a.dialogMode {
	case DialogSavePreset, DialogExport:
		return a.inputDialog.View()
	case DialogDeletePreset:
		return a.confirmDialog.View()
	case DialogHelp:
		return a.helpView()
	}

	var body string
	switch a.tab {
	case TabOptions:
		body = a.form.View()
	case TabPresets:
		body = a.presetList.View()
	case TabOutput:
		body = a.output.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.tabBarView(),
		a.commandBarView(),
		body,
		a.statusBar.View(),
	)
}

// tabBarView renders the tab strip.
func (a App) tabBarView() string {
	var tabs []string
	for i, title := range tabTitles {
		if Tab(i) == a.tab {
			tabs = append(tabs, styles.TabActive.Render(title))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(title))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	status := styles.RenderStatusDot(a.scanStatus()) + " " + a.scanStatus()
	pad := a.width - lipgloss.Width(bar) - lipgloss.Width(status) - 1
	if pad < 0 {
		pad = 0
	}
	return bar + strings.Repeat(" ", pad) + status + " "
}

// commandBarView renders the live command preview.
func (a App) commandBarView() string {
	prompt := styles.CommandPrompt.Render("$ ")
	command := styles.TruncateWithEllipsis(a.command.String(), a.width-4)
	return styles.CommandBar.Width(a.width).Render(prompt + command)
}

// helpView renders the full key reference from the key map.
func (a App) helpView() string {
	rows := []string{styles.DialogTitle.Render("Keyboard Shortcuts")}
	for _, group := range a.keys.FullHelp() {
		rows = append(rows, "")
		for _, b := range group {
			h := b.Help()
			rows = append(rows, a.helpRow(h.Key, h.Desc))
		}
	}
	rows = append(rows, "", styles.ListItemDim.Render("Press any key to close"))

	box := styles.DialogBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}

func (a App) helpRow(key, desc string) string {
	k := styles.StatusBarKey.Render(fmt.Sprintf("%-18s", key))
	return k + lipgloss.NewStyle().Foreground(styles.TextMuted).Render(desc)
}
