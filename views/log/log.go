package log

import (
	"fmt"

	"oct-dash-tui/helpers"
	"oct-dash-tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// PanelHeight returns the viewport height for the log panel given the
// terminal height. Capped at a third of the screen or 15 lines.
func PanelHeight(height int) int {
	reservedHeight := 10 // header, nav, panel chrome
	availableHeight := helpers.Max(5, height-reservedHeight)
	return helpers.Min(availableHeight, helpers.Min(height/3, 15))
}

// Render renders the log panel
func Render(width, height int, logReady bool, logSpinnerView string, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")

	panelHeight := PanelHeight(height)
	vp.Height = panelHeight

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2)).
		Height(panelHeight + 2)

	if !logReady {
		return border.Render(title + "\n\n" + "initializing...\n" + logSpinnerView)
	}

	scrollInfo := ""
	if vp.TotalLineCount() > vp.Height {
		scrollInfo = styles.MutedStyle.Render(
			fmt.Sprintf(" [%d%%] PgUp/PgDn scroll", int(vp.ScrollPercent()*100)))
	}

	return border.Render(title + scrollInfo + "\n\n" + vp.View())
}
