package welcome

import (
	"strings"

	"oct-dash-tui/styles"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Choice values for the welcome menu.
const (
	ChoiceGenerate = "generate"
	ChoiceLoad     = "load"
)

// TempSelection stores the welcome menu selection
var TempSelection string

// CreateForm creates the welcome menu form
func CreateForm() *huh.Form {
	TempSelection = ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(
					huh.NewOption("Generate a new wallet", ChoiceGenerate),
					huh.NewOption("Load wallet from private key", ChoiceLoad),
				).
				Title("Wallet Dashboard").
				Description("No wallet loaded in this session yet").
				Value(&TempSelection),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// Render renders the welcome view
func Render(form *huh.Form) string {
	if form != nil {
		return form.View()
	}
	return "Loading menu..."
}

// Nav returns the navigation bar for the welcome view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " go",
		styles.Key("l") + " logger",
		styles.Key("Esc") + " quit",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Banner renders the idle greeting under the menu.
func Banner() string {
	return lipgloss.NewStyle().Foreground(styles.CMuted).
		Render("Balances, history and sends go through the remote wallet service.")
}
