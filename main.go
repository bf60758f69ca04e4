package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// -------------------- MAIN --------------------

func main() {
	m := newModel()
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
