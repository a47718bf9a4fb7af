package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var helpGroupTitles = []string{"Navigation", "Views", "Articles", "General"}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("moreover")

	var b strings.Builder
	b.WriteString(title + helpDimStyle.Render(" · keyboard shortcuts") + "\n")
	for i, group := range a.keys.helpGroups() {
		b.WriteString("\n" + helpDimStyle.Render(helpGroupTitles[i]) + "\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %s %s\n", helpKeyStyle.Render(fmt.Sprintf("%-12s", h.Key)), h.Desc))
		}
	}
	b.WriteString("\n" + helpDimStyle.Render("In search: enter runs, esc cancels"))

	return centerIn(helpCardStyle.Render(b.String()), a.width, a.height)
}
