package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kalebj25/news-aggregator/internal/catalog"
	"github.com/kalebj25/news-aggregator/internal/nav"
)

const sidebarWidth = 30

func renderSidebar(table catalog.Table, state nav.State, height int) string {
	inner := sidebarWidth - 4
	var lines []string

	heading := "CATEGORIES"
	if table.HasTiers() {
		heading = "SECTORS"
	}
	lines = append(lines, sidebarHeadingStyle.Render(heading), "")

	for _, d := range table.Descriptors() {
		label := truncateStr(d.Label, inner-4)
		if d.Key == state.Filter && !state.Searching() {
			row := "▸ " + d.Icon + " " + label
			lines = append(lines, accent(d.Color).Bold(true).Render(row))
			continue
		}
		lines = append(lines, "  "+d.Icon+" "+sidebarItemStyle.Render(label))
	}

	if table.HasTiers() {
		lines = append(lines, "", sidebarHeadingStyle.Render("MASLOW"), "")
		lines = append(lines, renderPyramid(table, state.ActiveTier(table), inner)...)
	}

	content := fitLines(strings.Join(lines, "\n"), height)
	return sidebarStyle.Width(sidebarWidth - 2).Height(height).Render(content)
}

// renderPyramid draws one row per tier, widest at the bottom. The active
// tier's row is filled with its color.
func renderPyramid(table catalog.Table, active catalog.Tier, width int) []string {
	tiers := table.Tiers()
	var rows []string
	for i, ti := range tiers {
		rowWidth := 7 + i*4
		if rowWidth > width {
			rowWidth = width
		}
		label := ti.Roman
		style := lipgloss.NewStyle().
			Width(rowWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color(ti.Color))
		if ti.Key == active {
			style = style.
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color(ti.Color)).
				Bold(true)
		}
		rows = append(rows, lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(label)))
	}
	if ti, ok := table.Tier(active); ok {
		caption := fmt.Sprintf("%s · %s", ti.Roman, ti.Label)
		rows = append(rows, "", lipgloss.PlaceHorizontal(width, lipgloss.Center, accent(ti.Color).Render(truncateStr(caption, width))))
	}
	return rows
}
