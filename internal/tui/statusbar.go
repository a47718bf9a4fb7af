package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type statusInfo struct {
	count     int
	label     string
	phase     phase
	searching bool
	message   string
}

func renderStatusBar(s statusInfo, width int) string {
	var left string
	switch s.phase {
	case phaseLoading:
		left = " loading…"
	case phaseReady:
		left = fmt.Sprintf(" %d articles", s.count)
	default:
		left = " 0 articles"
	}
	if s.label != "" {
		left += " · " + s.label
	}
	if s.message != "" {
		left += " · " + lipgloss.NewStyle().Foreground(colorAccent).Render(s.message)
	}

	right := " h/l sector  tab view  / search  b save  ? help  q quit "
	if s.searching {
		right = " esc cancel  enter search "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).MaxHeight(1).Render(bar)
}

// renderViewBar is the title line above the content: filter label and tier
// tag on the left, view tabs on the right when headlines are available.
func renderViewBar(title, tag, color string, tabs []string, width int) string {
	left := viewTitleStyle.Foreground(lipgloss.Color(color)).Render(title)
	if tag != "" {
		left += "  " + accent(color).Render(tag)
	}
	right := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + fmt.Sprintf("%*s", gap, "") + right
}
