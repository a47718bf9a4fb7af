package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kalebj25/news-aggregator/internal/bookmarks"
	"github.com/kalebj25/news-aggregator/internal/newsapi"
	"github.com/kalebj25/news-aggregator/internal/render"
)

// listView is everything the feed and headlines renderers need.
type listView struct {
	articles []newsapi.Article
	cursor   int
	marks    map[string]bookmarks.Marks
	color    string
	width    int
	now      time.Time
}

// renderFeed lays cards out by render.LayoutFor: the hero and the wide card
// span the pane, the rest sit two per row. It also returns the first line of
// each article so the caller can scroll the cursor into view.
func renderFeed(v listView) (string, []int) {
	var (
		rows   []string
		starts = make([]int, len(v.articles))
		line   int
	)

	for i := 0; i < len(v.articles); i++ {
		kind := render.LayoutFor(i)
		if kind == render.CardHero || kind == render.CardWide {
			block := v.card(i, kind, v.width)
			starts[i] = line
			rows = append(rows, block)
			line += lipgloss.Height(block)
			continue
		}

		half := v.width / 2
		left := v.card(i, kind, half)
		starts[i] = line
		row := left
		if next := i + 1; next < len(v.articles) && pairs(render.LayoutFor(next)) {
			right := v.card(next, render.LayoutFor(next), v.width-half)
			starts[next] = line
			row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
			i++
		}
		rows = append(rows, row)
		line += lipgloss.Height(row)
	}
	return strings.Join(rows, "\n"), starts
}

func pairs(k render.CardKind) bool {
	return k == render.CardStandard || k == render.CardPlain
}

func (v listView) card(i int, kind render.CardKind, width int) string {
	a := v.articles[i]
	style := cardStyle
	titleLines, descLines := 2, 2
	if kind == render.CardHero {
		style = heroCardStyle
		titleLines, descLines = 3, 3
	}
	if i == v.cursor {
		style = style.BorderForeground(lipgloss.Color(v.color))
	}
	// Border plus horizontal padding.
	inner := width - 4
	if inner < 8 {
		inner = 8
	}

	var lines []string
	if render.ShowImage(i, a) {
		lines = append(lines, imageMarkerStyle.Render(truncateStr("▣ "+a.Image, inner)))
	}
	lines = append(lines, v.meta(a, inner))
	lines = append(lines, cardTitleStyle.Render(wrapText(a.Title, inner, titleLines)))
	if render.ShowDescription(i, a) {
		lines = append(lines, cardDescStyle.Render(wrapText(render.Description(a), inner, descLines)))
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// meta is the "source · 3h ago" line with bookmark marks.
func (v listView) meta(a newsapi.Article, width int) string {
	source := a.Source
	if source == "" {
		source = "Unknown"
	}
	when := render.TimeAgo(a.Published, v.now)
	badge := markBadge(v.marks[a.URL])

	room := width - lipgloss.Width(when) - lipgloss.Width(badge) - 3
	return accent(v.color).Bold(true).Render(truncateStr(source, room)) +
		cardTimeStyle.Render(" · "+when) + badge
}

func markBadge(m bookmarks.Marks) string {
	var b string
	if m.ReadLater {
		b += " 🔖"
	}
	if m.Favorite {
		b += " ★"
	}
	return b
}

// scrollTo returns the viewport offset that keeps line visible.
func scrollTo(offset, line, height int) int {
	if line < offset {
		return line
	}
	if height > 0 && line >= offset+height {
		return line - height + 1
	}
	return offset
}
