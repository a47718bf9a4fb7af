package tui

import (
	"fmt"
	"strings"

	"github.com/kalebj25/news-aggregator/internal/render"
)

// renderHeadlines is the compact one-block-per-article list: title, then
// source and age. Returns the first line of each article like renderFeed.
func renderHeadlines(v listView) (string, []int) {
	var (
		b      strings.Builder
		starts = make([]int, len(v.articles))
		line   int
	)
	inner := v.width - 4

	for i, a := range v.articles {
		starts[i] = line
		marker := "  "
		title := truncateStr(a.Title, inner)
		if i == v.cursor {
			marker = accent(v.color).Render("▌ ")
			title = headlineSelectedStyle.Render(title)
		} else {
			title = cardTitleStyle.Render(title)
		}

		source := a.Source
		if source == "" {
			source = "Unknown"
		}
		meta := fmt.Sprintf("%s · %s", source, render.TimeAgo(a.Published, v.now))

		b.WriteString(marker + title + "\n")
		b.WriteString("  " + cardTimeStyle.Render(truncateStr(meta, inner)) + markBadge(v.marks[a.URL]) + "\n")
		if i < len(v.articles)-1 {
			b.WriteString("  " + placeholderStyle.Render(strings.Repeat("─", max(inner, 1))) + "\n")
		}
		line += 3
	}
	return strings.TrimRight(b.String(), "\n"), starts
}

