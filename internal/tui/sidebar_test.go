package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalebj25/news-aggregator/internal/catalog"
	"github.com/kalebj25/news-aggregator/internal/nav"
)

// trueColor forces lipgloss to emit color sequences for the test's duration.
func trueColor(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
}

func TestPyramidHighlightsActiveRow(t *testing.T) {
	trueColor(t)
	table, err := catalog.ForMode(catalog.ModeSector)
	require.NoError(t, err)

	// #10B981 is the Safety & Security tier color.
	const safetyBg = "48;2;16;185;129"

	rows := renderPyramid(table, catalog.TierSafety, 26)
	require.GreaterOrEqual(t, len(rows), 5)

	var highlighted []int
	for i, row := range rows[:5] {
		if strings.Contains(row, "48;2;") {
			highlighted = append(highlighted, i)
		}
	}
	assert.Equal(t, []int{3}, highlighted, "only the tier II row should be filled")
	assert.Contains(t, rows[3], safetyBg)
	assert.Contains(t, rows[3], "II")
	assert.Contains(t, strings.Join(rows, "\n"), "II · Safety & Security")
}

func TestPyramidWithoutActiveTier(t *testing.T) {
	trueColor(t)
	table, err := catalog.ForMode(catalog.ModeSector)
	require.NoError(t, err)

	rows := renderPyramid(table, catalog.TierNone, 26)
	assert.Len(t, rows, 5, "no caption without an active tier")
	for _, row := range rows {
		assert.NotContains(t, row, "48;2;")
	}
}

func TestSidebarShowsPyramidForSectorsOnly(t *testing.T) {
	sectors, err := catalog.ForMode(catalog.ModeSector)
	require.NoError(t, err)
	out := renderSidebar(sectors, nav.Initial(sectors, "crypto", nav.ViewFeed), 40)
	assert.Contains(t, out, "MASLOW")
	assert.Contains(t, out, "▸ ₿ Crypto / Blockchain")

	categories, err := catalog.ForMode(catalog.ModeCategory)
	require.NoError(t, err)
	out = renderSidebar(categories, nav.Initial(categories, "science", nav.ViewFeed), 40)
	assert.NotContains(t, out, "MASLOW")
	assert.Contains(t, out, "CATEGORIES")
}
