package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kalebj25/news-aggregator/internal/catalog"
	"github.com/kalebj25/news-aggregator/internal/newsapi"
	"github.com/kalebj25/news-aggregator/internal/render"
)

var (
	flagFilter string
	flagCount  int
)

var headlinesCmd = &cobra.Command{
	Use:   "headlines",
	Short: "Print the headlines for one sector or category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := cfg.Table()
		if err != nil {
			return err
		}
		key, err := resolveFilter(table, flagFilter)
		if err != nil {
			return err
		}
		count := flagCount
		if count <= 0 {
			count = cfg.FeedCount
		}

		res := newClient().News(cmd.Context(), table.Param(), key, count)
		d, _ := table.Lookup(key)
		heading := d.Label
		if tag := table.TierTag(key); tag != "" {
			heading += "  " + tag
		}
		return printResult(cmd.OutOrStdout(), heading, table.Color(key), res)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search news across all sources",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("search query is empty")
		}
		table, err := cfg.Table()
		if err != nil {
			return err
		}
		count := flagCount
		if count <= 0 {
			count = cfg.SearchCount
		}

		res := newClient().Search(cmd.Context(), query, count)
		return printResult(cmd.OutOrStdout(), fmt.Sprintf("Search: %q", query), table.Color(table.Default()), res)
	},
}

var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "List the filters of the active mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := cfg.Table()
		if err != nil {
			return err
		}
		printTable(cmd.OutOrStdout(), table)
		return nil
	},
}

func init() {
	headlinesCmd.Flags().StringVar(&flagFilter, "filter", "", "sector or category key (default from config)")
	headlinesCmd.Flags().IntVar(&flagCount, "count", 0, "number of articles (default from config)")
	searchCmd.Flags().IntVar(&flagCount, "count", 0, "number of results (default from config)")

	rootCmd.AddCommand(headlinesCmd, searchCmd, sectorsCmd)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"})
)

// printResult writes a plain-terminal rendering of res. An error outcome
// prints the message verbatim and fails the command.
func printResult(w io.Writer, heading, color string, res newsapi.Result) error {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	fmt.Fprintln(w, accent.Bold(true).Render(heading))
	fmt.Fprintln(w)

	switch res.Outcome {
	case newsapi.OutcomeError:
		fmt.Fprintln(w, res.Message)
		return fmt.Errorf("fetch failed: %s", res.Message)
	case newsapi.OutcomeEmpty:
		fmt.Fprintln(w, render.NoArticles)
		return nil
	}

	now := time.Now()
	for i, a := range res.Articles {
		source := a.Source
		if source == "" {
			source = "Unknown"
		}
		fmt.Fprintf(w, "%2d. %s\n", i+1, titleStyle.Render(a.Title))
		fmt.Fprintf(w, "    %s %s\n", accent.Render(source), dimStyle.Render("· "+render.TimeAgo(a.Published, now)))
		fmt.Fprintf(w, "    %s\n", dimStyle.Render(a.URL))
	}
	return nil
}

func printTable(w io.Writer, table catalog.Table) {
	current := catalog.TierNone
	for _, d := range table.Descriptors() {
		if table.HasTiers() && d.Tier != current {
			current = d.Tier
			if ti, ok := table.Tier(d.Tier); ok {
				fmt.Fprintln(w)
				fmt.Fprintln(w, lipgloss.NewStyle().Foreground(lipgloss.Color(ti.Color)).Bold(true).
					Render(fmt.Sprintf("Tier %s — %s", ti.Roman, ti.Label)))
			}
		}
		key := lipgloss.NewStyle().Foreground(lipgloss.Color(d.Color)).Render(fmt.Sprintf("%-14s", d.Key))
		fmt.Fprintf(w, "  %s %s %s\n", d.Icon, key, d.Label)
	}
}

