package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kalebj25/news-aggregator/internal/bookmarks"
	"github.com/kalebj25/news-aggregator/internal/config"
	"github.com/kalebj25/news-aggregator/internal/render"
)

var (
	flagSavedKind      string
	flagSavedSearch    string
	flagPruneOlderThan string
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List articles saved for later or marked as favorite",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := bookmarks.QueryOpts{Search: flagSavedSearch}
		if flagSavedKind != "" {
			kind, ok := bookmarks.ParseKind(flagSavedKind)
			if !ok {
				return fmt.Errorf("invalid --kind %q (valid: read_later, favorite)", flagSavedKind)
			}
			opts.Kind = kind
		}

		store, err := bookmarks.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		list, err := store.List(opts)
		if err != nil {
			return err
		}
		printBookmarks(cmd.OutOrStdout(), list, time.Now())
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old saved articles",
	Long: `Delete saved articles older than the retention period.

Uses the retention value from config (default: 90d) unless overridden with --older-than.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := bookmarks.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		retention := cfg.RetentionDuration()
		if flagPruneOlderThan != "" {
			d, err := config.ParseDuration(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		deleted, err := store.Prune(retention)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		out := cmd.OutOrStdout()
		if deleted == 0 {
			fmt.Fprintln(out, "Nothing to prune.")
		} else {
			fmt.Fprintf(out, "Pruned %d saved article(s) older than %s.\n", deleted, formatDuration(retention))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show saved-article statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.StorePath()
		store, err := bookmarks.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		counts, size, err := store.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Store: %s\n", dbPath)
		fmt.Fprintf(out, "Read later: %d\n", counts[bookmarks.KindReadLater])
		fmt.Fprintf(out, "Favorites: %d\n", counts[bookmarks.KindFavorite])
		fmt.Fprintf(out, "Size: %s\n", formatBytes(size))
		return nil
	},
}

func init() {
	savedCmd.Flags().StringVar(&flagSavedKind, "kind", "", "read_later or favorite")
	savedCmd.Flags().StringVar(&flagSavedSearch, "search", "", "match title, description or source")
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override retention period (e.g., 30d, 720h)")

	savedCmd.AddCommand(pruneCmd, statsCmd)
	rootCmd.AddCommand(savedCmd)
}

func printBookmarks(w io.Writer, list []bookmarks.Bookmark, now time.Time) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No saved articles.")
		return
	}
	for _, b := range list {
		mark := "🔖"
		if b.Kind == bookmarks.KindFavorite {
			mark = "★"
		}
		fmt.Fprintf(w, "%s %s\n", mark, titleStyle.Render(b.Title))
		meta := fmt.Sprintf("%s · saved %s", b.Source, render.TimeAgo(b.SavedAt.Format(time.RFC3339), now))
		fmt.Fprintf(w, "   %s\n", dimStyle.Render(meta))
		fmt.Fprintf(w, "   %s\n", lipgloss.NewStyle().Underline(true).Render(b.URL))
	}
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
