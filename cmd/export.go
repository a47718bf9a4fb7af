package cmd

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kalebj25/news-aggregator/internal/catalog"
	"github.com/kalebj25/news-aggregator/internal/nav"
	"github.com/kalebj25/news-aggregator/internal/newsapi"
	"github.com/kalebj25/news-aggregator/internal/render"
)

const exportConcurrency = 4

var (
	flagExportAll  bool
	flagExportView string
	flagOutput     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the news as a standalone HTML page",
	Long: `Fetch one filter (or every filter with --all) and render the cards as an
HTML page. Each filter becomes a section with its title and tier tag.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := cfg.Table()
		if err != nil {
			return err
		}
		view, err := resolveView(flagExportView)
		if err != nil {
			return fmt.Errorf("--view: %w", err)
		}
		if !table.HasTiers() {
			view = nav.ViewFeed
		}

		keys := table.Keys()
		if !flagExportAll {
			key, err := resolveFilter(table, flagFilter)
			if err != nil {
				return err
			}
			keys = []string{key}
		}

		client := newClient()
		now := time.Now()
		sections := make([]render.Section, len(keys))
		var failed atomic.Int32

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(exportConcurrency)
		for i, key := range keys {
			g.Go(func() error {
				res := client.News(ctx, table.Param(), key, cfg.FeedCount)
				if res.Outcome == newsapi.OutcomeError {
					failed.Add(1)
					logger.Warn("export fetch failed", zap.String("key", key), zap.String("message", res.Message))
				}
				sec, err := buildSection(table, key, view, res, now)
				if err != nil {
					return err
				}
				sections[i] = sec
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		page, err := render.Page("moreover · "+now.Format("January 2, 2006"), sections)
		if err != nil {
			return err
		}
		if err := writeOutput(cmd.OutOrStdout(), flagOutput, page); err != nil {
			return err
		}

		if n := int(failed.Load()); n == len(keys) {
			return fmt.Errorf("every fetch failed (%d)", n)
		} else if n > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d of %d sections failed\n", n, len(keys))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagFilter, "filter", "", "sector or category key (default from config)")
	exportCmd.Flags().BoolVar(&flagExportAll, "all", false, "export every filter of the active mode")
	exportCmd.Flags().StringVar(&flagExportView, "view", "", "feed or headlines (default from config)")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write to file instead of stdout")
	exportCmd.MarkFlagsMutuallyExclusive("filter", "all")

	rootCmd.AddCommand(exportCmd)
}

// buildSection renders one filter's result as a page section. Error and
// empty results get their placeholder instead of cards.
func buildSection(table catalog.Table, key string, view nav.View, res newsapi.Result, now time.Time) (render.Section, error) {
	d, _ := table.Lookup(key)
	sec := render.Section{
		Title:     d.Label,
		TierTag:   table.TierTag(key),
		Color:     table.Color(key),
		Headlines: view == nav.ViewHeadlines,
	}

	var (
		body string
		err  error
	)
	switch {
	case res.Outcome != newsapi.OutcomeSuccess:
		body, err = render.Notice(res)
	case sec.Headlines:
		body, err = render.Headlines(res.Articles, sec.Color, now)
	default:
		body, err = render.Feed(res.Articles, sec.Color, now)
	}
	if err != nil {
		return render.Section{}, fmt.Errorf("rendering %s: %w", key, err)
	}
	sec.Body = template.HTML(body)
	return sec, nil
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
