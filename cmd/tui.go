package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kalebj25/news-aggregator/internal/bookmarks"
	"github.com/kalebj25/news-aggregator/internal/config"
	"github.com/kalebj25/news-aggregator/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	table, err := cfg.Table()
	if err != nil {
		return err
	}
	filter, err := resolveFilter(table, flagSector)
	if err != nil {
		return fmt.Errorf("--sector: %w", err)
	}
	view, err := resolveView(flagView)
	if err != nil {
		return fmt.Errorf("--view: %w", err)
	}

	opts := tui.RunOpts{
		Table:       table,
		Source:      newClient(),
		Filter:      filter,
		View:        view,
		FeedCount:   cfg.FeedCount,
		SearchCount: cfg.SearchCount,
		Timeout:     cfg.TimeoutDuration(),
		Logger:      logger,
	}

	// Bookmarks are optional; the dashboard still works without the store.
	store, err := bookmarks.Open(config.StorePath())
	if err != nil {
		logger.Warn("bookmarks unavailable", zap.Error(err))
	} else {
		defer store.Close()
		opts.Store = store
	}

	logger.Info("starting dashboard",
		zap.String("mode", cfg.Mode),
		zap.String("filter", filter),
		zap.String("view", string(view)),
		zap.String("api", cfg.APIBase))
	return tui.Run(opts)
}
