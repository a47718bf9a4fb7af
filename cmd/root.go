package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kalebj25/news-aggregator/internal/catalog"
	"github.com/kalebj25/news-aggregator/internal/config"
	"github.com/kalebj25/news-aggregator/internal/nav"
	"github.com/kalebj25/news-aggregator/internal/newsapi"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagMode    string
	flagSector  string
	flagView    string
	flagVerbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "moreover",
	Short: "Terminal news dashboard",
	Long: `moreover shows news from a local aggregation backend, filtered by sector
(grouped into a Maslow pyramid) or by classic category.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}

		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		// The dashboard owns the terminal, so it logs to a file.
		var output string
		if !cmd.HasParent() {
			output = config.LogPath()
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("creating log dir: %w", err)
			}
		}
		logger, err = newLogger(cfg.LogLevel, flagVerbose, output)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if cfg.DefaultsWriteErr != nil {
			logger.Warn("could not write default config, using embedded defaults", zap.Error(cfg.DefaultsWriteErr))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "filter taxonomy: sector or category")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVar(&flagSector, "sector", "", "filter to start on (sector or category key)")
	rootCmd.Flags().StringVar(&flagView, "view", "", "start view: feed or headlines")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "moreover %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// loadConfig applies --mode on top of the file and environment. Switching
// taxonomy drops a default filter that belongs to the other table.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagMode != "" && flagMode != c.Mode {
		table, err := catalog.ForMode(catalog.Mode(flagMode))
		if err != nil {
			return nil, fmt.Errorf("--mode: %w", err)
		}
		c.Mode = string(table.Mode())
		c.DefaultFilter = table.Default()
	}
	return c, nil
}

// newLogger builds a production zap logger. An empty output means stderr.
func newLogger(level string, verbose bool, output string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	if output != "" {
		zc.OutputPaths = []string{output}
		zc.ErrorOutputPaths = []string{output}
	}
	return zc.Build()
}

func newClient() *newsapi.Client {
	return newsapi.New(cfg.APIBase,
		newsapi.WithTimeout(cfg.TimeoutDuration()),
		newsapi.WithLogger(logger))
}

// resolveFilter validates a filter key against the active table, falling
// back to the configured default when key is empty.
func resolveFilter(table catalog.Table, key string) (string, error) {
	if key == "" {
		return cfg.DefaultFilter, nil
	}
	if _, ok := table.Lookup(key); !ok {
		return "", fmt.Errorf("unknown %s %q (see `moreover sectors`)", table.Param(), key)
	}
	return key, nil
}

func resolveView(s string) (nav.View, error) {
	if s == "" {
		return cfg.View(), nil
	}
	return nav.ParseView(s)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
