package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/kalebj25/news-aggregator/internal/catalog"
	"github.com/kalebj25/news-aggregator/internal/nav"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const appName = "moreover"

type Config struct {
	APIBase       string `yaml:"api_base"`
	Mode          string `yaml:"mode"`
	DefaultFilter string `yaml:"default_filter,omitempty"`
	DefaultView   string `yaml:"default_view,omitempty"`
	FeedCount     int    `yaml:"feed_count,omitempty"`
	SearchCount   int    `yaml:"search_count,omitempty"`
	Timeout       string `yaml:"timeout,omitempty"`
	Retention     string `yaml:"retention,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty"`

	// DefaultsWriteErr is set when a missing config file could not be
	// created. Load still succeeds on the embedded defaults.
	DefaultsWriteErr error `yaml:"-"`
}

// envOverrides are applied on top of the file.
type envOverrides struct {
	APIBase  string `env:"MOREOVER_API_BASE"`
	Mode     string `env:"MOREOVER_MODE"`
	LogLevel string `env:"MOREOVER_LOG_LEVEL"`
}

// Table returns the filter table for the configured mode.
func (c *Config) Table() (catalog.Table, error) {
	return catalog.ForMode(catalog.Mode(c.Mode))
}

func (c *Config) View() nav.View {
	v, err := nav.ParseView(c.DefaultView)
	if err != nil {
		return nav.ViewFeed
	}
	return v
}

// TimeoutDuration is the per-request bound, defaulting to 15s.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// RetentionDuration is how long saved articles are kept by prune.
func (c *Config) RetentionDuration() time.Duration {
	if c.Retention == "" {
		return 90 * 24 * time.Hour
	}
	if d, ok := parseDays(c.Retention); ok {
		return d
	}
	d, err := time.ParseDuration(c.Retention)
	if err != nil {
		return 90 * 24 * time.Hour
	}
	return d
}

// ParseDuration accepts Go durations plus an "Nd" day suffix.
func ParseDuration(s string) (time.Duration, error) {
	if d, ok := parseDays(s); ok {
		return d, nil
	}
	return time.ParseDuration(s)
}

func parseDays(s string) (time.Duration, bool) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, true
		}
	}
	return 0, false
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

func StorePath() string {
	return filepath.Join(xdg.DataHome, appName, "saved.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads path (or the XDG default), fills unset fields from the embedded
// defaults, applies MOREOVER_* environment overrides and validates.
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := defaults
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := writeDefaults(path); err != nil {
			// Non-fatal: keep running on embedded defaults.
			cfg.DefaultsWriteErr = fmt.Errorf("writing default config %s: %w", path, err)
		}
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		mergeDefaults(&fileCfg, defaults)
		cfg = &fileCfg
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func mergeDefaults(cfg, defaults *Config) {
	if cfg.APIBase == "" {
		cfg.APIBase = defaults.APIBase
	}
	if cfg.Mode == "" {
		cfg.Mode = defaults.Mode
	}
	if cfg.DefaultView == "" {
		cfg.DefaultView = defaults.DefaultView
	}
	if cfg.FeedCount == 0 {
		cfg.FeedCount = defaults.FeedCount
	}
	if cfg.SearchCount == 0 {
		cfg.SearchCount = defaults.SearchCount
	}
	if cfg.Timeout == "" {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.Retention == "" {
		cfg.Retention = defaults.Retention
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
}

func applyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.APIBase != "" {
		cfg.APIBase = o.APIBase
	}
	if o.Mode != "" && o.Mode != cfg.Mode {
		cfg.Mode = o.Mode
		// A filter from the other taxonomy would not resolve.
		cfg.DefaultFilter = ""
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	return nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("api_base: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_base: url scheme must be http or https, got %q", u.Scheme)
	}

	table, err := cfg.Table()
	if err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if cfg.DefaultFilter == "" {
		cfg.DefaultFilter = table.Default()
	}
	if _, ok := table.Lookup(cfg.DefaultFilter); !ok {
		return fmt.Errorf("default_filter: unknown %s %q", table.Param(), cfg.DefaultFilter)
	}

	if _, err := nav.ParseView(cfg.DefaultView); err != nil {
		return fmt.Errorf("default_view: %w", err)
	}
	if cfg.FeedCount <= 0 || cfg.SearchCount <= 0 {
		return fmt.Errorf("feed_count and search_count must be positive")
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q (valid: debug, info, warn, error)", cfg.LogLevel)
	}
	return nil
}
