package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment.
// Priority (highest to lowest): CLI flags > env vars > config file > defaults.
// CLI flags are applied by the caller after Load returns.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("HNARCADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("hnarcade")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".hnarcade"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper so env overrides resolve
// for keys that never appear in a config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog.games_dir", cfg.Catalog.GamesDir)
	v.SetDefault("catalog.screenshots_dir", cfg.Catalog.ScreenshotsDir)
	v.SetDefault("catalog.screenshot_prefix", cfg.Catalog.ScreenshotPrefix)

	v.SetDefault("hn.api_url", cfg.HN.APIURL)
	v.SetDefault("hn.site_url", cfg.HN.SiteURL)
	v.SetDefault("hn.hits_per_page", cfg.HN.HitsPerPage)
	v.SetDefault("hn.max_pages", cfg.HN.MaxPages)
	v.SetDefault("hn.queries", cfg.HN.Queries)

	v.SetDefault("scan.days", cfg.Scan.Days)
	v.SetDefault("scan.min_points", cfg.Scan.MinPoints)

	v.SetDefault("archive.min_points", cfg.Archive.MinPoints)
	v.SetDefault("archive.top_n", cfg.Archive.TopN)
	v.SetDefault("archive.earliest", cfg.Archive.Earliest)
	v.SetDefault("archive.lag_months", cfg.Archive.LagMonths)

	v.SetDefault("tracker.binary", cfg.Tracker.Binary)
	v.SetDefault("tracker.repo", cfg.Tracker.Repo)
	v.SetDefault("tracker.submission_label", cfg.Tracker.SubmissionLabel)
	v.SetDefault("tracker.rejection_label", cfg.Tracker.RejectionLabel)
	v.SetDefault("tracker.archive_label", cfg.Tracker.ArchiveLabel)
	v.SetDefault("tracker.list_limit", cfg.Tracker.ListLimit)

	v.SetDefault("fetcher.request_timeout", cfg.Fetcher.RequestTimeout)
	v.SetDefault("fetcher.max_body_size", cfg.Fetcher.MaxBodySize)
	v.SetDefault("fetcher.user_agent", cfg.Fetcher.UserAgent)
	v.SetDefault("fetcher.idle_conn_timeout", cfg.Fetcher.IdleConnTimeout)
	v.SetDefault("fetcher.max_idle_conns", cfg.Fetcher.MaxIdleConns)

	v.SetDefault("screenshot.width", cfg.Screenshot.Width)
	v.SetDefault("screenshot.height", cfg.Screenshot.Height)
	v.SetDefault("screenshot.settle", cfg.Screenshot.Settle)
	v.SetDefault("screenshot.timeout", cfg.Screenshot.Timeout)
	v.SetDefault("screenshot.stealth", cfg.Screenshot.Stealth)

	v.SetDefault("points.delay", cfg.Points.Delay)

	v.SetDefault("schedule.cron", cfg.Schedule.Cron)
	v.SetDefault("schedule.timezone", cfg.Schedule.Timezone)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}
