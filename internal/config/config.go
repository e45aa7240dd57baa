package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for hnarcade.
type Config struct {
	Catalog    CatalogConfig    `mapstructure:"catalog"    yaml:"catalog"`
	HN         HNConfig         `mapstructure:"hn"         yaml:"hn"`
	Scan       ScanConfig       `mapstructure:"scan"       yaml:"scan"`
	Archive    ArchiveConfig    `mapstructure:"archive"    yaml:"archive"`
	Tracker    TrackerConfig    `mapstructure:"tracker"    yaml:"tracker"`
	Fetcher    FetcherConfig    `mapstructure:"fetcher"    yaml:"fetcher"`
	Screenshot ScreenshotConfig `mapstructure:"screenshot" yaml:"screenshot"`
	Points     PointsConfig     `mapstructure:"points"     yaml:"points"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"   yaml:"schedule"`
	Logging    LoggingConfig    `mapstructure:"logging"    yaml:"logging"`
}

// CatalogConfig locates the game catalog on disk.
type CatalogConfig struct {
	GamesDir         string `mapstructure:"games_dir"         yaml:"games_dir"`
	ScreenshotsDir   string `mapstructure:"screenshots_dir"   yaml:"screenshots_dir"`
	ScreenshotPrefix string `mapstructure:"screenshot_prefix" yaml:"screenshot_prefix"`
}

// HNConfig controls the Hacker News search client.
type HNConfig struct {
	APIURL      string   `mapstructure:"api_url"       yaml:"api_url"`
	SiteURL     string   `mapstructure:"site_url"      yaml:"site_url"`
	HitsPerPage int      `mapstructure:"hits_per_page" yaml:"hits_per_page"`
	MaxPages    int      `mapstructure:"max_pages"     yaml:"max_pages"`
	Queries     []string `mapstructure:"queries"       yaml:"queries"`
}

// ScanConfig controls the recent-window scan.
type ScanConfig struct {
	Days      int `mapstructure:"days"       yaml:"days"`
	MinPoints int `mapstructure:"min_points" yaml:"min_points"`
}

// ArchiveConfig controls month-based archive search.
type ArchiveConfig struct {
	MinPoints int    `mapstructure:"min_points" yaml:"min_points"`
	TopN      int    `mapstructure:"top_n"      yaml:"top_n"`
	Earliest  string `mapstructure:"earliest"   yaml:"earliest"`
	LagMonths int    `mapstructure:"lag_months" yaml:"lag_months"`
}

// TrackerConfig controls the issue tracker CLI.
type TrackerConfig struct {
	Binary          string `mapstructure:"binary"           yaml:"binary"`
	Repo            string `mapstructure:"repo"             yaml:"repo"`
	SubmissionLabel string `mapstructure:"submission_label" yaml:"submission_label"`
	RejectionLabel  string `mapstructure:"rejection_label"  yaml:"rejection_label"`
	ArchiveLabel    string `mapstructure:"archive_label"    yaml:"archive_label"`
	ListLimit       int    `mapstructure:"list_limit"       yaml:"list_limit"`
}

// FetcherConfig controls the HTTP fetcher.
type FetcherConfig struct {
	RequestTimeout  time.Duration `mapstructure:"request_timeout"   yaml:"request_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	UserAgent       string        `mapstructure:"user_agent"        yaml:"user_agent"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
}

// ScreenshotConfig controls headless browser screenshots.
type ScreenshotConfig struct {
	Width   int           `mapstructure:"width"   yaml:"width"`
	Height  int           `mapstructure:"height"  yaml:"height"`
	Settle  time.Duration `mapstructure:"settle"  yaml:"settle"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Stealth bool          `mapstructure:"stealth" yaml:"stealth"`
}

// PointsConfig controls the points refresh job.
type PointsConfig struct {
	Delay time.Duration `mapstructure:"delay" yaml:"delay"`
}

// ScheduleConfig controls the recurring scan.
type ScheduleConfig struct {
	Cron     string `mapstructure:"cron"     yaml:"cron"`
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultQueries are the keyword queries combined with "show hn".
var DefaultQueries = []string{"game", "play", "puzzle", "arcade", "chess", "rpg"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			GamesDir:         "docs/games",
			ScreenshotsDir:   "static/img/games",
			ScreenshotPrefix: "/img/games",
		},
		HN: HNConfig{
			APIURL:      "https://hn.algolia.com/api/v1",
			SiteURL:     "https://news.ycombinator.com",
			HitsPerPage: 100,
			MaxPages:    3,
			Queries:     append([]string(nil), DefaultQueries...),
		},
		Scan: ScanConfig{
			Days:      1,
			MinPoints: 5,
		},
		Archive: ArchiveConfig{
			MinPoints: 5,
			TopN:      5,
			Earliest:  "2010-01",
			LagMonths: 12,
		},
		Tracker: TrackerConfig{
			Binary:          "gh",
			SubmissionLabel: "game-submission",
			RejectionLabel:  "not-a-game",
			ArchiveLabel:    "archive",
			ListLimit:       200,
		},
		Fetcher: FetcherConfig{
			RequestTimeout:  30 * time.Second,
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    10,
		},
		Screenshot: ScreenshotConfig{
			Width:   1280,
			Height:  720,
			Settle:  3 * time.Second,
			Timeout: 30 * time.Second,
			Stealth: true,
		},
		Points: PointsConfig{
			Delay: 100 * time.Millisecond,
		},
		Schedule: ScheduleConfig{
			Cron:     "0 9 * * *",
			Timezone: "UTC",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
