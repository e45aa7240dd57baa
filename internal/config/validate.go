package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var monthKeyRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Catalog.GamesDir) == "" {
		return fmt.Errorf("catalog.games_dir must not be empty")
	}

	if err := ValidateURL(cfg.HN.APIURL); err != nil {
		return fmt.Errorf("hn.api_url: %w", err)
	}
	if err := ValidateURL(cfg.HN.SiteURL); err != nil {
		return fmt.Errorf("hn.site_url: %w", err)
	}
	if cfg.HN.HitsPerPage < 1 || cfg.HN.HitsPerPage > 1000 {
		return fmt.Errorf("hn.hits_per_page must be 1-1000, got %d", cfg.HN.HitsPerPage)
	}
	if cfg.HN.MaxPages < 1 {
		return fmt.Errorf("hn.max_pages must be >= 1, got %d", cfg.HN.MaxPages)
	}
	if len(cfg.HN.Queries) == 0 {
		return fmt.Errorf("hn.queries must list at least one keyword")
	}

	if cfg.Scan.Days < 1 {
		return fmt.Errorf("scan.days must be >= 1, got %d", cfg.Scan.Days)
	}
	if cfg.Scan.MinPoints < 0 {
		return fmt.Errorf("scan.min_points must be >= 0, got %d", cfg.Scan.MinPoints)
	}

	if cfg.Archive.MinPoints < 0 {
		return fmt.Errorf("archive.min_points must be >= 0, got %d", cfg.Archive.MinPoints)
	}
	if cfg.Archive.TopN < 1 {
		return fmt.Errorf("archive.top_n must be >= 1, got %d", cfg.Archive.TopN)
	}
	if !monthKeyRe.MatchString(cfg.Archive.Earliest) {
		return fmt.Errorf("archive.earliest must be YYYY-MM, got %q", cfg.Archive.Earliest)
	}
	if cfg.Archive.LagMonths < 0 {
		return fmt.Errorf("archive.lag_months must be >= 0, got %d", cfg.Archive.LagMonths)
	}

	if cfg.Tracker.Binary == "" {
		return fmt.Errorf("tracker.binary must not be empty")
	}
	if cfg.Tracker.SubmissionLabel == "" || cfg.Tracker.RejectionLabel == "" {
		return fmt.Errorf("tracker submission and rejection labels must be set")
	}
	if cfg.Tracker.ListLimit < 1 {
		return fmt.Errorf("tracker.list_limit must be >= 1, got %d", cfg.Tracker.ListLimit)
	}

	if cfg.Fetcher.RequestTimeout <= 0 {
		return fmt.Errorf("fetcher.request_timeout must be > 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}

	if cfg.Screenshot.Width < 1 || cfg.Screenshot.Height < 1 {
		return fmt.Errorf("screenshot viewport must be positive, got %dx%d", cfg.Screenshot.Width, cfg.Screenshot.Height)
	}
	if cfg.Screenshot.Timeout <= 0 {
		return fmt.Errorf("screenshot.timeout must be > 0")
	}
	if cfg.Points.Delay < 0 {
		return fmt.Errorf("points.delay must be >= 0")
	}
	if strings.TrimSpace(cfg.Schedule.Cron) == "" {
		return fmt.Errorf("schedule.cron must not be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is an absolute http(s) URL.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
