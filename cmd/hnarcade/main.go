package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/hnarcade/internal/config"
	"github.com/IshaanNene/hnarcade/internal/engine"
	"github.com/IshaanNene/hnarcade/internal/fetcher"
	"github.com/IshaanNene/hnarcade/internal/hn"
	"github.com/IshaanNene/hnarcade/internal/tracker"
)

var (
	cfgFile    string
	verbose    bool
	catalogDir string
	repo       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hnarcade",
		Short: "hnarcade - Show HN game discovery for The HN Arcade",
		Long: `hnarcade finds "Show HN" game posts on Hacker News, drops the ones
already in the catalog or the issue tracker, and files game-submission
issues for the rest.

It also keeps the catalog tidy: refreshing HN points, capturing
screenshots and submitting single threads by hand.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog-dir", "", "catalog markdown directory (default docs/games)")
	rootCmd.PersistentFlags().StringVar(&repo, "repo", "", "issue repository as owner/name (default: current repo)")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(archiveCmd())
	rootCmd.AddCommand(rejectCmd())
	rootCmd.AddCommand(submitCmd())
	rootCmd.AddCommand(pointsCmd())
	rootCmd.AddCommand(screenshotCmd())
	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration, applies the root flags and then each
// command override, validates the result and sets up the logger from it.
func loadConfig(overrides ...func(*config.Config)) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	applyCLIOverrides(cfg)
	for _, override := range overrides {
		override(cfg)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, setupLogger(cfg), nil
}

// applyCLIOverrides applies root flag values to the config.
func applyCLIOverrides(cfg *config.Config) {
	if catalogDir != "" {
		cfg.Catalog.GamesDir = catalogDir
	}
	if repo != "" {
		cfg.Tracker.Repo = repo
	}
}

// setupLogger creates a structured logger.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// newEngine wires the HN client, tracker and fetcher into an engine. The
// returned fetcher must be closed by the caller.
func newEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, *fetcher.HTTPFetcher) {
	httpFetcher := fetcher.NewHTTPFetcher(cfg, logger)
	client := hn.NewClient(httpFetcher, cfg.HN.APIURL, logger)
	tr := tracker.New(tracker.NewExecRunner(cfg.Tracker.Binary, cfg.Tracker.Repo), cfg.Tracker, logger)

	eng := engine.New(cfg, client, tr, logger)
	eng.SetFetcher(httpFetcher)
	return eng, httpFetcher
}

// logRunStats logs the engine counters once a command has finished.
func logRunStats(logger *slog.Logger, command string, eng *engine.Engine) {
	stats := eng.Stats().Snapshot()
	logger.Info(command+" complete",
		"elapsed", stats["elapsed"],
		"hits", stats["hits_fetched"],
		"candidates", stats["candidates"],
		"issues_created", stats["issues_created"],
		"issues_closed", stats["issues_closed"],
		"issues_failed", stats["issues_failed"],
		"docs_updated", stats["docs_updated"],
		"docs_skipped", stats["docs_skipped"],
		"docs_failed", stats["docs_failed"],
	)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down...", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
