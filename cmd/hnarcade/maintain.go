package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/hnarcade/internal/config"
	"github.com/IshaanNene/hnarcade/internal/engine"
	"github.com/IshaanNene/hnarcade/internal/fetcher"
	"github.com/IshaanNene/hnarcade/internal/scheduler"
)

var (
	maintDryRun  bool
	maintAll     bool
	recentDays   int
	scheduleCron string
)

// pointsCmd creates the "points" subcommand.
func pointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Refresh HN points in catalog frontmatter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			eng, f := newEngine(cfg, logger)
			defer f.Close()
			defer logRunStats(logger, "points", eng)

			ctx, cancel := signalContext(logger)
			defer cancel()

			_, err = eng.Points(ctx, engine.PointsOptions{
				DryRun:     maintDryRun,
				All:        maintAll,
				RecentDays: recentDays,
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&maintDryRun, "dry-run", false, "preview changes without writing")
	cmd.Flags().BoolVar(&maintAll, "all", false, "also refresh games that already have points")
	cmd.Flags().IntVar(&recentDays, "recent-days", 0, "only games added in the past N days")
	return cmd
}

// screenshotCmd creates the "screenshot" subcommand.
func screenshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screenshot",
		Short: "Capture play-page screenshots for catalog games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			eng, f := newEngine(cfg, logger)
			defer f.Close()
			defer logRunStats(logger, "screenshot", eng)

			capturer := fetcher.NewBrowserCapturer(cfg, logger)
			defer capturer.Close()
			eng.SetCapturer(capturer)

			ctx, cancel := signalContext(logger)
			defer cancel()

			_, err = eng.Screenshots(ctx, engine.ScreenshotOptions{
				DryRun: maintDryRun,
				All:    maintAll,
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&maintDryRun, "dry-run", false, "show what would be captured")
	cmd.Flags().BoolVar(&maintAll, "all", false, "re-capture games that already have a screenshot")
	return cmd
}

// scheduleCmd creates the "schedule" subcommand.
func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the scan on a cron schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(scanOverrides(cmd), func(cfg *config.Config) {
				if cmd.Flags().Changed("cron") {
					cfg.Schedule.Cron = scheduleCron
				}
			})
			if err != nil {
				return err
			}

			sched, err := scheduler.New(cfg.Schedule, logger)
			if err != nil {
				return err
			}

			eng, f := newEngine(cfg, logger)
			defer f.Close()

			ctx, cancel := signalContext(logger)
			defer cancel()

			return sched.Run(ctx, func(ctx context.Context) error {
				_, err := eng.Scan(ctx, engine.ScanOptions{
					Days:         cfg.Scan.Days,
					MinPoints:    cfg.Scan.MinPoints,
					CreateIssues: createIssues,
				})
				logRunStats(logger, "scheduled scan", eng)
				if err != nil {
					return fmt.Errorf("scheduled scan: %w", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&scheduleCron, "cron", "", "cron spec (default from config: \"0 9 * * *\")")
	cmd.Flags().IntVar(&scanDays, "days", 0, "look back this many days")
	cmd.Flags().IntVar(&minPoints, "min-points", 0, "minimum HN points")
	cmd.Flags().BoolVar(&createIssues, "create-issues", false, "file issues on each run")
	return cmd
}
