package main

import (
	"github.com/spf13/cobra"

	"github.com/IshaanNene/hnarcade/internal/config"
	"github.com/IshaanNene/hnarcade/internal/engine"
)

var (
	scanDays     int
	minPoints    int
	createIssues bool
	probe        bool
	archiveMonth string
	archivePick  string
	submitDryRun bool
)

// scanCmd creates the "scan" subcommand.
func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find new Show HN games from the last few days",
		Long: `Search recent Show HN posts for games, drop those already cataloged or
filed, and list the rest. With --create-issues a game-submission issue is
filed for each one instead.`,
		Args: cobra.NoArgs,
		RunE: runScan,
	}

	cmd.Flags().IntVar(&scanDays, "days", 0, "look back this many days (default from config: 1)")
	cmd.Flags().IntVar(&minPoints, "min-points", 0, "minimum HN points (default from config: 5)")
	cmd.Flags().BoolVar(&createIssues, "create-issues", false, "file issues instead of a dry-run listing")
	cmd.Flags().Bool("dry-run", true, "list candidates only; --dry-run=false is the same as --create-issues")
	cmd.Flags().BoolVar(&probe, "probe", false, "fetch each play page and show its title and description")

	return cmd
}

// scanOverrides applies the scan flags the operator set.
func scanOverrides(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		if cmd.Flags().Changed("days") {
			cfg.Scan.Days = scanDays
		}
		if cmd.Flags().Changed("min-points") {
			cfg.Scan.MinPoints = minPoints
		}
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(scanOverrides(cmd))
	if err != nil {
		return err
	}
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); !dryRun {
		createIssues = true
	}

	eng, f := newEngine(cfg, logger)
	defer f.Close()
	defer logRunStats(logger, "scan", eng)

	ctx, cancel := signalContext(logger)
	defer cancel()

	_, err = eng.Scan(ctx, engine.ScanOptions{
		Days:         cfg.Scan.Days,
		MinPoints:    cfg.Scan.MinPoints,
		CreateIssues: createIssues,
		Probe:        probe,
	})
	return err
}

// archiveCmd creates the "archive" subcommand.
func archiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Pick top games from a past month for \"From the Archives\"",
		Long: `Search one past month (random unless --month is given) for the
highest-scoring Show HN games not yet cataloged, then submit or reject the
ones you pick, either interactively or with --pick.`,
		Args: cobra.NoArgs,
		RunE: runArchive,
	}

	cmd.Flags().StringVar(&archiveMonth, "month", "", "month to search as YYYY-MM (default: random)")
	cmd.Flags().StringVar(&archivePick, "pick", "", "comma-separated candidate numbers to submit, e.g. 1,3")
	cmd.Flags().IntVar(&minPoints, "min-points", 0, "minimum HN points (default from config: 5)")
	cmd.Flags().BoolVar(&probe, "probe", false, "fetch each play page and show its title and description")

	return cmd
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(func(cfg *config.Config) {
		if cmd.Flags().Changed("min-points") {
			cfg.Archive.MinPoints = minPoints
		}
	})
	if err != nil {
		return err
	}

	eng, f := newEngine(cfg, logger)
	defer f.Close()
	defer logRunStats(logger, "archive", eng)

	ctx, cancel := signalContext(logger)
	defer cancel()

	_, err = eng.Archive(ctx, engine.ArchiveOptions{
		Month:     archiveMonth,
		Pick:      archivePick,
		MinPoints: cfg.Archive.MinPoints,
		Probe:     probe,
	})
	return err
}

// rejectCmd creates the "reject" subcommand.
func rejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <hn-id>",
		Short: "Mark an HN story as not a game",
		Long: `File a not-a-game issue for the story and close it straight away, so
future scans skip it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			eng, f := newEngine(cfg, logger)
			defer f.Close()
			defer logRunStats(logger, "reject", eng)

			ctx, cancel := signalContext(logger)
			defer cancel()
			return eng.Reject(ctx, args[0])
		},
	}
}

// submitCmd creates the "submit" subcommand.
func submitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit [hn-url-or-id]",
		Short: "File a game-submission issue for one HN thread",
		Long: `Fetch one HN story and file a game-submission issue for it. The thread
is given as an item id or URL; without one you are prompted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			eng, f := newEngine(cfg, logger)
			defer f.Close()
			defer logRunStats(logger, "submit", eng)

			ctx, cancel := signalContext(logger)
			defer cancel()

			var ref string
			if len(args) > 0 {
				ref = args[0]
			}
			return eng.Submit(ctx, ref, submitDryRun)
		},
	}

	cmd.Flags().BoolVar(&submitDryRun, "dry-run", false, "print the issue instead of creating it")
	return cmd
}
