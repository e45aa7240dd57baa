// Package scheduler runs a job on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/IshaanNene/hnarcade/internal/config"
)

// Job is one scheduled run.
type Job func(ctx context.Context) error

// Scheduler fires a Job on a cron spec. A run that is still going when the
// next one is due causes that next one to be skipped.
type Scheduler struct {
	spec     string
	schedule cron.Schedule
	location *time.Location
	logger   *slog.Logger
}

// New validates the cron spec and timezone.
func New(cfg config.ScheduleConfig, logger *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}
	sched, err := cron.ParseStandard(cfg.Cron)
	if err != nil {
		return nil, fmt.Errorf("parsing cron spec %q: %w", cfg.Cron, err)
	}
	return &Scheduler{
		spec:     cfg.Cron,
		schedule: sched,
		location: loc,
		logger:   logger.With("component", "scheduler"),
	}, nil
}

// Next returns the first run time after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.location))
}

// Run fires job on schedule until ctx is cancelled, then waits for a run in
// progress to finish.
func (s *Scheduler) Run(ctx context.Context, job Job) error {
	clog := cronLogger{s.logger}
	c := cron.New(
		cron.WithLocation(s.location),
		cron.WithLogger(clog),
		cron.WithChain(cron.Recover(clog), cron.SkipIfStillRunning(clog)),
	)

	c.Schedule(s.schedule, cron.FuncJob(func() {
		start := time.Now()
		s.logger.Info("scheduled run starting")
		if err := job(ctx); err != nil {
			s.logger.Error("scheduled run failed", "error", err, "duration", time.Since(start))
			return
		}
		s.logger.Info("scheduled run finished", "duration", time.Since(start))
	}))

	c.Start()
	s.logger.Info("scheduler started",
		"cron", s.spec,
		"timezone", s.location.String(),
		"next", s.Next(time.Now()).Format(time.RFC3339),
	)

	<-ctx.Done()
	s.logger.Info("scheduler stopping")
	<-c.Stop().Done()
	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
