package scheduler

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/IshaanNene/hnarcade/internal/config"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestNext(t *testing.T) {
	s, err := New(config.ScheduleConfig{Cron: "0 9 * * *", Timezone: "UTC"}, testLogger)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	from := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	want := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	if got := s.Next(from); !got.Equal(want) {
		t.Errorf("next = %v, want %v", got, want)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(config.ScheduleConfig{Cron: "not a spec", Timezone: "UTC"}, testLogger); err == nil {
		t.Error("expected cron parse error")
	}
	if _, err := New(config.ScheduleConfig{Cron: "0 9 * * *", Timezone: "Mars/Olympus"}, testLogger); err == nil {
		t.Error("expected timezone error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s, err := New(config.ScheduleConfig{Cron: "0 9 * * *", Timezone: "UTC"}, testLogger)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, func(context.Context) error { return nil })
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
