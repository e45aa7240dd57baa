package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IshaanNene/hnarcade/internal/config"
	"github.com/IshaanNene/hnarcade/internal/engine"
)

func useConfigFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hnarcade.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	old := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = old })
}

func TestScanFlagsAreValidated(t *testing.T) {
	useConfigFile(t, "scan:\n  days: 2\n")

	tests := []struct {
		flag, value, wantErr string
	}{
		{"days", "0", "scan.days"},
		{"min-points", "-1", "scan.min_points"},
	}
	for _, tt := range tests {
		cmd := scanCmd()
		if err := cmd.Flags().Set(tt.flag, tt.value); err != nil {
			t.Fatalf("set %s: %v", tt.flag, err)
		}
		_, _, err := loadConfig(scanOverrides(cmd))
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("--%s=%s: err = %v, want %s", tt.flag, tt.value, err, tt.wantErr)
		}
	}
}

func TestScanFlagsOverrideConfig(t *testing.T) {
	useConfigFile(t, "scan:\n  days: 2\n  min_points: 9\n")

	cmd := scanCmd()
	if err := cmd.Flags().Set("days", "4"); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := loadConfig(scanOverrides(cmd))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scan.Days != 4 || cfg.Scan.MinPoints != 9 {
		t.Errorf("scan = %+v", cfg.Scan)
	}
}

func TestLogRunStats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	eng := engine.New(config.DefaultConfig(), nil, nil, logger)
	eng.Stats().IssuesCreated.Add(2)
	eng.Stats().Candidates.Add(3)

	logRunStats(logger, "scan", eng)

	out := buf.String()
	for _, want := range []string{`"msg":"scan complete"`, `"issues_created":2`, `"candidates":3`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s:\n%s", want, out)
		}
	}
}
