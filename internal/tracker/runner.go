package tracker

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/IshaanNene/hnarcade/internal/types"
)

// Runner executes one tracker CLI invocation and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner runs the GitHub CLI as a subprocess.
type ExecRunner struct {
	Binary string
	Repo   string // optional owner/name passed as --repo
}

// NewExecRunner creates a runner for binary, defaulting to "gh".
func NewExecRunner(binary, repo string) *ExecRunner {
	if binary == "" {
		binary = "gh"
	}
	return &ExecRunner{Binary: binary, Repo: repo}
}

// Run executes the CLI with args. Arguments are passed directly to the
// process, never through a shell.
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	if r.Repo != "" {
		args = append(args, "--repo", r.Repo)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			err = types.ErrTrackerMissing
		}
		return nil, &types.TrackerError{Op: opName(args), Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}

// opName is the subcommand part of args, e.g. "issue create".
func opName(args []string) string {
	var parts []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") || len(parts) == 2 {
			break
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
