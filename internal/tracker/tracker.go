// Package tracker reads and writes game issues through the GitHub CLI.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/IshaanNene/hnarcade/internal/config"
	"github.com/IshaanNene/hnarcade/internal/types"
)

var issueNumberRe = regexp.MustCompile(`^\d+$`)

// Issue is an issue to be filed.
type Issue struct {
	Title  string
	Body   string
	Labels []string
}

// Tracker is the issue ledger.
type Tracker struct {
	runner Runner
	cfg    config.TrackerConfig
	logger *slog.Logger
}

// New creates a Tracker over runner.
func New(runner Runner, cfg config.TrackerConfig, logger *slog.Logger) *Tracker {
	return &Tracker{
		runner: runner,
		cfg:    cfg,
		logger: logger.With("component", "tracker"),
	}
}

// LedgerLabels are the labels whose issues count as already handled.
func (t *Tracker) LedgerLabels() []string {
	return []string{t.cfg.SubmissionLabel, t.cfg.RejectionLabel}
}

// Create files issue and returns the new issue's URL.
func (t *Tracker) Create(ctx context.Context, issue Issue) (string, error) {
	out, err := t.runner.Run(ctx, "issue", "create",
		"--title", issue.Title,
		"--label", strings.Join(issue.Labels, ","),
		"--body", issue.Body,
	)
	if err != nil {
		return "", err
	}
	url := strings.TrimSpace(string(out))
	t.logger.Debug("issue created", "title", issue.Title, "url", url)
	return url, nil
}

// Close closes the issue with the given number.
func (t *Tracker) Close(ctx context.Context, number string) error {
	if _, err := t.runner.Run(ctx, "issue", "close", number); err != nil {
		return err
	}
	t.logger.Debug("issue closed", "number", number)
	return nil
}

// CreateClosed files issue and closes it immediately, returning the URL and
// issue number. If closing fails the URL is still returned with the error.
func (t *Tracker) CreateClosed(ctx context.Context, issue Issue) (url, number string, err error) {
	url, err = t.Create(ctx, issue)
	if err != nil {
		return "", "", err
	}
	number, err = IssueNumber(url)
	if err != nil {
		return url, "", err
	}
	if err := t.Close(ctx, number); err != nil {
		return url, number, err
	}
	return url, number, nil
}

// IssueNumber extracts the issue number from an issue URL's last segment.
func IssueNumber(url string) (string, error) {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	n := url[strings.LastIndex(url, "/")+1:]
	if !issueNumberRe.MatchString(n) {
		return "", fmt.Errorf("%q: %w", url, types.ErrIssueURL)
	}
	return n, nil
}

// SubmissionLabels returns the labels for a submission issue.
func (t *Tracker) SubmissionLabels(archive bool) []string {
	if archive {
		return []string{t.cfg.SubmissionLabel, t.cfg.ArchiveLabel}
	}
	return []string{t.cfg.SubmissionLabel}
}

// RejectionLabels returns the labels for a rejection issue.
func (t *Tracker) RejectionLabels() []string {
	return []string{t.cfg.RejectionLabel}
}
