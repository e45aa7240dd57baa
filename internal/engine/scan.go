package engine

import (
	"context"
	"time"

	"github.com/IshaanNene/hnarcade/internal/pipeline"
	"github.com/IshaanNene/hnarcade/internal/tracker"
	"github.com/IshaanNene/hnarcade/internal/types"
)

// ScanOptions controls a recent-window scan.
type ScanOptions struct {
	Days         int
	MinPoints    int
	CreateIssues bool
	Probe        bool
}

func (o ScanOptions) mode() string {
	if o.CreateIssues {
		return "create-issues"
	}
	return "dry-run"
}

// Scan finds new game posts from the last opts.Days days. In dry-run it
// lists them; otherwise it files one submission issue per candidate.
func (e *Engine) Scan(ctx context.Context, opts ScanOptions) ([]*types.Candidate, error) {
	done, err := e.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	e.printf("The HN Arcade Scraper - mode: %s, days: %d, min-points: %d\n\n", opts.mode(), opts.Days, opts.MinPoints)

	ix, err := e.buildIndex()
	if err != nil {
		return nil, err
	}

	// The ledger is only consulted when issues will be filed.
	var ledger pipeline.Ledger
	if opts.CreateIssues {
		l := e.tracker.Ledger(ctx, e.tracker.LedgerLabels()...)
		e.printf("Existing game-submission issues: %d\n", l.Len())
		ledger = l
	}

	since := e.now().Add(-time.Duration(opts.Days) * 24 * time.Hour)
	hits := e.source.Recent(ctx, since, opts.MinPoints)
	e.stats.HitsFetched.Add(int64(len(hits)))
	e.printf("Fetched %d total hits from HN API\n", len(hits))

	cands := pipeline.Filter(hits, ix, ledger, e.cfg.HN.SiteURL, e.logger)
	e.stats.Candidates.Add(int64(len(cands)))
	e.printf("Found %d new candidate(s)\n\n", len(cands))

	if len(cands) == 0 {
		e.println("No new games to process.")
		return cands, nil
	}

	if opts.Probe {
		e.probe(ctx, cands)
	}

	for _, c := range cands {
		if ctx.Err() != nil {
			return cands, ctx.Err()
		}
		if !opts.CreateIssues {
			e.printCandidate(c)
			continue
		}
		e.printf("Creating issue for: %s\n", c.GameName)
		e.submitCandidate(ctx, c, false)
		e.println()
	}

	e.logger.Info("scan complete",
		"mode", opts.mode(),
		"hits", len(hits),
		"candidates", len(cands),
	)
	return cands, nil
}

func (e *Engine) printCandidate(c *types.Candidate) {
	e.printf("  %s\n", c.GameName)
	e.printf("    URL:    %s\n", c.URL)
	e.printf("    HN:     %s\n", c.HNURL)
	e.printf("    Points: %d  Author: %s\n", c.Points, c.Author)
	e.printPageMeta(c, "    ")
	e.println()
}

func (e *Engine) printPageMeta(c *types.Candidate, indent string) {
	if c.PageTitle != "" {
		e.printf("%sPage:   %s\n", indent, c.PageTitle)
	}
	if c.PageDescription != "" {
		e.printf("%sAbout:  %s\n", indent, c.PageDescription)
	}
}

// submitCandidate files a submission issue. Failures are reported and
// counted but never stop the caller.
func (e *Engine) submitCandidate(ctx context.Context, c *types.Candidate, archive bool) bool {
	note := tracker.NoteScan
	if archive {
		note = tracker.ArchiveNote(c.ArchiveMonth)
	}

	issue := tracker.Issue{
		Title: c.IssueTitle(),
		Body: tracker.Submission{
			GameName:    c.GameName,
			PlayURL:     c.URL,
			HNURL:       c.HNURL,
			Author:      c.Author,
			ProfileURL:  types.UserURL(e.cfg.HN.SiteURL, c.Author),
			Description: c.Title + "." + note,
		}.Body(),
		Labels: e.tracker.SubmissionLabels(archive),
	}

	url, err := e.tracker.Create(ctx, issue)
	if err != nil {
		e.stats.IssuesFailed.Add(1)
		e.logger.Error("issue creation failed", "game", c.GameName, "id", c.ID, "error", err)
		e.printf("  Failed to create issue for %q: %v\n", c.GameName, err)
		return false
	}
	e.stats.IssuesCreated.Add(1)
	e.printf("  Created issue: %s\n", url)
	return true
}
