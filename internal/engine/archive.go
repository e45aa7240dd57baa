package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/IshaanNene/hnarcade/internal/discovery"
	"github.com/IshaanNene/hnarcade/internal/pipeline"
	"github.com/IshaanNene/hnarcade/internal/prompt"
	"github.com/IshaanNene/hnarcade/internal/types"
)

const (
	selectQuestion = "Select games to add (e.g., 1,3,5), 'r' to reject, or Enter to skip: "
	rejectQuestion = "Enter numbers to reject as not-a-game (e.g., 1,2): "
)

// ArchiveOptions controls an archive run.
type ArchiveOptions struct {
	Month     string // YYYY-MM; empty picks a random month
	Pick      string // comma-separated picks; empty prompts the operator
	MinPoints int
	Probe     bool
}

// Archive presents the top new game posts from one past month and files
// issues for the ones the operator picks, or rejects them.
func (e *Engine) Archive(ctx context.Context, opts ArchiveOptions) ([]*types.Candidate, error) {
	month, err := e.archiveMonth(opts.Month)
	if err != nil {
		return nil, err
	}

	done, err := e.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	e.println("The HN Arcade Scraper (Archive Mode)")
	e.println()

	ix, err := e.buildIndex()
	if err != nil {
		return nil, err
	}

	ledger := e.tracker.Ledger(ctx, e.tracker.LedgerLabels()...)
	if ledger.Len() > 0 {
		e.printf("Existing issues: %d\n", ledger.Len())
	}
	e.println()

	e.printf("Searching for top game from %s...\n", month.Display)
	cands := e.source.Archive(ctx, month, opts.MinPoints)
	e.stats.Candidates.Add(int64(len(cands)))
	e.printf("Found %d game(s) from %s\n\n", len(cands), month.Display)

	if len(cands) == 0 {
		e.println("No games found for this month. Try a different month.")
		return nil, nil
	}

	fresh := pipeline.NewKnown(ix, ledger, e.logger).Run(cands)
	if len(fresh) == 0 {
		e.println("All top games from this month are already in the catalog or have open issues.")
		e.println("Top games found (already tracked):")
		for _, c := range cands[:min(len(cands), e.cfg.Archive.TopN)] {
			e.printf("  - %s (%d points)\n", c.GameName, c.Points)
		}
		return nil, nil
	}

	top := fresh[:min(len(fresh), e.cfg.Archive.TopN)]
	for i, c := range top {
		c.Number = i + 1
	}
	if opts.Probe {
		e.probe(ctx, top)
	}

	e.printf("Top %d candidates from %s:\n\n", len(top), month.Display)
	for _, c := range top {
		e.printf("  [%d] %s\n", c.Number, c.GameName)
		e.printf("      URL:    %s\n", c.URL)
		e.printf("      HN:     %s (%d points)\n", c.HNURL, c.Points)
		e.printPageMeta(c, "      ")
		e.println()
	}

	picks, reject, err := e.selectCandidates(opts.Pick, len(top))
	if err != nil {
		return top, err
	}
	if len(picks) == 0 {
		return top, nil
	}

	e.println()
	if reject {
		for _, n := range picks {
			c := top[n-1]
			e.printf("Rejecting: %s\n", c.GameName)
			if err := e.reject(ctx, c.ID); err != nil {
				e.logger.Error("rejection failed", "game", c.GameName, "id", c.ID, "error", err)
				e.printf("Failed to reject %q: %v\n", c.GameName, err)
			}
			e.println()
		}
		return top, nil
	}

	e.printf("Creating issues for: %s\n\n", joinInts(picks))
	for _, n := range picks {
		c := top[n-1]
		e.printf("Creating archive issue for: %s\n", c.GameName)
		e.submitCandidate(ctx, c, true)
		e.println()
	}
	return top, nil
}

func (e *Engine) archiveMonth(key string) (discovery.Month, error) {
	if key != "" {
		return discovery.ParseMonth(key)
	}
	earliest, err := discovery.ParseMonth(e.cfg.Archive.Earliest)
	if err != nil {
		return discovery.Month{}, fmt.Errorf("archive.earliest: %w", err)
	}
	return discovery.RandomMonth(e.now(), earliest, e.cfg.Archive.LagMonths, e.rng), nil
}

// selectCandidates returns the operator's picks among n candidates and
// whether they are to be rejected rather than submitted. No picks means
// nothing should happen. A --pick value naming no candidate is an
// ErrNoSelection.
func (e *Engine) selectCandidates(pick string, n int) ([]int, bool, error) {
	if pick != "" {
		picks := prompt.ParsePicks(pick, n)
		if len(picks) == 0 {
			e.printf("Invalid --pick value. Use numbers 1-%d (e.g., --pick=1,3)\n", n)
			return nil, false, fmt.Errorf("--pick %q: %w", pick, types.ErrNoSelection)
		}
		return picks, false, nil
	}

	if e.prompter == nil {
		e.println("No selection made. Exiting.")
		return nil, false, nil
	}

	for {
		answer, err := e.prompter.Ask(selectQuestion)
		if err != nil || answer == "" {
			e.println("No selection made. Exiting.")
			return nil, false, nil
		}

		if strings.EqualFold(answer, "r") {
			picks := e.prompter.AskPicks(rejectQuestion, n)
			if len(picks) == 0 {
				e.println("No selection made. Exiting.")
			}
			return picks, true, nil
		}

		if picks := prompt.ParsePicks(answer, n); len(picks) > 0 {
			return picks, false, nil
		}
		e.printf("No valid selections. Use numbers 1-%d, 'r' to reject, or Enter to skip.\n", n)
	}
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
