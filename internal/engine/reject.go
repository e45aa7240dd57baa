package engine

import (
	"context"
	"fmt"
	"regexp"

	"github.com/IshaanNene/hnarcade/internal/tracker"
	"github.com/IshaanNene/hnarcade/internal/types"
)

var (
	itemIDRe  = regexp.MustCompile(`^\d+$`)
	itemRefRe = regexp.MustCompile(`item\?id=(\d+)`)
)

// Reject files a not-a-game issue for an HN story and closes it, so later
// runs treat the story as handled.
func (e *Engine) Reject(ctx context.Context, id string) error {
	if !itemIDRe.MatchString(id) {
		return fmt.Errorf("%q: %w", id, types.ErrInvalidItemID)
	}

	done, err := e.begin()
	if err != nil {
		return err
	}
	defer done()

	return e.reject(ctx, id)
}

func (e *Engine) reject(ctx context.Context, id string) error {
	e.printf("Fetching HN item %s...\n", id)
	item, err := e.hn.Item(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch HN item %s: %w", id, err)
	}

	gameName := types.ExtractGameName(item.Title)
	hnURL := types.ItemURL(e.cfg.HN.SiteURL, id)

	e.printf("Rejecting: %s\n", gameName)
	e.printf("  URL: %s\n", item.URL)
	e.printf("  HN:  %s\n\n", hnURL)

	url, number, err := e.tracker.CreateClosed(ctx, tracker.Issue{
		Title:  types.IssueTitle(gameName),
		Body:   tracker.RejectionBody(item.Title, item.URL, hnURL),
		Labels: e.tracker.RejectionLabels(),
	})
	if url != "" {
		e.stats.IssuesCreated.Add(1)
		e.printf("Created issue: %s\n", url)
	}
	if err != nil {
		e.stats.IssuesFailed.Add(1)
		return fmt.Errorf("create rejection issue: %w", err)
	}

	e.stats.IssuesClosed.Add(1)
	e.printf("Closed issue #%s\n\n", number)
	e.printf("%q will be skipped in future scraper runs.\n", gameName)
	e.logger.Info("story rejected", "id", id, "game", gameName, "issue", url)
	return nil
}

// ParseItemRef extracts an HN item id from a bare id or any URL containing
// item?id=<digits>.
func ParseItemRef(input string) (string, error) {
	if itemIDRe.MatchString(input) {
		return input, nil
	}
	if m := itemRefRe.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("%q: %w", input, types.ErrInvalidItemID)
}
