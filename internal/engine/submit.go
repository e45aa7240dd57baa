package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IshaanNene/hnarcade/internal/parser"
	"github.com/IshaanNene/hnarcade/internal/tracker"
	"github.com/IshaanNene/hnarcade/internal/types"
)

// Submit files a game-submission issue for a single HN story. ref is an
// item id or thread URL; when empty the operator is asked for one.
func (e *Engine) Submit(ctx context.Context, ref string, dryRun bool) error {
	ref = strings.TrimSpace(ref)
	if ref == "" && e.prompter != nil {
		ref, _ = e.prompter.Ask("HN thread URL or ID: ")
	}
	if ref == "" {
		return errors.New("no HN URL or id provided")
	}

	id, err := ParseItemRef(ref)
	if err != nil {
		return err
	}

	done, err := e.begin()
	if err != nil {
		return err
	}
	defer done()

	e.printf("Fetching HN item %s...\n", id)
	item, err := e.hn.Item(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch HN item %s: %w", id, err)
	}

	e.printf("Title: %s\n", item.Title)
	e.printf("URL: %s\n", orNone(item.URL))
	e.printf("Author: %s\n", item.Author)
	e.printf("Points: %d\n\n", item.Points)

	playURL := item.URL
	if playURL == "" {
		if link := parser.FirstStoryLink(item.Text, e.cfg.HN.SiteURL); link != "" {
			playURL = link
			e.printf("Using first link from the story text: %s\n\n", link)
		} else {
			playURL = tracker.NoURL
			e.println("Warning: This HN post has no URL. The game may be a text post or Ask HN.")
			e.println()
		}
	}

	author := item.Author
	if author == "" {
		author = types.DefaultAuthor
	}
	gameName := types.ExtractGameName(item.Title)

	issue := tracker.Issue{
		Title: types.IssueTitle(gameName),
		Body: tracker.Submission{
			GameName:    gameName,
			PlayURL:     playURL,
			HNURL:       types.ItemURL(e.cfg.HN.SiteURL, item.IDString()),
			Author:      author,
			ProfileURL:  types.UserURL(e.cfg.HN.SiteURL, author),
			Description: item.Title + "." + tracker.NoteSubmit,
		}.Body(),
		Labels: e.tracker.SubmissionLabels(false),
	}

	if dryRun {
		e.println("=== DRY RUN - Would create issue ===")
		e.println()
		e.printf("Title: %s\n", issue.Title)
		e.printf("Labels: %s\n", strings.Join(issue.Labels, ","))
		e.printf("\nBody:\n%s\n", issue.Body)
		e.println()
		e.println("=== End dry run ===")
		return nil
	}

	url, err := e.tracker.Create(ctx, issue)
	if err != nil {
		e.stats.IssuesFailed.Add(1)
		return fmt.Errorf("create issue: %w", err)
	}
	e.stats.IssuesCreated.Add(1)
	e.printf("Created issue: %s\n", url)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
