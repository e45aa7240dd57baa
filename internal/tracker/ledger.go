package tracker

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var bodyItemIDRe = regexp.MustCompile(`item\?id=(\d+)`)

// Ledger is what the tracker already knows about: lower-cased issue titles
// and the HN item ids linked from issue bodies.
type Ledger struct {
	Titles map[string]struct{}
	HNIDs  map[string]struct{}
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		Titles: make(map[string]struct{}),
		HNIDs:  make(map[string]struct{}),
	}
}

// AddIssue records an issue's title and every item id in its body.
func (l *Ledger) AddIssue(title, body string) {
	if title != "" {
		l.Titles[strings.ToLower(title)] = struct{}{}
	}
	for _, m := range bodyItemIDRe.FindAllStringSubmatch(body, -1) {
		l.HNIDs[m[1]] = struct{}{}
	}
}

// HasTitle reports whether an issue with the lower-cased title key exists.
func (l *Ledger) HasTitle(key string) bool {
	if l == nil {
		return false
	}
	_, ok := l.Titles[key]
	return ok
}

// HasID reports whether an issue links to the HN item.
func (l *Ledger) HasID(id string) bool {
	if l == nil {
		return false
	}
	_, ok := l.HNIDs[id]
	return ok
}

// Len returns the number of distinct issue titles.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Titles)
}

// Ledger lists all issues, open or closed, carrying any of labels. A label
// that cannot be listed is logged and contributes nothing.
func (t *Tracker) Ledger(ctx context.Context, labels ...string) *Ledger {
	ledger := NewLedger()

	for _, label := range labels {
		out, err := t.runner.Run(ctx, "issue", "list",
			"--label", label,
			"--state", "all",
			"--json", "title,body",
			"--limit", strconv.Itoa(t.cfg.ListLimit),
		)
		if err != nil {
			t.logger.Warn("could not list issues", "label", label, "error", err)
			continue
		}

		var issues []struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		}
		if err := json.Unmarshal(out, &issues); err != nil {
			t.logger.Warn("could not decode issue list", "label", label, "error", err)
			continue
		}
		for _, i := range issues {
			ledger.AddIssue(i.Title, i.Body)
		}
	}

	t.logger.Debug("issue ledger loaded",
		"labels", labels,
		"titles", len(ledger.Titles),
		"hn_ids", len(ledger.HNIDs),
	)
	return ledger
}
