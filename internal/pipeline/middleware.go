package pipeline

import (
	"net/url"
	"regexp"

	"github.com/IshaanNene/hnarcade/internal/types"
)

// GameKeywords matches titles that look like game posts.
var GameKeywords = regexp.MustCompile(`(?i)\b(game|games|play|puzzle|arcade|chess|rpg|platformer|roguelike|tetris|sudoku|minesweeper|wordle|sokoban)\b`)

// Catalog is the lookup side of the catalog index.
type Catalog interface {
	HasID(id string) bool
	HasPlayURL(raw string) bool
}

// RequireURLMiddleware drops text-only posts. A link that is not an
// absolute http(s) URL cannot become a play URL and fails the stage.
type RequireURLMiddleware struct{}

func (RequireURLMiddleware) Name() string { return "require_url" }

func (RequireURLMiddleware) Process(c *types.Candidate) (*types.Candidate, error) {
	if c.URL == "" {
		return nil, nil
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, &types.ParseError{URL: c.URL, Err: err}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &types.ParseError{URL: c.URL, Err: types.ErrUnsupportedURL}
	}
	return c, nil
}

// GameKeywordMiddleware drops titles without a game keyword.
type GameKeywordMiddleware struct{}

func (GameKeywordMiddleware) Name() string { return "game_keyword" }

func (GameKeywordMiddleware) Process(c *types.Candidate) (*types.Candidate, error) {
	if !GameKeywords.MatchString(c.Title) {
		return nil, nil
	}
	return c, nil
}

// BatchDedupMiddleware drops repeats of a story id within one run.
type BatchDedupMiddleware struct {
	seen map[string]struct{}
}

func NewBatchDedupMiddleware() *BatchDedupMiddleware {
	return &BatchDedupMiddleware{seen: make(map[string]struct{})}
}

func (m *BatchDedupMiddleware) Name() string { return "batch_dedup" }

func (m *BatchDedupMiddleware) Process(c *types.Candidate) (*types.Candidate, error) {
	if _, exists := m.seen[c.ID]; exists {
		return nil, nil
	}
	m.seen[c.ID] = struct{}{}
	return c, nil
}

// KnownHNIDMiddleware drops stories the catalog already links to.
type KnownHNIDMiddleware struct {
	Catalog Catalog
}

func (m KnownHNIDMiddleware) Name() string { return "known_hn_id" }

func (m KnownHNIDMiddleware) Process(c *types.Candidate) (*types.Candidate, error) {
	if m.Catalog != nil && m.Catalog.HasID(c.ID) {
		return nil, nil
	}
	return c, nil
}

// KnownPlayURLMiddleware drops stories whose link is already a catalog
// play URL.
type KnownPlayURLMiddleware struct {
	Catalog Catalog
}

func (m KnownPlayURLMiddleware) Name() string { return "known_play_url" }

func (m KnownPlayURLMiddleware) Process(c *types.Candidate) (*types.Candidate, error) {
	if m.Catalog != nil && m.Catalog.HasPlayURL(c.URL) {
		return nil, nil
	}
	return c, nil
}

// Ledger is the set of stories and games the issue tracker already holds.
type Ledger interface {
	HasTitle(key string) bool
	HasID(id string) bool
}

// KnownIssueIDMiddleware drops stories an issue, open or closed, already
// links to. This keeps a rejected story out even after its title changes.
type KnownIssueIDMiddleware struct {
	Ledger Ledger
}

func (m KnownIssueIDMiddleware) Name() string { return "known_issue_id" }

func (m KnownIssueIDMiddleware) Process(c *types.Candidate) (*types.Candidate, error) {
	if m.Ledger != nil && m.Ledger.HasID(c.ID) {
		return nil, nil
	}
	return c, nil
}

// KnownIssueTitleMiddleware drops games that already have a tracker issue,
// open or closed, under the same "[Game]: <name>" title.
type KnownIssueTitleMiddleware struct {
	Ledger Ledger
}

func (m KnownIssueTitleMiddleware) Name() string { return "known_issue_title" }

func (m KnownIssueTitleMiddleware) Process(c *types.Candidate) (*types.Candidate, error) {
	if m.Ledger != nil && m.Ledger.HasTitle(c.IssueKey()) {
		return nil, nil
	}
	return c, nil
}
