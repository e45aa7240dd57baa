package pipeline

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/IshaanNene/hnarcade/internal/catalog"
	"github.com/IshaanNene/hnarcade/internal/tracker"
	"github.com/IshaanNene/hnarcade/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const site = "https://news.ycombinator.com"

func ids(cands []*types.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterDiscoveryRules(t *testing.T) {
	hits := []types.Hit{
		{ObjectID: "1", Title: "Show HN: Tiny Puzzle – a logic game", URL: "https://tiny.example"},
		{ObjectID: "2", Title: "Show HN: My New Blog", URL: "https://blog.example"},
		{ObjectID: "3", Title: "Show HN: Text only game", URL: ""},
		{ObjectID: "1", Title: "Show HN: Tiny Puzzle – a logic game", URL: "https://tiny.example"},
		{ObjectID: "4", Title: "Show HN: Chess trainer", URL: "https://chess.example"},
		{ObjectID: "5", Title: "Show HN: Gameplay recorder", URL: "https://rec.example"},
	}

	got := Filter(hits, catalog.NewIndex(), nil, site, testLogger)
	if want := []string{"1", "4"}; !equal(ids(got), want) {
		t.Fatalf("ids = %v, want %v", ids(got), want)
	}
	if got[0].GameName != "Tiny Puzzle" {
		t.Errorf("game name = %q", got[0].GameName)
	}
	if got[0].HNURL != site+"/item?id=1" {
		t.Errorf("hn url = %q", got[0].HNURL)
	}
}

func TestFilterKnownRules(t *testing.T) {
	ix := catalog.NewIndex()
	ix.AddID("10")
	ix.AddPlayURL("https://www.known.example/play/")
	ledger := tracker.NewLedger()
	ledger.AddIssue("[Game]: Filed Puzzle", "")
	ledger.AddIssue("[Game]: Old Name", "https://news.ycombinator.com/item?id=14")

	hits := []types.Hit{
		{ObjectID: "10", Title: "Show HN: Cataloged game", URL: "https://a.example"},
		{ObjectID: "11", Title: "Show HN: Same URL game", URL: "http://known.example/play"},
		{ObjectID: "12", Title: "Show HN: Filed Puzzle - again", URL: "https://b.example"},
		{ObjectID: "13", Title: "Show HN: Fresh arcade", URL: "https://c.example", Points: 9},
		{ObjectID: "14", Title: "Show HN: New Name puzzle", URL: "https://d.example"},
	}

	got := Filter(hits, ix, ledger, site, testLogger)
	if want := []string{"13"}; !equal(ids(got), want) {
		t.Fatalf("ids = %v, want %v", ids(got), want)
	}
	if got[0].Points != 9 || got[0].Author != types.DefaultAuthor {
		t.Errorf("unexpected candidate %+v", got[0])
	}
}

func TestPipelineDroppedCounts(t *testing.T) {
	p := NewDiscovery(testLogger)
	p.RunHits([]types.Hit{
		{ObjectID: "1", Title: "Show HN: Blog"},
		{ObjectID: "2", Title: "Show HN: Blog", URL: "https://x.example"},
		{ObjectID: "3", Title: "Show HN: game", URL: "https://y.example"},
		{ObjectID: "3", Title: "Show HN: game", URL: "https://y.example"},
	}, site)

	d := p.Dropped()
	if d["require_url"] != 1 || d["game_keyword"] != 1 || d["batch_dedup"] != 1 {
		t.Errorf("dropped = %v", d)
	}
	if p.Len() != 3 {
		t.Errorf("len = %d", p.Len())
	}
}

type failing struct{}

func (failing) Name() string { return "failing" }
func (failing) Process(*types.Candidate) (*types.Candidate, error) {
	return nil, errors.New("boom")
}

func TestPipelineStageError(t *testing.T) {
	p := New(testLogger)
	p.Use(failing{})

	_, err := p.Process(&types.Candidate{ID: "7"})
	var pe *types.PipelineError
	if !errors.As(err, &pe) || pe.Stage != "failing" || pe.ID != "7" {
		t.Fatalf("expected PipelineError, got %v", err)
	}
	if out := p.Run([]*types.Candidate{{ID: "7"}}); len(out) != 0 {
		t.Errorf("failed candidate should be skipped")
	}
}

func TestRequireURLRejectsNonWebLinks(t *testing.T) {
	p := New(testLogger)
	p.Use(RequireURLMiddleware{})

	for _, raw := range []string{"ftp://files.example/game.zip", "/relative/play", "https://"} {
		_, err := p.Process(&types.Candidate{ID: "8", URL: raw})
		var pe *types.PipelineError
		if !errors.As(err, &pe) || pe.Stage != "require_url" || !errors.Is(err, types.ErrUnsupportedURL) {
			t.Errorf("%q: expected require_url PipelineError, got %v", raw, err)
		}
	}

	hits := []types.Hit{
		{ObjectID: "1", Title: "Show HN: Zip game", URL: "ftp://files.example/game.zip"},
		{ObjectID: "2", Title: "Show HN: Web game", URL: "https://web.example"},
	}
	if got := Filter(hits, catalog.NewIndex(), nil, site, testLogger); !equal(ids(got), []string{"2"}) {
		t.Errorf("ids = %v, want [2]", ids(got))
	}
}
