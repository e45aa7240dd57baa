// Package engine runs the hnarcade modes: scan, archive, reject, submit,
// points refresh and screenshots.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"github.com/IshaanNene/hnarcade/internal/catalog"
	"github.com/IshaanNene/hnarcade/internal/config"
	"github.com/IshaanNene/hnarcade/internal/discovery"
	"github.com/IshaanNene/hnarcade/internal/fetcher"
	"github.com/IshaanNene/hnarcade/internal/prompt"
	"github.com/IshaanNene/hnarcade/internal/tracker"
	"github.com/IshaanNene/hnarcade/internal/types"
)

// ErrBusy is returned when a run is started while another is in progress.
var ErrBusy = errors.New("engine is already running")

// State represents the engine's current lifecycle state.
type State int32

const (
	StateIdle    State = 0
	StateRunning State = 1
)

// Stats tracks counts across runs.
type Stats struct {
	Runs          atomic.Int64
	HitsFetched   atomic.Int64
	Candidates    atomic.Int64
	IssuesCreated atomic.Int64
	IssuesClosed  atomic.Int64
	IssuesFailed  atomic.Int64
	DocsUpdated   atomic.Int64
	DocsSkipped   atomic.Int64
	DocsFailed    atomic.Int64
	StartTime     time.Time
}

// Snapshot returns a copy of stats safe for reading.
func (s *Stats) Snapshot() map[string]any {
	return map[string]any{
		"runs":           s.Runs.Load(),
		"hits_fetched":   s.HitsFetched.Load(),
		"candidates":     s.Candidates.Load(),
		"issues_created": s.IssuesCreated.Load(),
		"issues_closed":  s.IssuesClosed.Load(),
		"issues_failed":  s.IssuesFailed.Load(),
		"docs_updated":   s.DocsUpdated.Load(),
		"docs_skipped":   s.DocsSkipped.Load(),
		"docs_failed":    s.DocsFailed.Load(),
		"elapsed":        time.Since(s.StartTime).String(),
	}
}

// HN is the Hacker News API used by the engine.
type HN interface {
	discovery.Searcher
	Item(ctx context.Context, id string) (*types.Item, error)
}

// Capturer renders a page to a PNG file.
type Capturer interface {
	Capture(ctx context.Context, rawURL, outPath string) error
	Close() error
}

// Engine wires the HN client, catalog, tracker and operator I/O together.
type Engine struct {
	cfg      *config.Config
	logger   *slog.Logger
	hn       HN
	source   *discovery.Source
	tracker  *tracker.Tracker
	fetcher  fetcher.Fetcher
	capturer Capturer
	prompter *prompt.Prompter
	out      io.Writer

	state atomic.Int32
	stats *Stats
	now   func() time.Time
	rng   *rand.Rand
}

// New creates an Engine reporting to stdout and prompting on stdin.
func New(cfg *config.Config, hn HN, tr *tracker.Tracker, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		logger:   logger.With("component", "engine"),
		hn:       hn,
		source:   discovery.NewSource(hn, cfg.HN, logger),
		tracker:  tr,
		prompter: prompt.New(os.Stdin, os.Stdout),
		out:      os.Stdout,
		stats:    &Stats{StartTime: time.Now()},
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetOutput redirects operator-facing report output.
func (e *Engine) SetOutput(w io.Writer) { e.out = w }

// SetPrompter replaces the operator prompt.
func (e *Engine) SetPrompter(p *prompt.Prompter) { e.prompter = p }

// SetFetcher sets the HTTP fetcher used to probe play pages.
func (e *Engine) SetFetcher(f fetcher.Fetcher) { e.fetcher = f }

// SetCapturer sets the screenshot renderer.
func (e *Engine) SetCapturer(c Capturer) { e.capturer = c }

// SetClock replaces the time source.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// SetRand replaces the random source used to pick archive months.
func (e *Engine) SetRand(rng *rand.Rand) { e.rng = rng }

// Stats returns the run statistics.
func (e *Engine) Stats() *Stats { return e.stats }

// begin marks the engine running; the returned func marks it idle again.
func (e *Engine) begin() (func(), error) {
	if !e.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return nil, ErrBusy
	}
	e.stats.Runs.Add(1)
	return func() { e.state.Store(int32(StateIdle)) }, nil
}

func (e *Engine) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

func (e *Engine) println(args ...any) {
	fmt.Fprintln(e.out, args...)
}

func (e *Engine) buildIndex() (*catalog.Index, error) {
	ix, err := catalog.BuildIndex(e.cfg.Catalog.GamesDir, e.logger)
	if err != nil {
		return nil, fmt.Errorf("build catalog index: %w", err)
	}
	e.printf("Dedup index: %d HN IDs, %d play URLs\n", len(ix.HNIDs), len(ix.PlayURLs))
	return ix, nil
}
