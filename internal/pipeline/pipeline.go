// Package pipeline filters HN search hits down to new game candidates.
package pipeline

import (
	"log/slog"

	"github.com/IshaanNene/hnarcade/internal/types"
)

// Middleware inspects a candidate and returns it, or nil to drop it.
type Middleware interface {
	// Name returns the middleware's identifier.
	Name() string

	// Process inspects a candidate. Return nil to drop it.
	Process(c *types.Candidate) (*types.Candidate, error)
}

// Pipeline chains middleware processors together.
type Pipeline struct {
	middlewares []Middleware
	dropped     map[string]int
	logger      *slog.Logger
}

// New creates a new Pipeline.
func New(logger *slog.Logger) *Pipeline {
	return &Pipeline{
		dropped: make(map[string]int),
		logger:  logger.With("component", "pipeline"),
	}
}

// Use adds a middleware to the pipeline chain.
func (p *Pipeline) Use(mw Middleware) {
	p.middlewares = append(p.middlewares, mw)
	p.logger.Debug("middleware added", "name", mw.Name(), "position", len(p.middlewares))
}

// Process runs the candidate through all middleware in order.
func (p *Pipeline) Process(c *types.Candidate) (*types.Candidate, error) {
	current := c

	for _, mw := range p.middlewares {
		result, err := mw.Process(current)
		if err != nil {
			return nil, &types.PipelineError{Stage: mw.Name(), ID: c.ID, Err: err}
		}
		if result == nil {
			p.dropped[mw.Name()]++
			p.logger.Debug("candidate dropped", "stage", mw.Name(), "id", c.ID, "title", c.Title)
			return nil, nil
		}
		current = result
	}

	return current, nil
}

// Run processes every candidate and returns the survivors in input order.
// A stage error drops that candidate with a warning.
func (p *Pipeline) Run(cands []*types.Candidate) []*types.Candidate {
	out := make([]*types.Candidate, 0, len(cands))
	for _, c := range cands {
		kept, err := p.Process(c)
		if err != nil {
			p.logger.Warn("candidate skipped", "id", c.ID, "error", err)
			continue
		}
		if kept != nil {
			out = append(out, kept)
		}
	}
	p.logger.Debug("filter complete", "in", len(cands), "kept", len(out), "dropped", p.Dropped())
	return out
}

// RunHits materializes hits as candidates and runs them.
func (p *Pipeline) RunHits(hits []types.Hit, siteURL string) []*types.Candidate {
	cands := make([]*types.Candidate, len(hits))
	for i, h := range hits {
		cands[i] = types.NewCandidate(h, siteURL)
	}
	return p.Run(cands)
}

// Dropped returns how many candidates each stage removed.
func (p *Pipeline) Dropped() map[string]int {
	out := make(map[string]int, len(p.dropped))
	for k, v := range p.dropped {
		out[k] = v
	}
	return out
}

// Len returns the number of middleware in the chain.
func (p *Pipeline) Len() int {
	return len(p.middlewares)
}

// NewDiscovery builds the stages that decide whether a hit is a game post at
// all: it must link somewhere, mention a game keyword, and not repeat.
func NewDiscovery(logger *slog.Logger) *Pipeline {
	p := New(logger)
	p.Use(RequireURLMiddleware{})
	p.Use(GameKeywordMiddleware{})
	p.Use(NewBatchDedupMiddleware())
	return p
}

// NewKnown builds the stages that drop candidates already in the catalog or
// already filed in the tracker.
func NewKnown(catalog Catalog, ledger Ledger, logger *slog.Logger) *Pipeline {
	p := New(logger)
	useKnown(p, catalog, ledger)
	return p
}

// NewFull chains the discovery and known stages.
func NewFull(catalog Catalog, ledger Ledger, logger *slog.Logger) *Pipeline {
	p := NewDiscovery(logger)
	useKnown(p, catalog, ledger)
	return p
}

func useKnown(p *Pipeline, catalog Catalog, ledger Ledger) {
	p.Use(KnownHNIDMiddleware{Catalog: catalog})
	p.Use(KnownPlayURLMiddleware{Catalog: catalog})
	p.Use(KnownIssueIDMiddleware{Ledger: ledger})
	p.Use(KnownIssueTitleMiddleware{Ledger: ledger})
}

// Filter returns the hits that are new game candidates, in input order.
func Filter(hits []types.Hit, catalog Catalog, ledger Ledger, siteURL string, logger *slog.Logger) []*types.Candidate {
	return NewFull(catalog, ledger, logger).RunHits(hits, siteURL)
}
