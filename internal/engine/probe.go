package engine

import (
	"context"

	"github.com/IshaanNene/hnarcade/internal/parser"
	"github.com/IshaanNene/hnarcade/internal/types"
)

// probeMaxBody bounds a probe read; title and meta tags live in <head>.
const probeMaxBody = 256 << 10

// probe fetches each candidate's play page and records its declared title
// and description. Failures only lose the extra detail.
func (e *Engine) probe(ctx context.Context, cands []*types.Candidate) {
	if e.fetcher == nil {
		return
	}
	for _, c := range cands {
		if ctx.Err() != nil {
			return
		}
		req, err := types.NewRequest(c.URL)
		if err != nil {
			continue
		}
		req.Tag = "probe"
		req.MaxBody = probeMaxBody

		resp, err := e.fetcher.Fetch(ctx, req)
		if err != nil {
			e.logger.Debug("probe failed", "url", c.URL, "error", err)
			continue
		}
		if !resp.IsSuccess() {
			e.logger.Debug("probe failed", "url", c.URL, "status", resp.StatusCode)
			continue
		}

		meta, err := parser.ParsePageMeta(resp)
		if err != nil {
			e.logger.Debug("probe parse failed", "url", c.URL, "error", err)
			continue
		}
		c.PageTitle = meta.Title
		c.PageDescription = meta.Description
	}
}
