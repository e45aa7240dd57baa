// Package discovery pulls candidate game posts from Hacker News search.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/IshaanNene/hnarcade/internal/config"
	"github.com/IshaanNene/hnarcade/internal/hn"
	"github.com/IshaanNene/hnarcade/internal/pipeline"
	"github.com/IshaanNene/hnarcade/internal/types"
)

// Searcher is the subset of the HN client used by Source.
type Searcher interface {
	SearchByDate(ctx context.Context, p hn.SearchParams) (*types.SearchResponse, error)
	Search(ctx context.Context, p hn.SearchParams) (*types.SearchResponse, error)
}

// Source runs the keyword queries against HN search.
type Source struct {
	client Searcher
	cfg    config.HNConfig
	logger *slog.Logger
}

// NewSource creates a Source.
func NewSource(client Searcher, cfg config.HNConfig, logger *slog.Logger) *Source {
	return &Source{
		client: client,
		cfg:    cfg,
		logger: logger.With("component", "discovery"),
	}
}

// retryable reports whether a failed search is worth re-running later.
func retryable(err error) bool {
	var fe *types.FetchError
	return errors.As(err, &fe) && fe.IsRetryable()
}

func query(keyword string) string {
	return `"show hn" ` + keyword
}

// Recent returns every hit newer than since with at least minPoints,
// concatenated in query order. Hits are not filtered or deduplicated.
// A failing page is logged and ends that query.
func (s *Source) Recent(ctx context.Context, since time.Time, minPoints int) []types.Hit {
	var all []types.Hit
	filters := []string{
		fmt.Sprintf("created_at_i>%d", since.Unix()),
		fmt.Sprintf("points>=%d", minPoints),
	}

	for _, kw := range s.cfg.Queries {
		for page := 0; page < s.cfg.MaxPages; page++ {
			if ctx.Err() != nil {
				return all
			}
			resp, err := s.client.SearchByDate(ctx, hn.SearchParams{
				Query:          query(kw),
				Tags:           "story",
				HitsPerPage:    s.cfg.HitsPerPage,
				Page:           page,
				NumericFilters: filters,
			})
			if err != nil {
				s.logger.Warn("HN search failed", "query", kw, "page", page, "retryable", retryable(err), "error", err)
				break
			}
			all = append(all, resp.Hits...)

			if len(resp.Hits) < s.cfg.HitsPerPage || page >= resp.NbPages-1 {
				break
			}
		}
	}

	s.logger.Debug("recent search complete", "hits", len(all), "since", since.Format(time.RFC3339))
	return all
}

// Archive returns the game candidates posted during month with at least
// minPoints, deduplicated and sorted by points descending. Each candidate
// carries the month's display name.
func (s *Source) Archive(ctx context.Context, month Month, minPoints int) []*types.Candidate {
	var all []types.Hit
	filters := []string{
		fmt.Sprintf("created_at_i>=%d", month.Start.Unix()),
		fmt.Sprintf("created_at_i<%d", month.End.Unix()),
		fmt.Sprintf("points>=%d", minPoints),
	}

	for _, kw := range s.cfg.Queries {
		if ctx.Err() != nil {
			break
		}
		resp, err := s.client.Search(ctx, hn.SearchParams{
			Query:          query(kw),
			Tags:           "story",
			HitsPerPage:    s.cfg.HitsPerPage,
			NumericFilters: filters,
		})
		if err != nil {
			s.logger.Warn("HN archive search failed", "query", kw, "month", month.Key, "retryable", retryable(err), "error", err)
			continue
		}
		all = append(all, resp.Hits...)
	}

	cands := pipeline.NewDiscovery(s.logger).RunHits(all, s.cfg.SiteURL)
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Points > cands[j].Points
	})
	for _, c := range cands {
		c.ArchiveMonth = month.Display
	}

	s.logger.Debug("archive search complete", "month", month.Key, "hits", len(all), "candidates", len(cands))
	return cands
}
