// Package hn is a small client for the Hacker News Algolia API.
package hn

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/IshaanNene/hnarcade/internal/fetcher"
	"github.com/IshaanNene/hnarcade/internal/types"
)

// SearchParams are the query parameters shared by both search endpoints.
type SearchParams struct {
	Query          string
	Tags           string
	HitsPerPage    int
	Page           int
	NumericFilters []string
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	v.Set("query", p.Query)
	if p.Tags != "" {
		v.Set("tags", p.Tags)
	}
	if p.HitsPerPage > 0 {
		v.Set("hitsPerPage", strconv.Itoa(p.HitsPerPage))
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if len(p.NumericFilters) > 0 {
		v.Set("numericFilters", strings.Join(p.NumericFilters, ","))
	}
	return v
}

// Client talks to hn.algolia.com (or a compatible base URL).
type Client struct {
	fetcher fetcher.Fetcher
	apiURL  string
	logger  *slog.Logger
}

// NewClient creates a client rooted at apiURL, e.g. https://hn.algolia.com/api/v1.
func NewClient(f fetcher.Fetcher, apiURL string, logger *slog.Logger) *Client {
	return &Client{
		fetcher: f,
		apiURL:  strings.TrimRight(apiURL, "/"),
		logger:  logger.With("component", "hn_client"),
	}
}

// SearchByDate queries /search_by_date (newest first).
func (c *Client) SearchByDate(ctx context.Context, p SearchParams) (*types.SearchResponse, error) {
	return c.search(ctx, "search_by_date", p)
}

// Search queries /search (relevance ranked).
func (c *Client) Search(ctx context.Context, p SearchParams) (*types.SearchResponse, error) {
	return c.search(ctx, "search", p)
}

func (c *Client) search(ctx context.Context, endpoint string, p SearchParams) (*types.SearchResponse, error) {
	resp, err := c.get(ctx, c.apiURL+"/"+endpoint+"?"+p.values().Encode(), "search")
	if err != nil {
		return nil, err
	}

	var out types.SearchResponse
	if err := resp.JSON(&out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	c.logger.Debug("search complete",
		"endpoint", endpoint,
		"query", p.Query,
		"page", p.Page,
		"hits", len(out.Hits),
		"pages", out.NbPages,
	)
	return &out, nil
}

// Item fetches a single story by id.
func (c *Client) Item(ctx context.Context, id string) (*types.Item, error) {
	resp, err := c.get(ctx, c.apiURL+"/items/"+url.PathEscape(id), "item")
	if err != nil {
		return nil, err
	}

	var item types.Item
	if err := resp.JSON(&item); err != nil {
		return nil, fmt.Errorf("decode item %s: %w", id, err)
	}
	return &item, nil
}

func (c *Client) get(ctx context.Context, rawURL, tag string) (*types.Response, error) {
	req, err := types.NewRequest(rawURL)
	if err != nil {
		return nil, err
	}
	req.Tag = tag
	req.Headers.Set("Accept", "application/json")

	resp, err := c.fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound && tag == "item" {
		return nil, &types.FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: types.ErrItemNotFound}
	}
	if !resp.IsSuccess() {
		return nil, &types.FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}
	return resp, nil
}
