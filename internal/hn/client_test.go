package hn

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/IshaanNene/hnarcade/internal/config"
	"github.com/IshaanNene/hnarcade/internal/fetcher"
	"github.com/IshaanNene/hnarcade/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func setupTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	f := fetcher.NewHTTPFetcher(config.DefaultConfig(), testLogger)
	return NewClient(f, server.URL+"/api/v1/", testLogger)
}

func TestSearchByDateParams(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search_by_date" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != `"show hn" puzzle` {
			t.Errorf("query = %q", q.Get("query"))
		}
		if q.Get("tags") != "story" || q.Get("hitsPerPage") != "100" || q.Get("page") != "2" {
			t.Errorf("unexpected params %v", q)
		}
		if q.Get("numericFilters") != "created_at_i>1000,points>=5" {
			t.Errorf("numericFilters = %q", q.Get("numericFilters"))
		}
		json.NewEncoder(w).Encode(types.SearchResponse{
			Hits:    []types.Hit{{ObjectID: "1", Title: "Show HN: Puzzle", URL: "https://p.example"}},
			NbPages: 3,
		})
	})

	resp, err := client.SearchByDate(context.Background(), SearchParams{
		Query:          `"show hn" puzzle`,
		Tags:           "story",
		HitsPerPage:    100,
		Page:           2,
		NumericFilters: []string{"created_at_i>1000", "points>=5"},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(resp.Hits) != 1 || resp.Hits[0].ObjectID != "1" || resp.NbPages != 3 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestSearchUsesRelevanceEndpoint(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Has("page") {
			t.Errorf("page 0 should be omitted")
		}
		w.Write([]byte(`{"hits":[],"nbPages":0}`))
	})

	if _, err := client.Search(context.Background(), SearchParams{Query: "x"}); err != nil {
		t.Fatalf("search: %v", err)
	}
}

func TestItem(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/items/999" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":999,"title":"Show HN: NotAGame","url":"https://nag.example","author":"pg","points":null}`))
	})

	item, err := client.Item(context.Background(), "999")
	if err != nil {
		t.Fatalf("item: %v", err)
	}
	if item.IDString() != "999" || item.Title != "Show HN: NotAGame" || item.Points != 0 {
		t.Errorf("unexpected item %+v", item)
	}
}

func TestItemNotFound(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Item(context.Background(), "1")
	if !errors.Is(err, types.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSearchInvalidJSON(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	if _, err := client.Search(context.Background(), SearchParams{Query: "x"}); err == nil {
		t.Fatal("expected decode error")
	}
}
