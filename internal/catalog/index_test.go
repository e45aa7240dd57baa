package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBuildIndex(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "foo.md", `---
title: Foo
---
| | |
|---|---|
| **Play** | [foo.com](https://www.Foo.com/game/) |
| **HN** | [thread](https://news.ycombinator.com/item?id=111) |
`)
	writeDoc(t, dir, "bar.md", `---
hnId: "222"
---
| Play | [bar](https://bar.example/play) |
see also item?id=333
`)
	writeDoc(t, dir, "notes.txt", "item?id=999")

	ix, err := BuildIndex(dir, testLogger)
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	if ix.Documents != 2 {
		t.Errorf("documents = %d, want 2", ix.Documents)
	}
	for _, id := range []string{"111", "222", "333"} {
		if !ix.HasID(id) {
			t.Errorf("expected id %s in index", id)
		}
	}
	if ix.HasID("999") {
		t.Error("non-markdown file should be ignored")
	}
	if !ix.HasPlayURL("https://foo.com/game") {
		t.Error("expected normalized foo.com play URL")
	}
	if !ix.HasPlayURL("http://bar.example/play/") {
		t.Error("expected alt-form play URL")
	}
}

func TestBuildIndexMissingDir(t *testing.T) {
	ix, err := BuildIndex(filepath.Join(t.TempDir(), "nope"), testLogger)
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(ix.HNIDs) != 0 || len(ix.PlayURLs) != 0 {
		t.Errorf("expected empty index, got %+v", ix)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://WWW.Example.com/Foo/", "example.com/foo"},
		{"https://example.com/foo", "example.com/foo"},
		{"https://example.com/foo?x=1#top", "example.com/foo"},
		{"https://example.com/", "example.com"},
		{"https://game.io:8080/play", "game.io/play"},
		{"Not A URL", "not a url"},
		{"", ""},
	}
	for _, tt := range tests {
		got := NormalizeURL(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := NormalizeURL(got); again != got {
			t.Errorf("NormalizeURL not idempotent for %q: %q -> %q", tt.in, got, again)
		}
	}
}

func TestExtractPlayURL(t *testing.T) {
	body := "| **Play** | [x](https://first.example) |\n| **Play** | [y](https://second.example) |"
	if got := ExtractPlayURL(body); got != "https://first.example" {
		t.Errorf("got %q", got)
	}
	if got := ExtractPlayURL("no table here"); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
