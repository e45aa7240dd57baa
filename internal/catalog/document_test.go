package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IshaanNene/hnarcade/internal/types"
)

const sampleDoc = `---
title: Foo Game
dateAdded: 2024-05-01
tags:
  - browser
---
Body with item?id=4242
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument("docs/games/foo-game.md", []byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !doc.HasFrontmatter() {
		t.Fatal("expected frontmatter")
	}
	if doc.Slug() != "foo-game" {
		t.Errorf("slug = %q", doc.Slug())
	}
	if title, _ := doc.Get("title"); title != "Foo Game" {
		t.Errorf("title = %q", title)
	}
	if _, ok := doc.Get("tags"); ok {
		t.Error("sequence value should not read as scalar")
	}
	if !doc.Has("tags") {
		t.Error("expected tags key")
	}
	if doc.HNID() != "4242" {
		t.Errorf("hn id = %q", doc.HNID())
	}
	if ts, ok := doc.Time(FieldDateAdded); !ok || ts.Year() != 2024 {
		t.Errorf("dateAdded = %v %v", ts, ok)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foo.md")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := doc.Set(FieldPoints, 42); err != nil {
		t.Fatalf("set points: %v", err)
	}
	if err := doc.Set("title", "Foo Game Deluxe"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if err := doc.Write(); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, _ := os.ReadFile(path)
	text := string(out)
	if !strings.HasPrefix(text, "---\ntitle: Foo Game Deluxe\n") {
		t.Errorf("title should stay first:\n%s", text)
	}
	if !strings.Contains(text, "points: 42\n---\nBody with item?id=4242\n") {
		t.Errorf("points should be appended before the body:\n%s", text)
	}

	again, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if n, ok := again.Int(FieldPoints); !ok || n != 42 {
		t.Errorf("points = %d %v", n, ok)
	}
}

func TestDocumentWithoutFrontmatter(t *testing.T) {
	doc, err := ParseDocument("plain.md", []byte("# Just markdown\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.HasFrontmatter() {
		t.Error("unexpected frontmatter")
	}
	if err := doc.Set(FieldPoints, 1); !errors.Is(err, types.ErrNoFrontmatter) {
		t.Errorf("expected ErrNoFrontmatter, got %v", err)
	}
}

func TestParseDocumentInvalidYAML(t *testing.T) {
	_, err := ParseDocument("bad.md", []byte("---\ntitle: [unclosed\n---\n"))
	var de *types.DocumentError
	if !errors.As(err, &de) || de.Path != "bad.md" {
		t.Errorf("expected DocumentError, got %v", err)
	}
}

func TestParseDocumentClosingFence(t *testing.T) {
	content := "---\ntitle: Dash---\nsubtitle: more---\n---\nBody\n"
	doc, err := ParseDocument("dash.md", []byte(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if title, _ := doc.Get("title"); title != "Dash---" {
		t.Errorf("title = %q", title)
	}
	if sub, _ := doc.Get("subtitle"); sub != "more---" {
		t.Errorf("subtitle = %q", sub)
	}
	if doc.Body != "Body\n" {
		t.Errorf("body = %q", doc.Body)
	}
}

func TestParseDocumentEmptyFrontmatter(t *testing.T) {
	for _, content := range []string{"---\n---\nBody\n", "---\r\n---\r\nBody\n"} {
		doc, err := ParseDocument("empty.md", []byte(content))
		if err != nil {
			t.Fatalf("parse %q: %v", content, err)
		}
		if !doc.HasFrontmatter() || doc.Body != "Body\n" {
			t.Errorf("%q: frontmatter=%v body=%q", content, doc.HasFrontmatter(), doc.Body)
		}
		if err := doc.Set(FieldPoints, 3); err != nil {
			t.Errorf("set: %v", err)
		}
		out, _ := doc.Bytes()
		if string(out) != "---\npoints: 3\n---\nBody\n" {
			t.Errorf("rendered %q", out)
		}
	}
}

func TestRequirePlayURL(t *testing.T) {
	doc, _ := ParseDocument("play.md", []byte("---\ntitle: X\n---\n| **Play** | [site](https://x.example/) |\n"))
	if u, err := doc.RequirePlayURL(); err != nil || u != "https://x.example/" {
		t.Errorf("play url = %q, %v", u, err)
	}

	doc, _ = ParseDocument("none.md", []byte("---\ntitle: X\n---\nNo links\n"))
	_, err := doc.RequirePlayURL()
	var de *types.DocumentError
	if !errors.As(err, &de) || de.Path != "none.md" || !errors.Is(err, types.ErrNoPlayURL) {
		t.Errorf("expected ErrNoPlayURL, got %v", err)
	}
}
