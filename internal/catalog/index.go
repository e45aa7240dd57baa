// Package catalog reads the game catalog: markdown documents with YAML
// frontmatter, one per game.
package catalog

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	itemIDRe = regexp.MustCompile(`item\?id=(\d+)`)
	playRe   = regexp.MustCompile(`\*\*Play\*\*.*?\]\((https?://[^)]+)\)`)
	// table rows written without bold: | Play | [site](url) |
	playAltRe = regexp.MustCompile(`(?i)\|\s*Play\s*\|\s*\[.*?\]\((https?://[^\s)]+)\)`)
)

// Index is the dedup index derived from the catalog: every known HN item id
// and every known play URL in normalized form.
type Index struct {
	HNIDs     map[string]struct{}
	PlayURLs  map[string]struct{}
	Documents int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		HNIDs:    make(map[string]struct{}),
		PlayURLs: make(map[string]struct{}),
	}
}

// AddID records a known HN item id.
func (ix *Index) AddID(id string) {
	if id != "" {
		ix.HNIDs[id] = struct{}{}
	}
}

// AddPlayURL records a play URL; it is normalized first.
func (ix *Index) AddPlayURL(raw string) {
	if raw != "" {
		ix.PlayURLs[NormalizeURL(raw)] = struct{}{}
	}
}

// HasID reports whether the HN id is already cataloged.
func (ix *Index) HasID(id string) bool {
	_, ok := ix.HNIDs[id]
	return ok
}

// HasPlayURL reports whether raw, once normalized, is already cataloged.
func (ix *Index) HasPlayURL(raw string) bool {
	_, ok := ix.PlayURLs[NormalizeURL(raw)]
	return ok
}

// BuildIndex scans every markdown document in dir. A missing directory
// yields an empty index; unreadable files are skipped with a warning.
func BuildIndex(dir string, logger *slog.Logger) (*Index, error) {
	ix := NewIndex()

	paths, err := ListDocuments(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("catalog directory missing, using empty index", "dir", dir)
			return ix, nil
		}
		return nil, err
	}

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable document", "path", path, "error", err)
			continue
		}
		ix.Documents++

		for _, id := range ExtractHNIDs(string(content)) {
			ix.AddID(id)
		}
		if doc, err := ParseDocument(path, content); err == nil {
			if id, ok := doc.Get(FieldHNID); ok {
				ix.AddID(id)
			}
		}
		if play := ExtractPlayURL(string(content)); play != "" {
			ix.AddPlayURL(play)
		}
	}

	logger.Debug("catalog indexed",
		"dir", dir,
		"documents", ix.Documents,
		"hn_ids", len(ix.HNIDs),
		"play_urls", len(ix.PlayURLs),
	)
	return ix, nil
}

// ListDocuments returns the sorted paths of all .md files in dir.
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ExtractHNIDs returns every item?id=<digits> reference in content, in order.
func ExtractHNIDs(content string) []string {
	matches := itemIDRe.FindAllStringSubmatch(content, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}

// ExtractPlayURL returns the first URL in the document's Play row.
func ExtractPlayURL(content string) string {
	if m := playRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	if m := playAltRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}

// NormalizeURL reduces a URL to lower-cased host (without a leading "www.")
// plus path (without one trailing slash). Scheme, query and fragment are
// dropped. Strings that do not parse as URLs with a host are lower-cased.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.ToLower(raw)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	path := strings.TrimSuffix(u.EscapedPath(), "/")
	return strings.ToLower(host + path)
}
