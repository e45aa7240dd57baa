package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/IshaanNene/hnarcade/internal/types"
)

// Frontmatter keys written by the maintenance jobs.
const (
	FieldHNID       = "hnId"
	FieldPoints     = "points"
	FieldScreenshot = "screenshot"
	FieldDateAdded  = "dateAdded"
)

// The closing fence must be a line of its own.
var (
	frontmatterRe      = regexp.MustCompile(`(?s)\A---\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n|\z)(.*)\z`)
	emptyFrontmatterRe = regexp.MustCompile(`(?s)\A---\r?\n---[ \t]*(?:\r?\n|\z)(.*)\z`)
)

// Document is one catalog markdown file. The frontmatter is kept as a YAML
// node so unknown keys, key order and value styles survive a rewrite.
type Document struct {
	Path string
	Body string

	meta *yaml.Node // mapping node; nil when the file has no frontmatter
}

// ReadDocument loads and parses the document at path.
func ReadDocument(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.DocumentError{Path: path, Err: err}
	}
	return ParseDocument(path, content)
}

// ParseDocument splits content into frontmatter and body. Content without a
// leading --- block parses to a Document with no frontmatter.
func ParseDocument(path string, content []byte) (*Document, error) {
	var block, body []byte
	if m := emptyFrontmatterRe.FindSubmatch(content); m != nil {
		body = m[1]
	} else if m := frontmatterRe.FindSubmatch(content); m != nil {
		block, body = m[1], m[2]
	} else {
		return &Document{Path: path, Body: string(content)}, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(block, &root); err != nil {
		return nil, &types.DocumentError{Path: path, Err: fmt.Errorf("parse frontmatter: %w", err)}
	}

	meta := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		if root.Content[0].Kind != yaml.MappingNode {
			return nil, &types.DocumentError{Path: path, Err: fmt.Errorf("frontmatter is not a mapping")}
		}
		meta = root.Content[0]
	}

	return &Document{Path: path, Body: string(body), meta: meta}, nil
}

// Slug is the file name without the .md extension.
func (d *Document) Slug() string {
	return strings.TrimSuffix(filepath.Base(d.Path), filepath.Ext(d.Path))
}

// HasFrontmatter reports whether the file had a frontmatter block.
func (d *Document) HasFrontmatter() bool {
	return d.meta != nil
}

// Get returns the scalar value stored under key.
func (d *Document) Get(key string) (string, bool) {
	v := d.lookup(key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return "", false
	}
	return v.Value, true
}

// Has reports whether key is present with any value.
func (d *Document) Has(key string) bool {
	return d.lookup(key) != nil
}

// Int returns the value under key parsed as an integer.
func (d *Document) Int(key string) (int, bool) {
	s, ok := d.Get(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Time returns the value under key parsed as a date or timestamp.
func (d *Document) Time(key string) (time.Time, bool) {
	s, ok := d.Get(key)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Set stores value under key, replacing an existing entry in place or
// appending a new one.
func (d *Document) Set(key string, value any) error {
	if d.meta == nil {
		return &types.DocumentError{Path: d.Path, Err: types.ErrNoFrontmatter}
	}

	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return &types.DocumentError{Path: d.Path, Err: fmt.Errorf("encode %s: %w", key, err)}
	}

	for i := 0; i+1 < len(d.meta.Content); i += 2 {
		if d.meta.Content[i].Value == key {
			d.meta.Content[i+1] = &node
			return nil
		}
	}

	d.meta.Content = append(d.meta.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&node,
	)
	return nil
}

// HNID returns the hnId frontmatter field, falling back to the first
// item?id reference in the body.
func (d *Document) HNID() string {
	if id, ok := d.Get(FieldHNID); ok && id != "" {
		return id
	}
	if ids := ExtractHNIDs(d.Body); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// PlayURL returns the URL in the body's Play row.
func (d *Document) PlayURL() string {
	return ExtractPlayURL(d.Body)
}

// RequirePlayURL is PlayURL for callers that cannot proceed without one.
func (d *Document) RequirePlayURL() (string, error) {
	u := d.PlayURL()
	if u == "" {
		return "", &types.DocumentError{Path: d.Path, Err: types.ErrNoPlayURL}
	}
	return u, nil
}

// Bytes renders the document back to markdown.
func (d *Document) Bytes() ([]byte, error) {
	if d.meta == nil {
		return []byte(d.Body), nil
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	if len(d.meta.Content) > 0 {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d.meta); err != nil {
			return nil, &types.DocumentError{Path: d.Path, Err: fmt.Errorf("encode frontmatter: %w", err)}
		}
		if err := enc.Close(); err != nil {
			return nil, &types.DocumentError{Path: d.Path, Err: err}
		}
	}
	buf.WriteString("---\n")
	buf.WriteString(d.Body)
	return buf.Bytes(), nil
}

// Write saves the document to its path.
func (d *Document) Write() error {
	out, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(d.Path, out, 0o644); err != nil {
		return &types.DocumentError{Path: d.Path, Err: err}
	}
	return nil
}

func (d *Document) lookup(key string) *yaml.Node {
	if d.meta == nil {
		return nil
	}
	for i := 0; i+1 < len(d.meta.Content); i += 2 {
		if d.meta.Content[i].Value == key {
			return d.meta.Content[i+1]
		}
	}
	return nil
}
