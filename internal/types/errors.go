package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure modes.
var (
	ErrInvalidMonth   = errors.New("invalid month format, use YYYY-MM (e.g. 2022-03)")
	ErrInvalidItemID  = errors.New("invalid Hacker News item id")
	ErrItemNotFound   = errors.New("hacker news item not found")
	ErrNoSelection    = errors.New("no valid selection")
	ErrNoFrontmatter  = errors.New("document has no frontmatter")
	ErrNoPlayURL      = errors.New("document has no play URL")
	ErrEmptyResponse  = errors.New("empty response body")
	ErrNotHTML        = errors.New("response is not an HTML page")
	ErrUnsupportedURL = errors.New("not an absolute http(s) URL")
	ErrIssueURL       = errors.New("could not parse issue number from tracker output")
	ErrTrackerMissing = errors.New("issue tracker CLI not found in PATH")
)

// FetchError wraps errors that occur during fetching.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
	Retryable  bool
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsRetryable reports whether a later manual re-run is likely to succeed.
// Nothing in hnarcade retries automatically.
func (e *FetchError) IsRetryable() bool { return e.Retryable }

// TrackerError wraps a failed issue tracker CLI invocation.
type TrackerError struct {
	Op     string
	Stderr string
	Err    error
}

func (e *TrackerError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg != "" {
		return fmt.Sprintf("tracker %s failed: %v: %s", e.Op, e.Err, msg)
	}
	return fmt.Sprintf("tracker %s failed: %v", e.Op, e.Err)
}

func (e *TrackerError) Unwrap() error { return e.Err }

// DocumentError wraps errors reading or writing a catalog document.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// PipelineError wraps a failure inside a filter stage.
type PipelineError struct {
	Stage string
	ID    string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline stage %s failed for story %s: %v", e.Stage, e.ID, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// ParseError wraps errors parsing fetched HTML or story links.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error for %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
