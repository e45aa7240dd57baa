package types

import (
	"fmt"
	"net/http"
	"net/url"
)

// Request is one outbound GET: an Algolia API call or a play-page probe.
type Request struct {
	URL     *url.URL
	Method  string
	Headers http.Header

	// Tag names the call site in logs ("search", "item", "probe").
	Tag string

	// MaxBody caps how much of the body is read. Zero means the fetcher's
	// configured limit.
	MaxBody int64
}

// NewRequest creates a GET request for rawURL.
func NewRequest(rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	return &Request{
		URL:     u,
		Method:  http.MethodGet,
		Headers: make(http.Header),
	}, nil
}

// URLString returns the request URL as a string.
func (r *Request) URLString() string {
	if r.URL == nil {
		return ""
	}
	return r.URL.String()
}
