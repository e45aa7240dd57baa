package fetcher

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/IshaanNene/hnarcade/internal/config"
	"github.com/IshaanNene/hnarcade/internal/types"
)

// HTTPFetcher fetches Algolia API responses and play pages over net/http.
type HTTPFetcher struct {
	client    *http.Client
	maxBody   int64
	userAgent string
	logger    *slog.Logger
}

// NewHTTPFetcher creates a fetcher from the fetcher section of cfg.
func NewHTTPFetcher(cfg *config.Config, logger *slog.Logger) *HTTPFetcher {
	ua := cfg.Fetcher.UserAgent
	if ua == "" {
		ua = "hnarcade/" + config.Version
	}
	return &HTTPFetcher{
		client: &http.Client{
			Transport: newTransport(cfg.Fetcher),
			Timeout:   cfg.Fetcher.RequestTimeout,
		},
		maxBody:   cfg.Fetcher.MaxBodySize,
		userAgent: ua,
		logger:    logger.With("component", "http_fetcher"),
	}
}

func newTransport(cfg config.FetcherConfig) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConns,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: 10 * time.Second,
		// brotli is not handled by net/http, so all decoding happens here.
		DisableCompression: true,
	}
}

// Fetch performs req. 429 and 5xx statuses come back as a *types.FetchError;
// any other status is returned in the Response for the caller to judge.
func (f *HTTPFetcher) Fetch(ctx context.Context, req *types.Request) (*types.Response, error) {
	target := req.URLString()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, nil)
	if err != nil {
		return nil, &types.FetchError{URL: target, Err: err}
	}
	httpReq.Header.Set("User-Agent", f.userAgent)
	httpReq.Header.Set("Accept-Encoding", "gzip, deflate, br")
	for key, values := range req.Headers {
		for _, v := range values {
			httpReq.Header.Set(key, v)
		}
	}

	start := time.Now()
	httpResp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, &types.FetchError{URL: target, Err: err, Retryable: transient(err)}
	}
	defer httpResp.Body.Close()

	if err := checkStatus(target, httpResp); err != nil {
		return nil, err
	}

	body, err := f.readBody(req, httpResp)
	if err != nil {
		return nil, &types.FetchError{URL: target, Err: err, Retryable: true}
	}

	f.logger.Debug("fetch complete",
		"url", target,
		"tag", req.Tag,
		"status", httpResp.StatusCode,
		"size", len(body),
		"duration", time.Since(start),
	)
	return types.NewResponse(req, httpResp.StatusCode, httpResp.Header.Get("Content-Type"), body), nil
}

// checkStatus turns throttling and server failures into errors.
func checkStatus(target string, resp *http.Response) error {
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &types.FetchError{
		URL:        target,
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		Retryable:  true,
	}
}

// readBody reads at most the request's (or fetcher's) body limit and
// decodes any content encoding.
func (f *HTTPFetcher) readBody(req *types.Request, resp *http.Response) ([]byte, error) {
	limit := f.maxBody
	if req.MaxBody > 0 {
		limit = req.MaxBody
	}

	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(r, limit)
	}

	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case "deflate":
		br := bufio.NewReader(r)
		if hdr, err := br.Peek(2); err == nil && isZlibHeader(hdr) {
			zr, err := zlib.NewReader(br)
			if err != nil {
				return nil, err
			}
			defer zr.Close()
			r = zr
		} else {
			r = flate.NewReader(br)
		}
	case "br":
		r = brotli.NewReader(r)
	}

	body, err := io.ReadAll(r)
	if err != nil && req.MaxBody > 0 && errors.Is(err, io.ErrUnexpectedEOF) {
		// a capped compressed stream ends mid-block; keep what decoded
		return body, nil
	}
	return body, err
}

// isZlibHeader reports whether hdr starts a zlib stream (RFC 1950): deflate
// compression method and a header checksum divisible by 31. Servers send
// "deflate" bodies both zlib-wrapped and raw.
func isZlibHeader(hdr []byte) bool {
	return hdr[0]&0x0f == 8 && (uint16(hdr[0])<<8|uint16(hdr[1]))%31 == 0
}

// Close releases idle connections.
func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// Type returns the fetcher type identifier.
func (f *HTTPFetcher) Type() string {
	return "http"
}

// transient reports whether a transport error is likely to clear on a
// later run.
func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
