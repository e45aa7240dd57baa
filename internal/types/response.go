package types

import (
	"bytes"
	"encoding/json"
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Response is a fetched body with the bits of the HTTP response callers
// look at.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
	Request     *Request

	doc *goquery.Document
}

// NewResponse creates a Response for req.
func NewResponse(req *Request, status int, contentType string, body []byte) *Response {
	return &Response{
		StatusCode:  status,
		ContentType: contentType,
		Body:        body,
		Request:     req,
	}
}

// Document parses the body as HTML on first use.
func (r *Response) Document() (*goquery.Document, error) {
	if r.doc != nil {
		return r.doc, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
	if err != nil {
		return nil, err
	}
	r.doc = doc
	return doc, nil
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if len(r.Body) == 0 {
		return ErrEmptyResponse
	}
	return json.Unmarshal(r.Body, v)
}

// IsHTML reports whether the response declares an HTML media type. A
// missing Content-Type counts as HTML.
func (r *Response) IsHTML() bool {
	if r.ContentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return strings.Contains(strings.ToLower(r.ContentType), "html")
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}

// IsSuccess returns true if the response status is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
