package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/hnarcade/internal/types"
)

// PageMeta is the title and description a play page declares about itself.
type PageMeta struct {
	Title       string
	Description string
}

// ParsePageMeta reads the <title> and description meta tags of a fetched
// page. OpenGraph values are used when the plain ones are missing.
func ParsePageMeta(resp *types.Response) (PageMeta, error) {
	if !resp.IsHTML() {
		return PageMeta{}, &types.ParseError{URL: resp.Request.URLString(), Err: types.ErrNotHTML}
	}
	doc, err := resp.Document()
	if err != nil {
		return PageMeta{}, &types.ParseError{URL: resp.Request.URLString(), Err: err}
	}

	meta := PageMeta{
		Title:       collapse(doc.Find("head title").First().Text()),
		Description: metaContent(doc, `meta[name="description"]`),
	}
	if meta.Title == "" {
		meta.Title = metaContent(doc, `meta[property="og:title"]`)
	}
	if meta.Description == "" {
		meta.Description = metaContent(doc, `meta[property="og:description"]`)
	}
	return meta, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return collapse(content)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
