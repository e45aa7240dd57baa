// Package parser extracts links and metadata from HTML.
package parser

import (
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/IshaanNene/hnarcade/internal/types"
)

// StoryLinks returns the absolute http(s) links in an HN story text, in
// document order, skipping links back to siteURL's host.
func StoryLinks(storyHTML, siteURL string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(storyHTML))
	if err != nil {
		return nil, &types.ParseError{URL: "story text", Err: err}
	}

	var skipHost string
	if u, err := url.Parse(siteURL); err == nil {
		skipHost = strings.ToLower(u.Hostname())
	}

	nodes, err := htmlquery.QueryAll(doc, "//a[@href]")
	if err != nil {
		return nil, &types.ParseError{URL: "story text", Err: err}
	}

	var links []string
	for _, node := range nodes {
		href := strings.TrimSpace(htmlquery.SelectAttr(node, "href"))
		u, err := url.Parse(href)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			continue
		}
		if skipHost != "" && strings.ToLower(u.Hostname()) == skipHost {
			continue
		}
		links = append(links, u.String())
	}
	return links, nil
}

// FirstStoryLink returns the first external link in the story text, or "".
func FirstStoryLink(storyHTML, siteURL string) string {
	links, err := StoryLinks(storyHTML, siteURL)
	if err != nil || len(links) == 0 {
		return ""
	}
	return links[0]
}
