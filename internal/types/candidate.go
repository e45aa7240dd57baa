package types

import (
	"regexp"
	"strings"
)

// DefaultAuthor is used when a story carries no author.
const DefaultAuthor = "unknown"

var (
	showHNPrefix = regexp.MustCompile(`(?i)^Show HN:\s*`)
	// the first dash (hyphen, en or em) surrounded by whitespace ends the name
	nameSuffix = regexp.MustCompile(`\s[–—-]\s`)
)

// Candidate is a story provisionally eligible to become a catalog entry.
type Candidate struct {
	ID       string
	Title    string
	GameName string
	URL      string
	HNURL    string
	Points   int
	Author   string

	// Set only in archive mode.
	ArchiveMonth string
	Number       int

	// Set when the play page was probed.
	PageTitle       string
	PageDescription string
}

// NewCandidate materializes a candidate from a search hit. siteURL is the
// Hacker News site root used to build the thread link.
func NewCandidate(hit Hit, siteURL string) *Candidate {
	author := hit.Author
	if author == "" {
		author = DefaultAuthor
	}
	return &Candidate{
		ID:       hit.ObjectID,
		Title:    hit.Title,
		GameName: ExtractGameName(hit.Title),
		URL:      hit.URL,
		HNURL:    ItemURL(siteURL, hit.ObjectID),
		Points:   hit.Points,
		Author:   author,
	}
}

// IssueTitle is the title of the tracker issue filed for this candidate.
func (c *Candidate) IssueTitle() string {
	return IssueTitle(c.GameName)
}

// IssueKey is the lower-cased issue title used for ledger lookups.
func (c *Candidate) IssueKey() string {
	return strings.ToLower(c.IssueTitle())
}

// IssueTitle builds the tracker issue title for a game name.
func IssueTitle(gameName string) string {
	return "[Game]: " + gameName
}

// ExtractGameName strips a leading "Show HN:" and any " - description" tail.
func ExtractGameName(title string) string {
	name := showHNPrefix.ReplaceAllString(title, "")
	if loc := nameSuffix.FindStringIndex(name); loc != nil {
		name = name[:loc[0]]
	}
	return strings.TrimSpace(name)
}

// ItemURL returns the Hacker News thread URL for an item id.
func ItemURL(siteURL, id string) string {
	return strings.TrimRight(siteURL, "/") + "/item?id=" + id
}

// UserURL returns the Hacker News profile URL for a user.
func UserURL(siteURL, user string) string {
	return strings.TrimRight(siteURL, "/") + "/user?id=" + user
}
