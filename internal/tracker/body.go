package tracker

import "strings"

// Submission holds the fields of a game-submission issue form.
type Submission struct {
	GameName    string
	PlayURL     string
	HNURL       string
	Author      string
	ProfileURL  string
	Description string
}

// Description suffixes.
const (
	NoteScan   = " Discovered via HN scraper."
	NoteSubmit = " Discovered via HN."
	NoURL      = "_No URL provided_"
)

// ArchiveNote is the description suffix for a submission found in the
// archive for the given month (e.g. "March 2022").
func ArchiveNote(month string) string {
	return " Originally posted " + month + `. Discovered via HN archive scraper for newsletter "From the Archives" section.`
}

// Body renders the submission in the issue form layout.
func (s Submission) Body() string {
	return strings.Join([]string{
		"### Game Name",
		"",
		s.GameName,
		"",
		"### Play URL",
		"",
		s.PlayURL,
		"",
		"### Hacker News Thread",
		"",
		s.HNURL,
		"",
		"### Author Alias",
		"",
		s.Author,
		"",
		"### Author Website or Profile",
		"",
		s.ProfileURL,
		"",
		"### Source Code URL (if open-source)",
		"",
		"_No response_",
		"",
		"### Tags",
		"",
		"browser, free",
		"",
		"### Description",
		"",
		s.Description,
	}, "\n")
}

// RejectionBody renders the body of a not-a-game issue.
func RejectionBody(title, url, hnURL string) string {
	return strings.Join([]string{
		"### Rejected Game",
		"",
		"This HN post was reviewed and determined to not be a valid game for the arcade.",
		"",
		"**Title:** " + title,
		"**URL:** " + url,
		"**HN Thread:** " + hnURL,
	}, "\n")
}
