package types

import (
	"strconv"
)

// Hit is a single story returned by the HN Algolia search endpoints.
type Hit struct {
	ObjectID   string `json:"objectID"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Points     int    `json:"points"`
	Author     string `json:"author"`
	CreatedAtI int64  `json:"created_at_i"`
	StoryText  string `json:"story_text"`
}

// SearchResponse is the envelope returned by /search and /search_by_date.
type SearchResponse struct {
	Hits    []Hit `json:"hits"`
	NbHits  int   `json:"nbHits"`
	NbPages int   `json:"nbPages"`
	Page    int   `json:"page"`
}

// Item is a single story returned by /items/{id}.
type Item struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Author     string `json:"author"`
	Points     int    `json:"points"`
	Text       string `json:"text"`
	Type       string `json:"type"`
	CreatedAtI int64  `json:"created_at_i"`
}

// IDString returns the item id in the string form used by search hits.
func (i *Item) IDString() string {
	return strconv.FormatInt(i.ID, 10)
}
