package models

import (
	"time"
)

// Post represents a single blog post for one locale.
// A Post is immutable once constructed; re-ingestion builds new Posts
// rather than mutating existing ones.
type Post struct {
	Slug        string     `json:"slug"`
	Locale      string     `json:"locale"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	Tags        []string   `json:"tags"`
	Category    CategoryID `json:"category,omitempty"`
	Author      AuthorID   `json:"author,omitempty"`
	ReadingTime int        `json:"reading_time"`
	URL         string     `json:"url"`
	Published   bool       `json:"-"`
	Content     string     `json:"-"`
}

// HasTag reports whether the post carries the given tag by exact label match.
func (p *Post) HasTag(label string) bool {
	for _, t := range p.Tags {
		if t == label {
			return true
		}
	}
	return false
}

// HasNormalizedTag reports whether the post carries a tag whose normalized
// slug equals the normalized slug of label.
func (p *Post) HasNormalizedTag(label string) bool {
	want := NormalizeTagSlug(label)
	for _, t := range p.Tags {
		if NormalizeTagSlug(t) == want {
			return true
		}
	}
	return false
}

// SearchResult pairs a post with its fuzzy-match score.
// Score follows the fuzzy-distance convention: 0 is a perfect match,
// larger is weaker. Unranked listings use 0 as a sentinel.
type SearchResult struct {
	Post  *Post   `json:"post"`
	Score float64 `json:"score"`
}

// Snapshot is the immutable result of ingesting one locale's content
// directory. Version is a content hash over slugs and dates, used to
// invalidate the search index cache after re-ingestion.
type Snapshot struct {
	Locale  string
	Posts   []*Post
	Version string
}
