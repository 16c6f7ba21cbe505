package models

import (
	"regexp"
	"strings"
)

var (
	tagWhitespaceRegex = regexp.MustCompile(`\s+`)
	tagNonWordRegex    = regexp.MustCompile(`[^a-z0-9_-]`)
)

// TagSummary is a derived aggregate over one locale's posts: one entry
// per distinct normalized tag slug. Label is the first raw-cased
// representative encountered for the slug.
type TagSummary struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// NormalizeTagSlug converts a raw tag label into its URL-safe slug:
// lowercased, whitespace runs collapsed to hyphens, remaining non-word
// characters stripped. The function is idempotent.
func NormalizeTagSlug(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = tagWhitespaceRegex.ReplaceAllString(s, "-")
	return tagNonWordRegex.ReplaceAllString(s, "")
}
