package models

import (
	"net/url"
	"strings"
)

// SortMode selects how search results are ordered.
type SortMode string

const (
	// SortRelevance keeps the fuzzy index's score order. It is the
	// default and is encoded as an absent sort parameter.
	SortRelevance SortMode = "relevance"
	// SortDate re-sorts results by post date descending.
	SortDate SortMode = "date"
)

// SearchFilters is the full query state of a search: free text, facet
// selections, and sort mode. It is a pure value; deriving a changed
// state always produces a new SearchFilters.
type SearchFilters struct {
	Query      string       `json:"query"`
	Categories []CategoryID `json:"categories"`
	Authors    []AuthorID   `json:"authors"`
	Tags       []string     `json:"tags"`
	Sort       SortMode     `json:"sort"`
}

// DecodeFilters builds a SearchFilters from URL query parameters.
// Empty tokens are dropped; unknown category/author ids survive decode
// and are filtered out by the consumer; a garbage sort value falls back
// to relevance.
func DecodeFilters(values url.Values) SearchFilters {
	f := SearchFilters{
		Query: values.Get("q"),
		Sort:  SortRelevance,
	}
	for _, tok := range splitParam(values.Get("categories")) {
		f.Categories = append(f.Categories, CategoryID(tok))
	}
	for _, tok := range splitParam(values.Get("authors")) {
		f.Authors = append(f.Authors, AuthorID(tok))
	}
	f.Tags = splitParam(values.Get("tags"))
	if values.Get("sort") == string(SortDate) {
		f.Sort = SortDate
	}
	return f
}

// Encode serializes the filters into URL query parameters. Empty fields
// and the default sort are omitted, so equivalent filter states always
// serialize identically.
func (f SearchFilters) Encode() url.Values {
	values := url.Values{}
	if f.Query != "" {
		values.Set("q", f.Query)
	}
	if len(f.Categories) > 0 {
		ids := make([]string, len(f.Categories))
		for i, id := range f.Categories {
			ids[i] = string(id)
		}
		values.Set("categories", strings.Join(ids, ","))
	}
	if len(f.Authors) > 0 {
		ids := make([]string, len(f.Authors))
		for i, id := range f.Authors {
			ids[i] = string(id)
		}
		values.Set("authors", strings.Join(ids, ","))
	}
	if len(f.Tags) > 0 {
		values.Set("tags", strings.Join(f.Tags, ","))
	}
	if f.Sort == SortDate {
		values.Set("sort", string(SortDate))
	}
	return values
}

// ToggleCategory returns a copy of the filters with the category added
// if absent or removed if present.
func (f SearchFilters) ToggleCategory(id CategoryID) SearchFilters {
	out := f
	out.Categories = toggleValue(f.Categories, id)
	return out
}

// ToggleAuthor returns a copy of the filters with the author toggled.
func (f SearchFilters) ToggleAuthor(id AuthorID) SearchFilters {
	out := f
	out.Authors = toggleValue(f.Authors, id)
	return out
}

// ToggleTag returns a copy of the filters with the tag toggled.
func (f SearchFilters) ToggleTag(label string) SearchFilters {
	out := f
	out.Tags = toggleValue(f.Tags, label)
	return out
}

// HasCategory reports membership of id in the category facet set.
func (f SearchFilters) HasCategory(id CategoryID) bool {
	return containsValue(f.Categories, id)
}

// HasAuthor reports membership of id in the author facet set.
func (f SearchFilters) HasAuthor(id AuthorID) bool {
	return containsValue(f.Authors, id)
}

// Equal reports whether two filter states are equivalent. Facet sets
// compare as sets, so toggle order does not affect equality.
func (f SearchFilters) Equal(other SearchFilters) bool {
	if f.Query != other.Query || f.effectiveSort() != other.effectiveSort() {
		return false
	}
	return sameSet(f.Categories, other.Categories) &&
		sameSet(f.Authors, other.Authors) &&
		sameSet(f.Tags, other.Tags)
}

// IsEmpty reports whether no query text and no facet is active.
func (f SearchFilters) IsEmpty() bool {
	return strings.TrimSpace(f.Query) == "" &&
		len(f.Categories) == 0 && len(f.Authors) == 0 && len(f.Tags) == 0
}

func (f SearchFilters) effectiveSort() SortMode {
	if f.Sort == SortDate {
		return SortDate
	}
	return SortRelevance
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func toggleValue[T comparable](set []T, v T) []T {
	if !containsValue(set, v) {
		out := make([]T, 0, len(set)+1)
		out = append(out, set...)
		return append(out, v)
	}
	out := make([]T, 0, len(set)-1)
	for _, existing := range set {
		if existing != v {
			out = append(out, existing)
		}
	}
	return out
}

func containsValue[T comparable](set []T, v T) bool {
	for _, existing := range set {
		if existing == v {
			return true
		}
	}
	return false
}

// sameSet compares occurrence counts, so duplicate-bearing slices
// (reachable by decoding repeated tokens) never compare equal to a
// slice that merely shares their length and members.
func sameSet[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[T]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}
