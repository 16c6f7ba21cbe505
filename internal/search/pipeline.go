package search

import (
	"sort"
	"strings"

	"github.com/blog-search-api/internal/models"
)

// Apply runs the facet filter and sort pipeline over ranked (or
// unranked) results. Filters apply strictly in order: category, author,
// tag, then sort. Unknown category/author ids are dropped first, so a
// facet set holding only unknown ids is a no-op rather than an
// impossible predicate. Empty input or empty filters never produce an
// error, only a possibly empty sequence.
func Apply(results []models.SearchResult, filters models.SearchFilters) []models.SearchResult {
	filters.Categories = knownCategories(filters.Categories)
	filters.Authors = knownAuthors(filters.Authors)

	out := make([]models.SearchResult, 0, len(results))
	for _, r := range results {
		if len(filters.Categories) > 0 && !filters.HasCategory(r.Post.Category) {
			continue
		}
		if len(filters.Authors) > 0 && !filters.HasAuthor(r.Post.Author) {
			continue
		}
		if !hasAllTags(r.Post, filters.Tags) {
			continue
		}
		out = append(out, r)
	}

	if filters.Sort == models.SortDate {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Post.Date.After(out[j].Post.Date)
		})
	}
	return out
}

func knownCategories(ids []models.CategoryID) []models.CategoryID {
	var out []models.CategoryID
	for _, id := range ids {
		if id.Valid() {
			out = append(out, id)
		}
	}
	return out
}

func knownAuthors(ids []models.AuthorID) []models.AuthorID {
	var out []models.AuthorID
	for _, id := range ids {
		if id.Valid() {
			out = append(out, id)
		}
	}
	return out
}

// hasAllTags is conjunctive: the post must carry every filter tag, by
// case-insensitive exact label match. Faceted search narrows; the
// single-tag page query broadens by normalized slug instead.
func hasAllTags(post *models.Post, tags []string) bool {
	for _, want := range tags {
		found := false
		for _, have := range post.Tags {
			if strings.EqualFold(have, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
