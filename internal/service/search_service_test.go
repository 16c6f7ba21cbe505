package service

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/blog-search-api/internal/config"
	"github.com/blog-search-api/internal/mocks"
	"github.com/blog-search-api/internal/models"
	"github.com/blog-search-api/internal/repository"
	"github.com/rs/zerolog"
)

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{
		MinQueryLength: 2,
		ScoreThreshold: 0.4,
		MaxResults:     40,
		PageSize:       8,
	}
}

func searchFixture(t *testing.T) (*searchService, *postService) {
	t.Helper()
	posts := scenarioCorpus(t)
	return newSearchService(posts, testSearchConfig(), zerolog.Nop()), posts
}

func TestSearchQueryLengthGate(t *testing.T) {
	svc, posts := searchFixture(t)

	listing := posts.ListAll("en")

	// Queries of 0 or 1 runes (after trim) bypass fuzzy ranking: the
	// output is the unranked listing in its original order, score 0.
	for _, query := range []string{"", "x", " x ", "  "} {
		results := svc.Search("en", models.SearchFilters{Query: query})
		if len(results) != len(listing) {
			t.Fatalf("Search(%q) = %d results, want full listing of %d", query, len(results), len(listing))
		}
		for i, r := range results {
			if r.Post.Slug != listing[i].Slug {
				t.Errorf("Search(%q)[%d] = %q, want listing order %q", query, i, r.Post.Slug, listing[i].Slug)
			}
			if r.Score != 0 {
				t.Errorf("Search(%q)[%d] score = %f, want sentinel 0", query, i, r.Score)
			}
		}
	}
}

func TestSearchEmptyQueryWithFacets(t *testing.T) {
	svc, _ := searchFixture(t)

	// Tag facet over the unranked listing.
	results := svc.Search("en", models.SearchFilters{Tags: []string{"xss"}})
	want := []string{"stored-xss", "xss-lab"}
	if len(results) != len(want) {
		t.Fatalf("tag facet = %v, want %v", resultSlugs(results), want)
	}
	for i, slug := range want {
		if results[i].Post.Slug != slug {
			t.Errorf("tag facet[%d] = %q, want %q", i, results[i].Post.Slug, slug)
		}
	}

	// Category facet.
	results = svc.Search("en", models.SearchFilters{
		Categories: []models.CategoryID{models.CategoryAttackTechniques},
	})
	if len(results) != 1 || results[0].Post.Slug != "stored-xss" {
		t.Errorf("category facet = %v, want [stored-xss]", resultSlugs(results))
	}
}

func TestSearchUnknownFacetIDsIgnored(t *testing.T) {
	svc, posts := searchFixture(t)

	listing := posts.ListAll("en")

	// An id that survived decode but names no real category must not
	// act as an impossible predicate: the listing comes back whole.
	decoded := models.DecodeFilters(url.Values{"categories": {"no-such-category"}})
	results := svc.Search("en", decoded)
	if len(results) != len(listing) {
		t.Fatalf("unknown-only category facet = %d results, want full listing of %d",
			len(results), len(listing))
	}

	// A known id alongside an unknown one still filters by the known id.
	decoded = models.DecodeFilters(url.Values{"categories": {"no-such-category,attack-techniques"}})
	results = svc.Search("en", decoded)
	if len(results) != 1 || results[0].Post.Slug != "stored-xss" {
		t.Errorf("mixed category facet = %v, want [stored-xss]", resultSlugs(results))
	}
}

func TestSearchFuzzyQuery(t *testing.T) {
	svc, _ := searchFixture(t)

	results := svc.Search("en", models.SearchFilters{Query: "xss"})
	if len(results) == 0 {
		t.Fatal("fuzzy query found nothing")
	}
	for _, r := range results {
		if r.Score > 0.4 {
			t.Errorf("result %q above threshold: %f", r.Post.Slug, r.Score)
		}
	}
}

func TestSearchCapAppliedBeforeFacetFilter(t *testing.T) {
	mockPosts := mocks.NewMockPostService()
	var all []*models.Post
	for i := 0; i < 50; i++ {
		p := &models.Post{
			Slug:      fmt.Sprintf("post-%02d", i),
			Locale:    "en",
			Title:     "Recon Notes",
			Tags:      []string{"recon"},
			Published: true,
		}
		// Posts 35..44 belong to the facet under test.
		if i >= 35 && i < 45 {
			p.Category = models.CategoryTooling
		}
		all = append(all, p)
	}
	mockPosts.Posts["en"] = all
	mockPosts.Versions["en"] = "v1"
	svc := newSearchService(mockPosts, testSearchConfig(), zerolog.Nop())

	// All 50 posts tie on score; the 40-result cap keeps the first 40,
	// so only facet members inside the cap window survive filtering.
	results := svc.Search("en", models.SearchFilters{
		Query:      "recon",
		Categories: []models.CategoryID{models.CategoryTooling},
	})
	if len(results) != 5 {
		t.Errorf("got %d results, want 5 (cap runs before facet filter)", len(results))
	}
}

func TestSearchIndexCacheInvalidation(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "en", "first-post",
		"title: First\ndescription: d\ndate: \"2024-01-01\"\n", "body")
	posts := newPostService(repository.New(root, zerolog.Nop()), zerolog.Nop())
	svc := newSearchService(posts, testSearchConfig(), zerolog.Nop())

	snap := posts.Snapshot("en")
	first := svc.indexFor("en", snap)
	if svc.indexFor("en", snap) != first {
		t.Error("same snapshot version should reuse the cached index")
	}

	// Re-ingestion with changed content swaps the snapshot version and
	// must invalidate the index.
	writePost(t, root, "en", "fresh-post",
		"title: Fresh\ndescription: d\ndate: \"2024-04-01\"\n", "body")
	reloaded := posts.Reload("en")
	if reloaded.Version == snap.Version {
		t.Fatal("content change should move the snapshot version")
	}
	if svc.indexFor("en", reloaded) == first {
		t.Error("moved snapshot version should rebuild the index")
	}
}

func TestSearchSortDateOverridesRelevance(t *testing.T) {
	svc, _ := searchFixture(t)

	relevance := svc.Search("en", models.SearchFilters{Query: "xss"})
	byDate := svc.Search("en", models.SearchFilters{Query: "xss", Sort: models.SortDate})
	if len(relevance) != len(byDate) {
		t.Fatalf("sort mode changed the result set: %d vs %d", len(relevance), len(byDate))
	}
	for i := 1; i < len(byDate); i++ {
		if byDate[i].Post.Date.After(byDate[i-1].Post.Date) {
			t.Error("date sort not descending")
		}
	}
}

func resultSlugs(results []models.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Post.Slug
	}
	return out
}
