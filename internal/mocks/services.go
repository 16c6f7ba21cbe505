// Package mocks provides hand-written service mocks for handler tests.
package mocks

import (
	"github.com/blog-search-api/internal/models"
)

// MockPostService is a test double for service.PostService backed by
// an in-memory post table per locale.
type MockPostService struct {
	Posts map[string][]*models.Post
	// Snapshots returned by Snapshot/Reload, keyed by locale; built
	// lazily from Posts when absent.
	Versions map[string]string
}

// NewMockPostService creates an empty MockPostService
func NewMockPostService() *MockPostService {
	return &MockPostService{
		Posts:    make(map[string][]*models.Post),
		Versions: make(map[string]string),
	}
}

func (m *MockPostService) ListSlugs(locale string) []string {
	var slugs []string
	for _, p := range m.Posts[locale] {
		slugs = append(slugs, p.Slug)
	}
	return slugs
}

func (m *MockPostService) GetBySlug(locale, slug string) *models.Post {
	for _, p := range m.Posts[locale] {
		if p.Slug == slug {
			return p
		}
	}
	return nil
}

func (m *MockPostService) ListAll(locale string) []*models.Post {
	var out []*models.Post
	for _, p := range m.Posts[locale] {
		if p.Published {
			out = append(out, p)
		}
	}
	return out
}

func (m *MockPostService) ListByTag(locale, tagLabel string) []*models.Post {
	var out []*models.Post
	for _, p := range m.ListAll(locale) {
		if p.HasNormalizedTag(tagLabel) {
			out = append(out, p)
		}
	}
	return out
}

func (m *MockPostService) ListByCategory(locale string, categoryID models.CategoryID) []*models.Post {
	var out []*models.Post
	for _, p := range m.ListAll(locale) {
		if p.Category == categoryID {
			out = append(out, p)
		}
	}
	return out
}

func (m *MockPostService) TagSummaries(locale string) []models.TagSummary {
	bySlug := make(map[string]*models.TagSummary)
	var order []string
	for _, p := range m.ListAll(locale) {
		for _, tag := range p.Tags {
			slug := models.NormalizeTagSlug(tag)
			if s, ok := bySlug[slug]; ok {
				s.Count++
				continue
			}
			bySlug[slug] = &models.TagSummary{Slug: slug, Label: tag, Count: 1}
			order = append(order, slug)
		}
	}
	var out []models.TagSummary
	for _, slug := range order {
		out = append(out, *bySlug[slug])
	}
	return out
}

func (m *MockPostService) Related(post *models.Post, limit int) []*models.Post {
	if limit <= 0 {
		return nil
	}
	var out []*models.Post
	for _, p := range m.ListAll(post.Locale) {
		if p.Slug == post.Slug {
			continue
		}
		for _, tag := range p.Tags {
			if post.HasTag(tag) {
				out = append(out, p)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

func (m *MockPostService) Snapshot(locale string) *models.Snapshot {
	return &models.Snapshot{
		Locale:  locale,
		Posts:   m.ListAll(locale),
		Version: m.Versions[locale],
	}
}

func (m *MockPostService) Reload(locale string) *models.Snapshot {
	return m.Snapshot(locale)
}

// MockSearchService is a test double for service.SearchService that
// records calls and returns canned results.
type MockSearchService struct {
	Results []models.SearchResult
	Calls   []MockSearchCall
}

// MockSearchCall records the arguments of one Search invocation.
type MockSearchCall struct {
	Locale  string
	Filters models.SearchFilters
}

// NewMockSearchService creates an empty MockSearchService
func NewMockSearchService() *MockSearchService {
	return &MockSearchService{}
}

func (m *MockSearchService) Search(locale string, filters models.SearchFilters) []models.SearchResult {
	m.Calls = append(m.Calls, MockSearchCall{Locale: locale, Filters: filters})
	return m.Results
}
