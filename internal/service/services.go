package service

import (
	"github.com/blog-search-api/internal/config"
	"github.com/blog-search-api/internal/models"
	"github.com/blog-search-api/internal/repository"
	"github.com/rs/zerolog"
)

// PostService defines the post store: ingestion, listing, and tag
// queries over one locale's content.
type PostService interface {
	ListSlugs(locale string) []string
	GetBySlug(locale, slug string) *models.Post
	ListAll(locale string) []*models.Post
	ListByTag(locale, tagLabel string) []*models.Post
	ListByCategory(locale string, categoryID models.CategoryID) []*models.Post
	TagSummaries(locale string) []models.TagSummary
	Related(post *models.Post, limit int) []*models.Post
	Snapshot(locale string) *models.Snapshot
	Reload(locale string) *models.Snapshot
}

// SearchService defines the search engine over the post store. Both
// the HTTP endpoint and in-process page handlers go through it.
type SearchService interface {
	Search(locale string, filters models.SearchFilters) []models.SearchResult
}

// Services holds all service interfaces
type Services struct {
	Post   PostService
	Search SearchService
}

// NewServices creates all services
func NewServices(repo repository.ContentRepository, cfg *config.Config, log zerolog.Logger) *Services {
	postSvc := newPostService(repo, log)
	searchSvc := newSearchService(postSvc, cfg.Search, log)

	return &Services{
		Post:   postSvc,
		Search: searchSvc,
	}
}
