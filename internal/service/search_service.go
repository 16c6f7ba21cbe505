package service

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/blog-search-api/internal/config"
	"github.com/blog-search-api/internal/models"
	"github.com/blog-search-api/internal/search"
	"github.com/rs/zerolog"
)

// searchService is the concrete implementation of SearchService. It
// keeps one fuzzy index per locale, keyed by the snapshot's content
// version so a rebuilt snapshot always invalidates the index.
type searchService struct {
	posts PostService
	cfg   config.SearchConfig
	log   zerolog.Logger

	mu      sync.Mutex
	indexes map[string]*search.Index
}

func newSearchService(posts PostService, cfg config.SearchConfig, log zerolog.Logger) *searchService {
	return &searchService{
		posts:   posts,
		cfg:     cfg,
		log:     log.With().Str("service", "search").Logger(),
		indexes: make(map[string]*search.Index),
	}
}

// Search ranks the locale's posts against the filter state. Queries
// shorter than the minimum length skip fuzzy ranking entirely and flow
// the unranked date-descending listing (score sentinel 0) into the
// facet pipeline. Never returns an error; worst case is empty output.
func (s *searchService) Search(locale string, filters models.SearchFilters) []models.SearchResult {
	snap := s.posts.Snapshot(locale)

	query := strings.TrimSpace(filters.Query)
	var base []models.SearchResult
	if utf8.RuneCountInString(query) < s.cfg.MinQueryLength {
		base = unranked(snap.Posts)
	} else {
		base = s.indexFor(locale, snap).Search(query)
	}

	return search.Apply(base, filters)
}

// indexFor returns the cached index for the locale, rebuilding when
// the snapshot version has moved.
func (s *searchService) indexFor(locale string, snap *models.Snapshot) *search.Index {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.indexes[locale]; ok && idx.Version() == snap.Version {
		return idx
	}

	idx := search.Build(snap.Posts, snap.Version, search.Options{
		ScoreThreshold: s.cfg.ScoreThreshold,
		MaxResults:     s.cfg.MaxResults,
	})
	s.indexes[locale] = idx

	s.log.Debug().
		Str("locale", locale).
		Str("version", snap.Version).
		Int("posts", len(snap.Posts)).
		Msg("Fuzzy index rebuilt")
	return idx
}

func unranked(posts []*models.Post) []models.SearchResult {
	out := make([]models.SearchResult, len(posts))
	for i, post := range posts {
		out[i] = models.SearchResult{Post: post, Score: 0}
	}
	return out
}
