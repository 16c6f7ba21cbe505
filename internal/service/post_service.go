package service

import (
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/blog-search-api/internal/markdown"
	"github.com/blog-search-api/internal/models"
	"github.com/blog-search-api/internal/repository"
	"github.com/blog-search-api/internal/validation"
	"github.com/rs/zerolog"
)

// postService is the concrete implementation of PostService. Each
// locale's listing is an immutable snapshot, rebuilt as a whole and
// swapped atomically so concurrent readers never observe mutation.
type postService struct {
	repo repository.ContentRepository
	log  zerolog.Logger

	mu        sync.RWMutex
	snapshots map[string]*models.Snapshot
}

func newPostService(repo repository.ContentRepository, log zerolog.Logger) *postService {
	return &postService{
		repo:      repo,
		log:       log.With().Str("service", "post").Logger(),
		snapshots: make(map[string]*models.Snapshot),
	}
}

// ListSlugs returns every content-file basename for the locale, with
// no validation applied.
func (s *postService) ListSlugs(locale string) []string {
	return s.repo.ListSlugs(locale)
}

// GetBySlug reads and validates a single post. A missing document
// returns nil silently; a document with invalid front matter returns
// nil after logging a diagnostic. Callers never see an error.
func (s *postService) GetBySlug(locale, slug string) *models.Post {
	raw, ok := s.repo.ReadRaw(locale, slug)
	if !ok {
		return nil
	}
	return s.buildPost(locale, slug, raw)
}

// ListAll returns the locale's published, valid posts sorted by date
// descending. The sort is stable: equal dates keep ingestion order.
func (s *postService) ListAll(locale string) []*models.Post {
	return s.Snapshot(locale).Posts
}

// ListByTag filters the listing to posts carrying a tag whose
// normalized slug matches the normalized slug of tagLabel.
func (s *postService) ListByTag(locale, tagLabel string) []*models.Post {
	var out []*models.Post
	for _, post := range s.ListAll(locale) {
		if post.HasNormalizedTag(tagLabel) {
			out = append(out, post)
		}
	}
	return out
}

// ListByCategory filters the listing to one category, order preserved.
func (s *postService) ListByCategory(locale string, categoryID models.CategoryID) []*models.Post {
	var out []*models.Post
	for _, post := range s.ListAll(locale) {
		if post.Category == categoryID {
			out = append(out, post)
		}
	}
	return out
}

// TagSummaries aggregates one entry per distinct normalized tag slug,
// ordered by label ascending. The label is the first raw-cased
// representative seen in listing order.
func (s *postService) TagSummaries(locale string) []models.TagSummary {
	bySlug := make(map[string]*models.TagSummary)
	for _, post := range s.ListAll(locale) {
		for _, tag := range post.Tags {
			slug := models.NormalizeTagSlug(tag)
			if summary, ok := bySlug[slug]; ok {
				summary.Count++
				continue
			}
			bySlug[slug] = &models.TagSummary{Slug: slug, Label: tag, Count: 1}
		}
	}

	out := make([]models.TagSummary, 0, len(bySlug))
	for _, summary := range bySlug {
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out
}

// Related returns up to limit published posts of the same locale that
// share at least one tag with the input post, by exact label match,
// ordered by date descending. Overlap size does not affect ranking.
// A non-positive limit returns nothing.
func (s *postService) Related(post *models.Post, limit int) []*models.Post {
	if limit <= 0 {
		return nil
	}
	var out []*models.Post
	for _, candidate := range s.ListAll(post.Locale) {
		if candidate.Slug == post.Slug {
			continue
		}
		if !sharesTag(candidate, post) {
			continue
		}
		out = append(out, candidate)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Snapshot returns the locale's current listing snapshot, ingesting
// lazily on first access.
func (s *postService) Snapshot(locale string) *models.Snapshot {
	s.mu.RLock()
	snap, ok := s.snapshots[locale]
	s.mu.RUnlock()
	if ok {
		return snap
	}
	return s.Reload(locale)
}

// Reload re-ingests the locale's content directory and swaps in a new
// immutable snapshot.
func (s *postService) Reload(locale string) *models.Snapshot {
	slugs := s.repo.ListSlugs(locale)

	posts := make([]*models.Post, 0, len(slugs))
	for _, slug := range slugs {
		raw, ok := s.repo.ReadRaw(locale, slug)
		if !ok {
			continue
		}
		post := s.buildPost(locale, slug, raw)
		if post == nil || !post.Published {
			continue
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})

	snap := &models.Snapshot{
		Locale:  locale,
		Posts:   posts,
		Version: snapshotVersion(posts),
	}

	s.mu.Lock()
	s.snapshots[locale] = snap
	s.mu.Unlock()

	s.log.Info().
		Str("locale", locale).
		Int("posts", len(posts)).
		Str("version", snap.Version).
		Msg("Content snapshot rebuilt")
	return snap
}

// buildPost parses, validates, and derives one post. It returns nil
// for any document that cannot become a valid Post.
func (s *postService) buildPost(locale, slug, raw string) *models.Post {
	fm, body, err := repository.ParseDocument(raw)
	if err != nil {
		s.log.Warn().Err(err).
			Str("locale", locale).
			Str("slug", slug).
			Msg("Failed to parse front matter")
		return nil
	}

	if errs := validation.ValidatePost(fm); len(errs) > 0 {
		s.log.Warn().
			Str("locale", locale).
			Str("slug", slug).
			Interface("errors", errs).
			Msg("Post failed front-matter validation")
		return nil
	}

	date, err := validation.ParseDate(fm.Date)
	if err != nil {
		// Unreachable after validation; kept as a guard.
		return nil
	}

	readingTime := fm.ReadingTime
	if readingTime == 0 {
		readingTime = markdown.ReadingTime(raw, locale)
	}

	return &models.Post{
		Slug:        slug,
		Locale:      locale,
		Title:       fm.Title,
		Description: fm.Description,
		Date:        date,
		Tags:        fm.Tags,
		Category:    models.CategoryID(fm.Category),
		Author:      models.AuthorID(fm.Author),
		ReadingTime: readingTime,
		URL:         fmt.Sprintf("/%s/blog/%s", locale, slug),
		Published:   fm.IsPublished(),
		Content:     body,
	}
}

func sharesTag(a, b *models.Post) bool {
	for _, tag := range a.Tags {
		if b.HasTag(tag) {
			return true
		}
	}
	return false
}

// snapshotVersion hashes slugs and dates into the content-version
// token used to invalidate the search index cache.
func snapshotVersion(posts []*models.Post) string {
	h := fnv.New64a()
	for _, post := range posts {
		h.Write([]byte(post.Slug))
		h.Write([]byte{0})
		h.Write([]byte(post.Date.Format(time.RFC3339)))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
