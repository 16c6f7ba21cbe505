package service

import (
	"sync"
	"testing"
	"time"

	"github.com/blog-search-api/internal/models"
	"github.com/rs/zerolog"
)

// slowSearch is a SearchService stub whose latency is keyed by the
// query string, so tests can make an early request outlive later ones.
type slowSearch struct {
	mu      sync.Mutex
	latency map[string]time.Duration
	calls   []string
}

func (s *slowSearch) Search(locale string, filters models.SearchFilters) []models.SearchResult {
	s.mu.Lock()
	delay := s.latency[filters.Query]
	s.calls = append(s.calls, filters.Query)
	s.mu.Unlock()

	time.Sleep(delay)
	return []models.SearchResult{{Post: &models.Post{Slug: filters.Query}}}
}

func (s *slowSearch) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type updateRecorder struct {
	mu      sync.Mutex
	updates []Update
}

func (r *updateRecorder) record(u Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

func (r *updateRecorder) all() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Update(nil), r.updates...)
}

func TestDispatcherVersionMonotonicity(t *testing.T) {
	search := &slowSearch{latency: map[string]time.Duration{
		"v1": 120 * time.Millisecond,
		"v2": 60 * time.Millisecond,
		"v3": 10 * time.Millisecond,
	}}
	rec := &updateRecorder{}
	d := NewDispatcher(search, time.Hour, zerolog.Nop(), rec.record)
	defer d.Close()

	// Three states dispatched before v1's computation resolves. Facet
	// commits are immediate, so each bumps the logical version.
	d.UpdateFacets("en", models.SearchFilters{Query: "v1"})
	d.UpdateFacets("en", models.SearchFilters{Query: "v2"})
	d.UpdateFacets("en", models.SearchFilters{Query: "v3"})

	time.Sleep(250 * time.Millisecond)

	updates := rec.all()
	if len(updates) != 1 {
		t.Fatalf("got %d surfaced updates, want only the latest: %+v", len(updates), updates)
	}
	if updates[0].Filters.Query != "v3" {
		t.Errorf("surfaced update = %q, want v3", updates[0].Filters.Query)
	}
	if updates[0].Version != 3 {
		t.Errorf("surfaced version = %d, want 3", updates[0].Version)
	}
	if d.Version() != 3 {
		t.Errorf("Version() = %d, want 3", d.Version())
	}
}

func TestDispatcherDebouncesTyping(t *testing.T) {
	search := &slowSearch{latency: map[string]time.Duration{}}
	rec := &updateRecorder{}
	d := NewDispatcher(search, 50*time.Millisecond, zerolog.Nop(), rec.record)
	defer d.Close()

	// Rapid typing coalesces into one commit of the final state.
	d.UpdateQuery("en", models.SearchFilters{Query: "x"})
	d.UpdateQuery("en", models.SearchFilters{Query: "xs"})
	d.UpdateQuery("en", models.SearchFilters{Query: "xss"})

	time.Sleep(200 * time.Millisecond)

	if got := search.callCount(); got != 1 {
		t.Errorf("search ran %d times, want 1", got)
	}
	updates := rec.all()
	if len(updates) != 1 || updates[0].Filters.Query != "xss" {
		t.Fatalf("surfaced updates = %+v, want one update for %q", updates, "xss")
	}
	if updates[0].Version != 1 {
		t.Errorf("coalesced commit version = %d, want 1", updates[0].Version)
	}
}

func TestDispatcherFacetsCommitImmediately(t *testing.T) {
	search := &slowSearch{latency: map[string]time.Duration{}}
	rec := &updateRecorder{}
	// Debounce window far longer than the test: only an immediate
	// commit path can surface anything.
	d := NewDispatcher(search, time.Hour, zerolog.Nop(), rec.record)
	defer d.Close()

	d.UpdateFacets("en", models.SearchFilters{Tags: []string{"xss"}})

	time.Sleep(100 * time.Millisecond)

	updates := rec.all()
	if len(updates) != 1 {
		t.Fatalf("facet toggle did not commit immediately: %+v", updates)
	}
}

func TestDispatcherFacetSupersedesPendingQuery(t *testing.T) {
	search := &slowSearch{latency: map[string]time.Duration{}}
	rec := &updateRecorder{}
	d := NewDispatcher(search, 80*time.Millisecond, zerolog.Nop(), rec.record)
	defer d.Close()

	d.UpdateQuery("en", models.SearchFilters{Query: "pending"})
	d.UpdateFacets("en", models.SearchFilters{Query: "committed", Tags: []string{"xss"}})

	time.Sleep(250 * time.Millisecond)

	updates := rec.all()
	if len(updates) != 1 || updates[0].Filters.Query != "committed" {
		t.Fatalf("updates = %+v, want single committed state", updates)
	}
}

func TestDispatcherCloseDropsInFlight(t *testing.T) {
	search := &slowSearch{latency: map[string]time.Duration{"slow": 80 * time.Millisecond}}
	rec := &updateRecorder{}
	d := NewDispatcher(search, time.Hour, zerolog.Nop(), rec.record)

	d.UpdateFacets("en", models.SearchFilters{Query: "slow"})
	d.Close()

	if updates := rec.all(); len(updates) != 0 {
		t.Errorf("closed dispatcher surfaced updates: %+v", updates)
	}

	// Updates after close are ignored.
	d.UpdateFacets("en", models.SearchFilters{Query: "late"})
	time.Sleep(50 * time.Millisecond)
	if got := search.callCount(); got != 1 {
		t.Errorf("search ran %d times, want 1", got)
	}
}
