package service

import (
	"sync"
	"time"

	"github.com/blog-search-api/internal/models"
	"github.com/rs/zerolog"
)

// dispatchState is the explicit state of the dispatcher's small state
// machine: idle, a pending debounced commit, or an in-flight search.
type dispatchState int

const (
	stateIdle dispatchState = iota
	statePending
	stateApplying
)

// Update is one surfaced search outcome, tagged with the logical
// version of the filter state that produced it.
type Update struct {
	Version uint64
	Locale  string
	Filters models.SearchFilters
	Results []models.SearchResult
}

// Dispatcher serializes overlapping filter-state changes. Every commit
// gets a monotonically increasing logical version; a completed search
// is surfaced only while its version is still the latest, so a slow
// computation for a superseded state can never overwrite a newer one.
// Free-text changes are debounced; facet and sort changes commit
// immediately.
type Dispatcher struct {
	search   SearchService
	debounce time.Duration
	apply    func(Update)
	log      zerolog.Logger

	mu      sync.Mutex
	state   dispatchState
	version uint64
	timer   *time.Timer
	pending pendingChange
	closed  bool
	wg      sync.WaitGroup
}

type pendingChange struct {
	locale  string
	filters models.SearchFilters
}

// NewDispatcher creates a dispatcher. apply receives each surfaced
// Update and is called with the dispatcher's lock held; it must not
// call back into the dispatcher.
func NewDispatcher(search SearchService, debounce time.Duration, log zerolog.Logger, apply func(Update)) *Dispatcher {
	return &Dispatcher{
		search:   search,
		debounce: debounce,
		apply:    apply,
		log:      log.With().Str("service", "dispatch").Logger(),
	}
}

// UpdateQuery records a free-text change. Commits only after the
// quiescence window elapses with no further query changes; rapid typing
// coalesces into a single commit of the last state.
func (d *Dispatcher) UpdateQuery(locale string, filters models.SearchFilters) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	d.pending = pendingChange{locale: locale, filters: filters}
	d.state = statePending
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.debounce, d.commitPending)
}

// UpdateFacets records a facet or sort change and commits immediately,
// superseding any pending debounced query commit with this newer state.
func (d *Dispatcher) UpdateFacets(locale string, filters models.SearchFilters) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.commitLocked(locale, filters)
}

// Version returns the latest committed logical version.
func (d *Dispatcher) Version() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// Close stops the dispatcher and waits for in-flight searches to
// drain. Their results are dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	// Bump the version so any in-flight completion is stale.
	d.version++
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) commitPending() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.state != statePending {
		return
	}
	d.commitLocked(d.pending.locale, d.pending.filters)
}

// commitLocked promotes a filter state to a committed version and runs
// the search asynchronously. Caller holds d.mu.
func (d *Dispatcher) commitLocked(locale string, filters models.SearchFilters) {
	d.version++
	version := d.version
	d.state = stateApplying

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		results := d.search.Search(locale, filters)

		d.mu.Lock()
		defer d.mu.Unlock()
		if version != d.version || d.closed {
			// A newer state was committed while this one computed.
			d.log.Debug().
				Uint64("version", version).
				Uint64("current", d.version).
				Msg("Dropping stale search result")
			return
		}
		// A query may already be pending debounce again; only leave
		// the applying state, never clobber a pending one.
		if d.state == stateApplying {
			d.state = stateIdle
		}
		if d.apply != nil {
			d.apply(Update{
				Version: version,
				Locale:  locale,
				Filters: filters,
				Results: results,
			})
		}
	}()
}
