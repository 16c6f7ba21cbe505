// Package search implements the fuzzy post index and the facet
// filter/sort pipeline that consumes it.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/blog-search-api/internal/models"
)

// Relative field weights of the index. Tags are treated as one joined
// text field.
const (
	titleWeight       = 0.45
	descriptionWeight = 0.30
	tagsWeight        = 0.15
	contentWeight     = 0.10
)

// MinTokenLength is the minimum query-token length for a match attempt.
// Shorter tokens are ignored entirely.
const MinTokenLength = 2

// Options tunes index behavior. Zero values fall back to the reference
// defaults.
type Options struct {
	// ScoreThreshold is the worst acceptable score on the 0 (exact) to
	// 1 (no match) scale. Default 0.4.
	ScoreThreshold float64
	// MaxResults caps raw fuzzy results before any facet filtering.
	// Default 40.
	MaxResults int
}

func (o Options) withDefaults() Options {
	if o.ScoreThreshold <= 0 {
		o.ScoreThreshold = 0.4
	}
	if o.MaxResults <= 0 {
		o.MaxResults = 40
	}
	return o
}

type field struct {
	weight float64
	words  []string
}

type document struct {
	post   *models.Post
	fields []field
}

// Index is a weighted multi-field fuzzy index over one immutable post
// collection. It is safe for concurrent readers; content changes
// require building a new Index.
type Index struct {
	docs    []document
	version string
	opts    Options
}

// Build constructs an index over the given posts. version identifies
// the content snapshot the index was built from; callers compare it to
// the current snapshot version to decide when to rebuild.
func Build(posts []*models.Post, version string, opts Options) *Index {
	idx := &Index{
		docs:    make([]document, 0, len(posts)),
		version: version,
		opts:    opts.withDefaults(),
	}
	for _, post := range posts {
		idx.docs = append(idx.docs, document{
			post: post,
			fields: []field{
				{weight: titleWeight, words: fieldWords(post.Title)},
				{weight: descriptionWeight, words: fieldWords(post.Description)},
				{weight: tagsWeight, words: fieldWords(strings.Join(post.Tags, " "))},
				{weight: contentWeight, words: fieldWords(post.Content)},
			},
		})
	}
	return idx
}

// Version returns the content-version token the index was built from.
func (idx *Index) Version() string {
	return idx.version
}

// Search scores every document against the query and returns matches
// within the score threshold, best first, capped at MaxResults. Ties
// keep document order, which is the collection's date-descending order.
func (idx *Index) Search(query string) []models.SearchResult {
	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	var results []models.SearchResult
	for _, doc := range idx.docs {
		score, ok := doc.score(tokens)
		if ok && score <= idx.opts.ScoreThreshold {
			results = append(results, models.SearchResult{Post: doc.post, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	if len(results) > idx.opts.MaxResults {
		results = results[:idx.opts.MaxResults]
	}
	return results
}

// score is the best weighted per-field score in [0,1]: each matching
// field's distance is scaled down by its weight, so the same textual
// closeness ranks better in a heavier field. Fields where no token
// matched at all are ignored; a document with no matching field does
// not match.
func (d document) score(tokens []string) (float64, bool) {
	best := 1.0
	matched := false
	for _, f := range d.fields {
		if len(f.words) == 0 {
			continue
		}
		fs := fieldScore(tokens, f.words)
		if fs >= 1 {
			continue
		}
		matched = true
		if adjusted := fs * (1 - f.weight); adjusted < best {
			best = adjusted
		}
	}
	return best, matched
}

// fieldScore averages each token's best word match within the field.
// Position within the field does not matter.
func fieldScore(tokens []string, words []string) float64 {
	var total float64
	for _, token := range tokens {
		best := 1.0
		for _, word := range words {
			if d := wordDistance(token, word); d < best {
				best = d
			}
			if best == 0 {
				break
			}
		}
		total += best
	}
	return total / float64(len(tokens))
}

// wordDistance is the normalized fuzzy distance between a query token
// and one field word: 0 for an exact match, a scaled partial score for
// substring containment, normalized edit distance otherwise.
func wordDistance(token, word string) float64 {
	if token == word {
		return 0
	}
	tl, wl := utf8.RuneCountInString(token), utf8.RuneCountInString(word)
	longer := tl
	if wl > longer {
		longer = wl
	}
	if longer == 0 {
		return 1
	}
	if strings.Contains(word, token) || strings.Contains(token, word) {
		shorter := tl + wl - longer
		return 0.5 * float64(longer-shorter) / float64(longer)
	}
	return float64(levenshtein.ComputeDistance(token, word)) / float64(longer)
}

func queryTokens(query string) []string {
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(strings.TrimSpace(query))) {
		if utf8.RuneCountInString(tok) >= MinTokenLength {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func fieldWords(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
