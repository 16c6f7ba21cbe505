package models

import (
	"net/url"
	"testing"
)

func TestFiltersRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		filters SearchFilters
	}{
		{name: "empty", filters: SearchFilters{Sort: SortRelevance}},
		{name: "query only", filters: SearchFilters{Query: "xss payloads", Sort: SortRelevance}},
		{
			name: "all facets",
			filters: SearchFilters{
				Query:      "recon",
				Categories: []CategoryID{CategoryAttackTechniques, CategoryTooling},
				Authors:    []AuthorID{AuthorArya},
				Tags:       []string{"xss", "Active Directory"},
				Sort:       SortDate,
			},
		},
		{
			name:    "facets without query",
			filters: SearchFilters{Categories: []CategoryID{CategoryLabWriteups}, Sort: SortRelevance},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded := DecodeFilters(tt.filters.Encode())
			if !decoded.Equal(tt.filters) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, tt.filters)
			}
		})
	}
}

func TestEncodeOmitsDefaults(t *testing.T) {
	encoded := SearchFilters{Sort: SortRelevance}.Encode().Encode()
	if encoded != "" {
		t.Errorf("empty filters should encode to empty query string, got %q", encoded)
	}

	// Default sort is canonical absence: explicit relevance and zero
	// value must serialize identically.
	a := SearchFilters{Query: "xss", Sort: SortRelevance}.Encode().Encode()
	b := SearchFilters{Query: "xss"}.Encode().Encode()
	if a != b {
		t.Errorf("equivalent states serialize differently: %q vs %q", a, b)
	}
}

func TestDecodeFilters(t *testing.T) {
	tests := []struct {
		name           string
		rawQuery       string
		wantQuery      string
		wantCategories int
		wantTags       []string
		wantSort       SortMode
	}{
		{
			name:           "full query string",
			rawQuery:       "q=sqli&categories=attack-techniques,lab-writeups&tags=xss,recon&sort=date",
			wantQuery:      "sqli",
			wantCategories: 2,
			wantTags:       []string{"xss", "recon"},
			wantSort:       SortDate,
		},
		{
			name:     "empty tokens dropped",
			rawQuery: "tags=,xss,,recon,",
			wantTags: []string{"xss", "recon"},
			wantSort: SortRelevance,
		},
		{
			name:     "garbage sort falls back to relevance",
			rawQuery: "sort=magic",
			wantSort: SortRelevance,
		},
		{
			name:           "unknown ids survive decode",
			rawQuery:       "categories=no-such-category",
			wantCategories: 1,
			wantSort:       SortRelevance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.rawQuery)
			if err != nil {
				t.Fatalf("bad test query: %v", err)
			}
			f := DecodeFilters(values)
			if f.Query != tt.wantQuery {
				t.Errorf("Query = %q, want %q", f.Query, tt.wantQuery)
			}
			if len(f.Categories) != tt.wantCategories {
				t.Errorf("got %d categories, want %d", len(f.Categories), tt.wantCategories)
			}
			if len(f.Tags) != len(tt.wantTags) {
				t.Fatalf("got tags %v, want %v", f.Tags, tt.wantTags)
			}
			for i, tag := range tt.wantTags {
				if f.Tags[i] != tag {
					t.Errorf("Tags[%d] = %q, want %q", i, f.Tags[i], tag)
				}
			}
			if f.Sort != tt.wantSort {
				t.Errorf("Sort = %q, want %q", f.Sort, tt.wantSort)
			}
		})
	}
}

func TestToggleOrderIndependence(t *testing.T) {
	base := SearchFilters{}

	// A on, B on, A off == B on.
	got := base.
		ToggleCategory(CategoryAttackTechniques).
		ToggleCategory(CategoryTooling).
		ToggleCategory(CategoryAttackTechniques)
	want := base.ToggleCategory(CategoryTooling)
	if !got.Equal(want) {
		t.Errorf("toggle order dependence: got %+v, want %+v", got, want)
	}

	// Toggling twice is a no-op.
	twice := base.ToggleTag("xss").ToggleTag("xss")
	if !twice.Equal(base) {
		t.Errorf("double toggle should restore the original state, got %+v", twice)
	}

	// Toggle never mutates the receiver.
	original := SearchFilters{Tags: []string{"xss"}}
	_ = original.ToggleTag("recon")
	if len(original.Tags) != 1 {
		t.Errorf("ToggleTag mutated the receiver: %+v", original)
	}
}

func TestFiltersEqualAsSets(t *testing.T) {
	a := SearchFilters{Tags: []string{"xss", "recon"}, Authors: []AuthorID{AuthorArya, AuthorDana}}
	b := SearchFilters{Tags: []string{"recon", "xss"}, Authors: []AuthorID{AuthorDana, AuthorArya}}
	if !a.Equal(b) {
		t.Error("facet sets should compare order-independently")
	}

	c := SearchFilters{Tags: []string{"xss"}}
	if a.Equal(c) {
		t.Error("different tag sets should not be equal")
	}

	// Duplicates count: [a,a] is not the same state as [a,b].
	dup := DecodeFilters(url.Values{"tags": {"xss,xss"}})
	mixed := DecodeFilters(url.Values{"tags": {"xss,recon"}})
	if dup.Equal(mixed) {
		t.Error("duplicate-bearing tag set should not equal a distinct pair")
	}
	if !dup.Equal(DecodeFilters(url.Values{"tags": {"xss,xss"}})) {
		t.Error("identical duplicate-bearing tag sets should be equal")
	}
}
