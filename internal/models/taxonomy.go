package models

// CategoryID identifies an entry in the closed category table.
type CategoryID string

// AuthorID identifies an entry in the closed author table.
type AuthorID string

const (
	CategoryAttackTechniques  CategoryID = "attack-techniques"
	CategoryLabWriteups       CategoryID = "lab-writeups"
	CategoryDefensiveSecurity CategoryID = "defensive-security"
	CategoryTooling           CategoryID = "tooling"
)

const (
	AuthorArya AuthorID = "arya"
	AuthorDana AuthorID = "dana"
)

// Category is read-only reference data: a stable id, localized labels
// keyed by locale, and a display-color token for the UI.
type Category struct {
	ID     CategoryID        `json:"id"`
	Labels map[string]string `json:"labels"`
	Color  string            `json:"color"`
}

// Author is read-only reference data.
type Author struct {
	ID     AuthorID          `json:"id"`
	Labels map[string]string `json:"labels"`
}

// Categories is the full category table, in display order.
var Categories = []Category{
	{
		ID:     CategoryAttackTechniques,
		Labels: map[string]string{"en": "Attack Techniques", "fa": "تکنیک‌های حمله"},
		Color:  "red",
	},
	{
		ID:     CategoryLabWriteups,
		Labels: map[string]string{"en": "Lab Writeups", "fa": "گزارش آزمایشگاه"},
		Color:  "violet",
	},
	{
		ID:     CategoryDefensiveSecurity,
		Labels: map[string]string{"en": "Defensive Security", "fa": "امنیت دفاعی"},
		Color:  "emerald",
	},
	{
		ID:     CategoryTooling,
		Labels: map[string]string{"en": "Tooling", "fa": "ابزارها"},
		Color:  "amber",
	},
}

// Authors is the full author table, in display order.
var Authors = []Author{
	{ID: AuthorArya, Labels: map[string]string{"en": "Arya", "fa": "آریا"}},
	{ID: AuthorDana, Labels: map[string]string{"en": "Dana", "fa": "دانا"}},
}

var categoryIndex = func() map[CategoryID]Category {
	m := make(map[CategoryID]Category, len(Categories))
	for _, c := range Categories {
		m[c.ID] = c
	}
	return m
}()

var authorIndex = func() map[AuthorID]Author {
	m := make(map[AuthorID]Author, len(Authors))
	for _, a := range Authors {
		m[a.ID] = a
	}
	return m
}()

// Valid reports whether the id is a member of the category table.
// The empty id is not valid; an absent category is represented by "".
func (id CategoryID) Valid() bool {
	_, ok := categoryIndex[id]
	return ok
}

// Valid reports whether the id is a member of the author table.
func (id AuthorID) Valid() bool {
	_, ok := authorIndex[id]
	return ok
}

// CategoryByID looks up a category from the table.
func CategoryByID(id CategoryID) (Category, bool) {
	c, ok := categoryIndex[id]
	return c, ok
}

// AuthorByID looks up an author from the table.
func AuthorByID(id AuthorID) (Author, bool) {
	a, ok := authorIndex[id]
	return a, ok
}
