package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/blog-search-api/internal/models"
	"github.com/blog-search-api/internal/repository"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// dateLayouts are the accepted front-matter date formats, most common first.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ParseDate parses a front-matter date string.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// ValidateSlug checks that a content-file basename is a usable slug.
func ValidateSlug(slug string) []ValidationError {
	if !slugRegex.MatchString(slug) {
		return []ValidationError{{
			Field:   "slug",
			Message: "slug must be kebab-case (lowercase letters, numbers, hyphens)",
			Value:   slug,
		}}
	}
	return nil
}

// ValidatePost validates a decoded front-matter block against the post
// schema. A post whose front matter fails validation is never
// constructed; callers exclude it from listings and log the errors.
func ValidatePost(fm *repository.FrontMatter) []ValidationError {
	var errors []ValidationError

	// Validate title
	if fm.Title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}

	// Validate description
	if fm.Description == "" {
		errors = append(errors, ValidationError{Field: "description", Message: "description is required"})
	}

	// Validate date
	if fm.Date == "" {
		errors = append(errors, ValidationError{Field: "date", Message: "date is required"})
	} else if _, err := ParseDate(fm.Date); err != nil {
		errors = append(errors, ValidationError{Field: "date", Message: "invalid ISO date format", Value: fm.Date})
	}

	// Validate category against the closed category table
	if fm.Category != "" && !models.CategoryID(fm.Category).Valid() {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: "unknown category id",
			Value:   fm.Category,
		})
	}

	// Validate author against the closed author table
	if fm.Author != "" && !models.AuthorID(fm.Author).Valid() {
		errors = append(errors, ValidationError{
			Field:   "author",
			Message: "unknown author id",
			Value:   fm.Author,
		})
	}

	// Validate explicit reading time, when supplied
	if fm.ReadingTime < 0 {
		errors = append(errors, ValidationError{
			Field:   "readingTime",
			Message: "readingTime must be positive",
			Value:   fm.ReadingTime,
		})
	}

	// Validate tags are non-empty strings
	for _, tag := range fm.Tags {
		if tag == "" {
			errors = append(errors, ValidationError{Field: "tags", Message: "tags must not contain empty entries"})
			break
		}
	}

	return errors
}
