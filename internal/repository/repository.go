package repository

import (
	"github.com/rs/zerolog"
)

// ContentRepository is the read-only source of raw post documents.
// Content lives as {root}/{locale}/{slug}.md or .mdx files; the
// repository never validates documents, it only locates and reads them.
type ContentRepository interface {
	// ListSlugs returns every content-file basename for the locale.
	// A missing locale directory yields an empty listing, not an error.
	ListSlugs(locale string) []string
	// ReadRaw returns the raw text of one document. ok is false when
	// the document does not exist.
	ReadRaw(locale, slug string) (raw string, ok bool)
}

// New creates the filesystem-backed content repository.
func New(root string, log zerolog.Logger) ContentRepository {
	return &fsRepository{
		root: root,
		log:  log.With().Str("repository", "content").Logger(),
	}
}
