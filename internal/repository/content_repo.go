package repository

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// contentExtensions are the recognized document suffixes, in lookup order.
var contentExtensions = []string{".mdx", ".md"}

// fsRepository reads documents from a local content directory.
type fsRepository struct {
	root string
	log  zerolog.Logger
}

// ListSlugs lists content-file basenames under the locale directory.
// The listing is sorted for deterministic ingestion order.
func (r *fsRepository) ListSlugs(locale string) []string {
	dir := filepath.Join(r.root, locale)
	entries, err := os.ReadDir(dir)
	if err != nil {
		// An absent content root degrades to an empty corpus.
		if !os.IsNotExist(err) {
			r.log.Warn().Err(err).Str("dir", dir).Msg("Failed to read content directory")
		}
		return nil
	}

	seen := make(map[string]bool)
	var slugs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, ext := range contentExtensions {
			if strings.HasSuffix(name, ext) {
				slug := strings.TrimSuffix(name, ext)
				if !seen[slug] {
					seen[slug] = true
					slugs = append(slugs, slug)
				}
				break
			}
		}
	}
	sort.Strings(slugs)
	return slugs
}

// ReadRaw reads one document, trying each recognized extension.
func (r *fsRepository) ReadRaw(locale, slug string) (string, bool) {
	for _, ext := range contentExtensions {
		path := filepath.Join(r.root, locale, slug+ext)
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), true
		}
		if !os.IsNotExist(err) {
			r.log.Warn().Err(err).Str("path", path).Msg("Failed to read content file")
		}
	}
	return "", false
}
