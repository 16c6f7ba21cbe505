package repository

import (
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the raw metadata block of a content document, decoded
// before any validation or derivation happens.
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Tags        []string `yaml:"tags"`
	Category    string   `yaml:"category"`
	Author      string   `yaml:"author"`
	ReadingTime int      `yaml:"readingTime"`
	Published   *bool    `yaml:"published"`
}

// IsPublished treats an absent published field as published.
func (fm *FrontMatter) IsPublished() bool {
	return fm.Published == nil || *fm.Published
}

// ParseDocument splits a raw document into decoded front matter and the
// body text. A document without a front-matter block decodes to a
// zero-valued FrontMatter with the whole input as body.
func ParseDocument(raw string) (*FrontMatter, string, error) {
	var fm FrontMatter
	body, err := frontmatter.Parse(strings.NewReader(raw), &fm)
	if err != nil {
		return nil, "", err
	}
	return &fm, string(body), nil
}
