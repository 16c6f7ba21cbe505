// Package markdown provides pure text processing over raw post markup.
package markdown

import (
	"html"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// Words-per-minute by locale. Arabic-script locales read slower in the
// reference corpus; unknown locales use the default.
const defaultWPM = 200.0

var localeWPM = map[string]float64{
	"fa": 130.0,
	"ar": 130.0,
}

var (
	frontMatterRegex = regexp.MustCompile(`(?s)\A---\r?\n.*?\r?\n---\r?\n?`)
	fencedCodeRegex  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRegex  = regexp.MustCompile("`[^`\n]*`")
	imageRegex       = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRegex        = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headingRegex     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquoteRegex  = regexp.MustCompile(`(?m)^>\s?`)
	hrRegex          = regexp.MustCompile(`(?m)^\s*([-*_]){3,}\s*$`)
	emphasisRegex    = regexp.MustCompile(`[*_]{1,3}`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)

	// Strict policy drops every HTML/JSX-like tag, keeping text content.
	tagStripper = bluemonday.StrictPolicy()
)

// ReadingTime estimates reading minutes for raw post markup. It is
// deterministic and side-effect-free, and never returns less than 1.
func ReadingTime(raw, locale string) int {
	words := countWords(stripMarkup(raw))

	wpm, ok := localeWPM[locale]
	if !ok {
		wpm = defaultWPM
	}

	minutes := int(math.Round(float64(words) / wpm))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// stripMarkup reduces markup to prose. The steps run in a fixed order:
// front matter, code, tags, images, links (label kept), then line-level
// and inline markers.
func stripMarkup(raw string) string {
	s := frontMatterRegex.ReplaceAllString(raw, "")
	s = fencedCodeRegex.ReplaceAllString(s, " ")
	s = inlineCodeRegex.ReplaceAllString(s, " ")
	// Sanitize HTML-escapes surviving text; unescape so marker
	// stripping below still sees literal > and friends.
	s = html.UnescapeString(tagStripper.Sanitize(s))
	s = imageRegex.ReplaceAllString(s, " ")
	s = linkRegex.ReplaceAllString(s, "$1")
	s = headingRegex.ReplaceAllString(s, "")
	s = blockquoteRegex.ReplaceAllString(s, "")
	s = hrRegex.ReplaceAllString(s, " ")
	s = emphasisRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// countWords sums two counts: each CJK/Kana codepoint counts as one
// word, and each remaining maximal run of non-whitespace counts as one.
func countWords(text string) int {
	cjk := 0
	var rest strings.Builder
	for _, r := range text {
		if isCJK(r) {
			cjk++
			rest.WriteByte(' ')
			continue
		}
		rest.WriteRune(r)
	}
	return cjk + len(strings.Fields(rest.String()))
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}
