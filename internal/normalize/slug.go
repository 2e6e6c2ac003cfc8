// Package normalize holds the deterministic text normalization used across
// the pipeline: slugs for identity keys, amount and round-type parsing,
// and the field-inference fallbacks applied to incomplete records.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes diacritics so that "Café" and "Cafe" share a slug.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns arbitrary text into a URL-safe identity key: lower-cased,
// diacritics stripped, punctuation and whitespace collapsed to single
// hyphens. Returns "" when no alphanumeric content survives, which callers
// must treat as an invalid name.
func Slug(text string) string {
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		folded = text
	}
	s := strings.ToLower(strings.TrimSpace(folded))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var spaceRun = regexp.MustCompile(`\s+`)

// TitleKey normalizes a content title for duplicate detection: lower-cased
// with internal whitespace collapsed. Unlike Slug it keeps punctuation out
// of the picture entirely by reusing the slug alphabet.
func TitleKey(title string) string {
	return Slug(title)
}

// CollapseWhitespace trims and collapses internal whitespace runs to a
// single space.
func CollapseWhitespace(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// TruncateSnippet cuts an evidence snippet down to at most maxWords words.
func TruncateSnippet(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
