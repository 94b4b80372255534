// Package slug turns titles and file names into URL-safe identifiers.
package slug

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	separatorRe = regexp.MustCompile(`[\s\p{Zs}_]+`)
	invalidRe   = regexp.MustCompile(`[^a-z0-9-]`)
	hyphensRe   = regexp.MustCompile(`-+`)

	// combining diacritical marks block, U+0300..U+036F
	diacritics = runes.Predicate(func(r rune) bool { return r >= 0x0300 && r <= 0x036f })
)

// Make lowercases text, strips diacritics and reduces it to [a-z0-9-] with
// single hyphens between words and none at either end. Empty input yields an
// empty slug.
func Make(text string) string {
	s := strings.ToLower(text)
	if folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(diacritics)), s); err == nil {
		s = folded
	}
	s = separatorRe.ReplaceAllString(s, "-")
	s = invalidRe.ReplaceAllString(s, "")
	s = hyphensRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FromFilename slugs the last path segment of path with any .md extension
// removed. Both slash styles are accepted as separators.
func FromFilename(path string) string {
	return Make(StripMarkdownExt(baseName(path)))
}

// StripMarkdownExt removes a trailing ".md" in any letter case.
func StripMarkdownExt(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".md") {
		return name[:len(name)-len(".md")]
	}
	return name
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
