// Package transform rewrites vault-specific Markdown syntax into plain web
// Markdown and collects inline #tags.
//
// Matching is regular-expression based on purpose: it targets the narrow set of
// link and tag forms a vault produces and is not a Markdown parser.
package transform

import (
	"regexp"
	"strings"

	"github.com/starford/vaultpress/internal/slug"
)

var (
	// Group 1 is the optional "!" of an embed, group 2 the target and group 3
	// the display text.
	wikilinkRe = regexp.MustCompile(`(!?)\[\[([^\]|]+)(?:\|([^\]]+))?\]\]`)
	tagRe      = regexp.MustCompile(`(?:^|\s)#([a-zA-Z][a-zA-Z0-9_-]*)`)

	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`[^`]+`")
)

// Result holds the output of Content.
type Result struct {
	Content        string
	LinksConverted int
	Tags           []string
}

// Content converts wiki links and then extracts tags from the converted text.
func Content(text string) Result {
	converted, n := WikiLinks(text)
	return Result{
		Content:        converted,
		LinksConverted: n,
		Tags:           Hashtags(converted),
	}
}

// WikiLinks replaces [[target]] and [[target|display]] with [text](/slug) and
// reports how many links were replaced. Embeds (![[...]]) are left for the
// image processor.
func WikiLinks(text string) (string, int) {
	matches := wikilinkRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text))
	last, count := 0, 0
	for _, m := range matches {
		if m[3] > m[2] {
			continue
		}
		display := ""
		if m[6] >= 0 {
			display = text[m[6]:m[7]]
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(webLink(text[m[4]:m[5]], display))
		last = m[1]
		count++
	}
	if count == 0 {
		return text, 0
	}
	b.WriteString(text[last:])
	return b.String(), count
}

// webLink builds the replacement for one wiki link. Only the last path segment
// of the target is used, for both the slug and the fallback text.
func webLink(target, display string) string {
	clean := slug.StripMarkdownExt(strings.TrimSpace(target))
	if i := strings.LastIndexAny(clean, `/\`); i >= 0 {
		clean = clean[i+1:]
	}
	text := strings.TrimSpace(display)
	if text == "" {
		text = clean
	}
	return "[" + text + "](/" + slug.Make(clean) + ")"
}

// Hashtags returns the lowercased, deduplicated #tags of text in order of
// first appearance. Fenced code blocks and inline code spans are ignored.
func Hashtags(text string) []string {
	stripped := fencedCodeRe.ReplaceAllString(text, "")
	stripped = inlineCodeRe.ReplaceAllString(stripped, "")

	seen := make(map[string]struct{})
	var out []string
	for _, m := range tagRe.FindAllStringSubmatch(stripped, -1) {
		tag := strings.ToLower(m[1])
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
