// Package enhance fills in the metadata fields a published document needs but
// its author left out.
package enhance

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/starford/vaultpress/internal/frontmatter"
	"github.com/starford/vaultpress/internal/images"
	"github.com/starford/vaultpress/internal/slug"
)

const dateLayout = "2006-01-02"

var (
	headingRe   = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	wordSplitRe = regexp.MustCompile(`[-_]`)
)

// Enhancer completes metadata. Its only side effect is reading a file's
// modification time when the date is missing.
type Enhancer struct {
	heroFallback string
	modTime      func(path string) (time.Time, error)
}

// New returns an Enhancer using heroFallback for documents without a hero
// image. An empty heroFallback selects images.DefaultHeroFallback.
func New(heroFallback string) *Enhancer {
	if heroFallback == "" {
		heroFallback = images.DefaultHeroFallback
	}
	return &Enhancer{heroFallback: heroFallback, modTime: fileModTime}
}

// Enhance returns a copy of existing with title, description, date, tags and
// heroImage populated. Fields already present are kept, so enhancing complete
// metadata again yields the same result. existing is never modified.
func (e *Enhancer) Enhance(existing frontmatter.Metadata, content, filePath string, extractedTags []string) (frontmatter.Metadata, error) {
	out := existing.Clone()

	if out.Title == "" {
		out.Title = TitleFromContent(content)
		if out.Title == "" {
			out.Title = TitleFromFilename(filePath)
		}
	}
	if out.Description == "" {
		out.Description = "Description of " + out.Title
	}
	if out.Date == "" {
		mt, err := e.modTime(filePath)
		if err != nil {
			return frontmatter.Metadata{}, fmt.Errorf("enhance: date for %s: %w", filePath, err)
		}
		out.Date = mt.UTC().Format(dateLayout)
	}
	out.Tags = MergeTags(out.Tags, extractedTags)
	if out.HeroImage == "" {
		out.HeroImage = e.heroFallback
	}
	return out, nil
}

// TitleFromContent returns the text of the first level-one heading, or "".
func TitleFromContent(content string) string {
	m := headingRe.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// TitleFromFilename rebuilds a title from a file name: "my-first_post.md"
// becomes "My First Post".
func TitleFromFilename(path string) string {
	name := slug.StripMarkdownExt(filepath.Base(path))
	words := wordSplitRe.Split(name, -1)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// MergeTags returns the union of existing and extracted in first-seen order.
// The result is never nil.
func MergeTags(existing, extracted []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(extracted))
	out := make([]string, 0, len(existing)+len(extracted))
	for _, list := range [][]string{existing, extracted} {
		for _, t := range list {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func fileModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
