package images

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/starford/vaultpress/internal/storage"
)

// Default link settings for the static site layout.
const (
	DefaultLinkPrefix   = "../../Images/"
	DefaultHeroFallback = "../../Images/preserved/astro_banner.png"
)

// Copier copies resolved images into the asset directory and rewrites the
// references that point at them.
type Copier struct {
	store        storage.Provider
	registry     *Registry
	linkPrefix   string
	heroFallback string
}

// NewCopier creates a Copier writing into store. Empty linkPrefix and
// heroFallback select the defaults.
func NewCopier(store storage.Provider, registry *Registry, linkPrefix, heroFallback string) *Copier {
	if linkPrefix == "" {
		linkPrefix = DefaultLinkPrefix
	}
	if heroFallback == "" {
		heroFallback = DefaultHeroFallback
	}
	return &Copier{
		store:        store,
		registry:     registry,
		linkPrefix:   linkPrefix,
		heroFallback: heroFallback,
	}
}

// Registry returns the name registry shared by every copy.
func (c *Copier) Registry() *Registry { return c.registry }

// Link returns the document-relative path of an asset file name.
func (c *Copier) Link(name string) string { return c.linkPrefix + name }

// Copy copies src into the asset directory under a name not yet in the
// registry and registers it. Two sources with the same base name never
// overwrite each other.
func (c *Copier) Copy(src string) (string, error) {
	name := c.registry.Next(filepath.Base(src))
	if err := c.store.CopyFile(src, name); err != nil {
		return "", fmt.Errorf("images: copy %s: %w", src, err)
	}
	c.registry.Add(name)
	return name, nil
}

// Result is the outcome of ProcessImages.
type Result struct {
	Content      string
	Copied       int
	Deduplicated int
	Warnings     []string
}

// ProcessImages copies every resolvable image referenced by content and
// rewrites each reference to the copied file. Unresolved references stay as
// written and produce a warning. A failed copy is returned as an error.
func (c *Copier) ProcessImages(content, sourceFile, vaultRoot string) (*Result, error) {
	res := &Result{Content: content}
	for _, ref := range ExtractReferences(content, sourceFile, vaultRoot) {
		if !ref.Resolved() {
			res.Warnings = append(res.Warnings, notFound(ref.OriginalPath, sourceFile))
			continue
		}
		name, err := c.Copy(ref.ResolvedPath)
		if err != nil {
			return nil, err
		}
		res.Copied++
		if name != filepath.Base(ref.ResolvedPath) {
			res.Deduplicated++
		}
		// One occurrence per reference, so repeated references map onto
		// their own copies.
		res.Content = strings.Replace(res.Content, ref.Match, c.rewrite(ref, name), 1)
	}
	return res, nil
}

func (c *Copier) rewrite(ref Reference, name string) string {
	return "![" + ref.AltText + "](" + c.Link(name) + ")"
}

// HeroResult is the outcome of ProcessHero.
type HeroResult struct {
	// Path is the value to store back into the heroImage field.
	Path         string
	Copied       bool
	Deduplicated bool
	Warning      string
}

// ProcessHero resolves and copies the image named by a heroImage field. An
// empty field yields the fallback image; an unresolved one keeps its value and
// sets Warning.
func (c *Copier) ProcessHero(hero, sourceFile, vaultRoot string) (*HeroResult, error) {
	value := unwrapEmbed(hero)
	switch {
	case value == "":
		return &HeroResult{Path: c.heroFallback}, nil
	case value == c.heroFallback, remoteRe.MatchString(value):
		return &HeroResult{Path: value}, nil
	}

	resolved := ResolvePath(value, filepath.Dir(sourceFile), vaultRoot)
	if resolved == "" {
		return &HeroResult{Path: hero, Warning: "Hero " + notFound(value, sourceFile)}, nil
	}
	name, err := c.Copy(resolved)
	if err != nil {
		return nil, err
	}
	return &HeroResult{
		Path:         c.Link(name),
		Copied:       true,
		Deduplicated: name != filepath.Base(resolved),
	}, nil
}

// unwrapEmbed turns "![[pic.png|300]]" or "[[pic.png]]" into "pic.png".
func unwrapEmbed(v string) string {
	v = strings.TrimSpace(v)
	inner := strings.TrimPrefix(v, "!")
	if strings.HasPrefix(inner, "[[") && strings.HasSuffix(inner, "]]") {
		v = inner[2 : len(inner)-2]
		if i := strings.Index(v, "|"); i >= 0 {
			v = v[:i]
		}
	}
	return strings.TrimSpace(v)
}

func notFound(path, sourceFile string) string {
	return fmt.Sprintf("image not found: %s (decoded: %s) in %s", path, Decode(path), sourceFile)
}
