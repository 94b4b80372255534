// Package images finds the files behind image references in vault documents
// and copies them into the output asset directory under collision-free names.
package images

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind is the syntax an image reference was written in.
type Kind int

const (
	// KindEmbed is the vault embed form ![[file.png]].
	KindEmbed Kind = iota
	// KindMarkdown is standard ![alt](path).
	KindMarkdown
)

func (k Kind) String() string {
	if k == KindEmbed {
		return "embed"
	}
	return "markdown"
}

// DefaultMarker is the directory that identifies a vault root.
const DefaultMarker = ".obsidian"

// attachmentFolders are searched, in order, when a reference does not resolve
// directly.
var attachmentFolders = []string{
	"attachments",
	"Attachments",
	"images",
	"Images",
	"assets",
	"Assets",
}

var (
	embedRe       = regexp.MustCompile(`!\[\[([^\]]+)\]\]`)
	markdownRe    = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	numberedDirRe = regexp.MustCompile(`^\d+\s+(.+)$`)
	remoteRe      = regexp.MustCompile(`(?i)^(?:[a-z][a-z0-9+.-]*://|data:)`)
)

// Reference is one image occurrence in a document body.
type Reference struct {
	// Match is the exact source text that produced the reference.
	Match        string
	OriginalPath string
	// ResolvedPath is the absolute file path, or empty when unresolved.
	ResolvedPath string
	AltText      string
	Kind         Kind
}

// Resolved reports whether the reference points at an existing file.
func (r Reference) Resolved() bool { return r.ResolvedPath != "" }

// ExtractReferences scans content for embeds and Markdown images and resolves
// each against the filesystem. Embeds are listed before Markdown images.
// Remote URLs are not local assets and are skipped.
func ExtractReferences(content, sourceFile, vaultRoot string) []Reference {
	sourceDir := filepath.Dir(sourceFile)
	var refs []Reference

	for _, m := range embedRe.FindAllStringSubmatch(content, -1) {
		target := strings.TrimSpace(m[1])
		// ![[file.png|300]] carries a size or alias after the pipe.
		if i := strings.Index(target, "|"); i >= 0 {
			target = strings.TrimSpace(target[:i])
		}
		if target == "" || remoteRe.MatchString(target) {
			continue
		}
		refs = append(refs, Reference{
			Match:        m[0],
			OriginalPath: target,
			ResolvedPath: ResolvePath(target, sourceDir, vaultRoot),
			AltText:      stem(target),
			Kind:         KindEmbed,
		})
	}

	for _, m := range markdownRe.FindAllStringSubmatch(content, -1) {
		target := strings.TrimSpace(m[2])
		if target == "" || remoteRe.MatchString(target) {
			continue
		}
		refs = append(refs, Reference{
			Match:        m[0],
			OriginalPath: target,
			ResolvedPath: ResolvePath(target, sourceDir, vaultRoot),
			AltText:      m[1],
			Kind:         KindMarkdown,
		})
	}
	return refs
}

// ResolvePath locates imagePath on disk, trying in order:
//  1. the percent-decoded path as given (absolute or relative to the cwd)
//  2. relative to sourceDir
//  3. with a leading "<digits> " folder prefix removed, relative to vaultRoot
//     and then sourceDir
//  4. relative to vaultRoot
//  5. the file name inside each attachment folder under sourceDir, its parent
//     and vaultRoot
//
// It returns the absolute path of the first regular file found, or "".
// vaultRoot may be empty.
func ResolvePath(imagePath, sourceDir, vaultRoot string) string {
	decoded := Decode(imagePath)

	var candidates []string
	candidates = append(candidates, decoded, filepath.Join(sourceDir, decoded))
	if m := numberedDirRe.FindStringSubmatch(decoded); m != nil {
		if vaultRoot != "" {
			candidates = append(candidates, filepath.Join(vaultRoot, m[1]))
		}
		candidates = append(candidates, filepath.Join(sourceDir, m[1]))
	}
	if vaultRoot != "" {
		candidates = append(candidates, filepath.Join(vaultRoot, decoded))
	}

	name := filepath.Base(filepath.FromSlash(decoded))
	bases := []string{sourceDir, filepath.Dir(sourceDir)}
	if vaultRoot != "" {
		bases = append(bases, vaultRoot)
	}
	for _, folder := range attachmentFolders {
		for _, base := range bases {
			candidates = append(candidates, filepath.Join(base, folder, name))
		}
	}

	for _, c := range candidates {
		if isFile(c) {
			if abs, err := filepath.Abs(c); err == nil {
				return abs
			}
			return c
		}
	}
	return ""
}

// Decode percent-decodes p, returning it unchanged when it is not valid
// percent-encoding.
func Decode(p string) string {
	if decoded, err := url.PathUnescape(p); err == nil {
		return decoded
	}
	return p
}

// FindVaultRoot walks up from startDir to the first directory containing the
// marker folder. It returns false when the filesystem root is reached first.
func FindVaultRoot(startDir, marker string) (string, bool) {
	if marker == "" {
		marker = DefaultMarker
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func stem(p string) string {
	base := filepath.Base(filepath.FromSlash(p))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
