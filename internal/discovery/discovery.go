// Package discovery scans a vault for documents flagged for publication.
package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/starford/vaultpress/internal/frontmatter"
	"github.com/starford/vaultpress/internal/models"
)

// ignoredDirs are never descended into.
var ignoredDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	".obsidian":    {},
	".trash":       {},
}

// Discover walks vaultPath and partitions its Markdown files into exposed and
// skipped. A file is exposed only when its header sets isExposed to the
// boolean true. Files that cannot be read or parsed are logged and counted as
// skipped; only a failure to walk the vault root itself is returned.
func Discover(vaultPath string, logger *slog.Logger) (*models.DiscoveryResult, error) {
	files, err := markdownFiles(vaultPath, logger)
	if err != nil {
		return nil, err
	}

	res := &models.DiscoveryResult{
		TotalFiles:   len(files),
		ExposedPaths: []string{},
	}
	for _, path := range files {
		doc, err := frontmatter.ParseFile(path)
		if err != nil {
			logger.Warn("discovery: could not parse", slog.String("path", path), slog.String("error", err.Error()))
			res.SkippedCount++
			continue
		}
		if !doc.Meta.IsExposed {
			res.SkippedCount++
			continue
		}
		logger.Debug("discovery: exposed", slog.String("path", path))
		res.ExposedPaths = append(res.ExposedPaths, path)
	}
	return res, nil
}

// markdownFiles lists *.md files below root in lexical order.
func markdownFiles(root string, logger *slog.Logger) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("discovery: resolve vault: %w", err)
	}

	var out []string
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == abs {
				return walkErr
			}
			logger.Warn("discovery: unreadable entry", slog.String("path", p), slog.String("error", walkErr.Error()))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if _, skip := ignoredDirs[d.Name()]; skip && p != abs {
				return fs.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: walk %s: %w", root, err)
	}
	return out, nil
}
