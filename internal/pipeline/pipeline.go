// Package pipeline drives exposed vault documents through transformation,
// image copying and metadata enhancement into the output directory.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/starford/vaultpress/internal/apperr"
	"github.com/starford/vaultpress/internal/checksum"
	"github.com/starford/vaultpress/internal/discovery"
	"github.com/starford/vaultpress/internal/enhance"
	"github.com/starford/vaultpress/internal/frontmatter"
	"github.com/starford/vaultpress/internal/images"
	"github.com/starford/vaultpress/internal/ledger"
	"github.com/starford/vaultpress/internal/models"
	"github.com/starford/vaultpress/internal/slug"
	"github.com/starford/vaultpress/internal/storage"
	"github.com/starford/vaultpress/internal/transform"
)

// Config holds the collaborators of a Pipeline.
type Config struct {
	// VaultPath is the vault scanned by Discover and the fallback vault root
	// for image resolution.
	VaultPath string
	// Marker names the folder that identifies a vault root. Defaults to
	// images.DefaultMarker.
	Marker string

	Content  storage.Provider
	Copier   *images.Copier
	Enhancer *enhance.Enhancer
	Recorder ledger.Recorder
	Logger   *slog.Logger
}

// Pipeline processes documents one at a time. The image registry and the
// statistics are shared between files, so a Pipeline must not be used
// concurrently.
type Pipeline struct {
	vaultPath string
	marker    string
	content   storage.Provider
	copier    *images.Copier
	enhancer  *enhance.Enhancer
	recorder  ledger.Recorder
	logger    *slog.Logger
}

// New creates a Pipeline. Content and Copier are required.
func New(cfg Config) *Pipeline {
	p := &Pipeline{
		vaultPath: cfg.VaultPath,
		marker:    cfg.Marker,
		content:   cfg.Content,
		copier:    cfg.Copier,
		enhancer:  cfg.Enhancer,
		recorder:  cfg.Recorder,
		logger:    cfg.Logger,
	}
	if p.marker == "" {
		p.marker = images.DefaultMarker
	}
	if p.enhancer == nil {
		p.enhancer = enhance.New("")
	}
	if p.recorder == nil {
		p.recorder = ledger.Nop{}
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// WithRecorder returns a copy of p that records published documents to rec.
func (p *Pipeline) WithRecorder(rec ledger.Recorder) *Pipeline {
	cp := *p
	cp.recorder = rec
	return &cp
}

// Discover scans the vault for exposed documents.
func (p *Pipeline) Discover() (*models.DiscoveryResult, error) {
	return discovery.Discover(p.vaultPath, p.logger)
}

// Process publishes every path in order. The first failing file aborts the
// run; the returned stats then cover the files handled so far and the error
// wraps apperr.ErrProcess.
func (p *Pipeline) Process(paths []string) (*models.ProcessingStats, error) {
	start := time.Now()
	stats := &models.ProcessingStats{Warnings: []string{}}
	written := make(map[string]string, len(paths))

	for _, path := range paths {
		if err := p.processFile(path, stats, written); err != nil {
			stats.Elapsed = time.Since(start)
			return stats, fmt.Errorf("pipeline: %s: %w: %w", path, apperr.ErrProcess, err)
		}
	}
	stats.Elapsed = time.Since(start)
	return stats, nil
}

func (p *Pipeline) processFile(path string, stats *models.ProcessingStats, written map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := frontmatter.Parse(data)
	if err != nil {
		return err
	}
	vaultRoot := p.vaultRoot(path)

	tr := transform.Content(doc.Body)

	hero, err := p.copier.ProcessHero(doc.Meta.HeroImage, path, vaultRoot)
	if err != nil {
		return err
	}
	img, err := p.copier.ProcessImages(tr.Content, path, vaultRoot)
	if err != nil {
		return err
	}

	// Title detection looks at the body as written.
	meta, err := p.enhancer.Enhance(doc.Meta, doc.Body, path, tr.Tags)
	if err != nil {
		return err
	}
	meta.HeroImage = hero.Path

	out, err := frontmatter.Render(meta, img.Content)
	if err != nil {
		return err
	}

	name := p.outputName(path, data)
	if prev, ok := written[name]; ok {
		stats.AddWarning(fmt.Sprintf("%s overwrites %s (both publish as %s)", path, prev, name))
	}
	if err := p.content.Write(name, out); err != nil {
		return err
	}
	written[name] = path

	stats.FilesProcessed++
	stats.LinksConverted += tr.LinksConverted
	stats.TagsExtracted += len(tr.Tags)
	stats.ImagesCopied += img.Copied
	stats.ImagesDeduplicated += img.Deduplicated
	if hero.Copied {
		stats.ImagesCopied++
	}
	if hero.Deduplicated {
		stats.ImagesDeduplicated++
	}
	for _, w := range append([]string{hero.Warning}, img.Warnings...) {
		if w != "" {
			p.logger.Warn("pipeline: image", slog.String("path", path), slog.String("warning", w))
		}
	}
	stats.AddWarning(hero.Warning)
	stats.AddWarning(img.Warnings...)

	if err := p.recorder.Record(ledger.DocumentRow{
		Slug:     slug.StripMarkdownExt(name),
		Source:   path,
		Title:    meta.Title,
		Checksum: checksum.Sum(out),
		Tags:     meta.Tags,
	}); err != nil {
		p.logger.Warn("pipeline: ledger record failed", slog.String("path", path), slog.String("error", err.Error()))
	}

	p.logger.Debug("pipeline: published", slog.String("path", path), slog.String("output", name))
	return nil
}

// vaultRoot returns the nearest ancestor of path holding the vault marker,
// or the configured vault path when there is none.
func (p *Pipeline) vaultRoot(path string) string {
	if root, ok := images.FindVaultRoot(filepath.Dir(path), p.marker); ok {
		return root
	}
	return p.vaultPath
}

// outputName is "<slug>.md", or "note-<digest>.md" when the file name has no
// slug characters.
func (p *Pipeline) outputName(path string, data []byte) string {
	s := slug.FromFilename(path)
	if s == "" {
		s = "note-" + checksum.Short(data)
	}
	return s + ".md"
}
