// Package internal wires configuration, logging, storage, the ledger and the
// publishing pipeline into the sync, clean and history entry points.
package internal

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/starford/vaultpress/internal/apperr"
	"github.com/starford/vaultpress/internal/enhance"
	"github.com/starford/vaultpress/internal/images"
	"github.com/starford/vaultpress/internal/ledger"
	"github.com/starford/vaultpress/internal/models"
	"github.com/starford/vaultpress/internal/pipeline"
	"github.com/starford/vaultpress/internal/storage"
)

// SyncReport is everything a sync produced, for the caller to present.
type SyncReport struct {
	Discovery *models.DiscoveryResult
	// Cancelled is set when the confirmation declined the run.
	Cancelled bool
	Purged    []*models.PurgeResult
	Stats     *models.ProcessingStats
	// RunID is the ledger entry of the run, or 0 when the ledger is disabled.
	RunID int64
}

func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("%w: config is required", apperr.ErrConfig)
	}
	if app.logger == nil {
		// Stdout belongs to the command's own output.
		app.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: app.config.App.LogLevel,
		}))
	}
	return app, nil
}

// Sync discovers exposed documents, asks for confirmation, empties the output
// directories and publishes every exposed document. A report is returned even
// when the run fails part way.
func Sync(opts ...Option) (*SyncReport, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	cfg, logger := app.config, app.logger

	logger.Info("Configuration loaded",
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("content_path", cfg.Output.ContentPath),
		slog.String("image_path", cfg.Output.ImagePath),
		slog.String("log_level", cfg.App.LogLevel.String()))

	content, err := storage.NewFS(cfg.Output.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrConfig, err)
	}
	assets, err := storage.NewFS(cfg.Output.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrConfig, err)
	}

	registry := images.NewRegistry()
	p := pipeline.New(pipeline.Config{
		VaultPath: cfg.Vault.Path,
		Marker:    cfg.Vault.Marker,
		Content:   content,
		Copier:    images.NewCopier(assets, registry, cfg.Output.ImageLinkPrefix, cfg.Output.DefaultHeroImage),
		Enhancer:  enhance.New(cfg.Output.DefaultHeroImage),
		Logger:    logger,
	})

	found, err := p.Discover()
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	report := &SyncReport{Discovery: found}
	logger.Info("Discovery complete",
		slog.Int("total", found.TotalFiles),
		slog.Int("exposed", len(found.ExposedPaths)),
		slog.Int("skipped", found.SkippedCount))
	if len(found.ExposedPaths) == 0 {
		return report, nil
	}

	if app.confirm != nil {
		ok, err := app.confirm(found)
		if err != nil {
			return report, err
		}
		if !ok {
			report.Cancelled = true
			return report, nil
		}
	}

	// A ledger failure must not touch the output, so it is opened before the purge.
	var run *ledger.Run
	if cfg.Ledger.Enabled() {
		db, err := ledger.Open(cfg.Ledger.Path)
		if err != nil {
			return report, fmt.Errorf("%w: %w", apperr.ErrConfig, err)
		}
		defer db.Close()
		if run, err = db.Start(time.Now()); err != nil {
			return report, fmt.Errorf("%w: %w", apperr.ErrConfig, err)
		}
		report.RunID = run.ID()
		p = p.WithRecorder(run)
	}
	finish := func(stats models.ProcessingStats, runErr error) {
		if run == nil {
			return
		}
		if err := run.Finish(stats, runErr); err != nil {
			logger.Warn("ledger: finish run failed", slog.Int64("run_id", run.ID()), slog.String("error", err.Error()))
		}
	}

	if !app.noPurge {
		report.Purged, err = purgeOutputs(cfg, logger)
		if err != nil {
			finish(models.ProcessingStats{}, err)
			return report, err
		}
	}

	existing, err := assets.Names()
	if err != nil {
		err = fmt.Errorf("list assets: %w", err)
		finish(models.ProcessingStats{}, err)
		return report, err
	}
	for _, name := range existing {
		registry.Add(name)
	}

	stats, runErr := p.Process(found.ExposedPaths)
	report.Stats = stats
	finish(*stats, runErr)

	if runErr != nil {
		return report, runErr
	}

	logger.Info("Sync complete",
		slog.Int("files", stats.FilesProcessed),
		slog.Int("images", stats.ImagesCopied),
		slog.Int("warnings", len(stats.Warnings)),
		slog.Duration("elapsed", stats.Elapsed))
	return report, nil
}

// Clean empties the content and image directories.
func Clean(opts ...Option) ([]*models.PurgeResult, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	return purgeOutputs(app.config, app.logger)
}

// History returns up to limit recorded runs, newest first.
func History(limit int, opts ...Option) ([]ledger.RunRow, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	if !app.config.Ledger.Enabled() {
		return nil, fmt.Errorf("%w: ledger.path is not set", apperr.ErrConfig)
	}
	db, err := ledger.Open(app.config.Ledger.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.RecentRuns(limit)
}

// purgeOutputs checks both targets before deleting anything in either.
func purgeOutputs(cfg *Config, logger *slog.Logger) ([]*models.PurgeResult, error) {
	targets := []string{cfg.Output.ContentPath, cfg.Output.ImagePath}
	for _, dir := range targets {
		if err := storage.CheckPurge(cfg.App.ProjectRoot, dir); err != nil {
			return nil, err
		}
	}

	var results []*models.PurgeResult
	for _, dir := range targets {
		res, err := storage.Purge(cfg.App.ProjectRoot, dir)
		if err != nil {
			return results, err
		}
		logger.Info("Purged directory", slog.String("path", dir), slog.Int("files_deleted", res.FilesDeleted))
		results = append(results, res)
	}
	return results, nil
}
