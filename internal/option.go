package internal

import (
	"log/slog"

	"github.com/starford/vaultpress/internal/models"
)

// ConfirmFunc decides, after discovery, whether a sync goes ahead.
type ConfirmFunc func(*models.DiscoveryResult) (bool, error)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	logger  *slog.Logger
	confirm ConfirmFunc
	noPurge bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogger replaces the JSON logger built from the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithConfirm asks fn before anything is purged or written. Without it a sync
// proceeds unconditionally.
func WithConfirm(fn ConfirmFunc) Option {
	return func(a *application) {
		a.confirm = fn
	}
}

// WithoutPurge keeps the existing output directories instead of emptying them
// before a sync. Existing asset names are still never overwritten.
func WithoutPurge() Option {
	return func(a *application) {
		a.noPurge = true
	}
}
