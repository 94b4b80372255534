package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/vaultpress/internal/apperr"
	"github.com/starford/vaultpress/internal/images"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	root := t.TempDir()
	for _, d := range []string{"vault", "content", "images"} {
		if err := os.Mkdir(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	cfg := NewDefaultConfig()
	cfg.App.ProjectRoot = root
	cfg.Vault.Path = filepath.Join(root, "vault")
	cfg.Output.ContentPath = filepath.Join(root, "content")
	cfg.Output.ImagePath = filepath.Join(root, "images")
	return cfg
}

func TestNewDefaultConfig_FromEnv(t *testing.T) {
	t.Setenv(EnvVaultPath, "/notes")
	t.Setenv(EnvContentPath, "")
	t.Setenv(EnvImagePath, "public/img")

	cfg := NewDefaultConfig()
	if cfg.Vault.Path != "/notes" {
		t.Errorf("vault path = %q, want %q", cfg.Vault.Path, "/notes")
	}
	if cfg.Output.ContentPath != DefaultContentPath {
		t.Errorf("content path = %q, want %q", cfg.Output.ContentPath, DefaultContentPath)
	}
	if cfg.Output.ImagePath != "public/img" {
		t.Errorf("image path = %q, want %q", cfg.Output.ImagePath, "public/img")
	}
	if cfg.Vault.Marker != images.DefaultMarker || cfg.Output.ImageLinkPrefix != images.DefaultLinkPrefix {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Ledger.Enabled() {
		t.Error("ledger should be disabled by default")
	}
}

func TestConfig_Valid(t *testing.T) {
	if err := validConfig(t).Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestConfig_MissingVaultPath(t *testing.T) {
	cfg := validConfig(t)
	cfg.Vault.Path = ""
	err := cfg.Validate()
	if !errors.Is(err, apperr.ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
	if !strings.Contains(err.Error(), "vault") {
		t.Errorf("error %q does not name the vault section", err)
	}
}

func TestConfig_ImageDirMustExist(t *testing.T) {
	cfg := validConfig(t)
	cfg.Output.ImagePath = filepath.Join(cfg.App.ProjectRoot, "nope")
	err := cfg.Validate()
	if !errors.Is(err, apperr.ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfig_ContentPathIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(cfg.App.ProjectRoot, "file.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Output.ContentPath = file
	if err := cfg.Validate(); !errors.Is(err, apperr.ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
}

func TestLedgerConfig_DirectoryRejected(t *testing.T) {
	cfg := validConfig(t)
	cfg.Ledger.Path = cfg.App.ProjectRoot
	if err := cfg.Validate(); err == nil {
		t.Fatal("ledger path pointing at a directory should fail")
	}
	cfg.Ledger.Path = filepath.Join(cfg.App.ProjectRoot, "runs.db")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("ledger file path rejected: %v", err)
	}
	if !cfg.Ledger.Enabled() {
		t.Error("ledger should be enabled")
	}
}
