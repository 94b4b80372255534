package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/vaultpress/internal/apperr"
	"github.com/starford/vaultpress/internal/images"
)

// Environment variables read by NewDefaultConfig.
const (
	EnvVaultPath   = "OBSIDIAN_PATH"
	EnvContentPath = "PROJECT_PATH"
	EnvImagePath   = "IMAGE_PATH"
)

// Default output locations relative to the project root.
const (
	DefaultContentPath = "src/content/blogPost"
	DefaultImagePath   = "src/Images"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Vault  VaultConfig       `yaml:"vault"`
	Output OutputConfig      `yaml:"output"`
	Ledger LedgerConfig      `yaml:"ledger"`
}

// Validate validates the configuration. Every failure wraps apperr.ErrConfig.
func (c *Config) Validate() error {
	for _, s := range []struct {
		name string
		v    validation.Validatable
	}{
		{"app", &c.App},
		{"vault", &c.Vault},
		{"output", &c.Output},
		{"ledger", &c.Ledger},
	} {
		if err := s.v.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", apperr.ErrConfig, s.name, err)
		}
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	// ProjectRoot bounds every purge: only strict descendants may be emptied.
	ProjectRoot string `yaml:"project_root"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ProjectRoot, validation.Required, validation.By(existingDir)),
	)
}

// VaultConfig holds the location of the notes vault.
type VaultConfig struct {
	Path string `yaml:"path"`
	// Marker is the folder that identifies a vault root when resolving images.
	Marker string `yaml:"marker"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required, validation.By(existingDir)),
		validation.Field(&c.Marker, validation.Required),
	)
}

// OutputConfig holds the publish targets.
type OutputConfig struct {
	ContentPath      string `yaml:"content_path"`
	ImagePath        string `yaml:"image_path"`
	ImageLinkPrefix  string `yaml:"image_link_prefix"`
	DefaultHeroImage string `yaml:"default_hero_image"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ContentPath, validation.Required, validation.By(existingDir)),
		validation.Field(&c.ImagePath, validation.Required, validation.By(existingDir)),
		validation.Field(&c.ImageLinkPrefix, validation.Required),
		validation.Field(&c.DefaultHeroImage, validation.Required),
	)
}

// LedgerConfig holds the run ledger database location. An empty Path
// disables the ledger.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the ledger configuration.
func (c *LedgerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.By(notDir)),
	)
}

// Enabled reports whether runs are recorded.
func (c *LedgerConfig) Enabled() bool {
	return c.Path != ""
}

// NewDefaultConfig returns a new Config with defaults taken from the
// environment.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:    slog.LevelInfo,
			ProjectRoot: ".",
		},
		Vault: VaultConfig{
			Path:   os.Getenv(EnvVaultPath),
			Marker: images.DefaultMarker,
		},
		Output: OutputConfig{
			ContentPath:      envOr(EnvContentPath, DefaultContentPath),
			ImagePath:        envOr(EnvImagePath, DefaultImagePath),
			ImageLinkPrefix:  images.DefaultLinkPrefix,
			DefaultHeroImage: images.DefaultHeroFallback,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func existingDir(value any) error {
	p, _ := value.(string)
	if p == "" {
		return nil
	}
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("directory not found: %s", p)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", p)
	}
	return nil
}

func notDir(value any) error {
	p, _ := value.(string)
	if p == "" {
		return nil
	}
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return errors.New("must be a file path, not a directory")
	}
	return nil
}
