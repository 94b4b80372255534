package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

var errInvalid = errors.New("invalid")

func (s *sample) Validate() error {
	if s.Name == "" {
		return errInvalid
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_ExpandsEnvAndKeepsDefaults(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "vault")
	p := writeConfig(t, "name: ${SAMPLE_NAME}\n")

	s := sample{Level: 3}
	if err := Load(p, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "vault" || s.Level != 3 {
		t.Errorf("got %+v", s)
	}
}

func TestLoad_Validates(t *testing.T) {
	p := writeConfig(t, "level: 1\n")
	var s sample
	if err := Load(p, &s); !errors.Is(err, errInvalid) {
		t.Errorf("error = %v, want errInvalid", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	p := writeConfig(t, "name: [unclosed\n")
	var s sample
	err := Load(p, &s)
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("error = %v", err)
	}
}

func TestLoadOptional_MissingFileUsesDefaults(t *testing.T) {
	s := sample{Name: "default"}
	if err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &s); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if s.Name != "default" {
		t.Errorf("name = %q, want %q", s.Name, "default")
	}

	var empty sample
	if err := LoadOptional("", &empty); !errors.Is(err, errInvalid) {
		t.Errorf("defaults were not validated: %v", err)
	}
}

func TestLoadOptional_ExistingFile(t *testing.T) {
	p := writeConfig(t, "name: from-file\n")
	s := sample{Name: "default"}
	if err := LoadOptional(p, &s); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if s.Name != "from-file" {
		t.Errorf("name = %q, want %q", s.Name, "from-file")
	}
}
