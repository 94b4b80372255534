package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvFiles_EarlierFileWins(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")
	if err := os.WriteFile(local, []byte("VP_TEST_VAULT=/from/local\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(shared, []byte("VP_TEST_VAULT=/from/shared\nVP_TEST_IMAGES=img\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VP_TEST_VAULT", "")
	os.Unsetenv("VP_TEST_VAULT")
	t.Setenv("VP_TEST_IMAGES", "")
	os.Unsetenv("VP_TEST_IMAGES")

	if err := loadEnvFiles(local, shared, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("loadEnvFiles: %v", err)
	}
	if got := os.Getenv("VP_TEST_VAULT"); got != "/from/local" {
		t.Errorf("VP_TEST_VAULT = %q, want %q", got, "/from/local")
	}
	if got := os.Getenv("VP_TEST_IMAGES"); got != "img" {
		t.Errorf("VP_TEST_IMAGES = %q, want %q", got, "img")
	}
}

func TestLoadEnvFiles_ProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, ".env")
	if err := os.WriteFile(f, []byte("VP_TEST_PROJECT=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VP_TEST_PROJECT", "from-process")

	if err := loadEnvFiles(f); err != nil {
		t.Fatalf("loadEnvFiles: %v", err)
	}
	if got := os.Getenv("VP_TEST_PROJECT"); got != "from-process" {
		t.Errorf("VP_TEST_PROJECT = %q, want %q", got, "from-process")
	}
}
