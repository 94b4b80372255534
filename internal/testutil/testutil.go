// Package testutil provides shared test helpers for setting up vaults, output
// directories and ledgers.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/vaultpress/internal/ledger"
	"github.com/starford/vaultpress/internal/storage"
)

// TestLedger creates a temporary ledger database that is automatically cleaned up.
func TestLedger(t *testing.T) *ledger.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "vaultpress-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := ledger.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temporary vault directory containing an .obsidian marker.
func TestVault(t *testing.T) string {
	t.Helper()
	vaultDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(vaultDir, ".obsidian"), 0o755); err != nil {
		t.Fatal(err)
	}
	return vaultDir
}

// TestStore creates a temporary output directory with a storage.FS rooted at it.
func TestStore(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteFile writes content to root/rel, creating parent directories, and
// returns the absolute path.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// Touch sets the modification time of path.
func Touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}
