package discovery

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/starford/vaultpress/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestDiscover_PartitionsExposed(t *testing.T) {
	vault := t.TempDir()
	testutil.WriteFile(t, vault, "a.md", "---\nisExposed: true\n---\nA")
	testutil.WriteFile(t, vault, "sub/b.md", "---\nisExposed: true\ntitle: B\n---\nB")
	testutil.WriteFile(t, vault, "sub/deeper/c.md", "---\nisExposed: True\n---\nC")
	testutil.WriteFile(t, vault, "hidden.md", "---\nisExposed: false\n---\nH")
	testutil.WriteFile(t, vault, "quoted.md", "---\nisExposed: \"true\"\n---\nQ")
	testutil.WriteFile(t, vault, "plain.md", "no header at all")
	testutil.WriteFile(t, vault, "broken.md", "---\n: invalid: yaml: {{{\n---\nX")
	testutil.WriteFile(t, vault, "unclosed.md", "---\nisExposed: true\n")
	testutil.WriteFile(t, vault, "notes.txt", "---\nisExposed: true\n---\n")

	res, err := Discover(vault, quietLogger())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if res.TotalFiles != 8 {
		t.Errorf("TotalFiles = %d, want 8", res.TotalFiles)
	}
	if len(res.ExposedPaths) != 3 {
		t.Fatalf("exposed = %v, want 3 files", res.ExposedPaths)
	}
	if res.SkippedCount != res.TotalFiles-3 {
		t.Errorf("SkippedCount = %d, want %d", res.SkippedCount, res.TotalFiles-3)
	}
	if filepath.Base(res.ExposedPaths[0]) != "a.md" {
		t.Errorf("expected lexical order, got %v", res.ExposedPaths)
	}
}

func TestDiscover_SkipsIgnoredDirectories(t *testing.T) {
	vault := t.TempDir()
	exposed := "---\nisExposed: true\n---\n"
	testutil.WriteFile(t, vault, "keep.md", exposed)
	testutil.WriteFile(t, vault, ".git/x.md", exposed)
	testutil.WriteFile(t, vault, ".obsidian/templates/t.md", exposed)
	testutil.WriteFile(t, vault, "node_modules/pkg/readme.md", exposed)
	testutil.WriteFile(t, vault, ".trash/old.md", exposed)

	res, err := Discover(vault, quietLogger())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if res.TotalFiles != 1 || len(res.ExposedPaths) != 1 {
		t.Errorf("result = %+v, want only keep.md", res)
	}
}

func TestDiscover_EmptyVault(t *testing.T) {
	res, err := Discover(t.TempDir(), quietLogger())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if res.TotalFiles != 0 || res.SkippedCount != 0 || res.ExposedPaths == nil {
		t.Errorf("result = %+v", res)
	}
}

func TestDiscover_MissingVault(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), quietLogger()); err == nil {
		t.Error("expected error for missing vault")
	}
}
