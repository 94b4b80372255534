package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/starford/vaultpress/internal"
	"github.com/starford/vaultpress/internal/ledger"
	"github.com/starford/vaultpress/internal/models"
)

func TestPrintSyncReport_Stats(t *testing.T) {
	var buf bytes.Buffer
	printSyncReport(&buf, &internal.SyncReport{
		Discovery: &models.DiscoveryResult{TotalFiles: 2, ExposedPaths: []string{"a.md"}, SkippedCount: 1},
		Stats: &models.ProcessingStats{
			FilesProcessed: 1,
			ImagesCopied:   4,
			Warnings:       []string{"image not found: x.png"},
			Elapsed:        1500 * time.Millisecond,
		},
		RunID: 7,
	})
	out := buf.String()
	for _, want := range []string{"Files processed:", "Execution time:", "1.5s", "Warnings (1):", "  - image not found: x.png", "Recorded as run 7"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSyncReport_NothingExposed(t *testing.T) {
	var buf bytes.Buffer
	printSyncReport(&buf, &internal.SyncReport{
		Discovery: &models.DiscoveryResult{TotalFiles: 3, ExposedPaths: []string{}, SkippedCount: 3},
	})
	if !strings.Contains(buf.String(), "No files found with isExposed: true") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintSyncReport_Cancelled(t *testing.T) {
	var buf bytes.Buffer
	printSyncReport(&buf, &internal.SyncReport{
		Discovery: &models.DiscoveryResult{TotalFiles: 1, ExposedPaths: []string{"a.md"}},
		Cancelled: true,
	})
	if got := buf.String(); got != "Sync cancelled.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPrintHistory(t *testing.T) {
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	finished := started.Add(2 * time.Second)

	var buf bytes.Buffer
	printHistory(&buf, []ledger.RunRow{
		{ID: 2, StartedAt: started, Status: ledger.StatusRunning},
		{ID: 1, StartedAt: started, FinishedAt: &finished, Status: ledger.StatusSucceeded,
			Stats: models.ProcessingStats{FilesProcessed: 3, Elapsed: 2 * time.Second}},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[2], "succeeded") || !strings.Contains(lines[2], "2s") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}

func TestPrintHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, nil)
	if buf.String() != "No runs recorded.\n" {
		t.Errorf("output = %q", buf.String())
	}
}
