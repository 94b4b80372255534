package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/starford/vaultpress/internal"
	"github.com/starford/vaultpress/internal/ledger"
	"github.com/starford/vaultpress/internal/models"
)

func printBanner(w io.Writer, title string) {
	line := strings.Repeat("=", 48)
	fmt.Fprintf(w, "\n%s\n  %s\n%s\n\n", line, title, line)
}

func printDiscovery(w io.Writer, d *models.DiscoveryResult) {
	fmt.Fprintln(w, "Discovery complete")
	fmt.Fprintf(w, "  -> Found %d markdown files\n", d.TotalFiles)
	fmt.Fprintf(w, "  -> %d files marked with isExposed: true\n", len(d.ExposedPaths))
	fmt.Fprintf(w, "  -> %d files will be skipped\n\n", d.SkippedCount)
}

func printPurge(w io.Writer, results []*models.PurgeResult) {
	for _, r := range results {
		fmt.Fprintf(w, "Purged %d files in %d directories\n", r.FilesDeleted, len(r.DirectoriesProcessed))
	}
}

func printSyncReport(w io.Writer, r *internal.SyncReport) {
	switch {
	case r.Discovery != nil && len(r.Discovery.ExposedPaths) == 0:
		printDiscovery(w, r.Discovery)
		fmt.Fprintln(w, "No files found with isExposed: true")
		fmt.Fprintln(w, `  Add "isExposed: true" to the header of the notes to publish.`)
		return
	case r.Cancelled:
		fmt.Fprintln(w, "Sync cancelled.")
		return
	}
	printPurge(w, r.Purged)
	if r.Stats == nil {
		return
	}
	printStats(w, r.Stats)
	if r.RunID != 0 {
		fmt.Fprintf(w, "Recorded as run %d\n", r.RunID)
	}
}

func printStats(w io.Writer, s *models.ProcessingStats) {
	fmt.Fprintln(w, "\nSummary")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range []struct {
		label string
		value string
	}{
		{"Files processed:", fmt.Sprint(s.FilesProcessed)},
		{"Images copied:", fmt.Sprint(s.ImagesCopied)},
		{"Images deduplicated:", fmt.Sprint(s.ImagesDeduplicated)},
		{"Tags extracted:", fmt.Sprint(s.TagsExtracted)},
		{"Links converted:", fmt.Sprint(s.LinksConverted)},
		{"Execution time:", fmt.Sprintf("%.1fs", s.Elapsed.Seconds())},
	} {
		fmt.Fprintf(tw, "%s\t%s\t\n", row.label, row.value)
	}
	tw.Flush()

	if len(s.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings (%d):\n", len(s.Warnings))
		for _, warn := range s.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}
	fmt.Fprintln(w)
}

func printHistory(w io.Writer, runs []ledger.RunRow) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tSTATUS\tFILES\tIMAGES\tWARNINGS\tELAPSED")
	for _, r := range runs {
		elapsed := "-"
		if r.FinishedAt != nil {
			elapsed = r.Stats.Elapsed.Round(time.Millisecond).String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Status,
			r.Stats.FilesProcessed, r.Stats.ImagesCopied, len(r.Stats.Warnings), elapsed)
	}
	tw.Flush()
}
