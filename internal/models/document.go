// Package models defines the domain types shared across the sync pipeline.
package models

import "time"

// DiscoveryResult summarises one scan of the vault.
type DiscoveryResult struct {
	TotalFiles   int      `json:"total_files"`
	ExposedPaths []string `json:"exposed_paths"`
	SkippedCount int      `json:"skipped_count"`
}

// ProcessingStats accumulates counters for a single sync run. Counts only
// ever increase while the run is in progress.
type ProcessingStats struct {
	FilesProcessed     int           `json:"files_processed"`
	ImagesCopied       int           `json:"images_copied"`
	ImagesDeduplicated int           `json:"images_deduplicated"`
	TagsExtracted      int           `json:"tags_extracted"`
	LinksConverted     int           `json:"links_converted"`
	Warnings           []string      `json:"warnings"`
	Elapsed            time.Duration `json:"elapsed"`
}

// AddWarning appends non-empty warnings in order.
func (s *ProcessingStats) AddWarning(warnings ...string) {
	for _, w := range warnings {
		if w != "" {
			s.Warnings = append(s.Warnings, w)
		}
	}
}

// PurgeResult reports what a purge removed.
type PurgeResult struct {
	FilesDeleted         int      `json:"files_deleted"`
	DirectoriesProcessed []string `json:"directories_processed"`
}
