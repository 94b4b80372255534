package ledger

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/starford/vaultpress/internal/models"
)

// DocumentRow is one document written by a run.
type DocumentRow struct {
	Slug     string
	Source   string
	Title    string
	Checksum string
	Tags     []string
}

// RunRow is a recorded sync run.
type RunRow struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt *time.Time
	Status     string
	Error      string
	Stats      models.ProcessingStats
}

// BeginRun inserts a run in the running state and returns its id.
func (db *DB) BeginRun(startedAt time.Time) (int64, error) {
	res, err := db.conn.Exec(`INSERT INTO runs (started_at, status) VALUES (?, ?)`, startedAt.UTC(), StatusRunning)
	if err != nil {
		return 0, fmt.Errorf("ledger: begin run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ledger: begin run: %w", err)
	}
	return id, nil
}

// RecordDocument stores d for the run, replacing an earlier entry with the
// same slug.
func (db *DB) RecordDocument(runID int64, d DocumentRow) error {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("ledger: encode tags: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO documents (run_id, slug, source, title, checksum, tags)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, slug) DO UPDATE SET
			source   = excluded.source,
			title    = excluded.title,
			checksum = excluded.checksum,
			tags     = excluded.tags
	`, runID, d.Slug, d.Source, d.Title, d.Checksum, string(tagsJSON))
	if err != nil {
		return fmt.Errorf("ledger: record document: %w", err)
	}
	return nil
}

// FinishRun stores the final statistics. A non-nil runErr marks the run failed.
func (db *DB) FinishRun(runID int64, finishedAt time.Time, stats models.ProcessingStats, runErr error) error {
	status, msg := StatusSucceeded, ""
	if runErr != nil {
		status, msg = StatusFailed, runErr.Error()
	}
	warnings := stats.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("ledger: encode warnings: %w", err)
	}

	_, err = db.conn.Exec(`
		UPDATE runs SET
			finished_at         = ?,
			status              = ?,
			error               = ?,
			files_processed     = ?,
			images_copied       = ?,
			images_deduplicated = ?,
			tags_extracted      = ?,
			links_converted     = ?,
			warnings            = ?
		WHERE id = ?
	`, finishedAt.UTC(), status, msg, stats.FilesProcessed, stats.ImagesCopied, stats.ImagesDeduplicated,
		stats.TagsExtracted, stats.LinksConverted, string(warningsJSON), runID)
	if err != nil {
		return fmt.Errorf("ledger: finish run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (db *DB) RecentRuns(limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.conn.Query(`
		SELECT id, started_at, finished_at, status, error, files_processed, images_copied,
		       images_deduplicated, tags_extracted, links_converted, warnings
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: recent runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var (
			r        RunRow
			finished sql.NullTime
			warnings string
		)
		if err := rows.Scan(&r.ID, &r.StartedAt, &finished, &r.Status, &r.Error,
			&r.Stats.FilesProcessed, &r.Stats.ImagesCopied, &r.Stats.ImagesDeduplicated,
			&r.Stats.TagsExtracted, &r.Stats.LinksConverted, &warnings); err != nil {
			return nil, fmt.Errorf("ledger: scan run: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
			r.Stats.Elapsed = t.Sub(r.StartedAt)
		}
		if err := json.Unmarshal([]byte(warnings), &r.Stats.Warnings); err != nil {
			return nil, fmt.Errorf("ledger: decode warnings of run %d: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Documents returns the documents recorded for a run ordered by slug.
func (db *DB) Documents(runID int64) ([]DocumentRow, error) {
	rows, err := db.conn.Query(`
		SELECT slug, source, title, checksum, tags
		FROM documents
		WHERE run_id = ?
		ORDER BY slug
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("ledger: documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		var (
			d    DocumentRow
			tags string
		)
		if err := rows.Scan(&d.Slug, &d.Source, &d.Title, &d.Checksum, &tags); err != nil {
			return nil, fmt.Errorf("ledger: scan document: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &d.Tags); err != nil {
			return nil, fmt.Errorf("ledger: decode tags of %s: %w", d.Slug, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
