// Package ledger records sync runs and the documents they published in a
// SQLite database.
package ledger

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at          DATETIME NOT NULL,
	finished_at         DATETIME,
	status              TEXT NOT NULL DEFAULT 'running',
	error               TEXT NOT NULL DEFAULT '',
	files_processed     INTEGER NOT NULL DEFAULT 0,
	images_copied       INTEGER NOT NULL DEFAULT 0,
	images_deduplicated INTEGER NOT NULL DEFAULT 0,
	tags_extracted      INTEGER NOT NULL DEFAULT 0,
	links_converted     INTEGER NOT NULL DEFAULT 0,
	warnings            TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS documents (
	run_id   INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	slug     TEXT NOT NULL,
	source   TEXT NOT NULL,
	title    TEXT NOT NULL DEFAULT '',
	checksum TEXT NOT NULL DEFAULT '',
	tags     TEXT NOT NULL DEFAULT '[]',
	UNIQUE(run_id, slug)
);

CREATE INDEX IF NOT EXISTS idx_documents_run ON documents(run_id);
`

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// DB wraps a sql.DB with ledger operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("ledger: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ledger: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ledger: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
