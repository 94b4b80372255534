package ledger

import (
	"time"

	"github.com/starford/vaultpress/internal/models"
)

// Recorder receives every document a run writes. The pipeline depends on this
// interface so the ledger stays optional.
type Recorder interface {
	Record(d DocumentRow) error
}

// Nop is a Recorder that discards everything.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(DocumentRow) error { return nil }

// Run is an open ledger entry for one sync.
type Run struct {
	db *DB
	id int64
}

// Verify *Run satisfies Recorder at compile time.
var _ Recorder = (*Run)(nil)

// Start begins a run.
func (db *DB) Start(startedAt time.Time) (*Run, error) {
	id, err := db.BeginRun(startedAt)
	if err != nil {
		return nil, err
	}
	return &Run{db: db, id: id}, nil
}

// ID returns the run id.
func (r *Run) ID() int64 { return r.id }

// Record implements Recorder.
func (r *Run) Record(d DocumentRow) error {
	return r.db.RecordDocument(r.id, d)
}

// Finish closes the run with its final statistics and outcome.
func (r *Run) Finish(stats models.ProcessingStats, runErr error) error {
	return r.db.FinishRun(r.id, time.Now(), stats, runErr)
}
