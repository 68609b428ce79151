package contract

import "github.com/huangsam/buildpulse/schema"

// HistoryStore persists summaries of past analyzer runs. Records are
// keyed by started_at, so re-analyzing the same report overwrites the
// existing row rather than duplicating it.
type HistoryStore interface {
	// RecordRun upserts one run record.
	RecordRun(rec schema.RunRecord) error
	// ListRuns returns all recorded runs ordered by started_at.
	ListRuns() ([]schema.RunRecord, error)
	// GetStatus returns connection and size information.
	GetStatus() (schema.HistoryStatus, error)
	// Clear removes all recorded runs.
	Clear() error
	// Close closes the underlying connection.
	Close() error
}
