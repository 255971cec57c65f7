package domain

import "time"

// RunMode is the entry point that produced a run.
type RunMode string

// Run modes.
const (
	// RunModeBatch processes every row of a table.
	RunModeBatch RunMode = "batch"

	// RunModeLookup processes the rows matching one regulator key.
	RunModeLookup RunMode = "lookup"
)

// DocumentFailure records a document that could not be processed.
// The rest of the run is unaffected.
type DocumentFailure struct {
	RecordID string
	Error    string
}

// Run is one persisted execution of the pipeline.
type Run struct {
	// ID is a UUID.
	ID string

	// Mode is how the run was started.
	Mode RunMode

	// Regulator is the table the records came from.
	Regulator Regulator

	// Key is the lookup key for RunModeLookup runs.
	Key string

	// Criteria is the filter applied to every document.
	Criteria FilterCriteria

	StartedAt  time.Time
	FinishedAt time.Time

	// Documents is the number of documents attempted.
	Documents int

	// Records are the report rows in document-then-match order.
	Records []OutputRecord

	// Failures lists documents that were skipped.
	Failures []DocumentFailure
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Succeeded returns the number of documents processed without failure.
func (r *Run) Succeeded() int {
	return r.Documents - len(r.Failures)
}

// Summary returns the run without its records and failures.
func (r *Run) Summary() RunSummary {
	return RunSummary{
		ID:         r.ID,
		Mode:       r.Mode,
		Regulator:  r.Regulator,
		Key:        r.Key,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Documents:  r.Documents,
		Records:    len(r.Records),
		Failures:   len(r.Failures),
	}
}

// RunSummary is a run listing entry.
type RunSummary struct {
	ID         string
	Mode       RunMode
	Regulator  Regulator
	Key        string
	StartedAt  time.Time
	FinishedAt time.Time
	Documents  int
	Records    int
	Failures   int
}

// BatchRequest describes one batch run.
type BatchRequest struct {
	// Records are the documents to process, in report order.
	Records []SourceRecord

	// Criteria is applied to every document.
	Criteria FilterCriteria

	// Mode and Key are recorded on the persisted run.
	Mode      RunMode
	Regulator Regulator
	Key       string

	// Output is the report path. Empty skips writing.
	Output string
}
