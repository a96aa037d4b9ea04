package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrImportInProgress is returned when another import for the same
	// household holds the gate past the configured wait.
	ErrImportInProgress = errors.New("import already in progress for this household")

	// ErrUnknownFormat is returned by DetectFormat and Decode for files that
	// are neither delimited text nor an .xlsx workbook.
	ErrUnknownFormat = errors.New("unknown file format")

	// ErrNotFound is returned when a mutation names an id the store has
	// never seen.
	ErrNotFound = errors.New("item not found")
)

// DecodeError reports a file that could not be turned into rows. The import
// is abandoned and the store is untouched.
type DecodeError struct {
	Format Format
	Line   int // 1-based row where decoding stopped, 0 if unknown
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decode %s: row %d: %v", e.Format, e.Line, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SubmissionError reports a failed round trip to the upstream, including
// cancellation and timeouts. Nothing from the request was applied.
type SubmissionError struct {
	Op  string // "bulk add", "delete", "update", "list"
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ReconcileError reports an upstream response the store cannot apply. The
// store is untouched.
type ReconcileError struct {
	ID      string
	Outcome Outcome
	Reason  string
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("reconcile item %s: %s (outcome %q)", e.ID, e.Reason, e.Outcome)
}

var (
	errEmptyFile  = errors.New("empty file")
	errNoDataRows = errors.New("empty file: no data rows after header")
)

// ErrInvalidDraft is returned for an update whose name is blank or whose
// quantity is negative.
var ErrInvalidDraft = errors.New("invalid item: name is required and quantity must not be negative")
