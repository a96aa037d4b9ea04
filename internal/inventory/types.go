package inventory

import (
	"context"
	"time"
)

// Format identifies the tabular encoding of an import file.
type Format string

const (
	FormatDelimited   Format = "delimited-text"
	FormatSpreadsheet Format = "spreadsheet-binary"
)

// RawRow maps a column label (as written in the file's header row) to the
// cell value found under it. Values are strings for delimited input and may
// be strings or numbers for spreadsheet input.
type RawRow map[string]any

// ItemDraft is the canonical, minimal form of an item ready for submission.
type ItemDraft struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Item is the last-known-authoritative state of one inventory item.
type Item struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	ImageRef string    `json:"imageRef,omitempty"`
	AddedAt  time.Time `json:"addedAt"`
}

// Session carries the caller's credentials and household scope. The address
// is opaque to this package and only forwarded to the upstream.
type Session struct {
	Token   string
	Address string
}

// Outcome is the tag the upstream attaches to a mutation response.
type Outcome string

const (
	OutcomeDeleted     Outcome = "deleted"
	OutcomeDecremented Outcome = "decremented"
	OutcomeUpdated     Outcome = "updated"
)

// MutationResponse is the upstream's answer to a delete or update request.
// Item is set for decremented and updated outcomes.
type MutationResponse struct {
	Outcome Outcome `json:"outcome"`
	Item    *Item   `json:"item,omitempty"`
	Message string  `json:"message,omitempty"`
}

// ImportResult summarizes a completed import.
type ImportResult struct {
	ImportID  string        `json:"importId"`
	Accepted  []Item        `json:"accepted"`
	TotalRows int           `json:"totalRows"`
	Skipped   int           `json:"skipped"`
	Truncated int           `json:"truncated"`
	Duration  time.Duration `json:"duration"`
}

// Upstream is the authoritative item store.
//
// Implementations perform a single network round trip per call and must not
// retry. Cancellation and timeouts are reported as errors.
type Upstream interface {
	// BulkAdd submits an ordered batch and returns the confirmed items.
	BulkAdd(ctx context.Context, sess Session, drafts []ItemDraft) ([]Item, error)

	// Delete asks the store to delete or decrement one item.
	Delete(ctx context.Context, sess Session, id string) (MutationResponse, error)

	// Update replaces an item's name and quantity.
	Update(ctx context.Context, sess Session, id string, draft ItemDraft) (MutationResponse, error)

	// List returns every item visible to the household.
	List(ctx context.Context, sess Session) ([]Item, error)
}

// SnapshotCache persists household snapshots between process restarts.
type SnapshotCache interface {
	Save(ctx context.Context, address string, items []Item) error
	Load(ctx context.Context, address string) ([]Item, error)
}
