package snapshot

// convert.go maps inventory items to and from their column values. Optional
// attributes use pgtype values with Valid=false so they are stored as NULL.

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/homestock/internal/inventory"
)

// toPgText converts a string to pgtype.Text, invalid when blank.
func toPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// toPgTimestamptz converts t to pgtype.Timestamptz, invalid when zero.
func toPgTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

func toPgInt4(i int) pgtype.Int4 {
	return pgtype.Int4{Int32: int32(i), Valid: true}
}

// itemRow is one household_items row in column order.
type itemRow struct {
	ItemID   string
	Name     string
	Quantity pgtype.Int4
	ImageRef pgtype.Text
	AddedAt  pgtype.Timestamptz
	Position pgtype.Int4
}

func toRow(pos int, it inventory.Item) itemRow {
	return itemRow{
		ItemID:   it.ID,
		Name:     it.Name,
		Quantity: toPgInt4(it.Quantity),
		ImageRef: toPgText(it.ImageRef),
		AddedAt:  toPgTimestamptz(it.AddedAt),
		Position: toPgInt4(pos),
	}
}

// values returns the row for CopyFrom, prefixed with the household address.
func (r itemRow) values(address string) []any {
	return []any{address, r.ItemID, r.Name, r.Quantity, r.ImageRef, r.AddedAt, r.Position}
}

func (r itemRow) toItem() inventory.Item {
	it := inventory.Item{
		ID:   r.ItemID,
		Name: r.Name,
	}
	if r.Quantity.Valid {
		it.Quantity = int(r.Quantity.Int32)
	}
	if r.ImageRef.Valid {
		it.ImageRef = r.ImageRef.String
	}
	if r.AddedAt.Valid {
		it.AddedAt = r.AddedAt.Time.UTC()
	}
	return it
}
