package inventory

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// field is a canonical draft attribute a header label can map to.
type field int

const (
	fieldName field = iota + 1
	fieldQuantity
)

// alias binds a header label to a field. When a file carries several labels
// for the same field, the lowest rank with a non-blank value wins.
type alias struct {
	field field
	rank  int
}

// headerAliases maps normalized header labels to the draft field they feed.
// Keys are compared after normalizeLabel, so "Item_Name" and "ITEM NAME"
// both hit "item name".
var headerAliases = map[string]alias{
	"name":         {fieldName, 0},
	"item name":    {fieldName, 1},
	"itemname":     {fieldName, 2},
	"item":         {fieldName, 3},
	"product name": {fieldName, 4},
	"product":      {fieldName, 5},

	"quantity": {fieldQuantity, 0},
	"qty":      {fieldQuantity, 1},
	"count":    {fieldQuantity, 2},
	"units":    {fieldQuantity, 3},
	"amount":   {fieldQuantity, 4},
}

// candidate tracks the best value seen so far for one field. Preference is
// non-blank over blank, then lower rank, then the lexically smaller label, so
// the winner does not depend on map iteration order.
type candidate struct {
	value any
	rank  int
	label string
	found bool
}

func (c *candidate) offer(v any, rank int, label string) {
	if c.found {
		switch {
		case isBlank(c.value) && !isBlank(v):
		case isBlank(v) != isBlank(c.value):
			return
		case rank > c.rank:
			return
		case rank == c.rank && label >= c.label:
			return
		}
	}
	c.value, c.rank, c.label, c.found = v, rank, label, true
}

// SkipReason explains why a row produced no draft.
type SkipReason string

const (
	SkipNoNameColumn    SkipReason = "no name column"
	SkipEmptyName       SkipReason = "empty name"
	SkipInvalidQuantity SkipReason = "invalid quantity"
)

// NormalizeStats counts what normalization did with a file's rows.
type NormalizeStats struct {
	TotalRows int
	Skipped   int
	ByReason  map[SkipReason]int
}

// Normalize maps one row to a draft. The boolean is false when the row is
// skipped, and the reason says why. Normalize never fails.
func Normalize(row RawRow) (ItemDraft, SkipReason, bool) {
	var nameCol, qtyCol candidate

	for label, v := range row {
		a, ok := headerAliases[normalizeLabel(label)]
		if !ok {
			continue
		}
		switch a.field {
		case fieldName:
			nameCol.offer(v, a.rank, label)
		case fieldQuantity:
			qtyCol.offer(v, a.rank, label)
		}
	}
	nameVal, hasName := nameCol.value, nameCol.found
	qtyVal, hasQty := qtyCol.value, qtyCol.found

	if !hasName {
		return ItemDraft{}, SkipNoNameColumn, false
	}

	quantity := 1
	if hasQty && !isBlank(qtyVal) {
		q, ok := parseQuantity(qtyVal)
		if !ok {
			return ItemDraft{}, SkipInvalidQuantity, false
		}
		quantity = q
	}

	name := collapseSpace(CleanCell(scalarString(nameVal)))
	if name == "" {
		return ItemDraft{}, SkipEmptyName, false
	}

	return ItemDraft{Name: name, Quantity: quantity}, "", true
}

// NormalizeAll drains rows, returning drafts in file order. Only decode
// errors from the reader are returned; unusable rows are counted in stats.
func NormalizeAll(rows RowReader) ([]ItemDraft, NormalizeStats, error) {
	stats := NormalizeStats{ByReason: make(map[SkipReason]int)}
	var drafts []ItemDraft

	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			return drafts, stats, nil
		}
		if err != nil {
			return nil, stats, err
		}

		stats.TotalRows++
		draft, reason, ok := Normalize(row)
		if !ok {
			stats.Skipped++
			stats.ByReason[reason]++
			continue
		}
		drafts = append(drafts, draft)
	}
}

// parseQuantity accepts non-negative integers given as Go integers,
// integral floats, or strings holding either ("3", "3.0", " 3 ").
func parseQuantity(v any) (int, bool) {
	switch q := v.(type) {
	case int:
		return q, q >= 0 && q <= math.MaxInt32
	case int32:
		return int(q), q >= 0
	case int64:
		if q < 0 || q > math.MaxInt32 {
			return 0, false
		}
		return int(q), true
	case uint:
		if q > math.MaxInt32 {
			return 0, false
		}
		return int(q), true
	case float32:
		return floatQuantity(float64(q))
	case float64:
		return floatQuantity(q)
	case string:
		s := strings.TrimSpace(CleanCell(q))
		if n, err := strconv.Atoi(s); err == nil {
			return n, n >= 0 && n <= math.MaxInt32
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatQuantity(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

func floatQuantity(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func isBlank(v any) bool {
	return strings.TrimSpace(scalarString(v)) == ""
}
