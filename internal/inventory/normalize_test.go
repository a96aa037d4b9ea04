package inventory

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		row        RawRow
		want       ItemDraft
		wantOK     bool
		wantReason SkipReason
	}{
		{
			name:   "canonical labels",
			row:    RawRow{"name": "Milk", "quantity": "2"},
			want:   ItemDraft{Name: "Milk", Quantity: 2},
			wantOK: true,
		},
		{
			name:   "missing quantity column defaults to one",
			row:    RawRow{"name": "Bread"},
			want:   ItemDraft{Name: "Bread", Quantity: 1},
			wantOK: true,
		},
		{
			name:   "blank quantity defaults to one",
			row:    RawRow{"name": "Bread", "quantity": "  "},
			want:   ItemDraft{Name: "Bread", Quantity: 1},
			wantOK: true,
		},
		{
			name:   "zero quantity is kept",
			row:    RawRow{"name": "Salt", "quantity": "0"},
			want:   ItemDraft{Name: "Salt", Quantity: 0},
			wantOK: true,
		},
		{
			name:   "aliases are case and separator insensitive",
			row:    RawRow{"Item_Name": "Rice", "QTY": "4"},
			want:   ItemDraft{Name: "Rice", Quantity: 4},
			wantOK: true,
		},
		{
			name:   "product and count aliases",
			row:    RawRow{"Product": "Oats", "Count": "3"},
			want:   ItemDraft{Name: "Oats", Quantity: 3},
			wantOK: true,
		},
		{
			name:   "lower rank alias wins",
			row:    RawRow{"name": "Milk", "product": "Dairy", "quantity": "2", "amount": "9"},
			want:   ItemDraft{Name: "Milk", Quantity: 2},
			wantOK: true,
		},
		{
			name:   "non-blank alias beats blank canonical",
			row:    RawRow{"name": "", "item": "Tea"},
			want:   ItemDraft{Name: "Tea", Quantity: 1},
			wantOK: true,
		},
		{
			name:   "name whitespace collapsed",
			row:    RawRow{"name": "  Peanut \t  butter  "},
			want:   ItemDraft{Name: "Peanut butter", Quantity: 1},
			wantOK: true,
		},
		{
			name:   "formula prefix stripped from name",
			row:    RawRow{"name": `="Jam"`, "quantity": `="5"`},
			want:   ItemDraft{Name: "Jam", Quantity: 5},
			wantOK: true,
		},
		{
			name:   "integral float string",
			row:    RawRow{"name": "Eggs", "quantity": "12.0"},
			want:   ItemDraft{Name: "Eggs", Quantity: 12},
			wantOK: true,
		},
		{
			name:   "numeric cell values",
			row:    RawRow{"name": "Eggs", "quantity": float64(6)},
			want:   ItemDraft{Name: "Eggs", Quantity: 6},
			wantOK: true,
		},
		{
			name:   "int cell value",
			row:    RawRow{"name": "Eggs", "quantity": 7},
			want:   ItemDraft{Name: "Eggs", Quantity: 7},
			wantOK: true,
		},
		{
			name:       "empty name",
			row:        RawRow{"name": "", "quantity": "5"},
			wantReason: SkipEmptyName,
		},
		{
			name:       "whitespace name",
			row:        RawRow{"name": "   ", "quantity": "5"},
			wantReason: SkipEmptyName,
		},
		{
			name:       "no name column",
			row:        RawRow{"notes": "fridge", "quantity": "5"},
			wantReason: SkipNoNameColumn,
		},
		{
			name:       "empty row",
			row:        RawRow{},
			wantReason: SkipNoNameColumn,
		},
		{
			name:       "non-numeric quantity",
			row:        RawRow{"name": "Eggs", "quantity": "abc"},
			wantReason: SkipInvalidQuantity,
		},
		{
			name:       "negative quantity",
			row:        RawRow{"name": "Eggs", "quantity": "-1"},
			wantReason: SkipInvalidQuantity,
		},
		{
			name:       "fractional quantity",
			row:        RawRow{"name": "Eggs", "quantity": "1.5"},
			wantReason: SkipInvalidQuantity,
		},
		{
			name:       "negative float cell",
			row:        RawRow{"name": "Eggs", "quantity": -2.0},
			wantReason: SkipInvalidQuantity,
		},
		{
			name:       "unsupported cell type",
			row:        RawRow{"name": "Eggs", "quantity": true},
			wantReason: SkipInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason, ok := Normalize(tt.row)
			if ok != tt.wantOK {
				t.Fatalf("Normalize() ok = %v, want %v (reason %q)", ok, tt.wantOK, reason)
			}
			if !ok {
				if reason != tt.wantReason {
					t.Errorf("Normalize() reason = %q, want %q", reason, tt.wantReason)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	rows, err := Decode([]byte("name,quantity\nMilk,2\n,5\nEggs,abc\nBread,"), FormatDelimited)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer rows.Close()

	drafts, stats, err := NormalizeAll(rows)
	if err != nil {
		t.Fatalf("NormalizeAll() error = %v", err)
	}

	want := []ItemDraft{{Name: "Milk", Quantity: 2}, {Name: "Bread", Quantity: 1}}
	if !reflect.DeepEqual(drafts, want) {
		t.Errorf("drafts = %+v, want %+v", drafts, want)
	}
	if stats.TotalRows != 4 {
		t.Errorf("TotalRows = %d, want 4", stats.TotalRows)
	}
	if stats.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", stats.Skipped)
	}
	if got := stats.ByReason[SkipEmptyName]; got != 1 {
		t.Errorf("ByReason[empty name] = %d, want 1", got)
	}
	if got := stats.ByReason[SkipInvalidQuantity]; got != 1 {
		t.Errorf("ByReason[invalid quantity] = %d, want 1", got)
	}
}

func TestNormalize_SameRankTieIsStable(t *testing.T) {
	row := RawRow{"Name": "Milk", "name": "Eggs", "Qty": "2", "qty": "7"}

	for i := 0; i < 200; i++ {
		got, _, ok := Normalize(row)
		if !ok {
			t.Fatal("Normalize() skipped the row")
		}
		if want := (ItemDraft{Name: "Milk", Quantity: 2}); got != want {
			t.Fatalf("Normalize() call %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestNormalizeAll_DelimiterOnlyRowsAreCounted(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantDrafts int
		wantTotal  int
		reason     SkipReason
		wantReason int
	}{
		{
			name:       "blank name and quantity",
			data:       "name,quantity\nMilk,2\n,\nBread,1\n,,\n",
			wantDrafts: 2,
			wantTotal:  4,
			reason:     SkipEmptyName,
			wantReason: 2,
		},
		{
			name:       "no name column",
			data:       "sku,qty\nA1,2\n,\n",
			wantDrafts: 0,
			wantTotal:  2,
			reason:     SkipNoNameColumn,
			wantReason: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Decode([]byte(tt.data), FormatDelimited)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			defer rows.Close()

			drafts, stats, err := NormalizeAll(rows)
			if err != nil {
				t.Fatalf("NormalizeAll() error = %v", err)
			}
			if len(drafts) != tt.wantDrafts {
				t.Errorf("drafts = %d, want %d", len(drafts), tt.wantDrafts)
			}
			if stats.TotalRows != tt.wantTotal {
				t.Errorf("TotalRows = %d, want %d", stats.TotalRows, tt.wantTotal)
			}
			if got := stats.TotalRows - stats.Skipped; got != len(drafts) {
				t.Errorf("TotalRows - Skipped = %d, want %d", got, len(drafts))
			}
			if got := stats.ByReason[tt.reason]; got != tt.wantReason {
				t.Errorf("ByReason[%s] = %d, want %d", tt.reason, got, tt.wantReason)
			}
		})
	}
}

func TestNormalizeAll_NoNameColumn(t *testing.T) {
	rows, err := Decode([]byte("sku,qty\nA1,2\nB2,3\n"), FormatDelimited)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer rows.Close()

	drafts, stats, err := NormalizeAll(rows)
	if err != nil {
		t.Fatalf("NormalizeAll() error = %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("drafts = %v, want none", drafts)
	}
	if stats.ByReason[SkipNoNameColumn] != 2 {
		t.Errorf("ByReason[no name column] = %d, want 2", stats.ByReason[SkipNoNameColumn])
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in     any
		want   int
		wantOK bool
	}{
		{"3", 3, true},
		{" 3 ", 3, true},
		{"3.0", 3, true},
		{"1e2", 100, true},
		{int64(9), 9, true},
		{int32(4), 4, true},
		{uint(8), 8, true},
		{float32(2), 2, true},
		{"", 0, false},
		{"3.5", 0, false},
		{"-3", 0, false},
		{int64(-1), 0, false},
		{"99999999999", 0, false},
		{"NaN", 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		got, ok := parseQuantity(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("parseQuantity(%#v) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
