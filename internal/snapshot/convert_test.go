package snapshot

import (
	"reflect"
	"testing"
	"time"

	"github.com/JonMunkholm/homestock/internal/inventory"
)

func TestToPgText(t *testing.T) {
	tests := []struct {
		in        string
		wantValid bool
		want      string
	}{
		{"", false, ""},
		{"   ", false, ""},
		{"uploads/milk.png", true, "uploads/milk.png"},
		{"  https://img/x.png ", true, "https://img/x.png"},
	}

	for _, tt := range tests {
		got := toPgText(tt.in)
		if got.Valid != tt.wantValid || got.String != tt.want {
			t.Errorf("toPgText(%q) = %+v, want valid=%v %q", tt.in, got, tt.wantValid, tt.want)
		}
	}
}

func TestToPgTimestamptz(t *testing.T) {
	if got := toPgTimestamptz(time.Time{}); got.Valid {
		t.Errorf("toPgTimestamptz(zero) = %+v, want invalid", got)
	}

	loc := time.FixedZone("X", 3*3600)
	in := time.Date(2024, 3, 1, 13, 0, 0, 0, loc)
	got := toPgTimestamptz(in)
	if !got.Valid || !got.Time.Equal(in) || got.Time.Location() != time.UTC {
		t.Errorf("toPgTimestamptz(%v) = %+v, want same instant in UTC", in, got)
	}
}

func TestRowRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		item inventory.Item
	}{
		{
			name: "full item",
			item: inventory.Item{ID: "a1", Name: "Milk", Quantity: 2, ImageRef: "uploads/milk.png", AddedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		},
		{
			name: "no image and no date",
			item: inventory.Item{ID: "a2", Name: "Bread", Quantity: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := toRow(3, tt.item)
			if row.Position.Int32 != 3 {
				t.Errorf("Position = %d, want 3", row.Position.Int32)
			}
			if got := row.toItem(); !reflect.DeepEqual(got, tt.item) {
				t.Errorf("toItem() = %+v, want %+v", got, tt.item)
			}
		})
	}
}

func TestRowValues(t *testing.T) {
	row := toRow(0, inventory.Item{ID: "a1", Name: "Milk", Quantity: 2})
	vals := row.values("12 Elm St")

	if len(vals) != len(columns) {
		t.Fatalf("values = %d, want %d (one per column)", len(vals), len(columns))
	}
	if vals[0] != "12 Elm St" || vals[1] != "a1" || vals[2] != "Milk" {
		t.Errorf("values = %v", vals[:3])
	}
}
