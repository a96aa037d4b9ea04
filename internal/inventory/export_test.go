package inventory

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	items := []Item{
		{ID: "a", Name: "Milk", Quantity: 2, ImageRef: "https://img.example/milk.png", AddedAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)},
		{ID: "b", Name: "Bread", Quantity: 1, AddedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, items); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{ExportSheet}) {
		t.Errorf("sheets = %v, want [%s]", got, ExportSheet)
	}

	rows, err := f.GetRows(ExportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := [][]string{
		{"Name", "Quantity", "Image", "Date Added"},
		{"Milk", "2", "https://img.example/milk.png", "2024-03-02"},
		{"Bread", "1", "", "2024-03-01"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %q, want %q", rows, want)
	}
}

func TestWriteWorkbook_ReimportRoundTrip(t *testing.T) {
	items := []Item{
		{ID: "a", Name: "Milk", Quantity: 2, AddedAt: baseTime},
		{ID: "b", Name: "Peanut butter", Quantity: 0, AddedAt: baseTime},
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, items); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	rows, err := Decode(buf.Bytes(), FormatSpreadsheet)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer rows.Close()

	drafts, stats, err := NormalizeAll(rows)
	if err != nil {
		t.Fatalf("NormalizeAll() error = %v", err)
	}
	want := []ItemDraft{{Name: "Milk", Quantity: 2}, {Name: "Peanut butter", Quantity: 0}}
	if !reflect.DeepEqual(drafts, want) {
		t.Errorf("drafts = %+v, want %+v", drafts, want)
	}
	if stats.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", stats.Skipped)
	}
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, nil); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	// Header-only exports are not importable.
	if _, err := Decode(buf.Bytes(), FormatSpreadsheet); err == nil {
		t.Error("Decode() of an empty export succeeded, want error")
	}
}
