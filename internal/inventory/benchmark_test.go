package inventory

import (
	"bytes"
	"fmt"
	"testing"
	"time"
)

// ============================================================================
// Normalization Benchmarks
// ============================================================================

// BenchmarkParseQuantity covers the cell shapes seen in real files.
func BenchmarkParseQuantity(b *testing.B) {
	inputs := []any{
		"3",
		"  12 ",
		"2.0",
		float64(4),
		int64(7),
		"",
		"a few",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, in := range inputs {
			parseQuantity(in)
		}
	}
}

// BenchmarkNormalize benchmarks a single row with alias columns.
func BenchmarkNormalize(b *testing.B) {
	row := RawRow{"Item Name": "  Whole   Milk ", "Qty": "2", "notes": "fridge"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Normalize(row)
	}
}

// ============================================================================
// Pipeline Benchmarks
// ============================================================================

func benchmarkCSV(rows int) []byte {
	var buf bytes.Buffer
	buf.WriteString("name,quantity,location\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&buf, "Item %d,%d,pantry\n", i, i%9)
	}
	return buf.Bytes()
}

// BenchmarkDecodeNormalize_Delimited runs decode and normalize over a 1000-row file.
func BenchmarkDecodeNormalize_Delimited(b *testing.B) {
	data := benchmarkCSV(1000)
	b.SetBytes(int64(len(data)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rows, err := Decode(data, FormatDelimited)
		if err != nil {
			b.Fatal(err)
		}
		if _, _, err := NormalizeAll(rows); err != nil {
			b.Fatal(err)
		}
		rows.Close()
	}
}

// BenchmarkStoreMerge measures merging a full batch into a populated store.
func BenchmarkStoreMerge(b *testing.B) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	batch := make([]Item, DefaultBatchLimit)
	for i := range batch {
		batch[i] = Item{
			ID:       fmt.Sprintf("id-%03d", i),
			Name:     fmt.Sprintf("Item %d", i),
			Quantity: i,
			AddedAt:  base.Add(time.Duration(i) * time.Minute),
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := NewStore()
		s.Merge(batch)
		_ = s.Snapshot()
	}
}
