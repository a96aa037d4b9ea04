package inventory

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the worksheet name written by WriteWorkbook.
const ExportSheet = "Inventory"

var exportHeader = []any{"Name", "Quantity", "Image", "Date Added"}

// WriteWorkbook writes items as an .xlsx workbook with one "Inventory"
// sheet. Item ids and the household address are not exported. The header
// row uses labels the import normalizer recognizes, so an exported file can
// be imported again.
func WriteWorkbook(w io.Writer, items []Item) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}

	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	if err := f.SetRowStyle(ExportSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("export: style: %w", err)
	}

	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}

		added := ""
		if !it.AddedAt.IsZero() {
			added = it.AddedAt.Format("2006-01-02")
		}
		row := []any{it.Name, it.Quantity, it.ImageRef, added}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(ExportSheet, "A", "A", 32); err != nil {
		return fmt.Errorf("export: column width: %w", err)
	}
	if err := f.SetColWidth(ExportSheet, "C", "D", 20); err != nil {
		return fmt.Errorf("export: column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}
