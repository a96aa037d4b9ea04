package inventory

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"github.com/xuri/excelize/v2"
)

var errNoHeaderLabels = errors.New("empty file: header row has no labels")

// RowReader yields the data rows of a decoded file one at a time. Next
// returns io.EOF after the last row. A reader is not restartable; decode the
// same bytes again to start over.
type RowReader interface {
	// Header returns the cleaned header labels in column order.
	Header() []string

	// Next returns the next data row. Empty lines are skipped; a row of
	// blank cells is returned so the normalizer can count it as skipped.
	Next() (RawRow, error)

	// Line returns the 1-based source row of the row last returned by Next.
	Line() int

	// Close releases resources held by the underlying decoder.
	Close() error
}

// Decode opens data as the given format and reads its header row. Files with
// no header or no data rows fail with a *DecodeError; so do bytes the format
// cannot parse. Errors found later in the file are returned by Next.
func Decode(data []byte, format Format) (RowReader, error) {
	var (
		src recordSource
		err error
	)

	switch format {
	case FormatDelimited:
		src = newCSVSource(data)
	case FormatSpreadsheet:
		src, err = newSheetSource(data)
	default:
		return nil, &DecodeError{Format: format, Err: ErrUnknownFormat}
	}
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}

	return newRowReader(format, src)
}

// recordSource produces records with their 1-based source row, skipping
// empty lines. Records made only of blank cells are still returned.
type recordSource interface {
	next() (record []string, line int, err error)
	close() error
}

type rowReader struct {
	format Format
	src    recordSource
	header []string
	line   int

	pending     []string
	pendingLine int
}

func newRowReader(format Format, src recordSource) (*rowReader, error) {
	fail := func(line int, err error) (*rowReader, error) {
		_ = src.close()
		return nil, &DecodeError{Format: format, Line: line, Err: err}
	}

	header, headerLine, err := src.next()
	if errors.Is(err, io.EOF) {
		return fail(0, errEmptyFile)
	}
	if err != nil {
		return fail(0, err)
	}

	labels := make([]string, len(header))
	named := 0
	for i, h := range header {
		labels[i] = CleanCell(h)
		if labels[i] != "" {
			named++
		}
	}
	if named == 0 {
		return fail(headerLine, errNoHeaderLabels)
	}

	// Read one row ahead so a header-only file is rejected up front.
	first, firstLine, err := src.next()
	if errors.Is(err, io.EOF) {
		return fail(headerLine, errNoDataRows)
	}
	if err != nil {
		return fail(headerLine+1, err)
	}

	return &rowReader{
		format:      format,
		src:         src,
		header:      labels,
		line:        headerLine,
		pending:     first,
		pendingLine: firstLine,
	}, nil
}

func (r *rowReader) Header() []string {
	out := make([]string, len(r.header))
	copy(out, r.header)
	return out
}

func (r *rowReader) Line() int { return r.line }

func (r *rowReader) Next() (RawRow, error) {
	record, line := r.pending, r.pendingLine
	if record != nil {
		r.pending = nil
	} else {
		var err error
		record, line, err = r.src.next()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, &DecodeError{Format: r.format, Line: r.line + 1, Err: err}
		}
	}

	r.line = line
	return zipRow(r.header, record), nil
}

func (r *rowReader) Close() error { return r.src.close() }

// zipRow pairs cells with header labels. Cells under blank labels and cells
// past the last label are dropped. Labels that normalize alike ("Name",
// "name", "item_name" and "Item Name") keep the first column.
func zipRow(header []string, record []string) RawRow {
	row := make(RawRow, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, label := range header {
		if label == "" || i >= len(record) {
			continue
		}
		key := normalizeLabel(label)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		row[label] = record[i]
	}
	return row
}

// csvSource reads delimited text with the quirks of hand-edited exports
// tolerated: ragged rows and stray quotes.
type csvSource struct {
	r *csv.Reader
}

func newCSVSource(data []byte) *csvSource {
	data = sanitizeUTF8(stripBOM(data))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return &csvSource{r: r}
}

func (s *csvSource) next() ([]string, int, error) {
	for {
		record, err := s.r.Read()
		if err != nil {
			return nil, 0, err
		}
		if isEmptyRecord(record) {
			continue
		}
		line, _ := s.r.FieldPos(0)
		return record, line, nil
	}
}

func (s *csvSource) close() error { return nil }

// sheetSource streams the first worksheet of an .xlsx workbook.
type sheetSource struct {
	file *excelize.File
	rows *excelize.Rows
	line int
}

func newSheetSource(data []byte) (*sheetSource, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close()
		return nil, errEmptyFile
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &sheetSource{file: f, rows: rows}, nil
}

func (s *sheetSource) next() ([]string, int, error) {
	for s.rows.Next() {
		s.line++
		record, err := s.rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, 0, err
		}
		if isEmptyRecord(record) {
			continue
		}
		return record, s.line, nil
	}
	if err := s.rows.Error(); err != nil {
		return nil, 0, err
	}
	return nil, 0, io.EOF
}

func (s *sheetSource) close() error {
	rowsErr := s.rows.Close()
	if err := s.file.Close(); err != nil {
		return err
	}
	return rowsErr
}
