package inventory

// text.go holds the cell and label cleanup shared by the decoder and the
// normalizer. Spreadsheet exports carry a predictable set of artifacts:
//   - a UTF-8 byte order mark from Windows tools
//   - bytes that are not valid UTF-8 (Latin-1 or Windows-1252 exports)
//   - Excel formula prefixes such as ="Milk"
//   - stray quotes and irregular whitespace

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stripBOM removes a leading UTF-8 byte order mark.
func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// sanitizeUTF8 replaces each invalid byte with U+FFFD so the CSV reader
// never sees broken sequences.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data) + 8)

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
		} else {
			buf.Write(data[:size])
		}
		data = data[size:]
	}

	return buf.Bytes()
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// surrounding whitespace, an Excel formula prefix (="..." or =...) and
// surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// collapseSpace trims s and folds every internal whitespace run to a single
// space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeLabel produces the lookup key for a header label: cleaned,
// lower-cased, with '_' and '-' treated as spaces.
func normalizeLabel(label string) string {
	label = strings.ToLower(CleanCell(label))
	label = strings.NewReplacer("_", " ", "-", " ").Replace(label)
	return collapseSpace(label)
}

// isEmptyRecord reports whether a record is an empty line: no cells, or a
// single blank cell. A record with several blank cells (",,") is a row.
func isEmptyRecord(record []string) bool {
	switch len(record) {
	case 0:
		return true
	case 1:
		return strings.TrimSpace(record[0]) == ""
	default:
		return false
	}
}
