package inventory

import (
	"mime"
	"path/filepath"
	"strings"
)

// DetectFormat derives the import format from a file name and an optional
// MIME type, the way callers receive them from a browser upload or a file
// path. The MIME type wins when it is conclusive.
func DetectFormat(filename, contentType string) (Format, error) {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch {
		case strings.Contains(mt, "csv"):
			return FormatDelimited, nil
		case strings.Contains(mt, "spreadsheetml.sheet"):
			return FormatSpreadsheet, nil
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatDelimited, nil
	case ".xlsx", ".xlsm":
		return FormatSpreadsheet, nil
	}

	return "", ErrUnknownFormat
}
