package inventory

import (
	"errors"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        Format
		wantErr     bool
	}{
		{"csv mime", "upload", "text/csv", FormatDelimited, false},
		{"csv mime with params", "upload", "text/csv; charset=utf-8", FormatDelimited, false},
		{"xlsx mime", "upload", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", FormatSpreadsheet, false},
		{"csv extension", "pantry.CSV", "", FormatDelimited, false},
		{"xlsx extension", "pantry.xlsx", "application/octet-stream", FormatSpreadsheet, false},
		{"legacy xls rejected", "pantry.xls", "application/vnd.ms-excel", "", true},
		{"unknown", "photo.jpg", "image/jpeg", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.filename, tt.contentType)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Fatalf("DetectFormat() error = %v, want ErrUnknownFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFormat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}
