package extract

import (
	"testing"
)

func TestExtractRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "not a pdf", data: []byte("hello world")},
		{name: "truncated header", data: []byte("%PDF-1.7\n")},
	}

	e := NewPDFExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := e.Extract(tt.data)
			if err == nil {
				t.Fatal("expected error for invalid input")
			}
			if !IsExtractionError(err) {
				t.Errorf("expected ExtractionError, got %T", err)
			}
			if pages != nil {
				t.Errorf("expected nil pages, got %d", len(pages))
			}
		})
	}
}
