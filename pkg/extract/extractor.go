// Package extract converts uploaded document bytes into ordered per-page text.
package extract

import (
	"errors"
	"fmt"
)

// Page is a single page of extracted text. Numbers are 1-indexed and match
// the source pagination; Text may be empty for pages without extractable
// content (the page is still emitted so citations stay aligned).
type Page struct {
	Number int
	Text   string
}

// ExtractionError indicates the byte stream is not a readable document of
// the expected format. Fatal for the ingestion request.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IsExtractionError reports whether err is an ExtractionError.
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}

// Extractor turns raw document bytes into an ordered page sequence.
type Extractor interface {
	Extract(data []byte) ([]Page, error)
}
