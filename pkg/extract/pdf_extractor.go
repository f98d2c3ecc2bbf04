package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts per-page plain text from PDF bytes.
type PDFExtractor struct{}

func NewPDFExtractor() Extractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) Extract(data []byte) (pages []Page, err error) {
	// The pdf parser panics on some malformed xref tables instead of
	// returning an error.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &ExtractionError{Reason: "invalid pdf", Err: fmt.Errorf("%v", r)}
		}
	}()

	if len(data) == 0 {
		return nil, &ExtractionError{Reason: "empty input"}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Reason: "invalid pdf", Err: err}
	}

	total := reader.NumPage()
	pages = make([]Page, 0, total)

	for num := 1; num <= total; num++ {
		page := reader.Page(num)

		text := ""
		if !page.V.IsNull() {
			// A single unreadable page (broken font tables, scanned image
			// content) degrades to empty text; page numbering must stay
			// continuous for citations, so the page is emitted regardless.
			if plain, perr := page.GetPlainText(nil); perr == nil {
				text = strings.TrimSpace(plain)
			}
		}

		pages = append(pages, Page{Number: num, Text: text})
	}

	return pages, nil
}
