package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrNoTextLayer means the PDF carries no extractable text
var ErrNoTextLayer = errors.New("pdf has no text layer")

// minTextLayerChars below this many letters a PDF is treated as scanned
const minTextLayerChars = 40

// PDFTextLayer reads the embedded text of every page. Pages that fail to
// decode are skipped.
func PDFTextLayer(data []byte) (text string, pages int, err error) {
	defer func() {
		// the pdf reader panics on some malformed files
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("%w: %v", ErrNoTextLayer, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	var b strings.Builder
	pages = r.NumPage()
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n\n")
	}

	text = strings.TrimSpace(b.String())
	if text == "" {
		return "", pages, ErrNoTextLayer
	}
	return text, pages, nil
}

// HasUsableText reports whether text has enough letters to skip OCR
func HasUsableText(text string) bool {
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if letters >= minTextLayerChars {
				return true
			}
		}
	}
	return false
}
