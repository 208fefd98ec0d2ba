// Package extract converts uploaded brand-guideline documents into plain text.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"brandgenius/internal/domain"
)

// Extract dispatches on the file extension: PDFs are parsed page by page,
// everything else is decoded as text. The returned string is never empty on
// success.
func Extract(data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file %q", domain.ErrExtraction, filename)
	}

	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return extractPDF(data, filename)
	}
	return decodeText(data, filename)
}

func extractPDF(data []byte, filename string) (text string, err error) {
	// The parser panics on some malformed files instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: malformed pdf %q: %v", domain.ErrExtraction, filename, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parse pdf %q: %v", domain.ErrExtraction, filename, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// Pages without extractable text (scanned or image-only) are skipped
		// rather than failing the whole document.
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		pages = append(pages, pageText)
	}

	joined := joinPages(pages)
	if joined == "" {
		return "", fmt.Errorf("%w: pdf %q contains no extractable text", domain.ErrExtraction, filename)
	}
	return joined, nil
}

// joinPages concatenates non-empty page texts, each followed by a newline.
func joinPages(pages []string) string {
	var b strings.Builder
	for _, page := range pages {
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}
		b.WriteString(page)
		b.WriteString("\n")
	}
	return b.String()
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

func decodeText(data []byte, filename string) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		data = data[len(bomUTF8):]
	case bytes.HasPrefix(data, bomUTF16BE), bytes.HasPrefix(data, bomUTF16LE):
		decoded, _, err := transform.Bytes(unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("%w: decode %q: %v", domain.ErrExtraction, filename, err)
		}
		// The decoder substitutes U+FFFD for unpaired surrogates instead of
		// erroring, so its presence marks binary input behind a stray BOM.
		if bytes.ContainsRune(decoded, utf8.RuneError) {
			return "", fmt.Errorf("%w: %q is not valid text", domain.ErrExtraction, filename)
		}
		data = decoded
	}
	// BOM-less input is taken as-is, so a literal U+FFFD in well-formed UTF-8
	// survives while malformed bytes are still rejected.
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %q is not valid text", domain.ErrExtraction, filename)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%w: %q contains no text", domain.ErrExtraction, filename)
	}
	return text, nil
}
