// Package extract turns statement files into the text blob the parser
// consumes. PDF extraction concatenates page text in reading order with
// newlines preserved; the parser's two-line grammar depends on those
// boundaries.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"
)

// Text reads a statement file and returns its full text. Files with a .pdf
// extension go through PDF extraction; anything else is read verbatim as an
// already-extracted text export.
func Text(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return FromPDF(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading statement text: %w", err)
	}
	return string(data), nil
}

// FromPDF extracts the plain text of every page of a PDF file.
func FromPDF(path string) (string, error) {
	reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}
	return plainText(reader)
}

// FromReader extracts PDF text from an in-memory document, for callers that
// receive the bytes over the wire instead of from disk.
func FromReader(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}
	return plainText(reader)
}

func plainText(reader *pdf.Reader) (string, error) {
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("buffering pdf text: %w", err)
	}
	return buf.String(), nil
}
