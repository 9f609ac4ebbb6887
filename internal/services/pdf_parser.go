package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText implements PDFParserService.
func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("pdf stream is empty: %w", ErrEmptyInput)
	}

	return readPages(bytes.NewReader(data), int64(len(data)))
}

// readPages concatenates the plain text of every page in page order. The pdf
// package panics on some malformed inputs, so panics are reported as
// ErrDocumentRead.
func readPages(src io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed PDF (%v): %w", r, ErrDocumentRead)
		}
	}()

	r, err := pdf.NewReader(src, size)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %v: %w", err, ErrDocumentRead)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %v: %w", pageIndex, err, ErrDocumentRead)
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}
