package services

import (
	"bytes"
	"fmt"
	"html"
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	docxTag          = regexp.MustCompile(`<[^>]*>`)
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeText = "text/plain"
)

// Document is an uploaded résumé. It lives only as long as the request that
// carries it.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

type DocumentExtractor interface {
	Extract(doc Document) (string, error)
}

type documentExtractor struct {
	pdfParser PDFParserService
}

func NewDocumentExtractor(pdfParser PDFParserService) DocumentExtractor {
	return &documentExtractor{pdfParser: pdfParser}
}

// Extract implements DocumentExtractor.
func (d *documentExtractor) Extract(doc Document) (string, error) {
	if len(doc.Data) == 0 {
		return "", fmt.Errorf("document %q has no content: %w", doc.Filename, ErrEmptyInput)
	}

	switch contentType := DetectContentType(doc); contentType {
	case ContentTypePDF:
		return d.pdfParser.ExtractText(doc.Data)
	case ContentTypeDOCX:
		return extractDocxText(doc.Data)
	case ContentTypeText:
		return string(doc.Data), nil
	default:
		return "", fmt.Errorf("unsupported document type %q: %w", contentType, ErrDocumentRead)
	}
}

// DetectContentType resolves the media type of a document from its declared
// type, then its file extension, then its leading bytes.
func DetectContentType(doc Document) string {
	if mediaType, _, err := mime.ParseMediaType(doc.ContentType); err == nil {
		switch mediaType {
		case ContentTypePDF, ContentTypeDOCX, ContentTypeText:
			return mediaType
		}
	}

	switch strings.ToLower(filepath.Ext(doc.Filename)) {
	case ".pdf":
		return ContentTypePDF
	case ".docx":
		return ContentTypeDOCX
	case ".txt":
		return ContentTypeText
	}

	if bytes.HasPrefix(doc.Data, []byte("%PDF-")) {
		return ContentTypePDF
	}

	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(doc.Data))
	return mediaType
}

func extractDocxText(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %v: %w", err, ErrDocumentRead)
	}
	defer r.Close()

	// GetContent returns the raw document.xml body.
	content := r.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTag.ReplaceAllString(content, "")

	return html.UnescapeString(content), nil
}
