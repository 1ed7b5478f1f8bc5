// Package extraction converts resume documents (PDF, DOCX, plain text) into
// cleaned raw text for downstream LLM parsing.
package extraction

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// SupportedExtensions lists the file extensions the extractor recognizes,
// lowercase with leading dot.
var SupportedExtensions = []string{".pdf", ".docx", ".txt"}

// IsSupported reports whether the file at path has a recognized extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// Extract reads the document at path and returns its cleaned plain text.
// Empty or whitespace-only output is treated as a failed extraction.
func Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDF(path)
	case ".docx":
		text, err = extractDOCX(path)
	case ".txt":
		text, err = extractTXT(path)
	default:
		return "", &UnsupportedFormatError{Path: path, Ext: ext}
	}
	if err != nil {
		return "", err
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", &ExtractionError{Path: path, Message: "document produced no text"}
	}
	return cleaned, nil
}

func extractTXT(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to read text file", Cause: err}
	}
	return string(content), nil
}

func extractPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to read PDF file", Cause: err}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to open PDF", Cause: err}
	}

	rs, err := reader.GetPlainText()
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to extract PDF text", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to read PDF text stream", Cause: err}
	}
	return buf.String(), nil
}

// xmlTags matches any XML tag; used to strip markup from DOCX document bodies.
var xmlTags = regexp.MustCompile(`<[^>]+>`)

func extractDOCX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to open DOCX archive", Cause: err}
	}
	defer func() { _ = zr.Close() }()

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", &ExtractionError{Path: path, Message: "failed to open document.xml", Cause: err}
			}
			docXML, err = io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				return "", &ExtractionError{Path: path, Message: "failed to read document.xml", Cause: err}
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", &ExtractionError{Path: path, Message: "no document.xml found in docx"}
	}

	// Paragraph boundaries become newlines before tags are stripped.
	content := string(docXML)
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	content = xmlTags.ReplaceAllString(content, " ")
	return content, nil
}
