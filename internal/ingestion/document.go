// Package ingestion loads resume documents from disk and extracts their
// plain text. Supported formats are .txt, .pdf and .docx.
package ingestion

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

var (
	reXMLTags    = regexp.MustCompile(`<[^>]+>`)
	reFlatSpaces = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlines   = regexp.MustCompile(`\s*\n\s*`)
)

// ErrUnsupportedFormat is returned for files whose extension is not one of
// the supported resume formats.
var ErrUnsupportedFormat = errors.New("unsupported file format: only txt, pdf and docx are allowed")

// Document is a lazily read resume file. Text extraction runs on first
// demand so that a corrupt file fails its own batch item instead of the
// whole directory scan.
type Document struct {
	path string
}

func NewDocument(path string) *Document {
	return &Document{path: path}
}

// Name returns the file name without its directory.
func (d *Document) Name() string {
	return filepath.Base(d.path)
}

// Text reads the file and extracts its plain text based on the extension.
func (d *Document) Text() (string, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", d.Name(), err)
	}

	switch strings.ToLower(filepath.Ext(d.path)) {
	case ".txt":
		return string(data), nil
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDocx(data)
	default:
		return "", ErrUnsupportedFormat
	}
}

// LoadDir lists the supported resume files in dir, sorted by name.
func LoadDir(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading resume directory: %w", err)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".pdf", ".docx":
			docs = append(docs, NewDocument(filepath.Join(dir, entry.Name())))
		}
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].path < docs[j].path })

	return docs, nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}
	return flattenWhitespace(buf.String()), nil
}

func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening docx body: %w", err)
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("reading docx body: %w", err)
		}
		break
	}
	if len(docXML) == 0 {
		return "", errors.New("no document.xml found in docx")
	}

	// Paragraph and tab markers become whitespace before the tags are
	// stripped, so words from adjacent runs do not glue together.
	body := strings.ReplaceAll(string(docXML), "</w:p>", "\n")
	body = strings.ReplaceAll(body, "<w:tab/>", "\t")
	body = reXMLTags.ReplaceAllString(body, " ")

	return flattenWhitespace(body), nil
}

// flattenWhitespace collapses horizontal whitespace runs and newline runs
// while keeping paragraph boundaries.
func flattenWhitespace(s string) string {
	s = reFlatSpaces.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ", " ")
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
