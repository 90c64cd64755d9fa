// Package pdfdoc inspects the PDF a user picked before it is uploaded.
package pdfdoc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/ledongthuc/pdf"
)

// Extension is the only file type offered by the picker.
const Extension = ".pdf"

// ErrUnreadable marks a file the PDF parser could not make sense of. Such a
// file is still uploadable; the service decides whether to reject it.
var ErrUnreadable = errors.New("pdf structure unreadable")

// Document describes a selected file.
type Document struct {
	Path  string
	Name  string
	Size  int64
	Pages int
}

// Inspect stats the file and counts its pages. When the file exists but is
// not a parsable PDF, the returned Document is still populated (Pages == 0)
// and the error wraps ErrUnreadable.
func Inspect(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%s is a directory", path)
	}
	doc := Document{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
	}
	pages, err := countPages(path)
	if err != nil {
		return doc, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	doc.Pages = pages
	return doc, nil
}

// countPages recovers from parser panics; the reader panics on some
// malformed object graphs instead of returning an error.
func countPages(path string) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse %s: %v", filepath.Base(path), r)
		}
	}()
	file, reader, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return reader.NumPage(), nil
}

// Open returns the file for upload. The caller closes it.
func Open(path string) (*os.File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("no file selected")
	}
	return os.Open(path)
}

// HasExtension reports whether the name carries the picker's filter
// extension, case-insensitively.
func HasExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Extension)
}

// Describe renders a one-line label such as "notes.pdf · 12 pages · 340 kB".
func (d Document) Describe() string {
	if d.Name == "" {
		return ""
	}
	parts := []string{d.Name}
	switch d.Pages {
	case 0:
		parts = append(parts, "pages unknown")
	case 1:
		parts = append(parts, "1 page")
	default:
		parts = append(parts, fmt.Sprintf("%d pages", d.Pages))
	}
	parts = append(parts, humanize.Bytes(uint64(d.Size)))
	return strings.Join(parts, " · ")
}
