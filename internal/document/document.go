// Package document models the file under preview.
package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/mdpeek/mdpeek/internal/feature"
	"github.com/mdpeek/mdpeek/internal/outline"
	"github.com/mdpeek/mdpeek/internal/textenc"
)

// Document is an immutable snapshot of a markdown file: raw bytes, decoded
// text, a content fingerprint, the heading outline, and the detected feature
// set. A successful reload produces a fresh Document; nothing mutates one in
// place.
type Document struct {
	Path        string
	Raw         []byte
	Text        string
	Fingerprint uint64
	Outline     []outline.Heading
	Features    feature.Set
}

// Title is the display name of the document, its base file name.
func (d *Document) Title() string { return filepath.Base(d.Path) }

// Load reads the file at path and builds its Document.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return FromBytes(path, raw), nil
}

// FromBytes builds a Document from already-read bytes. Decoding never fails,
// so neither does this.
func FromBytes(path string, raw []byte) *Document {
	text := textenc.Decode(raw)
	return &Document{
		Path:        path,
		Raw:         raw,
		Text:        text,
		Fingerprint: xxhash.Sum64String(text),
		Outline:     outline.Extract(text),
		Features:    feature.Detect(text),
	}
}
