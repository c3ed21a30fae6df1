package invoice

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benjaminschreck/go-invoice/pkg/invoice/xml"
)

// Document is a DOCX package opened for token replacement: the body part and
// the header and footer parts referenced by its sections.
type Document struct {
	reader  *DocxReader
	Body    *xml.Part
	Headers []*xml.Part
	Footers []*xml.Part
}

// OpenDocument parses a DOCX package held in memory. The source slice must
// not be modified while the document is in use.
func OpenDocument(source []byte) (*Document, error) {
	reader, err := NewDocxReader(bytes.NewReader(source), int64(len(source)))
	if err != nil {
		return nil, NewDocumentError("parse", "DOCX", err)
	}

	raw, err := reader.GetPart(documentPart)
	if err != nil {
		return nil, NewDocumentError("extract", documentPart, err)
	}
	body, err := xml.ParsePart(documentPart, raw)
	if err != nil {
		return nil, NewDocumentError("parse", documentPart, err)
	}

	doc := &Document{reader: reader, Body: body}
	if err := doc.loadSectionParts(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadDocumentFile opens a DOCX file from disk
func ReadDocumentFile(path string) (*Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, NewTemplateError(path, err)
	}
	return OpenDocument(source)
}

// loadSectionParts resolves the header and footer references of every
// section through the body relationships. Parts shared by several sections
// are loaded once.
func (d *Document) loadSectionParts() error {
	if len(d.Body.Sections) == 0 {
		return nil
	}

	rels, err := d.reader.GetRelationships(documentPart)
	if err != nil {
		return NewDocumentError("extract", "relationships", err)
	}
	byID := make(map[string]Relationship, len(rels))
	for _, rel := range rels {
		byID[rel.ID] = rel
	}

	seen := make(map[string]bool)
	load := func(ref xml.Reference, wantHeader bool) (*xml.Part, error) {
		rel, ok := byID[ref.ID]
		if !ok || rel.TargetMode == "External" {
			return nil, nil
		}
		if wantHeader && !isHeaderRel(rel.Type) || !wantHeader && !isFooterRel(rel.Type) {
			return nil, nil
		}
		name := ResolveTarget(documentPart, rel.Target)
		if seen[name] {
			return nil, nil
		}
		seen[name] = true

		raw, err := d.reader.GetPart(name)
		if err != nil {
			return nil, NewDocumentError("extract", name, err)
		}
		part, err := xml.ParsePart(name, raw)
		if err != nil {
			return nil, NewDocumentError("parse", name, err)
		}
		return part, nil
	}

	for _, sect := range d.Body.Sections {
		for _, ref := range sect.Headers {
			part, err := load(ref, true)
			if err != nil {
				return err
			}
			if part != nil {
				d.Headers = append(d.Headers, part)
			}
		}
		for _, ref := range sect.Footers {
			part, err := load(ref, false)
			if err != nil {
				return err
			}
			if part != nil {
				d.Footers = append(d.Footers, part)
			}
		}
	}
	return nil
}

// Parts returns the body followed by the header and footer parts
func (d *Document) Parts() []*xml.Part {
	parts := make([]*xml.Part, 0, 1+len(d.Headers)+len(d.Footers))
	parts = append(parts, d.Body)
	parts = append(parts, d.Headers...)
	parts = append(parts, d.Footers...)
	return parts
}

// Paragraphs returns every paragraph of every part, body first
func (d *Document) Paragraphs() []*xml.Paragraph {
	var paras []*xml.Paragraph
	for _, p := range d.Parts() {
		paras = append(paras, p.Paragraphs()...)
	}
	return paras
}

// Contains reports whether token occurs in any paragraph of the document
func (d *Document) Contains(token string) bool {
	if token == "" {
		return false
	}
	for _, p := range d.Paragraphs() {
		if strings.Contains(p.GetText(), token) {
			return true
		}
	}
	return false
}

// Write serialises the package. Modified parts are written fresh; every
// other entry is copied without recompression.
func (d *Document) Write(w io.Writer) error {
	changed := make(map[string]*xml.Part)
	for _, p := range d.Parts() {
		if p.Changed() {
			changed[p.Name] = p
		}
	}

	zw := zip.NewWriter(w)
	for _, file := range d.reader.Files() {
		part, ok := changed[file.Name]
		if !ok {
			if err := zw.Copy(file); err != nil {
				return fmt.Errorf("failed to copy %s: %w", file.Name, err)
			}
			continue
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     file.Name,
			Method:   zip.Deflate,
			Modified: file.Modified,
		})
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", file.Name, err)
		}
		if _, err := fw.Write(part.Bytes()); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Name, err)
		}
	}
	return zw.Close()
}

// Bytes returns the serialised package
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the package to path
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return NewDocumentError("save", path, err)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return NewDocumentError("save", path, err)
	}
	if err := f.Close(); err != nil {
		return NewDocumentError("save", path, err)
	}
	return nil
}
