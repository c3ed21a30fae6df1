package invoice

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

const (
	documentPart = "word/document.xml"

	relTypeHeader       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relTypeFooter       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	strictRelTypeHeader = "http://purl.oclc.org/ooxml/officeDocument/relationships/header"
	strictRelTypeFooter = "http://purl.oclc.org/ooxml/officeDocument/relationships/footer"
)

// DocxReader handles reading the parts of a DOCX package
type DocxReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Relationship []Relationship `xml:"Relationship"`
}

// NewDocxReader creates a new DOCX reader
func NewDocxReader(r io.ReaderAt, size int64) (*DocxReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	dr := &DocxReader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
	}
	for _, file := range zipReader.File {
		dr.Parts[file.Name] = file
	}

	if _, ok := dr.Parts[documentPart]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", documentPart)
	}
	return dr, nil
}

// Files returns the zip entries in archive order
func (dr *DocxReader) Files() []*zip.File {
	return dr.reader.File
}

// GetPart retrieves the content of a specific part
func (dr *DocxReader) GetPart(partName string) ([]byte, error) {
	file, ok := dr.Parts[partName]
	if !ok {
		return nil, fmt.Errorf("part %s not found", partName)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", partName, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", partName, err)
	}
	return content, nil
}

// relsPath converts a part name to its relationships part name,
// e.g. "word/document.xml" -> "word/_rels/document.xml.rels"
func relsPath(partName string) string {
	dir, base := path.Split(partName)
	return dir + "_rels/" + base + ".rels"
}

// GetRelationships retrieves relationships for a given part. A missing
// relationships part is not an error.
func (dr *DocxReader) GetRelationships(partName string) ([]Relationship, error) {
	relPath := relsPath(partName)
	if _, ok := dr.Parts[relPath]; !ok {
		return nil, nil
	}

	content, err := dr.GetPart(relPath)
	if err != nil {
		return nil, err
	}

	var rels Relationships
	if err := xml.Unmarshal(content, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	return rels.Relationship, nil
}

// ResolveTarget turns a relationship target into a part name. Targets are
// relative to the directory of the source part unless they start with "/".
func ResolveTarget(sourcePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(path.Dir(sourcePart), target)
}

// ListParts returns a list of all part names in the DOCX
func (dr *DocxReader) ListParts() []string {
	parts := make([]string, 0, len(dr.Parts))
	for _, f := range dr.reader.File {
		parts = append(parts, f.Name)
	}
	return parts
}

func isHeaderRel(t string) bool {
	return t == relTypeHeader || t == strictRelTypeHeader
}

func isFooterRel(t string) bool {
	return t == relTypeFooter || t == strictRelTypeFooter
}
