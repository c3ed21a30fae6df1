package xml

import "strings"

// Namespace URIs recognised for WordprocessingML elements.
const (
	WordNamespace         = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	StrictWordNamespace   = "http://purl.oclc.org/ooxml/wordprocessingml/main"
	RelationshipNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	StrictRelNamespace    = "http://purl.oclc.org/ooxml/officeDocument/relationships"
)

func isWord(space string) bool {
	return space == WordNamespace || space == StrictWordNamespace
}

func isRel(space string) bool {
	return space == RelationshipNamespace || space == StrictRelNamespace
}

// Block represents any element that can appear in a part body or a table cell
type Block interface {
	isBlock()
}

// Text is a single w:t element. Start and End delimit the whole element,
// tags included, in the source of the part it was parsed from.
type Text struct {
	QName string
	Start int
	End   int
	Value string

	original string
}

// NewText returns a detached w:t element holding value. It has no source
// span and is meant for building paragraphs in memory.
func NewText(value string) *Text {
	return &Text{QName: "w:t", Value: value, original: value}
}

// Set replaces the text content of the element
func (t *Text) Set(value string) {
	t.Value = value
}

// Changed reports whether the value differs from the parsed one
func (t *Text) Changed() bool {
	return t.Value != t.original
}

// Run represents a run of text with common properties
type Run struct {
	// Properties is the raw w:rPr element, nil when the run has none
	Properties []byte
	Texts      []*Text
}

// GetText returns the text content of a run
func (r *Run) GetText() string {
	switch len(r.Texts) {
	case 0:
		return ""
	case 1:
		return r.Texts[0].Value
	}
	var sb strings.Builder
	for _, t := range r.Texts {
		sb.WriteString(t.Value)
	}
	return sb.String()
}

// HasText reports whether the run owns at least one w:t element and can
// therefore hold text.
func (r *Run) HasText() bool {
	return len(r.Texts) > 0
}

// Paragraph represents a paragraph in a part
type Paragraph struct {
	Runs []*Run
}

func (p *Paragraph) isBlock() {}

// GetText returns the concatenated text of all runs in a paragraph
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.GetText())
	}
	return sb.String()
}

// TextRuns returns the runs that own at least one text element, in order
func (p *Paragraph) TextRuns() []*Run {
	runs := make([]*Run, 0, len(p.Runs))
	for _, r := range p.Runs {
		if r.HasText() {
			runs = append(runs, r)
		}
	}
	return runs
}

// Table represents a table
type Table struct {
	Rows []*TableRow
}

func (t *Table) isBlock() {}

// TableRow represents a table row
type TableRow struct {
	Cells []*TableCell
}

// TableCell represents a table cell; cells may nest tables
type TableCell struct {
	Blocks []Block
}

// collectParagraphs appends every paragraph reachable from blocks, descending
// into tables row by row and cell by cell.
func collectParagraphs(dst []*Paragraph, blocks []Block) []*Paragraph {
	for _, b := range blocks {
		switch el := b.(type) {
		case *Paragraph:
			dst = append(dst, el)
		case *Table:
			for _, row := range el.Rows {
				for _, cell := range row.Cells {
					dst = collectParagraphs(dst, cell.Blocks)
				}
			}
		}
	}
	return dst
}
