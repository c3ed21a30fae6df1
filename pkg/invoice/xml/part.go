package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Part is a parsed WordprocessingML part: the document body, a header or a
// footer. Raw holds the unmodified source the offsets refer to.
type Part struct {
	Name     string
	Raw      []byte
	Blocks   []Block
	Sections []*Section

	// texts lists every w:t element in source order
	texts []*Text
}

// Paragraphs returns every paragraph of the part in document order,
// including the paragraphs of table cells at any nesting depth.
func (p *Part) Paragraphs() []*Paragraph {
	return collectParagraphs(nil, p.Blocks)
}

// Texts returns every text element of the part in source order
func (p *Part) Texts() []*Text {
	return p.texts
}

// Changed reports whether any text element has been modified
func (p *Part) Changed() bool {
	for _, t := range p.texts {
		if t.Changed() {
			return true
		}
	}
	return false
}

// Bytes serialises the part. Unchanged parts are returned as is; otherwise
// only the spans of modified text elements are rewritten.
func (p *Part) Bytes() []byte {
	if !p.Changed() {
		return p.Raw
	}

	var buf bytes.Buffer
	buf.Grow(len(p.Raw) + 256)
	last := 0
	for _, t := range p.texts {
		if !t.Changed() {
			continue
		}
		buf.Write(p.Raw[last:t.Start])
		writeText(&buf, t)
		last = t.End
	}
	buf.Write(p.Raw[last:])
	return buf.Bytes()
}

// writeText emits a text element with space preservation so that leading
// and trailing blanks in replacement values survive.
func writeText(buf *bytes.Buffer, t *Text) {
	buf.WriteString("<")
	buf.WriteString(t.QName)
	buf.WriteString(` xml:space="preserve">`)
	xml.EscapeText(buf, []byte(t.Value))
	buf.WriteString("</")
	buf.WriteString(t.QName)
	buf.WriteString(">")
}

type frameKind int

const (
	frameOther frameKind = iota
	frameParagraph
	frameRun
	frameRunProperties
	frameTable
	frameRow
	frameCell
	frameSection
)

type frame struct {
	kind  frameKind
	start int
	para  *Paragraph
	run   *Run
	table *Table
	row   *TableRow
	cell  *TableCell
	sect  *Section
}

type builder struct {
	part  *Part
	stack []frame
}

// ParsePart parses a body, header or footer part
func ParsePart(name string, raw []byte) (*Part, error) {
	part := &Part{Name: name, Raw: raw}
	b := &builder{part: part}
	d := xml.NewDecoder(bytes.NewReader(raw))

	for {
		offset := int(d.InputOffset())
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if isWord(t.Name.Space) && t.Name.Local == "t" {
				if run := b.currentRun(); run != nil {
					if err := b.readText(d, run, offset); err != nil {
						return nil, fmt.Errorf("failed to parse %s: %w", name, err)
					}
					continue
				}
			}
			b.start(t, offset)
		case xml.EndElement:
			b.end(int(d.InputOffset()))
		}
	}

	if len(b.stack) != 0 {
		return nil, fmt.Errorf("failed to parse %s: unexpected end of document", name)
	}
	return part, nil
}

// innermost returns the index of the closest open frame of the given kind,
// or -1 when there is none.
func (b *builder) innermost(kind frameKind) int {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].kind == kind {
			return i
		}
	}
	return -1
}

// currentRun returns the run a text element at the current position belongs
// to. A run only counts when it is nested inside the innermost paragraph.
func (b *builder) currentRun() *Run {
	ri := b.innermost(frameRun)
	if ri < 0 || ri < b.innermost(frameParagraph) {
		return nil
	}
	return b.stack[ri].run
}

func (b *builder) container() *[]Block {
	if ci := b.innermost(frameCell); ci >= 0 {
		return &b.stack[ci].cell.Blocks
	}
	return &b.part.Blocks
}

func (b *builder) start(t xml.StartElement, offset int) {
	f := frame{kind: frameOther, start: offset}
	if !isWord(t.Name.Space) {
		b.stack = append(b.stack, f)
		return
	}

	switch t.Name.Local {
	case "p":
		para := &Paragraph{}
		blocks := b.container()
		*blocks = append(*blocks, para)
		f.kind, f.para = frameParagraph, para
	case "r":
		if pi := b.innermost(frameParagraph); pi >= 0 {
			run := &Run{}
			para := b.stack[pi].para
			para.Runs = append(para.Runs, run)
			f.kind, f.run = frameRun, run
		}
	case "rPr":
		if n := len(b.stack); n > 0 && b.stack[n-1].kind == frameRun {
			f.kind, f.run = frameRunProperties, b.stack[n-1].run
		}
	case "tbl":
		table := &Table{}
		blocks := b.container()
		*blocks = append(*blocks, table)
		f.kind, f.table = frameTable, table
	case "tr":
		if ti := b.innermost(frameTable); ti >= 0 {
			row := &TableRow{}
			table := b.stack[ti].table
			table.Rows = append(table.Rows, row)
			f.kind, f.row = frameRow, row
		}
	case "tc":
		if ri := b.innermost(frameRow); ri >= 0 {
			cell := &TableCell{}
			row := b.stack[ri].row
			row.Cells = append(row.Cells, cell)
			f.kind, f.cell = frameCell, cell
		}
	case "sectPr":
		sect := &Section{}
		b.part.Sections = append(b.part.Sections, sect)
		f.kind, f.sect = frameSection, sect
	case "headerReference", "footerReference":
		if si := b.innermost(frameSection); si >= 0 {
			ref := referenceFromAttrs(t.Attr)
			sect := b.stack[si].sect
			if t.Name.Local == "headerReference" {
				sect.Headers = append(sect.Headers, ref)
			} else {
				sect.Footers = append(sect.Footers, ref)
			}
		}
	}
	b.stack = append(b.stack, f)
}

func (b *builder) end(offset int) {
	n := len(b.stack)
	if n == 0 {
		return
	}
	f := b.stack[n-1]
	b.stack = b.stack[:n-1]
	if f.kind == frameRunProperties {
		f.run.Properties = b.part.Raw[f.start:offset]
	}
}

// readText consumes a w:t element whose start tag has just been read
func (b *builder) readText(d *xml.Decoder, run *Run, start int) error {
	text := &Text{
		QName: qualifiedName(b.part.Raw, start),
		Start: start,
	}

	var sb strings.Builder
	depth := 0
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch tt := token.(type) {
		case xml.CharData:
			if depth == 0 {
				sb.Write(tt)
			}
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth > 0 {
				depth--
				continue
			}
			text.End = int(d.InputOffset())
			text.Value = sb.String()
			text.original = text.Value
			run.Texts = append(run.Texts, text)
			b.part.texts = append(b.part.texts, text)
			return nil
		}
	}
}

// qualifiedName reads the element name, prefix included, of the tag that
// starts at offset.
func qualifiedName(raw []byte, offset int) string {
	i := offset + 1
	j := i
	for j < len(raw) {
		switch raw[j] {
		case ' ', '\t', '\r', '\n', '/', '>':
			return string(raw[i:j])
		}
		j++
	}
	return string(raw[i:j])
}
