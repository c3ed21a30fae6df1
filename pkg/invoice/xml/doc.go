// Package xml provides the structural view of a WordprocessingML part that the
// invoice filler works on.
//
// A DOCX file is a ZIP archive of XML parts. The body (word/document.xml) and
// every header and footer part share the same content model: paragraphs and
// tables, where tables nest rows, cells and further paragraphs or tables.
//
// # Structure Organization
//
//   - types.go: Block, Paragraph, Run, Text, Table, TableRow, TableCell
//   - part.go: ParsePart and Part.Bytes, the offset-preserving parser and writer
//   - section.go: section properties and their header/footer references
//
// # Offsets instead of a DOM
//
// Parsing does not build a full DOM. Every w:t element is recorded together
// with its byte span in the original part. Writing the part back splices only
// the text elements whose value changed, so all other markup (namespaces,
// properties, drawings, fields, bookmarks) is reproduced byte for byte.
//
//	part, err := xml.ParsePart("word/document.xml", raw)
//	if err != nil {
//	    return err
//	}
//	for _, para := range part.Paragraphs() {
//	    fmt.Println(para.GetText())
//	}
//	out := part.Bytes()
//
// # Runs
//
// Run: a contiguous sequence of text with one formatting definition. Its
// Properties field holds the raw w:rPr markup and acts as a read-only
// formatting handle. A run may carry several w:t segments; its text is their
// concatenation.
package xml
