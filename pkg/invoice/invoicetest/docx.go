package invoicetest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

const (
	wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

	relHeader = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relFooter = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
)

// DOCX describes a minimal package: body content plus one header and one
// footer part per entry, all referenced from the final section.
type DOCX struct {
	Body    string
	Headers []string
	Footers []string
}

// Para builds a paragraph with one bold run per text
func Para(texts ...string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	for _, t := range texts {
		fmt.Fprintf(&b, "<w:r><w:rPr><w:b/></w:rPr><w:t>%s</w:t></w:r>", t)
	}
	b.WriteString("</w:p>")
	return b.String()
}

// Table builds a single-row table, one paragraph per cell
func Table(cells ...string) string {
	var b strings.Builder
	b.WriteString("<w:tbl><w:tr>")
	for _, c := range cells {
		fmt.Fprintf(&b, "<w:tc>%s</w:tc>", Para(c))
	}
	b.WriteString("</w:tr></w:tbl>")
	return b.String()
}

// Invoice mirrors the layout of a typical receipt template: tokens in body
// paragraphs, tables, a header and a footer, some split over runs.
func Invoice() DOCX {
	return DOCX{
		Body: Para("Date: [Da", "te]") +
			Para("Ref: [Reference Number]") +
			Table("Received from", "[Name]") +
			Table("Amount", "[Amount]") +
			Para("Paid by [Payment ", "Mode]") +
			Para("[Payment Words]"),
		Headers: []string{Para("Receipt [Reference Number]")},
		Footers: []string{Para("Issued on [Date]")},
	}
}

// Bytes returns the zipped package
func (d DOCX) Bytes() []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	add := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			panic(err)
		}
	}

	add("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`)
	add("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`)

	var rels, refs strings.Builder
	id := 1
	for i, h := range d.Headers {
		name := fmt.Sprintf("header%d.xml", i+1)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s" Target="%s"/>`, id, relHeader, name)
		fmt.Fprintf(&refs, `<w:headerReference w:type="%s" r:id="rId%d"/>`, refType(i), id)
		add("word/"+name, fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:hdr %s>%s</w:hdr>`, wordNS, h))
		id++
	}
	for i, f := range d.Footers {
		name := fmt.Sprintf("footer%d.xml", i+1)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s" Target="%s"/>`, id, relFooter, name)
		fmt.Fprintf(&refs, `<w:footerReference w:type="%s" r:id="rId%d"/>`, refType(i), id)
		add("word/"+name, fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:ftr %s>%s</w:ftr>`, wordNS, f))
		id++
	}

	add("word/document.xml", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document %s><w:body>%s<w:sectPr>%s<w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`, wordNS, d.Body, refs.String()))
	add("word/_rels/document.xml.rels", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">%s</Relationships>`, rels.String()))

	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func refType(i int) string {
	switch i {
	case 0:
		return "default"
	case 1:
		return "first"
	default:
		return "even"
	}
}
