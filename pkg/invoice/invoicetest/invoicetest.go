// Package invoicetest contains helpers exposed only for testing purposes.
// They should not be used in production code.
package invoicetest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// MinimalPDF returns a well-formed PDF with the given number of empty pages
func MinimalPDF(pages int) []byte {
	if pages < 1 {
		pages = 1
	}

	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// Converter is a stand-in for the office converter. It writes Output, or a
// one-page PDF when Output is nil, and records every call.
type Converter struct {
	Output []byte
	Err    error

	mu    sync.Mutex
	calls []Call
}

// Call records the arguments of one conversion
type Call struct {
	DocxPath string
	PDFPath  string
	// Docx is the content of the input file at the time of the call
	Docx []byte
}

func (c *Converter) Convert(ctx context.Context, docxPath, pdfPath string) error {
	docx, err := os.ReadFile(docxPath)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.calls = append(c.calls, Call{DocxPath: docxPath, PDFPath: pdfPath, Docx: docx})
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Err != nil {
		return c.Err
	}
	out := c.Output
	if out == nil {
		out = MinimalPDF(1)
	}
	return os.WriteFile(pdfPath, out, 0o644)
}

// Calls returns the recorded conversions
func (c *Converter) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Viewer records opened paths instead of launching an application
type Viewer struct {
	mu     sync.Mutex
	Opened []string
}

func (v *Viewer) Open(path string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Opened = append(v.Opened, path)
	return nil
}
