package invoice

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benjaminschreck/go-invoice/pkg/invoice/invoicetest"
)

type testDOCX invoicetest.DOCX

var (
	para  = invoicetest.Para
	table = invoicetest.Table
)

func invoiceTemplate() testDOCX {
	return testDOCX(invoicetest.Invoice())
}

func (d testDOCX) bytes(t testing.TB) []byte {
	t.Helper()
	return invoicetest.DOCX(d).Bytes()
}

func (d testDOCX) open(t testing.TB) *Document {
	t.Helper()
	doc, err := OpenDocument(d.bytes(t))
	if err != nil {
		t.Fatalf("OpenDocument() error = %v", err)
	}
	return doc
}

// write stores the package in a temporary directory and returns its path
func (d testDOCX) write(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.docx")
	if err := os.WriteFile(path, d.bytes(t), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

// documentText returns the text of every paragraph joined by newlines
func documentText(doc *Document) string {
	var lines []string
	for _, p := range doc.Paragraphs() {
		lines = append(lines, p.GetText())
	}
	return strings.Join(lines, "\n")
}
