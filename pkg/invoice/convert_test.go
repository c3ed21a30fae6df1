package invoice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/benjaminschreck/go-invoice/pkg/invoice/invoicetest"
)

// fakeOffice writes an executable shell script standing in for soffice
func fakeOffice(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script converter needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "soffice")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

const copyPDFScript = `outdir=""
while [ $# -gt 1 ]; do
  case "$1" in
    --outdir) outdir="$2"; shift ;;
  esac
  shift
done
name=$(basename "$1" .docx)
cp "$FAKE_PDF" "$outdir/$name.pdf"`

func TestOfficeConverter_Convert(t *testing.T) {
	src := filepath.Join(t.TempDir(), "source.pdf")
	if err := os.WriteFile(src, invoicetest.MinimalPDF(1), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FAKE_PDF", src)

	docx := filepath.Join(t.TempDir(), "invoice-123.docx")
	if err := os.WriteFile(docx, []byte("docx"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "receipt.pdf")

	conv := &OfficeConverter{Binary: fakeOffice(t, copyPDFScript)}
	if err := conv.Convert(context.Background(), docx, out); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	pages, err := VerifyPDF(out)
	if err != nil || pages != 1 {
		t.Errorf("VerifyPDF() = %d, %v", pages, err)
	}
}

func TestOfficeConverter_Failure(t *testing.T) {
	docx := filepath.Join(t.TempDir(), "in.docx")
	os.WriteFile(docx, []byte("docx"), 0o644)

	conv := &OfficeConverter{Binary: fakeOffice(t, `echo "source file could not be loaded" >&2; exit 1`)}
	err := conv.Convert(context.Background(), docx, filepath.Join(t.TempDir(), "out.pdf"))

	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("Convert() error = %v, want *ConversionError", err)
	}
	if ce.Stage != "convert" || !strings.Contains(ce.Output, "could not be loaded") {
		t.Errorf("error = %+v", ce)
	}
}

func TestOfficeConverter_NoOutput(t *testing.T) {
	docx := filepath.Join(t.TempDir(), "in.docx")
	os.WriteFile(docx, []byte("docx"), 0o644)

	conv := &OfficeConverter{Binary: fakeOffice(t, `exit 0`)}
	err := conv.Convert(context.Background(), docx, filepath.Join(t.TempDir(), "out.pdf"))
	if !IsConversionError(err) {
		t.Errorf("Convert() error = %v, want conversion error", err)
	}
}

func TestOfficeConverter_Timeout(t *testing.T) {
	docx := filepath.Join(t.TempDir(), "in.docx")
	os.WriteFile(docx, []byte("docx"), 0o644)

	conv := &OfficeConverter{Binary: fakeOffice(t, `exec sleep 5`), Timeout: 100 * time.Millisecond}
	start := time.Now()
	err := conv.Convert(context.Background(), docx, filepath.Join(t.TempDir(), "out.pdf"))

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Convert() error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Error("timeout was not enforced")
	}
}

func TestOfficeConverter_MissingBinary(t *testing.T) {
	conv := &OfficeConverter{Binary: filepath.Join(t.TempDir(), "no-such-soffice")}
	err := conv.Convert(context.Background(), "in.docx", "out.pdf")

	var ce *ConversionError
	if !errors.As(err, &ce) || ce.Stage != "lookup" {
		t.Errorf("Convert() error = %v, want lookup failure", err)
	}
}

func TestVerifyPDF(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name      string
		path      string
		wantPages int
		wantErr   bool
	}{
		{"one page", write("one.pdf", invoicetest.MinimalPDF(1)), 1, false},
		{"three pages", write("three.pdf", invoicetest.MinimalPDF(3)), 3, false},
		{"not a PDF", write("text.pdf", []byte(strings.Repeat("not a pdf ", 20))), 0, true},
		{"missing", filepath.Join(dir, "missing.pdf"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := VerifyPDF(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyPDF() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !IsConversionError(err) {
				t.Errorf("expected a conversion error, got %T", err)
			}
			if pages != tt.wantPages {
				t.Errorf("VerifyPDF() = %d, want %d", pages, tt.wantPages)
			}
		})
	}
}
