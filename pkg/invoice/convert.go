package invoice

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Converter turns a filled DOCX file into a PDF at pdfPath. Implementations
// block until the PDF is written or the context is done.
type Converter interface {
	Convert(ctx context.Context, docxPath, pdfPath string) error
}

// OfficeConverter converts with a headless LibreOffice installation
type OfficeConverter struct {
	// Binary is the soffice executable, looked up in PATH when not absolute
	Binary string
	// Timeout bounds one conversion. 0 waits indefinitely.
	Timeout time.Duration
}

// NewOfficeConverter creates a converter from the configuration
func NewOfficeConverter(config *Config) *OfficeConverter {
	return &OfficeConverter{
		Binary:  config.ConverterBinary,
		Timeout: config.ConvertTimeout,
	}
}

// Convert runs the office suite on docxPath and moves the produced PDF to
// pdfPath. The suite gets a throwaway profile so that it does not clash with
// an instance the user already has open.
func (c *OfficeConverter) Convert(ctx context.Context, docxPath, pdfPath string) error {
	binary := c.Binary
	if binary == "" {
		binary = "soffice"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return NewConversionError("lookup", "", err)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	outDir, err := os.MkdirTemp("", "invoice-convert-")
	if err != nil {
		return NewConversionError("prepare", "", err)
	}
	defer os.RemoveAll(outDir)

	profile := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(outDir, "profile"))}
	cmd := exec.CommandContext(ctx, binary,
		"-env:UserInstallation="+profile.String(),
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outDir,
		docxPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return NewConversionError("convert", strings.TrimSpace(string(output)), err)
	}

	stem := strings.TrimSuffix(filepath.Base(docxPath), filepath.Ext(docxPath))
	produced := filepath.Join(outDir, stem+".pdf")
	if _, err := os.Stat(produced); err != nil {
		return NewConversionError("convert", strings.TrimSpace(string(output)), fmt.Errorf("no PDF produced: %w", err))
	}

	if err := movePDF(produced, pdfPath); err != nil {
		return NewConversionError("move", "", err)
	}
	return nil
}

// movePDF renames src to dst, copying when they are on different file systems
func movePDF(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	return copyFile(src, dst)
}
