package invoice

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Result describes a generated invoice
type Result struct {
	// ID identifies the invoice in logs
	ID string
	// Path is the written PDF
	Path string
	// Pages is the page count of the PDF
	Pages int
	// Report is the outcome of token replacement
	Report Report
}

// Replacements derives the ordered replacement list from the form fields.
// An empty date takes today's date, an empty payment mode is NEFT, and empty
// amount words are computed from the amount. An amount that does not parse
// is inserted as typed and its words fall back to the currency label.
func (e *Engine) Replacements(fields Fields) []Replacement {
	date := strings.TrimSpace(fields.Date)
	if date == "" {
		date = DefaultDate(e.now(), e.config.DateLayout)
	}

	mode := fields.PaymentMode
	if mode == "" {
		mode = PaymentModes[0]
	}

	amount := strings.TrimSpace(fields.Amount)
	if e.config.GroupAmount && amount != "" {
		if parsed, err := ParseAmount(amount); err == nil {
			amount = FormatAmount(parsed)
		}
	}

	words := fields.AmountWords
	if words == "" {
		words = WordsField(fields.Amount, e.config.CurrencyLabel)
	}

	return []Replacement{
		{TokenDate, date},
		{TokenReference, fields.Reference},
		{TokenName, fields.Name},
		{TokenAmount, amount},
		{TokenPaymentMode, string(mode)},
		{TokenPaymentWords, words},
	}
}

// Fill loads the template and replaces every token. The returned document is
// owned by the caller.
func (e *Engine) Fill(fields Fields) (*Document, Report, error) {
	return e.fill(fields, e.logger)
}

func (e *Engine) fill(fields Fields, logger *Logger) (*Document, Report, error) {
	replacements := e.Replacements(fields)

	source, err := e.cache.Load(e.config.TemplatePath)
	if err != nil {
		return nil, Report{}, err
	}
	doc, err := OpenDocument(source)
	if err != nil {
		return nil, Report{}, WithContext(err, "open template", map[string]interface{}{
			"path": e.config.TemplatePath,
		})
	}

	report := replaceAll(doc, replacements, e.config.MaxPasses, logger)
	return doc, report, nil
}

// Generate fills the template, converts it and writes the PDF to outPath.
// An empty outPath means the user cancelled the save dialog: nothing is
// done and (nil, nil) is returned. A path without extension gets ".pdf".
func (e *Engine) Generate(ctx context.Context, fields Fields, outPath string) (*Result, error) {
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		e.logger.Info("Save cancelled, no invoice generated")
		return nil, nil
	}
	if filepath.Ext(outPath) == "" {
		outPath += ".pdf"
	}

	id := uuid.NewString()
	logger := e.logger.WithField("invoice", id)

	doc, report, err := e.fill(fields, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Replaced tokens in %d passes, %d substitutions", report.Passes, report.Substitutions)

	tmp, err := os.CreateTemp("", "invoice-*.docx")
	if err != nil {
		return nil, NewDocumentError("save", "temporary file", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove %s: %v", tmpPath, err)
		}
	}()

	if err := doc.Write(tmp); err != nil {
		tmp.Close()
		return nil, NewDocumentError("save", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, NewDocumentError("save", tmpPath, err)
	}

	if err := e.converter.Convert(ctx, tmpPath, outPath); err != nil {
		if !IsConversionError(err) {
			err = NewConversionError("convert", "", err)
		}
		logger.Error("PDF conversion failed: %v", err)
		removeOutput(outPath, logger)
		return nil, err
	}

	pages, err := VerifyPDF(outPath)
	if err != nil {
		logger.Error("PDF verification failed: %v", err)
		removeOutput(outPath, logger)
		return nil, err
	}

	logger.Info("Invoice written to %s (%d pages)", outPath, pages)
	return &Result{ID: id, Path: outPath, Pages: pages, Report: report}, nil
}

// removeOutput deletes whatever a failed conversion left at path
func removeOutput(path string, logger *Logger) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove %s: %v", path, err)
	}
}
