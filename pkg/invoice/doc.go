// Package invoice fills a DOCX receipt template with payment details and
// converts the result to PDF.
//
// The template carries six placeholder tokens: [Date], [Reference Number],
// [Name], [Amount], [Payment Mode] and [Payment Words]. Tokens are found in
// body paragraphs, in table cells at any depth and in the header and footer
// parts of every section, even when Word has split a token over several
// differently formatted runs.
//
// # Quick Start
//
//	engine := invoice.New()
//	result, err := engine.Generate(ctx, invoice.Fields{
//	    Reference:   "TPR-001",
//	    Name:        "Asha Verma",
//	    Amount:      "1500",
//	    PaymentMode: invoice.PaymentNEFT,
//	}, "receipt.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// An empty date takes today's date and empty amount words are derived from
// the amount with AmountToWords, which uses the Indian numbering system:
//
//	invoice.AmountToWords(decimal.RequireFromString("1234567.89"))
//	// Twelve Lakh Thirty Four Thousand Five Hundred and Sixty Seven and Eighty Nine Paise Only
//
// # Replacement
//
// ReplaceOnce replaces the first occurrence of a token in each paragraph and
// redistributes the new text over the original runs, so run formatting is
// kept. ReplaceAll repeats passes until no token is left or the pass limit
// (Config.MaxPasses) is reached. Only the changed text elements are written
// back; every other byte of the template is preserved.
//
// # Configuration
//
// Configuration comes from INVOICE_* environment variables, see
// ConfigFromEnvironment. PDF conversion uses a headless LibreOffice
// (INVOICE_SOFFICE).
package invoice
