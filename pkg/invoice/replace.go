package invoice

import (
	"github.com/benjaminschreck/go-invoice/pkg/invoice/render"
)

// Report summarises a ReplaceAll run
type Report struct {
	// Passes is the number of passes performed
	Passes int
	// Substitutions counts paragraph-level replacements over all passes
	Substitutions int
	// Remaining lists the tokens still present when the run stopped
	Remaining []string
	// Converged is false when the pass cap was reached with tokens left
	Converged bool
}

// ReplaceOnce replaces the first occurrence of token in every paragraph of
// the document: body, table cells at any depth, and the headers and footers
// of every section. Paragraphs without the token are left untouched. It
// returns the number of paragraphs changed.
func ReplaceOnce(doc *Document, token, value string) int {
	return replaceOnce(doc, token, value, GetLogger())
}

func replaceOnce(doc *Document, token, value string, logger *Logger) int {
	changed := 0
	for _, part := range doc.Parts() {
		for _, para := range part.Paragraphs() {
			before, after, ok := render.ReplaceInParagraph(para, token, value)
			if !ok {
				continue
			}
			changed++
			logger.DebugSubstitution(part.Name, token, before, after)
		}
	}
	return changed
}

// ReplaceAll applies the replacements in passes until no token is left in
// the document or maxPasses passes have run. Each pass calls ReplaceOnce for
// every replacement in order, so a paragraph holding a token n times needs n
// passes. Reaching the cap with tokens left is reported, not failed.
func ReplaceAll(doc *Document, replacements []Replacement, maxPasses int) Report {
	return replaceAll(doc, replacements, maxPasses, GetLogger())
}

func replaceAll(doc *Document, replacements []Replacement, maxPasses int, logger *Logger) Report {
	var report Report
	if maxPasses <= 0 {
		maxPasses = 1
	}

	for report.Passes < maxPasses {
		report.Remaining = remainingTokens(doc, replacements)
		if len(report.Remaining) == 0 {
			report.Converged = true
			return report
		}

		report.Passes++
		for _, r := range replacements {
			report.Substitutions += replaceOnce(doc, r.Token, r.Value, logger)
		}
	}

	report.Remaining = remainingTokens(doc, replacements)
	report.Converged = len(report.Remaining) == 0
	if !report.Converged {
		logger.Warn("Token replacement stopped after %d passes with tokens left: %v", report.Passes, report.Remaining)
	}
	return report
}

func remainingTokens(doc *Document, replacements []Replacement) []string {
	var left []string
	for _, r := range replacements {
		if doc.Contains(r.Token) {
			left = append(left, r.Token)
		}
	}
	return left
}
