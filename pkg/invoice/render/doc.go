// Package render provides the pure helpers behind token replacement.
//
// The helpers follow a three step shape: extract the ordered run texts of a
// paragraph, compute the new allocation of text to runs without touching the
// document, then write the allocation back to the text elements that changed.
//
//   - helpers.go: ReplaceFirst, Redistribute and rune length helpers
//   - paragraph.go: ReplaceInParagraph, which ties the steps together for an
//     xml.Paragraph
//
// Redistribution is length preserving: run i receives as many characters of
// the new text as it held before, runs past the end of the new text become
// empty, and any surplus is appended to the last run. Lengths are counted in
// runes.
//
//	out := render.Redistribute([]int{3, 3}, "01/01/2025")
//	// out == []string{"01/", "01/2025"}
//
// This package imports the xml types but never the invoice package.
package render
