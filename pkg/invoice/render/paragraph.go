package render

import (
	"github.com/benjaminschreck/go-invoice/pkg/invoice/xml"
)

// Slot pairs the text of one run with its formatting handle
type Slot struct {
	Text   string
	Handle []byte
}

// ExtractSlots returns the text-bearing runs of a paragraph as slots, in order
func ExtractSlots(para *xml.Paragraph) []Slot {
	runs := para.TextRuns()
	slots := make([]Slot, len(runs))
	for i, r := range runs {
		slots[i] = Slot{Text: r.GetText(), Handle: r.Properties}
	}
	return slots
}

// Concat joins the slot texts
func Concat(slots []Slot) string {
	n := 0
	for _, s := range slots {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range slots {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// Allocate computes the new slot texts after replacing the first occurrence
// of token in the concatenated text. Handles are carried over untouched.
// It reports false when the token is absent.
func Allocate(slots []Slot, token, value string) ([]Slot, bool) {
	full := Concat(slots)
	replaced, ok := ReplaceFirst(full, token, value)
	if !ok {
		return slots, false
	}

	texts := make([]string, len(slots))
	for i, s := range slots {
		texts[i] = s.Text
	}
	pieces := Redistribute(RuneLengths(texts), replaced)

	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = Slot{Text: pieces[i], Handle: s.Handle}
	}
	return out, true
}

// SetRunText writes text into a run, spreading it over the run's text
// elements with the same length preserving rule used across runs.
func SetRunText(run *xml.Run, text string) {
	if len(run.Texts) == 0 {
		return
	}
	if len(run.Texts) == 1 {
		run.Texts[0].Set(text)
		return
	}
	current := make([]string, len(run.Texts))
	for i, t := range run.Texts {
		current[i] = t.Value
	}
	pieces := Redistribute(RuneLengths(current), text)
	for i, t := range run.Texts {
		t.Set(pieces[i])
	}
}

// ReplaceInParagraph replaces the first occurrence of token in the paragraph
// text and writes the result back across the existing runs. It returns the
// paragraph text before and after, and false when the token was not found.
func ReplaceInParagraph(para *xml.Paragraph, token, value string) (before, after string, ok bool) {
	slots := ExtractSlots(para)
	allocated, ok := Allocate(slots, token, value)
	if !ok {
		return "", "", false
	}

	runs := para.TextRuns()
	for i, run := range runs {
		if allocated[i].Text != slots[i].Text {
			SetRunText(run, allocated[i].Text)
		}
	}
	return Concat(slots), Concat(allocated), true
}
