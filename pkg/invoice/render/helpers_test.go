package render

import (
	"reflect"
	"testing"

	"github.com/benjaminschreck/go-invoice/pkg/invoice/xml"
)

func TestReplaceFirst(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		token  string
		value  string
		want   string
		wantOK bool
	}{
		{"absent", "Dear [Name]", "[Date]", "x", "Dear [Name]", false},
		{"present", "Dear [Name],", "[Name]", "Asha", "Dear Asha,", true},
		{"first occurrence only", "[Name] and [Name]", "[Name]", "A", "A and [Name]", true},
		{"empty token never matches", "abc", "", "x", "abc", false},
		{"value may be empty", "a[Amount]b", "[Amount]", "", "ab", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReplaceFirst(tt.text, tt.token, tt.value)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ReplaceFirst() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRedistribute(t *testing.T) {
	tests := []struct {
		name    string
		lengths []int
		text    string
		want    []string
	}{
		{"split token grows", []int{3, 3}, "01/01/2025", []string{"01/", "01/2025"}},
		{"shrinks leaves trailing runs empty", []int{4, 6, 5}, "Dear Asha", []string{"Dear", " Asha", ""}},
		{"exact fit", []int{2, 2}, "abcd", []string{"ab", "cd"}},
		{"empty text", []int{2, 2}, "", []string{"", ""}},
		{"zero length run in the middle", []int{1, 0, 1}, "xyz", []string{"x", "", "yz"}},
		{"no runs", nil, "abc", []string{}},
		{"multibyte runes are never split", []int{1, 1}, "₹१०", []string{"₹", "१०"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Redistribute(tt.lengths, tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Redistribute(%v, %q) = %q, want %q", tt.lengths, tt.text, got, tt.want)
			}
		})
	}
}

func paragraph(texts ...string) *xml.Paragraph {
	p := &xml.Paragraph{}
	for _, s := range texts {
		p.Runs = append(p.Runs, &xml.Run{
			Properties: []byte("<w:rPr/>"),
			Texts:      []*xml.Text{xml.NewText(s)},
		})
	}
	return p
}

func runTexts(p *xml.Paragraph) []string {
	out := make([]string, len(p.Runs))
	for i, r := range p.Runs {
		out[i] = r.GetText()
	}
	return out
}

func TestReplaceInParagraph(t *testing.T) {
	t.Run("split run token", func(t *testing.T) {
		p := paragraph("[Da", "te]")
		before, after, ok := ReplaceInParagraph(p, "[Date]", "01/01/2025")
		if !ok {
			t.Fatal("expected replacement")
		}
		if before != "[Date]" || after != "01/01/2025" {
			t.Errorf("before/after = %q/%q", before, after)
		}
		if got := runTexts(p); !reflect.DeepEqual(got, []string{"01/", "01/2025"}) {
			t.Errorf("runs = %q", got)
		}
		if p.GetText() != "01/01/2025" {
			t.Errorf("text = %q", p.GetText())
		}
	})

	t.Run("absent token leaves runs untouched", func(t *testing.T) {
		p := paragraph("Hello ", "world")
		if _, _, ok := ReplaceInParagraph(p, "[Name]", "x"); ok {
			t.Fatal("unexpected replacement")
		}
		for _, r := range p.Runs {
			for _, txt := range r.Texts {
				if txt.Changed() {
					t.Errorf("text %q marked changed", txt.Value)
				}
			}
		}
	})

	t.Run("runs without text are skipped", func(t *testing.T) {
		p := paragraph("Pay ", "[Amount]")
		p.Runs = append(p.Runs, &xml.Run{})
		if _, _, ok := ReplaceInParagraph(p, "[Amount]", "1,00,000"); !ok {
			t.Fatal("expected replacement")
		}
		if got := p.Runs[1].GetText(); got != "1,00,000" {
			t.Errorf("second run = %q", got)
		}
	})

	t.Run("formatting handles are kept", func(t *testing.T) {
		p := paragraph("[Na", "me]")
		p.Runs[1].Properties = []byte("<w:rPr><w:b/></w:rPr>")
		ReplaceInParagraph(p, "[Name]", "Ravi Kumar")
		if string(p.Runs[1].Properties) != "<w:rPr><w:b/></w:rPr>" {
			t.Errorf("handle changed to %q", p.Runs[1].Properties)
		}
	})

	t.Run("multiple segments in one run", func(t *testing.T) {
		p := &xml.Paragraph{Runs: []*xml.Run{{
			Texts: []*xml.Text{xml.NewText("[Pay"), xml.NewText("ment Mode]")},
		}}}
		ReplaceInParagraph(p, "[Payment Mode]", "NEFT")
		if p.Runs[0].Texts[0].Value != "NEFT" || p.Runs[0].Texts[1].Value != "" {
			t.Errorf("segments = %q, %q", p.Runs[0].Texts[0].Value, p.Runs[0].Texts[1].Value)
		}
	})
}

func TestAllocateIsPure(t *testing.T) {
	slots := []Slot{{Text: "[Da", Handle: []byte("a")}, {Text: "te]", Handle: []byte("b")}}
	out, ok := Allocate(slots, "[Date]", "today")
	if !ok {
		t.Fatal("expected allocation")
	}
	if slots[0].Text != "[Da" || slots[1].Text != "te]" {
		t.Error("input slots were modified")
	}
	if out[0].Text != "tod" || out[1].Text != "ay" {
		t.Errorf("allocation = %q, %q", out[0].Text, out[1].Text)
	}
	if string(out[1].Handle) != "b" {
		t.Errorf("handle = %q", out[1].Handle)
	}
}
