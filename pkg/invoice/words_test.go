package invoice

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Only"},
		{"0.00", "Zero Only"},
		{"0.001", "Zero Only"},
		{"1", "One Only"},
		{"10", "Ten Only"},
		{"19", "Nineteen Only"},
		{"20", "Twenty Only"},
		{"45", "Forty Five Only"},
		{"100", "One Hundred Only"},
		{"101", "One Hundred and One Only"},
		{"999", "Nine Hundred and Ninety Nine Only"},
		{"1000", "One Thousand Only"},
		{"100000", "One Lakh Only"},
		{"10000000", "One Crore Only"},
		{"1234567.89", "Twelve Lakh Thirty Four Thousand Five Hundred and Sixty Seven and Eighty Nine Paise Only"},
		{"98765432.1", "Nine Crore Eighty Seven Lakh Sixty Five Thousand Four Hundred and Thirty Two and Ten Paise Only"},
		{"0.5", "Zero and Fifty Paise Only"},
		{"0.29", "Zero and Twenty Nine Paise Only"},
		{"2.999", "Three Only"},
		{"1.005", "One and One Paise Only"},
		{"200050", "Two Lakh Fifty Only"},
		{"10000000000", "One Thousand Crore Only"},
		{"100000000000000000", "One Thousand Crore Crore Only"},
		{"10000000000000000.5", "One Hundred Crore Crore and Fifty Paise Only"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := AmountToWords(decimal.RequireFromString(tt.amount))
			if got != tt.want {
				t.Errorf("AmountToWords(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestAmountToWords_NegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative amount")
		}
	}()
	AmountToWords(decimal.NewFromInt(-1))
}

func TestAmountToWords_AboveMaxPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for an amount at MaxAmount")
		}
	}()
	AmountToWords(MaxAmount)
}

func TestAmountToWords_LargestAccepted(t *testing.T) {
	amount, err := ParseAmount("999999999999999999")
	if err != nil {
		t.Fatal(err)
	}
	want := "Nine Thousand Nine Hundred and Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine" +
		" Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine Only"
	if got := AmountToWords(amount); got != want {
		t.Errorf("AmountToWords(%s) = %q, want %q", amount, got, want)
	}
}

func TestBelowThousand(t *testing.T) {
	tests := map[int]string{
		0:   "",
		7:   "Seven",
		13:  "Thirteen",
		30:  "Thirty",
		99:  "Ninety Nine",
		500: "Five Hundred",
		512: "Five Hundred and Twelve",
	}
	for n, want := range tests {
		if got := BelowThousand(n); got != want {
			t.Errorf("BelowThousand(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestDecompose(t *testing.T) {
	g := Decompose(123456789)
	want := IndianGroups{Crore: 12, Lakh: 34, Thousand: 56, Units: 789}
	if g != want {
		t.Errorf("Decompose(123456789) = %+v, want %+v", g, want)
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := []int64{0, 1, 999, 1000, 99999, 100000, 9999999, 10000000, 999999999}
	for i := 0; i < 1000; i++ {
		values = append(values, rng.Int63n(1_000_000_000))
	}

	for _, r := range values {
		g := Decompose(r)
		if g.Sum() != r {
			t.Fatalf("Decompose(%d).Sum() = %d", r, g.Sum())
		}
		if g.Lakh > 99 || g.Thousand > 99 || g.Units > 999 || g.Crore > 99 {
			t.Fatalf("Decompose(%d) = %+v has a group out of range", r, g)
		}
	}
}

func TestAmountToWords_GroupsOmittedWhenZero(t *testing.T) {
	got := AmountToWords(decimal.NewFromInt(10000005))
	if strings.Contains(got, "Lakh") || strings.Contains(got, "Thousand") {
		t.Errorf("zero groups rendered: %q", got)
	}
	if got != "One Crore Five Only" {
		t.Errorf("got %q", got)
	}
}
