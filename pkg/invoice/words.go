package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	unitWords = [...]string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teenWords = [...]string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
		"Seventeen", "Eighteen", "Nineteen"}
	tensWords = [...]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

// IndianGroups is the decomposition of a rupee amount into the magnitude
// tiers of the Indian numbering system.
type IndianGroups struct {
	Crore    int64
	Lakh     int64
	Thousand int64
	Units    int64
}

// Decompose splits rupees into crore, lakh, thousand and a 0-999 remainder
func Decompose(rupees int64) IndianGroups {
	var g IndianGroups
	g.Crore = rupees / crore
	rupees %= crore
	g.Lakh = rupees / lakh
	rupees %= lakh
	g.Thousand = rupees / thousand
	g.Units = rupees % thousand
	return g
}

// Sum recomposes the rupee amount
func (g IndianGroups) Sum() int64 {
	return g.Crore*crore + g.Lakh*lakh + g.Thousand*thousand + g.Units
}

// BelowThousand renders 0-999 in words. Zero renders as the empty string.
func BelowThousand(n int) string {
	switch {
	case n <= 0:
		return ""
	case n < 10:
		return unitWords[n]
	case n < 20:
		return teenWords[n-10]
	case n < 100:
		if n%10 == 0 {
			return tensWords[n/10]
		}
		return tensWords[n/10] + " " + unitWords[n%10]
	case n < 1000:
		words := unitWords[n/100] + " Hundred"
		if rest := n % 100; rest != 0 {
			words += " and " + BelowThousand(rest)
		}
		return words
	}
	panic("invoice: BelowThousand called with a value above 999")
}

// rupeeWords renders a positive rupee amount group by group, largest first.
// Zero groups are omitted.
func rupeeWords(rupees int64) string {
	g := Decompose(rupees)
	parts := make([]string, 0, 4)
	if g.Crore > 0 {
		if g.Crore < thousand {
			parts = append(parts, BelowThousand(int(g.Crore))+" Crore")
		} else {
			parts = append(parts, rupeeWords(g.Crore)+" Crore")
		}
	}
	if g.Lakh > 0 {
		parts = append(parts, BelowThousand(int(g.Lakh))+" Lakh")
	}
	if g.Thousand > 0 {
		parts = append(parts, BelowThousand(int(g.Thousand))+" Thousand")
	}
	if g.Units > 0 {
		parts = append(parts, BelowThousand(int(g.Units)))
	}
	return strings.Join(parts, " ")
}

// AmountToWords converts a non-negative amount into its long-form words,
// e.g. 1234567.89 becomes "Twelve Lakh Thirty Four Thousand Five Hundred and
// Sixty Seven and Eighty Nine Paise Only". The amount is rounded to paise
// first. A zero amount yields "Zero Only".
//
// Negative amounts and amounts from MaxAmount up violate the precondition
// and cause a panic; use ParseAmount at the input boundary.
func AmountToWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		panic("invoice: AmountToWords called with a negative amount")
	}
	if amount.GreaterThanOrEqual(MaxAmount) {
		panic("invoice: AmountToWords called with an amount above MaxAmount")
	}

	amount = amount.Round(2)
	if amount.IsZero() {
		return "Zero Only"
	}

	rupeePart := amount.Truncate(0)
	rupees := rupeePart.IntPart()
	paise := amount.Sub(rupeePart).Shift(2).IntPart()

	text := "Zero"
	if rupees > 0 {
		text = rupeeWords(rupees)
	}
	if paise > 0 {
		text += " and " + BelowThousand(int(paise)) + " Paise"
	}
	return text + " Only"
}
