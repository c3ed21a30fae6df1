package invoice

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	errNegativeAmount = errors.New("amount cannot be negative")
	errAmountTooLarge = errors.New("amount must be below 10^18")
)

// MaxAmount is the exclusive upper bound of an accepted amount. Every
// accepted amount has an integer rupee part that fits an int64.
var MaxAmount = decimal.New(1, 18)

// indianPrinter formats numbers with lakh/crore digit grouping
var indianPrinter = message.NewPrinter(language.MustParse("en-IN"))

// ParseAmount turns user input into a monetary amount. Surrounding spaces
// are ignored and an empty input is an absent amount, which reads as zero.
// Anything that is not a non-negative decimal below MaxAmount is an
// *AmountError.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, NewAmountError(raw, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, NewAmountError(raw, errNegativeAmount)
	}
	if amount.GreaterThanOrEqual(MaxAmount) {
		return decimal.Zero, NewAmountError(raw, errAmountTooLarge)
	}
	return amount, nil
}

// WordsField builds the value of the amount-in-words field: the currency
// label followed by the words. Invalid input falls back to the bare label so
// that the form keeps working while the user is still typing.
func WordsField(raw, label string) string {
	amount, err := ParseAmount(raw)
	if err != nil {
		return label
	}
	return label + " " + AmountToWords(amount)
}

// FormatAmount renders a non-negative amount with two decimals and Indian
// digit grouping, e.g. 12,34,567.89. The rupee digits are grouped as an
// integer so no digit is lost; amounts outside [0, MaxAmount) are printed
// ungrouped.
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.Round(2).StringFixed(2)
	if amount.IsNegative() || amount.GreaterThanOrEqual(MaxAmount) {
		return fixed
	}
	rupees, paise, _ := strings.Cut(fixed, ".")
	whole, err := strconv.ParseInt(rupees, 10, 64)
	if err != nil {
		return fixed
	}
	return indianPrinter.Sprint(number.Decimal(whole)) + "." + paise
}
