package invoice

import (
	"fmt"
	"strings"
	"time"
)

// Placeholder tokens expected in the invoice template
const (
	TokenDate         = "[Date]"
	TokenReference    = "[Reference Number]"
	TokenName         = "[Name]"
	TokenAmount       = "[Amount]"
	TokenPaymentMode  = "[Payment Mode]"
	TokenPaymentWords = "[Payment Words]"
)

// Tokens lists every placeholder in replacement order
var Tokens = []string{
	TokenDate,
	TokenReference,
	TokenName,
	TokenAmount,
	TokenPaymentMode,
	TokenPaymentWords,
}

// PaymentMode is how the invoice is settled
type PaymentMode string

const (
	PaymentNEFT   PaymentMode = "NEFT"
	PaymentRTGS   PaymentMode = "RTGS"
	PaymentCheque PaymentMode = "CHEQUE"
)

// PaymentModes lists the accepted modes; the first one is the default
var PaymentModes = []PaymentMode{PaymentNEFT, PaymentRTGS, PaymentCheque}

// ParsePaymentMode accepts a mode name in any letter case. An empty name
// selects NEFT.
func ParsePaymentMode(s string) (PaymentMode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return PaymentNEFT, nil
	}
	for _, m := range PaymentModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment mode %q (want NEFT, RTGS or CHEQUE)", s)
}

// Fields are the values collected for one invoice. Amount is the raw user
// input; AmountWords, when empty, is derived from it.
type Fields struct {
	Date        string
	Reference   string
	Name        string
	Amount      string
	PaymentMode PaymentMode
	AmountWords string
}

// Replacement pairs a token with the literal text that replaces it
type Replacement struct {
	Token string
	Value string
}

// DefaultDate formats now with the given Go time layout
func DefaultDate(now time.Time, layout string) string {
	return now.Format(layout)
}
