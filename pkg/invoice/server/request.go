package server

import (
	"errors"
	"reflect"
	"strings"

	"github.com/benjaminschreck/go-invoice/pkg/invoice"
	"github.com/go-playground/validator/v10"
)

// InvoiceRequest is the submitted form. It binds from a urlencoded form or
// a JSON body. Amount is free text: a value that is not a valid amount is
// printed as typed and its words fall back to the currency label.
type InvoiceRequest struct {
	Date        string `form:"date" json:"date" validate:"max=32"`
	Reference   string `form:"reference" json:"reference" validate:"max=64"`
	Name        string `form:"name" json:"name" validate:"max=200"`
	Amount      string `form:"amount" json:"amount" validate:"max=64"`
	PaymentMode string `form:"payment_mode" json:"payment_mode" validate:"omitempty,oneof=NEFT RTGS CHEQUE"`
	AmountWords string `form:"amount_words" json:"amount_words" validate:"max=500"`
}

func (r *InvoiceRequest) normalize() {
	r.Date = strings.TrimSpace(r.Date)
	r.Reference = strings.TrimSpace(r.Reference)
	r.Name = strings.TrimSpace(r.Name)
	r.Amount = strings.TrimSpace(r.Amount)
	r.PaymentMode = strings.ToUpper(strings.TrimSpace(r.PaymentMode))
	r.AmountWords = strings.TrimSpace(r.AmountWords)
}

// Fields converts a validated request
func (r InvoiceRequest) Fields() invoice.Fields {
	mode, err := invoice.ParsePaymentMode(r.PaymentMode)
	if err != nil {
		mode = invoice.PaymentModes[0]
	}
	return invoice.Fields{
		Date:        r.Date,
		Reference:   r.Reference,
		Name:        r.Name,
		Amount:      r.Amount,
		PaymentMode: mode,
		AmountWords: r.AmountWords,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Server) validateRequest(req InvoiceRequest) []ErrorMessage {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ErrorMessage{BuildErrorMessage(ErrcodeInvalidRequest, nil, err.Error())}
	}

	msgs := make([]ErrorMessage, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		var vals []string
		if fe.Param() != "" {
			vals = strings.Fields(fe.Param())
		}
		msgs = append(msgs, BuildErrorMessage(fe.Tag(), &field, vals...))
	}
	return msgs
}
