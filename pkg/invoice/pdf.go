package invoice

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

var errNoPages = errors.New("PDF has no pages")

// VerifyPDF checks that path holds a readable PDF and returns its page count
func VerifyPDF(path string) (pages int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, NewConversionError("verify", "", err)
	}

	// The reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			pages = 0
			err = NewConversionError("verify", "", fmt.Errorf("unreadable PDF: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, NewConversionError("verify", "", err)
	}
	pages = reader.NumPage()
	if pages == 0 {
		return 0, NewConversionError("verify", "", errNoPages)
	}
	return pages, nil
}
