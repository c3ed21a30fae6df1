package invoice

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// TemplateError represents a failure to load the invoice template
type TemplateError struct {
	Path  string
	Cause error
}

func (e *TemplateError) Error() string {
	if errors.Is(e.Cause, fs.ErrNotExist) {
		return fmt.Sprintf("template file %s not found", e.Path)
	}
	return fmt.Sprintf("template error for '%s': %v", e.Path, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// NewTemplateError creates a new template error
func NewTemplateError(path string, cause error) error {
	return &TemplateError{Path: path, Cause: cause}
}

// AmountError represents user input that is not a usable amount
type AmountError struct {
	Input string
	Cause error
}

func (e *AmountError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid amount %q: %v", e.Input, e.Cause)
	}
	return fmt.Sprintf("invalid amount %q", e.Input)
}

func (e *AmountError) Unwrap() error {
	return e.Cause
}

// NewAmountError creates a new amount error
func NewAmountError(input string, cause error) error {
	return &AmountError{Input: input, Cause: cause}
}

// ConversionError represents a failure while turning the filled document
// into a PDF. Output holds whatever the converter printed.
type ConversionError struct {
	Stage  string
	Output string
	Cause  error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("conversion failed during %s", e.Stage)
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += fmt.Sprintf(" (%s)", out)
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// NewConversionError creates a new conversion error
func NewConversionError(stage, output string, cause error) error {
	return &ConversionError{Stage: stage, Output: output, Cause: cause}
}

// DocumentError represents an error during document operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// MultiError collects multiple errors
type MultiError struct {
	errors []error
}

// NewMultiError creates a new multi-error collector
func NewMultiError() *MultiError {
	return &MultiError{}
}

// Add adds an error to the collection (ignores nil errors)
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	switch len(m.errors) {
	case 0:
		return nil
	case 1:
		return m.errors[0]
	}
	return m
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}
	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}

	parts := []string{fmt.Sprintf("%d errors occurred:", len(m.errors))}
	for i, err := range m.errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (m *MultiError) Unwrap() []error {
	return m.errors
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var contextParts []string
	for _, k := range keys {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, e.Context[k]))
	}

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

// IsMissingTemplate reports whether err means the template file does not exist
func IsMissingTemplate(err error) bool {
	var te *TemplateError
	return errors.As(err, &te) && errors.Is(te.Cause, fs.ErrNotExist)
}

// IsTemplateError checks if an error is a template error
func IsTemplateError(err error) bool {
	var te *TemplateError
	return errors.As(err, &te)
}

// IsInvalidAmount checks if an error is an amount error
func IsInvalidAmount(err error) bool {
	var ae *AmountError
	return errors.As(err, &ae)
}

// IsConversionError checks if an error is a conversion error
func IsConversionError(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}

// IsDocumentError checks if an error is a document error
func IsDocumentError(err error) bool {
	var de *DocumentError
	return errors.As(err, &de)
}
