package api

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rezonia/envoice-go/internal/model"
)

// InvoiceResult is the outcome of a generate call: exactly one of
// *InvoiceSuccess or *InvoiceFailure. Everything that is neither a
// generated document nor a list of correctable field errors is reported
// as an error return instead.
type InvoiceResult interface {
	// Success reports whether the invoice was generated
	Success() bool

	sealed()
}

// InvoiceSuccess holds a generated invoice. The PDF stays base64-encoded
// as received; accessors decode on demand.
type InvoiceSuccess struct {
	PDFBase64  string
	Filename   string
	Validation model.ValidationResult
	Account    *model.AccountInfo
}

func (s *InvoiceSuccess) Success() bool { return true }
func (s *InvoiceSuccess) sealed()       {}

// ToBytes decodes the PDF payload
func (s *InvoiceSuccess) ToBytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s.PDFBase64)
	if err != nil {
		return nil, fmt.Errorf("decode pdf payload: %w", err)
	}
	return data, nil
}

// ToDataURL returns the PDF as a data URL without decoding it
func (s *InvoiceSuccess) ToDataURL() string {
	return "data:application/pdf;base64," + s.PDFBase64
}

// SavePDF writes the decoded PDF to path, creating intermediate
// directories as needed
func (s *InvoiceSuccess) SavePDF(path string) error {
	data, err := s.ToBytes()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// InvoiceFailure holds the field-level validation errors that prevented
// generation, in the order they were diagnosed.
type InvoiceFailure struct {
	Errors []model.ValidationError
}

func (f *InvoiceFailure) Success() bool { return false }
func (f *InvoiceFailure) sealed()       {}

// UserMessage renders the errors one per line for display to end users
func (f *InvoiceFailure) UserMessage() string {
	lines := make([]string, 0, len(f.Errors))
	for _, e := range f.Errors {
		lines = append(lines, fmt.Sprintf("- %s: %s", e.Path, e.Message))
	}
	return strings.Join(lines, "\n")
}
