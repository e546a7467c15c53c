// Package envoice is the public API of the envoice.dev Go SDK.
//
// It builds structured invoice requests, validates required fields
// locally, submits them to the envoice API and maps the response into a
// typed success/failure result.
//
// Example usage:
//
//	client, err := envoice.NewClient(os.Getenv("ENVOICE_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Invoice().
//	    Number("2026-001").
//	    Date("2026-01-15").
//	    Seller(envoice.Party{Name: "Acme GmbH", VATID: "DE123456789"}).
//	    Buyer(envoice.Party{Name: "Customer AG", City: "München"}).
//	    AddLine("Consulting", 8, 150).
//	    Generate(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	switch r := result.(type) {
//	case *envoice.InvoiceSuccess:
//	    r.SavePDF("invoice.pdf")
//	case *envoice.InvoiceFailure:
//	    fmt.Println(r.UserMessage())
//	}
package envoice

import (
	"time"

	"github.com/rezonia/envoice-go/internal/api"
	"github.com/rezonia/envoice-go/internal/model"
)

// Re-export core types for the public API
type (
	Client         = api.Client
	ClientOption   = api.ClientOption
	InvoiceBuilder = api.InvoiceBuilder
	InvoiceResult  = api.InvoiceResult
	InvoiceSuccess = api.InvoiceSuccess
	InvoiceFailure = api.InvoiceFailure

	Party            = model.Party
	LineItem         = model.LineItem
	PaymentInfo      = model.PaymentInfo
	Customization    = model.Customization
	InvoiceData      = model.InvoiceData
	GenerateRequest  = model.GenerateRequest
	ValidationError  = model.ValidationError
	ValidationResult = model.ValidationResult
	AccountInfo      = model.AccountInfo
	Template         = model.Template

	APIError           = model.APIError
	QuotaExceededError = model.QuotaExceededError
	NetworkError       = model.NetworkError
)

// Re-export templates
const (
	TemplateMinimal = model.TemplateMinimal
	TemplateClassic = model.TemplateClassic
	TemplateCompact = model.TemplateCompact
)

// Re-export defaults
const (
	DefaultBaseURL  = api.DefaultBaseURL
	DefaultTimeout  = api.DefaultTimeout
	DefaultUnit     = model.DefaultUnit
	DefaultVATRate  = model.DefaultVATRate
	DefaultCurrency = model.DefaultCurrency
	DefaultLocale   = model.DefaultLocale
)

// NewClient creates an API client. The key is mandatory; construction
// fails on an empty or all-whitespace key.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	return api.NewClient(apiKey, opts...)
}

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return api.WithBaseURL(url)
}

// WithTimeout sets a custom per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return api.WithTimeout(timeout)
}

// NewLineItem creates a line item with the default unit and VAT rate
func NewLineItem(description string, quantity, unitPrice float64) LineItem {
	return model.NewLineItem(description, quantity, unitPrice)
}

// Config collects client settings for applications that read their
// configuration once at startup. Zero values fall back to the defaults;
// the resulting client is immutable, so there is no process-wide mutable
// configuration state.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewClientFromConfig creates a client from a configuration object
func NewClientFromConfig(cfg Config) (*Client, error) {
	opts := make([]ClientOption, 0, 2)
	if cfg.BaseURL != "" {
		opts = append(opts, api.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, api.WithTimeout(cfg.Timeout))
	}
	return api.NewClient(cfg.APIKey, opts...)
}
