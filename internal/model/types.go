package model

// Template identifies the PDF template style rendered by the API
type Template string

// Supported templates
const (
	TemplateMinimal Template = "minimal"
	TemplateClassic Template = "classic"
	TemplateCompact Template = "compact"
)

// Defaults applied when the caller does not specify a value
const (
	DefaultUnit     = "C62" // UN/ECE "piece"
	DefaultVATRate  = 19.0
	DefaultCurrency = "EUR"
	DefaultLocale   = "en"
)

// DateLayout is the wire format for invoice dates (ISO-8601 date)
const DateLayout = "2006-01-02"

// Validation error codes emitted by the SDK and the API
const (
	CodeRequired = "REQUIRED"
)

// Party represents the seller or buyer on an invoice.
// Only the name is required; the remaining fields are optional address,
// contact and tax attributes. The Peppol/Italian identifiers are used by
// country-specific compliance profiles.
type Party struct {
	Name               string `json:"name"`
	Street             string `json:"street,omitempty"`
	City               string `json:"city,omitempty"`
	PostalCode         string `json:"postalCode,omitempty"`
	Country            string `json:"country,omitempty"`
	VATID              string `json:"vatId,omitempty"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	PeppolID           string `json:"peppolId,omitempty"`
	CodiceFiscale      string `json:"codiceFiscale,omitempty"`
	CodiceDestinatario string `json:"codiceDestinatario,omitempty"`
	PEC                string `json:"pec,omitempty"`
}

// LineItem is a single position on an invoice
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	VATRate     float64 `json:"vatRate"`
}

// NewLineItem creates a line item with the default unit (C62) and VAT rate (19%)
func NewLineItem(description string, quantity, unitPrice float64) LineItem {
	return LineItem{
		Description: description,
		Quantity:    quantity,
		Unit:        DefaultUnit,
		UnitPrice:   unitPrice,
		VATRate:     DefaultVATRate,
	}
}

// PaymentInfo holds optional payment instructions printed on the invoice
type PaymentInfo struct {
	IBAN      string `json:"iban,omitempty"`
	BIC       string `json:"bic,omitempty"`
	Terms     string `json:"terms,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// Customization holds optional PDF appearance settings
type Customization struct {
	LogoBase64  string `json:"logoBase64,omitempty"`
	LogoWidthMm int    `json:"logoWidthMm,omitempty"`
	FooterText  string `json:"footerText,omitempty"`
	AccentColor string `json:"accentColor,omitempty"`
}

// Present reports whether the customization carries any content worth
// sending. A logo width on its own does not count; it only qualifies an
// accompanying logo.
func (c Customization) Present() bool {
	return c.LogoBase64 != "" || c.FooterText != "" || c.AccentColor != ""
}

// InvoiceData is the complete invoice payload of a generate request
type InvoiceData struct {
	Number   string       `json:"number"`
	Date     string       `json:"date"`
	DueDate  string       `json:"dueDate,omitempty"`
	Seller   Party        `json:"seller"`
	Buyer    Party        `json:"buyer"`
	Items    []LineItem   `json:"items"`
	Payment  *PaymentInfo `json:"payment,omitempty"`
	Currency string       `json:"currency"`
}

// GenerateRequest is the request body for POST /v1/generate
type GenerateRequest struct {
	Template      Template       `json:"template"`
	Locale        string         `json:"locale"`
	Invoice       InvoiceData    `json:"invoice"`
	Customization *Customization `json:"customization,omitempty"`
}

// ValidationError describes a single problem with an invoice field,
// addressed by a JSONPath-like string such as "$.invoice.number".
type ValidationError struct {
	Path     string `json:"path"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity,omitempty"`
}

// ValidationResult is the compliance verdict the API reports for a
// generated document
type ValidationResult struct {
	Status   string   `json:"status"`
	Profile  string   `json:"profile"`
	Version  string   `json:"version"`
	Warnings []string `json:"warnings,omitempty"`
}

// AccountInfo reports the account's remaining quota and plan
type AccountInfo struct {
	Remaining      int    `json:"remaining"`
	Plan           string `json:"plan"`
	OverageCount   *int   `json:"overageCount,omitempty"`
	OverageAllowed *int   `json:"overageAllowed,omitempty"`
	Warning        string `json:"warning,omitempty"`
}

// GenerateResponse is the 200 body of POST /v1/generate
type GenerateResponse struct {
	PDFBase64  string           `json:"pdf_base64"`
	Filename   string           `json:"filename"`
	Validation ValidationResult `json:"validation"`
	Account    *AccountInfo     `json:"account,omitempty"`
}

// ErrorResponse is the body shape of every non-2xx API response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details []ValidationError `json:"details,omitempty"`
}
