package api

import (
	"context"
	"encoding/base64"
	"os"
	"time"

	"github.com/rezonia/envoice-go/internal/model"
)

// InvoiceBuilder accumulates invoice fields through a fluent chain,
// validates required fields locally and submits the request through the
// client it was created from. Every setter returns the receiver, so calls
// can be chained; the builder itself is not safe for concurrent use.
type InvoiceBuilder struct {
	client        *Client
	number        string
	date          string
	dueDate       string
	seller        *model.Party
	buyer         *model.Party
	items         []model.LineItem
	payment       *model.PaymentInfo
	currency      string
	template      model.Template
	locale        string
	customization model.Customization
}

func newInvoiceBuilder(client *Client) *InvoiceBuilder {
	return &InvoiceBuilder{
		client:   client,
		currency: model.DefaultCurrency,
		template: model.TemplateMinimal,
		locale:   model.DefaultLocale,
	}
}

// Number sets the invoice number
func (b *InvoiceBuilder) Number(value string) *InvoiceBuilder {
	b.number = value
	return b
}

// Date sets the invoice date as an ISO-8601 string (YYYY-MM-DD)
func (b *InvoiceBuilder) Date(value string) *InvoiceBuilder {
	b.date = value
	return b
}

// DateTime sets the invoice date from a time value
func (b *InvoiceBuilder) DateTime(value time.Time) *InvoiceBuilder {
	b.date = value.Format(model.DateLayout)
	return b
}

// DueDate sets the due date as an ISO-8601 string (YYYY-MM-DD)
func (b *InvoiceBuilder) DueDate(value string) *InvoiceBuilder {
	b.dueDate = value
	return b
}

// DueDateTime sets the due date from a time value
func (b *InvoiceBuilder) DueDateTime(value time.Time) *InvoiceBuilder {
	b.dueDate = value.Format(model.DateLayout)
	return b
}

// Seller sets the seller from a pre-built Party
func (b *InvoiceBuilder) Seller(party model.Party) *InvoiceBuilder {
	b.seller = &party
	return b
}

// SellerFunc sets the seller by mutating a fresh Party in place
func (b *InvoiceBuilder) SellerFunc(configure func(*model.Party)) *InvoiceBuilder {
	var party model.Party
	configure(&party)
	b.seller = &party
	return b
}

// Buyer sets the buyer from a pre-built Party
func (b *InvoiceBuilder) Buyer(party model.Party) *InvoiceBuilder {
	b.buyer = &party
	return b
}

// BuyerFunc sets the buyer by mutating a fresh Party in place
func (b *InvoiceBuilder) BuyerFunc(configure func(*model.Party)) *InvoiceBuilder {
	var party model.Party
	configure(&party)
	b.buyer = &party
	return b
}

// AddItem appends a line item
func (b *InvoiceBuilder) AddItem(item model.LineItem) *InvoiceBuilder {
	b.items = append(b.items, item)
	return b
}

// AddLine appends a line item with the default unit and VAT rate
func (b *InvoiceBuilder) AddLine(description string, quantity, unitPrice float64) *InvoiceBuilder {
	b.items = append(b.items, model.NewLineItem(description, quantity, unitPrice))
	return b
}

// AddItemFunc appends a line item by mutating a fresh default item
// (unit C62, VAT rate 19%) in place
func (b *InvoiceBuilder) AddItemFunc(configure func(*model.LineItem)) *InvoiceBuilder {
	item := model.LineItem{Unit: model.DefaultUnit, VATRate: model.DefaultVATRate}
	configure(&item)
	b.items = append(b.items, item)
	return b
}

// Items replaces the entire item list
func (b *InvoiceBuilder) Items(items []model.LineItem) *InvoiceBuilder {
	b.items = make([]model.LineItem, len(items))
	copy(b.items, items)
	return b
}

// Payment sets payment information
func (b *InvoiceBuilder) Payment(payment model.PaymentInfo) *InvoiceBuilder {
	b.payment = &payment
	return b
}

// Currency sets the invoice currency (default EUR)
func (b *InvoiceBuilder) Currency(value string) *InvoiceBuilder {
	b.currency = value
	return b
}

// Template sets the PDF template style
func (b *InvoiceBuilder) Template(value model.Template) *InvoiceBuilder {
	b.template = value
	return b
}

// Locale sets the label language (de, en, fr, es, it)
func (b *InvoiceBuilder) Locale(value string) *InvoiceBuilder {
	b.locale = value
	return b
}

// LogoBase64 sets the logo from a base64 string. A widthMm of 0 leaves
// the width unset.
func (b *InvoiceBuilder) LogoBase64(data string, widthMm int) *InvoiceBuilder {
	b.customization.LogoBase64 = data
	if widthMm > 0 {
		b.customization.LogoWidthMm = widthMm
	}
	return b
}

// LogoFile reads the file at path and sets it as the logo. Read failures
// are returned as-is, not converted into validation errors.
func (b *InvoiceBuilder) LogoFile(path string, widthMm int) (*InvoiceBuilder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	return b.LogoBase64(base64.StdEncoding.EncodeToString(data), widthMm), nil
}

// FooterText sets the PDF footer text
func (b *InvoiceBuilder) FooterText(text string) *InvoiceBuilder {
	b.customization.FooterText = text
	return b
}

// AccentColor sets the accent color (hex code)
func (b *InvoiceBuilder) AccentColor(color string) *InvoiceBuilder {
	b.customization.AccentColor = color
	return b
}

// Generate validates the accumulated fields and submits the invoice.
// Missing required fields produce an *InvoiceFailure without any network
// call; otherwise the call is delegated to the client verbatim.
func (b *InvoiceBuilder) Generate(ctx context.Context) (InvoiceResult, error) {
	request, failure := b.buildRequest()
	if failure != nil {
		return failure, nil
	}
	return b.client.GenerateInvoice(ctx, request)
}

// buildRequest runs all required-field checks in a fixed order, collecting
// every failure rather than stopping at the first one.
func (b *InvoiceBuilder) buildRequest() (*model.GenerateRequest, *InvoiceFailure) {
	var errs []model.ValidationError

	if b.number == "" {
		errs = append(errs, model.ValidationError{
			Path:    "$.invoice.number",
			Code:    model.CodeRequired,
			Message: "Invoice number is required",
		})
	}
	if b.date == "" {
		errs = append(errs, model.ValidationError{
			Path:    "$.invoice.date",
			Code:    model.CodeRequired,
			Message: "Invoice date is required",
		})
	}
	if b.seller == nil {
		errs = append(errs, model.ValidationError{
			Path:    "$.invoice.seller",
			Code:    model.CodeRequired,
			Message: "Seller information is required",
		})
	}
	if b.buyer == nil {
		errs = append(errs, model.ValidationError{
			Path:    "$.invoice.buyer",
			Code:    model.CodeRequired,
			Message: "Buyer information is required",
		})
	}
	if len(b.items) == 0 {
		errs = append(errs, model.ValidationError{
			Path:    "$.invoice.items",
			Code:    model.CodeRequired,
			Message: "At least one line item is required",
		})
	}

	if len(errs) > 0 {
		return nil, &InvoiceFailure{Errors: errs}
	}

	var customization *model.Customization
	if b.customization.Present() {
		c := b.customization
		customization = &c
	}

	return &model.GenerateRequest{
		Template: b.template,
		Locale:   b.locale,
		Invoice: model.InvoiceData{
			Number:   b.number,
			Date:     b.date,
			DueDate:  b.dueDate,
			Seller:   *b.seller,
			Buyer:    *b.buyer,
			Items:    b.items,
			Payment:  b.payment,
			Currency: b.currency,
		},
		Customization: customization,
	}, nil
}
