// Package money computes display totals for invoice line items.
//
// These figures are previews only: the authoritative VAT math happens
// server-side during generation, so nothing here feeds back into the
// request payload.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/envoice-go/internal/model"
)

// Zero is decimal zero
var Zero = decimal.Zero

// Totals holds the aggregated amounts of an item list
type Totals struct {
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Gross decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// FromFloat creates a decimal from a float amount
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// LineNet returns quantity * unitPrice rounded to 2 places
func LineNet(item model.LineItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Quantity).
		Mul(decimal.NewFromFloat(item.UnitPrice)).
		Round(2)
}

// LineVAT returns the VAT amount of a line, rounded to 2 places
func LineVAT(item model.LineItem) decimal.Decimal {
	return LineNet(item).
		Mul(decimal.NewFromFloat(item.VATRate)).
		Div(hundred).
		Round(2)
}

// Sum aggregates the net, VAT and gross amounts of the given items
func Sum(items []model.LineItem) Totals {
	totals := Totals{Net: Zero, VAT: Zero, Gross: Zero}
	for _, item := range items {
		totals.Net = totals.Net.Add(LineNet(item))
		totals.VAT = totals.VAT.Add(LineVAT(item))
	}
	totals.Gross = totals.Net.Add(totals.VAT)
	return totals
}

// Format renders an amount with two decimals and the currency code
func Format(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + " " + currency
}
