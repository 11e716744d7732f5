package service

import (
	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

// taxPlaces is the precision tax amounts are persisted with by the backend.
const taxPlaces = 2

// CalculateTax computes tax on a base amount, rounded half-up to cents.
func CalculateTax(base decimal.Decimal, taxRate decimal.Decimal) decimal.Decimal {
	return base.Mul(taxRate).Round(taxPlaces)
}

// Compute derives subtotal, tax and total from lines.
//
// Every line contributes to the subtotal. Only lines with TaxApplicable
// contribute to tax, each line's tax rounded to cents before it is summed.
// Quantities and prices are not validated here; see ValidateLineItem.
func Compute(lines []models.LineItem, taxRate decimal.Decimal) models.Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero

	for _, line := range lines {
		lineSubtotal := line.Subtotal()
		subtotal = subtotal.Add(lineSubtotal)
		if line.TaxApplicable {
			tax = tax.Add(CalculateTax(lineSubtotal, taxRate))
		}
	}

	return models.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
