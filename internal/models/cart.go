package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LineItem is one product entry of a sale cart or quote.
// Lines are keyed by ProductID; a product appears at most once.
type LineItem struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	TaxApplicable bool            `json:"tax_applicable"`
	Description   string          `json:"description,omitempty"`
}

// Subtotal is UnitPrice * Quantity, unrounded.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals is the subtotal/tax/total breakdown of a set of lines.
// Total is always exactly Subtotal + Tax.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Subtotal string `json:"subtotal"`
		Tax      string `json:"tax"`
		Total    string `json:"total"`
	}{
		Subtotal: t.Subtotal.StringFixed(2),
		Tax:      t.Tax.StringFixed(2),
		Total:    t.Total.StringFixed(2),
	})
}

func (t *Totals) UnmarshalJSON(data []byte) error {
	var raw struct {
		Subtotal decimal.Decimal `json:"subtotal"`
		Tax      decimal.Decimal `json:"tax"`
		Total    decimal.Decimal `json:"total"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Subtotal, t.Tax, t.Total = raw.Subtotal, raw.Tax, raw.Total
	return nil
}
