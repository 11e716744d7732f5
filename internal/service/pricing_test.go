package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

var igv = decimal.RequireFromString("0.18")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(id int64, price string, qty int, taxable bool) models.LineItem {
	return models.LineItem{ProductID: id, Name: "p", UnitPrice: dec(price), Quantity: qty, TaxApplicable: taxable}
}

func TestCompute_Empty(t *testing.T) {
	for _, rate := range []string{"0", "0.18", "1"} {
		got := Compute(nil, dec(rate))
		if !got.Subtotal.IsZero() || !got.Tax.IsZero() || !got.Total.IsZero() {
			t.Errorf("rate %s: expected zero totals, got %+v", rate, got)
		}
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		lines    []models.LineItem
		subtotal string
		tax      string
		total    string
	}{
		{
			name:     "mixed taxable and exempt",
			lines:    []models.LineItem{line(1, "100", 2, true), line(2, "50", 1, false)},
			subtotal: "250",
			tax:      "36",
			total:    "286",
		},
		{
			name:     "exempt only",
			lines:    []models.LineItem{line(1, "19.90", 3, false)},
			subtotal: "59.70",
			tax:      "0",
			total:    "59.70",
		},
		{
			name:     "line tax rounded half up",
			lines:    []models.LineItem{line(1, "0.25", 1, true)},
			subtotal: "0.25",
			tax:      "0.05",
			total:    "0.30",
		},
		{
			name:     "each line rounded before summing",
			lines:    []models.LineItem{line(1, "0.25", 1, true), line(2, "0.25", 1, true), line(3, "0.25", 1, true)},
			subtotal: "0.75",
			tax:      "0.15",
			total:    "0.90",
		},
		{
			name:     "fractional prices",
			lines:    []models.LineItem{line(1, "3.50", 4, true), line(2, "12.99", 2, true)},
			subtotal: "39.98",
			tax:      "7.20",
			total:    "47.18",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.lines, igv)

			if !got.Subtotal.Equal(dec(tt.subtotal)) {
				t.Errorf("subtotal: expected %s, got %s", tt.subtotal, got.Subtotal)
			}
			if !got.Tax.Equal(dec(tt.tax)) {
				t.Errorf("tax: expected %s, got %s", tt.tax, got.Tax)
			}
			if !got.Total.Equal(dec(tt.total)) {
				t.Errorf("total: expected %s, got %s", tt.total, got.Total)
			}
			if !got.Total.Equal(got.Subtotal.Add(got.Tax)) {
				t.Errorf("total %s is not subtotal %s + tax %s", got.Total, got.Subtotal, got.Tax)
			}
		})
	}
}

func TestCompute_ExemptLineNeverTaxed(t *testing.T) {
	base := []models.LineItem{line(1, "10", 1, true)}
	withExempt := append(base, line(2, "999.99", 7, false))

	a := Compute(base, igv)
	b := Compute(withExempt, igv)

	if !a.Tax.Equal(b.Tax) {
		t.Errorf("exempt line changed tax: %s -> %s", a.Tax, b.Tax)
	}
	if !b.Subtotal.Equal(a.Subtotal.Add(dec("6999.93"))) {
		t.Errorf("exempt line missing from subtotal: %s", b.Subtotal)
	}
}

func TestCompute_TotalIsSubtotalPlusTax(t *testing.T) {
	prices := []string{"0.01", "0.33", "1.05", "7.77", "10", "123.45"}
	for i, p := range prices {
		for qty := 1; qty <= 5; qty++ {
			lines := []models.LineItem{line(int64(i+1), p, qty, true), line(100, p, qty, qty%2 == 0)}
			got := Compute(lines, igv)
			if !got.Total.Equal(got.Subtotal.Add(got.Tax)) {
				t.Fatalf("price %s qty %d: total %s != %s + %s", p, qty, got.Total, got.Subtotal, got.Tax)
			}
		}
	}
}

func TestCalculateTax(t *testing.T) {
	if got := CalculateTax(dec("200"), igv); !got.Equal(dec("36")) {
		t.Errorf("expected 36, got %s", got)
	}
	if got := CalculateTax(dec("0.03"), igv); !got.Equal(dec("0.01")) {
		t.Errorf("expected 0.01, got %s", got)
	}
}
