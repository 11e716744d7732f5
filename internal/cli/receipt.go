package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

const (
	receiptWidth = 51
	nameWidth    = 24
)

// Receipt is a priced cart ready to be rendered.
type Receipt struct {
	Lines          []models.LineItem `json:"lines"`
	Totals         models.Totals     `json:"totals"`
	TaxRate        decimal.Decimal   `json:"tax_rate"`
	Currency       string            `json:"currency"`
	CurrencySymbol string            `json:"currency_symbol"`
}

// RenderReceipt writes a fixed-width receipt. Lines not subject to IGV are
// marked with an asterisk.
func RenderReceipt(w io.Writer, r *Receipt) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%3s  %-*s %10s %10s\n", "QTY", nameWidth, "ITEM", "PRICE", "AMOUNT")
	b.WriteString(strings.Repeat("-", receiptWidth) + "\n")

	exempt := false
	for _, line := range r.Lines {
		name := line.Name
		if !line.TaxApplicable {
			name = truncateRunes(name, nameWidth-2) + " *"
			exempt = true
		} else {
			name = truncateRunes(name, nameWidth)
		}
		fmt.Fprintf(&b, "%3d  %s %10s %10s\n",
			line.Quantity, padRunes(name, nameWidth),
			line.UnitPrice.StringFixed(2), line.Subtotal().StringFixed(2))
	}

	b.WriteString(strings.Repeat("-", receiptWidth) + "\n")
	writeTotal(&b, "SUBTOTAL", r.CurrencySymbol, r.Totals.Subtotal)
	writeTotal(&b, "IGV "+r.TaxRate.Shift(2).String()+"%", r.CurrencySymbol, r.Totals.Tax)
	writeTotal(&b, "TOTAL", r.CurrencySymbol, r.Totals.Total)

	if exempt {
		b.WriteString("* not subject to IGV\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// truncateRunes cuts s to at most n runes so multi-byte names stay valid UTF-8.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func padRunes(s string, width int) string {
	if pad := width - utf8.RuneCountInString(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func writeTotal(b *strings.Builder, label, symbol string, amount decimal.Decimal) {
	fmt.Fprintf(b, "%-30s %20s\n", label, symbol+" "+amount.StringFixed(2))
}
