package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/service"
)

// CartFile is the YAML layout read by `posctl totals`.
type CartFile struct {
	TaxRate string         `yaml:"tax_rate"`
	Lines   []CartFileLine `yaml:"lines"`
}

type CartFileLine struct {
	ProductID int64  `yaml:"product_id"`
	Name      string `yaml:"name"`
	UnitPrice string `yaml:"unit_price"`
	Quantity  int    `yaml:"quantity"`
	Taxable   bool   `yaml:"taxable"`
}

// NewTotalsCommand creates the totals command.
func NewTotalsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "totals <cart.yaml>",
		Short: "Price a cart file offline",
		Long: `Compute subtotal, IGV and total for a cart described in YAML.

The tax rate comes from the file's tax_rate, falling back to TAX_RATE.

Example cart:
  lines:
    - product_id: 1
      name: Cuaderno A4
      unit_price: "100.00"
      quantity: 2
      taxable: true`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTotals(rootOpts, args[0], cmd)
		},
	}
}

func runTotals(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout())

	cart, err := LoadCartFile(path)
	if err != nil {
		return f.Error(ErrCodeInput, err)
	}

	rate := opts.Config.Business.TaxRate
	if cart.TaxRate != "" {
		if rate, err = decimal.NewFromString(cart.TaxRate); err != nil || rate.IsNegative() {
			return f.Error(ErrCodeInput, fmt.Errorf("invalid tax_rate %q", cart.TaxRate))
		}
	}

	lines, err := cart.LineItems()
	if err != nil {
		return f.Error(ErrCodeInput, err)
	}

	receipt := &Receipt{
		Lines:          lines,
		Totals:         service.Compute(lines, rate),
		TaxRate:        rate,
		Currency:       opts.Config.Business.Currency,
		CurrencySymbol: opts.Config.Business.CurrencySymbol,
	}

	return f.Success(receipt, func(w io.Writer) error {
		return RenderReceipt(w, receipt)
	})
}

// LoadCartFile reads and parses a YAML cart file.
func LoadCartFile(path string) (*CartFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cart file: %w", err)
	}

	var cart CartFile
	if err := yaml.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("parse cart file: %w", err)
	}
	if len(cart.Lines) == 0 {
		return nil, errors.New("cart file has no lines")
	}
	return &cart, nil
}

// LineItems converts the file's lines, validating each one.
func (c *CartFile) LineItems() ([]models.LineItem, error) {
	lines := make([]models.LineItem, 0, len(c.Lines))
	for i, l := range c.Lines {
		price, err := decimal.NewFromString(l.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid unit_price %q", i+1, l.UnitPrice)
		}

		item := models.LineItem{
			ProductID:     l.ProductID,
			Name:          l.Name,
			UnitPrice:     price,
			Quantity:      l.Quantity,
			TaxApplicable: l.Taxable,
		}
		if err := service.ValidateLineItem(item); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines = append(lines, item)
	}
	return lines, nil
}
