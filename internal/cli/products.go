package cli

import (
	"fmt"
	"io"
	"net/url"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

// NewProductsCommand creates the products command.
func NewProductsCommand(rootOpts *RootOptions) *cobra.Command {
	var barcode string

	cmd := &cobra.Command{
		Use:   "products [search]",
		Short: "Search the catalog",
		Long: `List catalog products, optionally filtered by a search term.

Examples:
  posctl products
  posctl products cuaderno
  posctl products --barcode 7750000000011`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout())
			ctx := cmd.Context()

			client, cleanup, err := openClient(ctx, rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return f.Error(ErrCodeGeneric, err)
			}
			defer cleanup()

			var products []models.Product
			if barcode != "" {
				p, err := client.GetProductByBarcode(ctx, barcode)
				if err != nil {
					return f.Error(errorCode(err), err)
				}
				products = []models.Product{*p}
			} else {
				query := url.Values{}
				if len(args) == 1 {
					query.Set("search", args[0])
				}
				products, err = client.ListProducts(ctx, query)
				if err != nil {
					return f.Error(errorCode(err), err)
				}
			}

			return f.Success(products, func(w io.Writer) error {
				return renderProducts(w, products, rootOpts.Config.Business.CurrencySymbol)
			})
		},
	}

	cmd.Flags().StringVar(&barcode, "barcode", "", "look a product up by barcode")
	return cmd
}

func renderProducts(w io.Writer, products []models.Product, symbol string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSKU\tNAME\tPRICE\tIGV")
	for _, p := range products {
		igv := "no"
		if p.ApplyTax {
			igv = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s %s\t%s\n", p.ID, p.SKU, p.Name, symbol, p.Price.StringFixed(2), igv)
	}
	return tw.Flush()
}
