// Package cli implements posctl, the operator's command line for the terminal.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/config"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for posctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "posctl",
		Short: "Operate an ACME Shop point-of-sale terminal",
		Long:  "posctl logs the operator in, browses the catalog and prices carts against the store backend.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			logging.SetOutput(cmd.ErrOrStderr())
			if opts.Verbose {
				logging.SetLevel("debug")
			} else {
				logging.SetLevel("warn")
			}

			opts.Config = config.Load()
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewTotalsCommand(opts))

	return cmd
}
