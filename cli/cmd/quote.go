package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/malusev998/currency-converter/mask"
)

func quote(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Print the current ask price",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := opts.deps.fetcher.FetchQuote(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", opts.deps.config.Quote.Pair, color.CyanString(mask.FormatResult(value)))

			return nil
		},
	}
}
