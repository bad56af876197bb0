package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/mask"
)

var (
	ErrMissingValue  = errors.New("value is required")
	ErrNegativeValue = errors.New("value must not be negative")
)

func parseMasked(name, value string) (float64, error) {
	if strings.HasPrefix(strings.TrimSpace(value), "-") {
		return 0, fmt.Errorf("--%s: %w", name, ErrNegativeValue)
	}

	if !mask.HasDigits(value) {
		return 0, fmt.Errorf("--%s: %w", name, ErrMissingValue)
	}

	return mask.MinorUnits(value), nil
}

func convert(opts *options) *cobra.Command {
	var amount, stateFee, paymentType string

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an amount using the current quote",
		Example: `  currency-converter convert --amount "$ 100,00" --state-fee "6,38 %" --type cash
  currency-converter convert --amount 10000 --state-fee 638 --type card`,
		RunE: func(cmd *cobra.Command, args []string) error {
			amountValue, err := parseMasked("amount", amount)
			if err != nil {
				return err
			}

			stateFeeValue, err := parseMasked("state-fee", stateFee)
			if err != nil {
				return err
			}

			conversion, err := opts.deps.service.Convert(cmd.Context(), converter.ConversionRequest{
				Amount:      amountValue,
				StateFee:    stateFeeValue,
				PaymentType: converter.ConvertToPaymentTypeFromString(paymentType),
			})

			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Amount:\t\t%s\n", mask.FormatAmount(amount))
			fmt.Fprintf(out, "State fee:\t%s\n", mask.FormatStateFee(stateFee))
			fmt.Fprintf(out, "Payment type:\t%s\n", conversion.PaymentType)
			fmt.Fprintf(out, "Quote:\t\t%s\n", mask.FormatResult(conversion.Quote))
			color.New(color.FgGreen, color.Bold).Fprintf(out, "Result:\t\t%s\n", mask.FormatResult(conversion.Result))

			return nil
		},
	}

	convertCmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount, masked (\"$ 100,00\") or in cents")
	convertCmd.Flags().StringVarP(&stateFee, "state-fee", "s", "", "State fee, masked (\"6,38 %\") or in hundredths of a percent")
	convertCmd.Flags().StringVarP(&paymentType, "type", "t", string(converter.Cash), "Payment type, cash or anything else for non-cash")

	_ = convertCmd.MarkFlagRequired("amount")
	_ = convertCmd.MarkFlagRequired("state-fee")

	return convertCmd
}
