package cmd

import (
	"context"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/c9s/poloniex/pkg/fixedpoint"
	"github.com/c9s/poloniex/pkg/poloniex"
)

func init() {
	valuationCmd.Flags().String("quote", "BTC", "quote currency to value holdings in")
	valuationCmd.Flags().Bool("triangulate", false, "price holdings through intermediate markets when no direct market exists")
	valuationCmd.Flags().Bool("skip-unpricable", false, "drop holdings that cannot be priced instead of failing")
	RootCmd.AddCommand(valuationCmd)
}

// go run ./cmd/poloniex valuation --quote=BTC --triangulate
var valuationCmd = &cobra.Command{
	Use:          "valuation [--quote CURRENCY]",
	Short:        "Value all holdings in a quote currency",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		quote, err := cmd.Flags().GetString("quote")
		if err != nil {
			return err
		}

		var opts []poloniex.ValuationOption
		if triangulate, _ := cmd.Flags().GetBool("triangulate"); triangulate {
			opts = append(opts, poloniex.WithTriangulation())
		}
		if skip, _ := cmd.Flags().GetBool("skip-unpricable"); skip {
			opts = append(opts, poloniex.WithSkipUnpricable())
		}

		valuations, err := newExchange().QueryValuations(ctx, quote, opts...)
		if err != nil {
			return err
		}

		currencies := make([]string, 0, len(valuations))
		for currency := range valuations {
			currencies = append(currencies, currency)
		}
		sort.Strings(currencies)

		total := fixedpoint.Zero
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Currency", "Value (" + quote + ")"})
		for _, currency := range currencies {
			value := valuations[currency]
			total = total.Add(value)
			t.AppendRow(table.Row{currency, value.FormatString(8)})
		}
		t.AppendFooter(table.Row{"TOTAL", total.FormatString(8)})
		t.Render()
		return nil
	},
}
