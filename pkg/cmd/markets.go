package cmd

import (
	"context"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(marketsCmd)
}

// go run ./cmd/poloniex markets
var marketsCmd = &cobra.Command{
	Use:          "markets",
	Short:        "List the tradable markets with their last prices",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ex := newExchange()

		markets, err := ex.QueryMarkets(ctx)
		if err != nil {
			return err
		}

		tickers, err := ex.QueryTickers(ctx)
		if err != nil {
			return err
		}

		pairs := make([]string, 0, len(markets))
		for pair := range markets {
			pairs = append(pairs, pair)
		}
		sort.Strings(pairs)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Pair", "Last Price", "Volume"})
		for _, pair := range pairs {
			market := markets[pair]
			ticker, ok := tickers[pair]
			if !ok {
				continue
			}

			// display formatting only; all arithmetic stays on the
			// fixed-point values
			t.AppendRow(table.Row{
				pair,
				market.QuoteCurrencyFormatter().FormatMoney(ticker.Last.Float64()),
				market.BaseCurrencyFormatter().FormatMoney(ticker.BaseVolume.Float64()),
			})
		}
		t.Render()
		return nil
	},
}
