package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/c9s/poloniex/pkg/types"
)

func init() {
	RootCmd.AddCommand(tickerCmd)
}

// go run ./cmd/poloniex ticker ETH/BTC
var tickerCmd = &cobra.Command{
	Use:          "ticker [PAIR]",
	Short:        "Show the ticker of one pair, or of every market",
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ex := newExchange()

		if len(args) == 1 {
			pair, err := types.ParsePair(args[0])
			if err != nil {
				return err
			}

			ticker, err := ex.QueryTicker(ctx, pair)
			if err != nil {
				return err
			}

			fmt.Printf("%s last=%s bid=%s ask=%s volume=%s %s\n",
				ticker.Pair.String(),
				ticker.Last.String(),
				ticker.HighestBid.String(),
				ticker.LowestAsk.String(),
				ticker.QuoteVolume.String(), ticker.Pair.Quote)
			return nil
		}

		tickers, err := ex.QueryTickers(ctx)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Pair", "Last", "Bid", "Ask", "Change %"})
		for _, pair := range tickers.Pairs() {
			ticker := tickers[pair]
			t.AppendRow(table.Row{
				pair,
				ticker.Last.String(),
				ticker.HighestBid.String(),
				ticker.LowestAsk.String(),
				ticker.PercentChange.FormatString(2),
			})
		}
		t.Render()
		return nil
	},
}
