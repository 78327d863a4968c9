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
	orderbookCmd.Flags().Int("depth", 20, "number of levels per side")
	RootCmd.AddCommand(orderbookCmd)
}

// go run ./cmd/poloniex orderbook ETH/BTC --depth 10
var orderbookCmd = &cobra.Command{
	Use:          "orderbook PAIR",
	Short:        "Show the order book of a pair",
	SilenceUsage: true,
	Args:         cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, err := cmd.Flags().GetInt("depth")
		if err != nil {
			return err
		}

		pair, err := types.ParsePair(args[0])
		if err != nil {
			return err
		}

		ctx := context.Background()
		ex := newExchange()

		book, err := ex.QueryOrderBook(ctx, pair, depth)
		if err != nil {
			return err
		}

		if bid, ok := book.BestBid(); ok {
			fmt.Printf("best bid: %s\n", bid.String())
		}
		if ask, ok := book.BestAsk(); ok {
			fmt.Printf("best ask: %s\n", ask.String())
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Bid Volume", "Bid", "Ask", "Ask Volume"})
		levels := len(book.Bids)
		if len(book.Asks) > levels {
			levels = len(book.Asks)
		}
		for i := 0; i < levels; i++ {
			row := table.Row{"", "", "", ""}
			if i < len(book.Bids) {
				row[0] = book.Bids[i].Volume.String()
				row[1] = book.Bids[i].Price.String()
			}
			if i < len(book.Asks) {
				row[2] = book.Asks[i].Price.String()
				row[3] = book.Asks[i].Volume.String()
			}
			t.AppendRow(row)
		}
		t.Render()
		return nil
	},
}
