package cmd

import (
	"context"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/c9s/poloniex/pkg/types"
)

func init() {
	tradesCmd.Flags().String("pair", "", "pair to query, e.g. ETH/BTC")
	tradesCmd.Flags().String("since", "", "start time, RFC3339; defaults to 24 hours ago")
	tradesCmd.Flags().String("until", "", "end time, RFC3339; defaults to now")
	tradesCmd.Flags().Bool("market", false, "query the public market trades instead of the account's own")
	RootCmd.AddCommand(tradesCmd)
}

func parseTimeFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil || s == "" {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", name)
	}
	return &t, nil
}

// go run ./cmd/poloniex trades --pair=ETH/BTC --since=2017-10-01T00:00:00Z
var tradesCmd = &cobra.Command{
	Use:          "trades --pair PAIR [--since TIME] [--until TIME] [--market]",
	Short:        "Show trade history",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		pairStr, err := cmd.Flags().GetString("pair")
		if err != nil {
			return err
		}
		pair, err := types.ParsePair(pairStr)
		if err != nil {
			return err
		}

		since, err := parseTimeFlag(cmd, "since")
		if err != nil {
			return err
		}
		until, err := parseTimeFlag(cmd, "until")
		if err != nil {
			return err
		}

		ex := newExchange()

		var trades []types.Trade
		if market, _ := cmd.Flags().GetBool("market"); market {
			trades, err = ex.QueryMarketTrades(ctx, pair, since, until)
		} else {
			trades, err = ex.QueryTrades(ctx, pair, since, until)
		}
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Time", "Side", "Rate", "Amount", "Total", "Fee"})
		for _, trade := range trades {
			t.AppendRow(table.Row{
				trade.Time.String(),
				trade.Side,
				trade.Rate.String(),
				trade.Amount.String(),
				trade.Total.String(),
				trade.Fee.String(),
			})
		}
		t.Render()
		return nil
	},
}
