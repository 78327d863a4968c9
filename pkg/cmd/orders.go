package cmd

import (
	"context"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/c9s/poloniex/pkg/types"
)

func init() {
	ordersCmd.Flags().String("pair", "", "limit to one pair, e.g. ETH/BTC")
	RootCmd.AddCommand(ordersCmd)
}

// go run ./cmd/poloniex orders --pair=ETH/BTC
var ordersCmd = &cobra.Command{
	Use:          "orders [--pair PAIR]",
	Short:        "List open orders",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ex := newExchange()

		pairStr, err := cmd.Flags().GetString("pair")
		if err != nil {
			return err
		}

		orders := map[string][]types.Order{}
		if pairStr != "" {
			pair, err := types.ParsePair(pairStr)
			if err != nil {
				return err
			}

			pairOrders, err := ex.QueryOpenOrders(ctx, pair)
			if err != nil {
				return err
			}
			orders[pair.String()] = pairOrders
		} else {
			orders, err = ex.QueryAllOpenOrders(ctx)
			if err != nil {
				return err
			}
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Order ID", "Pair", "Side", "Subtype", "Rate", "Outstanding", "Status"})
		for pair, pairOrders := range orders {
			for _, order := range pairOrders {
				t.AppendRow(table.Row{
					order.OrderID,
					pair,
					order.Side,
					order.Subtype,
					order.Rate.String(),
					order.AmountOutstanding.String(),
					order.Status,
				})
			}
		}
		t.Render()
		return nil
	},
}
