package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c9s/poloniex/pkg/fixedpoint"
	"github.com/c9s/poloniex/pkg/types"
)

func init() {
	placeOrderCmd.Flags().String("pair", "", "pair to trade, e.g. ETH/BTC")
	placeOrderCmd.Flags().String("side", "", "buy or sell")
	placeOrderCmd.Flags().String("rate", "", "limit rate in the quote currency")
	placeOrderCmd.Flags().String("amount", "", "amount in the base currency")
	placeOrderCmd.Flags().Bool("margin", false, "place a margin order instead of an exchange order")
	placeOrderCmd.Flags().String("lending-rate", "", "maximum lending rate for margin orders")
	RootCmd.AddCommand(placeOrderCmd)
}

// go run ./cmd/poloniex place-order --pair=ETH/BTC --side=buy --rate=0.05 --amount=1 --confirm
var placeOrderCmd = &cobra.Command{
	Use:          "place-order --pair PAIR --side SIDE --rate RATE --amount AMOUNT",
	Short:        "Place a limit order",
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

		sideStr, err := cmd.Flags().GetString("side")
		if err != nil {
			return err
		}
		side, err := types.ParseSideType(sideStr)
		if err != nil {
			return err
		}

		rateStr, err := cmd.Flags().GetString("rate")
		if err != nil {
			return err
		}
		rate, err := fixedpoint.NewFromString(rateStr)
		if err != nil {
			return err
		}

		amountStr, err := cmd.Flags().GetString("amount")
		if err != nil {
			return err
		}
		amount, err := fixedpoint.NewFromString(amountStr)
		if err != nil {
			return err
		}

		order := types.SubmitOrder{
			Side:    side,
			Subtype: types.OrderSubtypeExchange,
			Pair:    pair,
			Rate:    rate,
			Amount:  amount,
		}

		if margin, _ := cmd.Flags().GetBool("margin"); margin {
			order.Subtype = types.OrderSubtypeMargin

			if lendingRateStr, _ := cmd.Flags().GetString("lending-rate"); lendingRateStr != "" {
				order.LendingRate, err = fixedpoint.NewFromString(lendingRateStr)
				if err != nil {
					return err
				}
			}
		}

		placed, err := newExchange().SubmitOrder(ctx, order)
		if err != nil {
			return err
		}

		fmt.Printf("order %d placed: %s, outstanding %s %s\n",
			placed.OrderID, placed.Status, placed.AmountOutstanding.String(), pair.Base)
		return nil
	},
}
