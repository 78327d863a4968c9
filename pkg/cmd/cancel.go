package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(cancelOrderCmd)
}

// go run ./cmd/poloniex cancel-order 514845991795 --confirm
var cancelOrderCmd = &cobra.Command{
	Use:          "cancel-order ORDER_ID",
	Short:        "Cancel an open order",
	SilenceUsage: true,
	Args:         cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		orderID, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return err
		}

		if err := newExchange().CancelOrder(ctx, orderID); err != nil {
			return err
		}

		fmt.Printf("order %d cancelled\n", orderID)
		return nil
	},
}
