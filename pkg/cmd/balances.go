package cmd

import (
	"context"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/c9s/poloniex/pkg/poloniex"
	"github.com/c9s/poloniex/pkg/types"
)

func init() {
	balancesCmd.Flags().String("account", "exchange", "account to query: all, exchange, margin, lending")
	balancesCmd.Flags().String("availability", "all", "availability filter: all, available, on_order")
	RootCmd.AddCommand(balancesCmd)
}

// go run ./cmd/poloniex balances --account=all
var balancesCmd = &cobra.Command{
	Use:          "balances [--account ACCOUNT] [--availability FILTER]",
	Short:        "Show account balances",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		accountStr, err := cmd.Flags().GetString("account")
		if err != nil {
			return err
		}
		account, err := types.ParseAccountType(accountStr)
		if err != nil {
			return err
		}

		availabilityStr, err := cmd.Flags().GetString("availability")
		if err != nil {
			return err
		}
		availability, err := types.ParseBalanceType(availabilityStr)
		if err != nil {
			return err
		}

		balances, err := newExchange().QueryAccountBalances(ctx,
			poloniex.WithAccount(account),
			poloniex.WithAvailability(availability))
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Currency", "Available", "On Orders", "Total"})
		for _, currency := range balances.Currencies() {
			balance := balances[currency]
			t.AppendRow(table.Row{
				balance.Currency,
				balance.Available.FormatString(8),
				balance.Locked.FormatString(8),
				balance.Total().FormatString(8),
			})
		}
		t.Render()
		return nil
	},
}
