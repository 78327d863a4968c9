package poloniex

import (
	"context"

	"github.com/pkg/errors"

	"github.com/c9s/poloniex/pkg/fixedpoint"
	"github.com/c9s/poloniex/pkg/types"
)

// BalanceOptions select which account and which availability a balance query
// covers. The defaults are the exchange account and full balances.
type BalanceOptions struct {
	Account      types.AccountType
	Availability types.BalanceType
}

type BalanceOption func(*BalanceOptions)

func WithAccount(account types.AccountType) BalanceOption {
	return func(o *BalanceOptions) {
		o.Account = account
	}
}

func WithAvailability(availability types.BalanceType) BalanceOption {
	return func(o *BalanceOptions) {
		o.Availability = availability
	}
}

func newBalanceOptions(opts []BalanceOption) BalanceOptions {
	options := BalanceOptions{
		Account:      types.AccountTypeExchange,
		Availability: types.BalanceTypeAll,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// QueryAccountBalances returns the non-zero balances selected by the given
// options. Availability all and on_order are served by the complete-balances
// endpoint, which only distinguishes the exchange account from the account
// union; availability available is served by the per-account endpoint and
// therefore supports every account type.
func (e *Exchange) QueryAccountBalances(ctx context.Context, opts ...BalanceOption) (types.BalanceMap, error) {
	options := newBalanceOptions(opts)

	balances, err := e.queryBalances(ctx, options)
	e.trace("QueryAccountBalances", map[string]interface{}{
		"account":      string(options.Account),
		"availability": string(options.Availability),
	}, balances, err)
	return balances, err
}

func (e *Exchange) queryBalances(ctx context.Context, options BalanceOptions) (types.BalanceMap, error) {
	switch options.Availability {
	case types.BalanceTypeAll, types.BalanceTypeOnOrder:
		return e.queryCompleteBalances(ctx, options)

	case types.BalanceTypeAvailable:
		return e.queryAvailableBalances(ctx, options)
	}

	return nil, errors.Errorf("unknown balance availability %q", options.Availability)
}

func (e *Exchange) queryCompleteBalances(ctx context.Context, options BalanceOptions) (types.BalanceMap, error) {
	var account string
	switch options.Account {
	case types.AccountTypeExchange:
		// the endpoint default
	case types.AccountTypeAll:
		account = "all"
	default:
		return nil, errors.Wrapf(ErrNotSupported,
			"complete balances for the %s account are not reported by the exchange", options.Account)
	}

	raws, err := e.client.TradeService.CompleteBalances(ctx, account)
	if err != nil {
		return nil, err
	}

	balances := types.BalanceMap{}
	for currency, raw := range raws {
		balance := types.Balance{Currency: currency}
		switch options.Availability {
		case types.BalanceTypeAll:
			balance.Available = raw.Available
			balance.Locked = raw.OnOrders
		case types.BalanceTypeOnOrder:
			balance.Locked = raw.OnOrders
		}

		if balance.Total().IsZero() {
			continue
		}
		balances[currency] = balance
	}
	return balances, nil
}

func (e *Exchange) queryAvailableBalances(ctx context.Context, options BalanceOptions) (types.BalanceMap, error) {
	var account string
	if options.Account != types.AccountTypeAll {
		account = string(options.Account)
	}

	wallets, err := e.client.TradeService.AvailableAccountBalances(ctx, account)
	if err != nil {
		return nil, err
	}

	balances := types.BalanceMap{}
	for _, wallet := range wallets {
		for currency, amount := range wallet {
			if amount.IsZero() {
				continue
			}

			balance := balances[currency]
			balance.Currency = currency
			balance.Available = balance.Available.Add(amount)
			balances[currency] = balance
		}
	}
	return balances, nil
}

// QueryBalance returns a single currency's balance under the given options.
// A currency the exchange does not list yields ErrCurrencyNotFound; a listed
// currency the account simply never held yields zero.
func (e *Exchange) QueryBalance(ctx context.Context, currency string, opts ...BalanceOption) (fixedpoint.Value, error) {
	balances, err := e.QueryAccountBalances(ctx, opts...)
	if err != nil {
		return fixedpoint.Zero, err
	}

	if balance, ok := balances[currency]; ok {
		return balance.Total(), nil
	}

	known, err := e.knownCurrency(ctx, currency)
	if err != nil {
		return fixedpoint.Zero, err
	}
	if !known {
		return fixedpoint.Zero, errors.Wrap(ErrCurrencyNotFound, currency)
	}
	return fixedpoint.Zero, nil
}
