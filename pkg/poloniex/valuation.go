package poloniex

import (
	"context"

	"github.com/pkg/errors"

	"github.com/c9s/poloniex/pkg/fixedpoint"
	"github.com/c9s/poloniex/pkg/pricesolver"
)

// ValuationOptions control how balances are valued in a quote currency.
type ValuationOptions struct {
	Balance BalanceOptions

	// Triangulation allows pricing a holding through intermediate markets
	// when no direct market against the quote currency exists.
	Triangulation bool

	// SkipUnpricable drops holdings that cannot be priced instead of
	// failing the whole valuation.
	SkipUnpricable bool
}

type ValuationOption func(*ValuationOptions)

// WithBalanceFilter applies balance options to the underlying balance query.
func WithBalanceFilter(opts ...BalanceOption) ValuationOption {
	return func(o *ValuationOptions) {
		for _, opt := range opts {
			opt(&o.Balance)
		}
	}
}

func WithTriangulation() ValuationOption {
	return func(o *ValuationOptions) {
		o.Triangulation = true
	}
}

func WithSkipUnpricable() ValuationOption {
	return func(o *ValuationOptions) {
		o.SkipUnpricable = true
	}
}

func newValuationOptions(opts []ValuationOption) ValuationOptions {
	options := ValuationOptions{
		Balance: newBalanceOptions(nil),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// QueryValuations values every held balance in the given quote currency
// using a single ticker snapshot. The result maps currency to its value in
// the quote currency; the quote currency itself is valued at face value.
// A holding with no usable market yields UnpricableAssetError unless
// SkipUnpricable is set.
func (e *Exchange) QueryValuations(ctx context.Context, quote string, opts ...ValuationOption) (map[string]fixedpoint.Value, error) {
	options := newValuationOptions(opts)

	balances, err := e.queryBalances(ctx, options.Balance)
	if err != nil {
		return nil, err
	}

	tickers, err := e.QueryTickers(ctx)
	if err != nil {
		return nil, err
	}

	solver := pricesolver.NewSimplePriceResolver()
	solver.UpdateFromTickers(tickers)

	valuations := make(map[string]fixedpoint.Value, len(balances))
	for currency, balance := range balances {
		price, ok := solver.ResolvePrice(currency, quote, options.Triangulation)
		if !ok {
			if options.SkipUnpricable {
				log.Warnf("skipping unpricable asset %s", currency)
				continue
			}
			return nil, &UnpricableAssetError{Currency: currency, Quote: quote}
		}
		valuations[currency] = balance.Total().Mul(price)
	}

	e.trace("QueryValuations", map[string]interface{}{"quote": quote}, valuations, nil)
	return valuations, nil
}

// QueryValuation returns the value of a single currency's holdings in the
// quote currency. Only the requested currency is priced, so other holdings
// with no usable market do not interfere. A currency the exchange does not
// list yields ErrCurrencyNotFound; a listed currency that is simply not held
// yields zero.
func (e *Exchange) QueryValuation(ctx context.Context, quote, currency string, opts ...ValuationOption) (fixedpoint.Value, error) {
	options := newValuationOptions(opts)

	balances, err := e.queryBalances(ctx, options.Balance)
	if err != nil {
		return fixedpoint.Zero, err
	}

	balance, held := balances[currency]
	if !held {
		known, err := e.knownCurrency(ctx, currency)
		if err != nil {
			return fixedpoint.Zero, err
		}
		if !known {
			return fixedpoint.Zero, errors.Wrap(ErrCurrencyNotFound, currency)
		}
		return fixedpoint.Zero, nil
	}

	tickers, err := e.QueryTickers(ctx)
	if err != nil {
		return fixedpoint.Zero, err
	}

	solver := pricesolver.NewSimplePriceResolver()
	solver.UpdateFromTickers(tickers)

	price, ok := solver.ResolvePrice(currency, quote, options.Triangulation)
	if !ok {
		if options.SkipUnpricable {
			return fixedpoint.Zero, nil
		}
		return fixedpoint.Zero, &UnpricableAssetError{Currency: currency, Quote: quote}
	}

	value := balance.Total().Mul(price)
	e.trace("QueryValuation", map[string]interface{}{
		"quote":    quote,
		"currency": currency,
	}, value, nil)
	return value, nil
}

// QueryTotalValuation returns the value of all held balances combined.
func (e *Exchange) QueryTotalValuation(ctx context.Context, quote string, opts ...ValuationOption) (fixedpoint.Value, error) {
	valuations, err := e.QueryValuations(ctx, quote, opts...)
	if err != nil {
		return fixedpoint.Zero, err
	}

	total := fixedpoint.Zero
	for _, value := range valuations {
		total = total.Add(value)
	}
	return total, nil
}
