// Package retry wraps read-only exchange queries with an exponential
// backoff. Mutating operations are deliberately not covered: a failed
// placement or cancellation may already have taken effect, so retrying it
// automatically could double-execute.
package retry

import (
	"context"

	backoff2 "github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/c9s/poloniex/pkg/poloniex"
	"github.com/c9s/poloniex/pkg/types"
)

var MaxRetries uint64 = 101

func GeneralBackoff(ctx context.Context, op backoff2.Operation) (err error) {
	err = backoff2.Retry(op, backoff2.WithContext(
		backoff2.WithMaxRetries(
			backoff2.NewExponentialBackOff(),
			MaxRetries),
		ctx))
	return err
}

func QueryTickersUntilSuccessful(ctx context.Context, ex *poloniex.Exchange) (tickers types.TickerMap, err error) {
	var op = func() (err2 error) {
		tickers, err2 = ex.QueryTickers(ctx)
		if err2 != nil {
			log.WithError(err2).Errorf("failed to query tickers")
		}
		return err2
	}

	err = GeneralBackoff(ctx, op)
	return tickers, err
}

func QueryAccountBalancesUntilSuccessful(
	ctx context.Context, ex *poloniex.Exchange, opts ...poloniex.BalanceOption,
) (balances types.BalanceMap, err error) {
	var op = func() (err2 error) {
		balances, err2 = ex.QueryAccountBalances(ctx, opts...)
		return err2
	}

	err = GeneralBackoff(ctx, op)
	return balances, err
}

func QueryOpenOrdersUntilSuccessful(
	ctx context.Context, ex *poloniex.Exchange, pair types.Pair,
) (openOrders []types.Order, err error) {
	var op = func() (err2 error) {
		openOrders, err2 = ex.QueryOpenOrders(ctx, pair)
		return err2
	}

	err = GeneralBackoff(ctx, op)
	return openOrders, err
}

func QueryMarketsUntilSuccessful(ctx context.Context, ex *poloniex.Exchange) (markets types.MarketMap, err error) {
	var op = func() (err2 error) {
		markets, err2 = ex.QueryMarkets(ctx)
		return err2
	}

	err = GeneralBackoff(ctx, op)
	return markets, err
}
