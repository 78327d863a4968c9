package poloniex

import (
	"context"
	"time"

	"github.com/c9s/poloniex/pkg/batch"
	"github.com/c9s/poloniex/pkg/fixedpoint"
	"github.com/c9s/poloniex/pkg/types"
)

// DefaultHistoryWindow is how far back a history query reaches when the
// caller gives no start time.
const DefaultHistoryWindow = 24 * time.Hour

func historyRange(startTime, endTime *time.Time) (time.Time, time.Time) {
	end := time.Now()
	if endTime != nil {
		end = *endTime
	}

	start := end.Add(-DefaultHistoryWindow)
	if startTime != nil {
		start = *startTime
	}
	return start, end
}

// QueryMarketTrades returns the public trades of a pair between startTime
// and endTime, both inclusive; nil bounds default to the last 24 hours.
// Pages are assembled transparently, so the result is complete and each
// trade appears exactly once, sorted ascending by time.
func (e *Exchange) QueryMarketTrades(ctx context.Context, pair types.Pair, startTime, endTime *time.Time) ([]types.Trade, error) {
	start, end := historyRange(startTime, endTime)

	q := &batch.TradeBatchQuery{
		Q: batch.TradeQueryFunc(func(ctx context.Context, start, end time.Time) ([]types.Trade, error) {
			raws, err := e.client.PublicService.TradeHistory(ctx, pair.LocalSymbol(), start.Unix(), end.Unix())
			if err != nil {
				return nil, err
			}
			return convertTrades(pair, raws)
		}),
	}

	trades, err := q.Query(ctx, start, end)
	e.trace("QueryMarketTrades", map[string]interface{}{
		"pair":  pair.String(),
		"start": start,
		"end":   end,
	}, len(trades), err)
	return trades, err
}

// QueryTrades returns the account's own trades of a pair between startTime
// and endTime, with the same defaults and assembly as QueryMarketTrades.
// Credentials are required; without them no request is sent.
func (e *Exchange) QueryTrades(ctx context.Context, pair types.Pair, startTime, endTime *time.Time) ([]types.Trade, error) {
	if !e.client.HasCredentials() {
		return nil, ErrAuthenticationRequired
	}

	start, end := historyRange(startTime, endTime)

	q := &batch.TradeBatchQuery{
		Q: batch.TradeQueryFunc(func(ctx context.Context, start, end time.Time) ([]types.Trade, error) {
			raws, err := e.client.TradeService.TradeHistory(ctx, pair.LocalSymbol(), start.Unix(), end.Unix())
			if err != nil {
				return nil, err
			}
			return convertTrades(pair, raws)
		}),
	}

	trades, err := q.Query(ctx, start, end)
	e.trace("QueryTrades", map[string]interface{}{
		"pair":  pair.String(),
		"start": start,
		"end":   end,
	}, len(trades), err)
	return trades, err
}

// QueryVolumeWithin sums the traded base and quote volume of the public
// trades whose rate falls within [minRate, maxRate]. A zero maxRate means no
// upper bound. The sums are exact.
func (e *Exchange) QueryVolumeWithin(ctx context.Context, pair types.Pair, startTime, endTime *time.Time, minRate, maxRate fixedpoint.Value) (base, quote fixedpoint.Value, err error) {
	trades, err := e.QueryMarketTrades(ctx, pair, startTime, endTime)
	if err != nil {
		return fixedpoint.Zero, fixedpoint.Zero, err
	}

	for _, trade := range trades {
		if trade.Rate.Compare(minRate) < 0 {
			continue
		}
		if !maxRate.IsZero() && trade.Rate.Compare(maxRate) > 0 {
			continue
		}

		base = base.Add(trade.Amount)
		quote = quote.Add(trade.Total)
	}
	return base, quote, nil
}
