// Package batch assembles complete histories from time-ranged, page-capped
// query endpoints. A capped page only covers the chronologically contiguous
// span it actually returned, so the uncovered remainders of the requested
// range are queued and re-queried until the whole range is covered.
package batch

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/poloniex/pkg/types"
)

var log = logrus.WithField("component", "batch")

const (
	// DefaultPageCap is the exchange's per-page trade limit.
	DefaultPageCap = 50000

	// DefaultMaxQueries bounds the number of page queries per call so a
	// misbehaving endpoint cannot loop forever.
	DefaultMaxQueries = 100
)

// TradeQuery is the one-page query a TradeBatchQuery drives. Both bounds are
// inclusive unix seconds.
type TradeQuery interface {
	QueryTrades(ctx context.Context, startTime, endTime time.Time) ([]types.Trade, error)
}

// TradeQueryFunc adapts a function to the TradeQuery interface.
type TradeQueryFunc func(ctx context.Context, startTime, endTime time.Time) ([]types.Trade, error)

func (f TradeQueryFunc) QueryTrades(ctx context.Context, startTime, endTime time.Time) ([]types.Trade, error) {
	return f(ctx, startTime, endTime)
}

type TradeBatchQuery struct {
	Q TradeQuery

	// PageCap is the page size at which a response must be treated as
	// truncated. Zero means DefaultPageCap.
	PageCap int

	// MaxQueries caps the number of page queries. Zero means
	// DefaultMaxQueries.
	MaxQueries int
}

type span struct {
	start, end time.Time
}

// Query returns every trade in [startTime, endTime], each exactly once,
// sorted ascending by time. Any failing page query fails the whole call; no
// partial result is ever returned.
func (q *TradeBatchQuery) Query(ctx context.Context, startTime, endTime time.Time) ([]types.Trade, error) {
	pageCap := q.PageCap
	if pageCap == 0 {
		pageCap = DefaultPageCap
	}
	maxQueries := q.MaxQueries
	if maxQueries == 0 {
		maxQueries = DefaultMaxQueries
	}

	if startTime.After(endTime) {
		return nil, nil
	}

	var trades []types.Trade
	seen := make(map[string]struct{})

	pending := []span{{start: startTime, end: endTime}}
	for queries := 0; len(pending) > 0; queries++ {
		if queries >= maxQueries {
			return nil, errors.Errorf("trade history not assembled within %d queries", maxQueries)
		}

		sp := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		page, err := q.Q.QueryTrades(ctx, sp.start, sp.end)
		if err != nil {
			return nil, err
		}

		log.Debugf("trade history page %s - %s: %d trades", sp.start, sp.end, len(page))

		capped := len(page) >= pageCap
		if capped {
			remainders, err := uncovered(sp, page)
			if err != nil {
				return nil, err
			}
			pending = append(pending, remainders...)
		}

		for _, trade := range page {
			if _, ok := seen[trade.Key()]; ok {
				continue
			}
			seen[trade.Key()] = struct{}{}
			trades = append(trades, trade)
		}
	}

	types.SortTradesAscending(trades)
	return trades, nil
}

// uncovered returns the parts of the queried span a capped page did not
// cover. A capped page is chronologically contiguous, so it covers exactly
// [minTime, maxTime] of its rows; anything outside that, inside the queried
// span, still needs to be fetched.
func uncovered(sp span, page []types.Trade) ([]span, error) {
	if len(page) == 0 {
		return nil, errors.New("capped trade history page is empty")
	}

	minTime := page[0].Time.Time()
	maxTime := page[0].Time.Time()
	for _, trade := range page[1:] {
		t := trade.Time.Time()
		if t.Before(minTime) {
			minTime = t
		}
		if t.After(maxTime) {
			maxTime = t
		}
	}

	// clamp to the queried span; rows outside it would otherwise extend
	// the coverage claim beyond what was asked
	if minTime.Before(sp.start) {
		minTime = sp.start
	}
	if maxTime.After(sp.end) {
		maxTime = sp.end
	}

	// a capped page spanning the whole queried range is, by the contiguity
	// guarantee, already the complete answer for it
	if !minTime.After(sp.start) && !maxTime.Before(sp.end) {
		return nil, nil
	}

	if minTime.Equal(maxTime) {
		return nil, errors.Errorf("trade history page at %s exceeds the page cap within a single second", minTime)
	}

	var remainders []span
	if minTime.After(sp.start) {
		remainders = append(remainders, span{start: sp.start, end: minTime})
	}
	if maxTime.Before(sp.end) {
		remainders = append(remainders, span{start: maxTime, end: sp.end})
	}
	return remainders, nil
}
