package batch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/poloniex/pkg/types"
)

func makeTrades(globalIDs []uint64, times []int64) []types.Trade {
	trades := make([]types.Trade, len(globalIDs))
	for i := range globalIDs {
		trades[i] = types.Trade{
			GlobalID: globalIDs[i],
			ID:       globalIDs[i],
			Time:     types.NewTimeFromUnix(times[i]),
		}
	}
	return trades
}

func TestTradeBatchQuery_SinglePage(t *testing.T) {
	var calls int
	q := &TradeBatchQuery{
		Q: TradeQueryFunc(func(ctx context.Context, start, end time.Time) ([]types.Trade, error) {
			calls++
			return makeTrades([]uint64{3, 1, 2}, []int64{300, 100, 200}), nil
		}),
		PageCap: 10,
	}

	trades, err := q.Query(context.Background(), time.Unix(0, 0), time.Unix(1000, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.Len(t, trades, 3)
	assert.Equal(t, uint64(1), trades[0].GlobalID)
	assert.Equal(t, uint64(2), trades[1].GlobalID)
	assert.Equal(t, uint64(3), trades[2].GlobalID)
}

func TestTradeBatchQuery_EmptyRange(t *testing.T) {
	var calls int
	q := &TradeBatchQuery{
		Q: TradeQueryFunc(func(ctx context.Context, start, end time.Time) ([]types.Trade, error) {
			calls++
			return nil, nil
		}),
	}

	trades, err := q.Query(context.Background(), time.Unix(1000, 0), time.Unix(0, 0))
	require.NoError(t, err)
	assert.Empty(t, trades)
	assert.Zero(t, calls)
}

func TestTradeBatchQuery_CappedPage(t *testing.T) {
	// 9 trades one second apart; pages cap at 3, served newest-first the
	// way the exchange answers. Every trade must come back exactly once.
	all := makeTrades(
		[]uint64{9, 8, 7, 6, 5, 4, 3, 2, 1},
		[]int64{109, 108, 107, 106, 105, 104, 103, 102, 101},
	)

	var calls int
	q := &TradeBatchQuery{
		Q: TradeQueryFunc(func(ctx context.Context, start, end time.Time) ([]types.Trade, error) {
			calls++
			var page []types.Trade
			for _, trade := range all {
				ts := trade.Time.Time()
				if ts.Before(start) || ts.After(end) {
					continue
				}
				page = append(page, trade)
				if len(page) == 3 {
					break
				}
			}
			return page, nil
		}),
		PageCap: 3,
	}

	trades, err := q.Query(context.Background(), time.Unix(100, 0), time.Unix(110, 0))
	require.NoError(t, err)
	require.Len(t, trades, 9)
	assert.Greater(t, calls, 1)

	for i, trade := range trades {
		assert.Equal(t, uint64(i+1), trade.GlobalID)
	}
}

func TestTradeBatchQuery_CappedPageCoversWholeRange(t *testing.T) {
	// a capped page reaching both ends of the queried range is contiguous
	// over all of it, so it is the complete answer and needs no follow-up
	var calls int
	q := &TradeBatchQuery{
		Q: TradeQueryFunc(func(ctx context.Context, start, end time.Time) ([]types.Trade, error) {
			calls++
			return makeTrades([]uint64{3, 2, 1}, []int64{102, 101, 100}), nil
		}),
		PageCap: 3,
	}

	trades, err := q.Query(context.Background(), time.Unix(100, 0), time.Unix(102, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.Len(t, trades, 3)
	assert.Equal(t, uint64(1), trades[0].GlobalID)
	assert.Equal(t, uint64(3), trades[2].GlobalID)
}

func TestTradeBatchQuery_IndivisibleSpan(t *testing.T) {
	// a capped page whose trades all share one timestamp cannot be split
	q := &TradeBatchQuery{
		Q: TradeQueryFunc(func(ctx context.Context, start, end time.Time) ([]types.Trade, error) {
			return makeTrades([]uint64{1, 2, 3}, []int64{100, 100, 100}), nil
		}),
		PageCap: 3,
	}

	_, err := q.Query(context.Background(), time.Unix(0, 0), time.Unix(1000, 0))
	assert.Error(t, err)
}

func TestTradeBatchQuery_MaxQueries(t *testing.T) {
	// every page covers only the older half of its span, so a remainder is
	// always left pending and the query count keeps growing
	var nextID uint64
	q := &TradeBatchQuery{
		Q: TradeQueryFunc(func(ctx context.Context, start, end time.Time) ([]types.Trade, error) {
			mid := start.Unix() + (end.Unix()-start.Unix())/2
			nextID += 2
			return makeTrades([]uint64{nextID, nextID + 1}, []int64{start.Unix(), mid}), nil
		}),
		PageCap:    2,
		MaxQueries: 5,
	}

	_, err := q.Query(context.Background(), time.Unix(0, 0), time.Unix(65536, 0))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "5 queries")
}

func TestTradeBatchQuery_FailingContinuation(t *testing.T) {
	var calls int
	q := &TradeBatchQuery{
		Q: TradeQueryFunc(func(ctx context.Context, start, end time.Time) ([]types.Trade, error) {
			calls++
			if calls == 1 {
				return makeTrades([]uint64{5, 4, 3}, []int64{105, 104, 103}), nil
			}
			return nil, context.DeadlineExceeded
		}),
		PageCap: 3,
	}

	_, err := q.Query(context.Background(), time.Unix(100, 0), time.Unix(110, 0))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
