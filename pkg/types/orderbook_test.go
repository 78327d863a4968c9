package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/poloniex/pkg/fixedpoint"
)

func TestOrderBook_BestLevels(t *testing.T) {
	book := OrderBook{
		Pair: MustParsePair("ETH/BTC"),
		Bids: []PriceVolume{
			{Price: fixedpoint.MustNewFromString("0.049"), Volume: fixedpoint.MustNewFromString("2")},
			{Price: fixedpoint.MustNewFromString("0.048"), Volume: fixedpoint.MustNewFromString("5")},
		},
		Asks: []PriceVolume{
			{Price: fixedpoint.MustNewFromString("0.051"), Volume: fixedpoint.MustNewFromString("1")},
			{Price: fixedpoint.MustNewFromString("0.052"), Volume: fixedpoint.MustNewFromString("4")},
		},
	}

	bid, ok := book.BestBid()
	require.True(t, ok)
	assert.Equal(t, "0.049", bid.Price.String())
	assert.Equal(t, "2 @ 0.049", bid.String())

	ask, ok := book.BestAsk()
	require.True(t, ok)
	assert.Equal(t, "0.051", ask.Price.String())
}

func TestOrderBook_BestLevels_Empty(t *testing.T) {
	var book OrderBook

	_, ok := book.BestBid()
	assert.False(t, ok)

	_, ok = book.BestAsk()
	assert.False(t, ok)
}
