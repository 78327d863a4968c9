package pricesolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c9s/poloniex/pkg/fixedpoint"
	"github.com/c9s/poloniex/pkg/types"
)

func TestSimplePriceSolver(t *testing.T) {
	solver := NewSimplePriceResolver()
	solver.Update(types.MustParsePair("ETH/BTC"), fixedpoint.MustNewFromString("0.05"))
	solver.Update(types.MustParsePair("XMR/BTC"), fixedpoint.MustNewFromString("0.01"))

	t.Run("same currency", func(t *testing.T) {
		price, ok := solver.ResolvePrice("BTC", "BTC", false)
		assert.True(t, ok)
		assert.Equal(t, "1", price.String())
	})

	t.Run("direct", func(t *testing.T) {
		price, ok := solver.ResolvePrice("ETH", "BTC", false)
		assert.True(t, ok)
		assert.Equal(t, "0.05", price.String())
	})

	t.Run("inverse", func(t *testing.T) {
		price, ok := solver.ResolvePrice("BTC", "ETH", false)
		assert.True(t, ok)
		assert.Equal(t, "20", price.String())
	})

	t.Run("no direct market without inference", func(t *testing.T) {
		_, ok := solver.ResolvePrice("XMR", "ETH", false)
		assert.False(t, ok)
	})

	t.Run("inference through a common quote", func(t *testing.T) {
		// XMR -> BTC -> ETH: 0.01 * 20 = 0.2
		price, ok := solver.ResolvePrice("XMR", "ETH", true)
		assert.True(t, ok)
		assert.Equal(t, "0.2", price.String())
	})

	t.Run("unknown asset", func(t *testing.T) {
		_, ok := solver.ResolvePrice("DOGE", "BTC", true)
		assert.False(t, ok)
	})
}

func TestSimplePriceSolver_ShortestPath(t *testing.T) {
	solver := NewSimplePriceResolver()

	// two-hop path: AAA -> BBB -> ZZZ = 2 * 3 = 6
	solver.Update(types.MustParsePair("AAA/BBB"), fixedpoint.MustNewFromString("2"))
	solver.Update(types.MustParsePair("BBB/ZZZ"), fixedpoint.MustNewFromString("3"))

	// three-hop detour: AAA -> CCC -> DDD -> ZZZ = 1000
	solver.Update(types.MustParsePair("AAA/CCC"), fixedpoint.MustNewFromString("10"))
	solver.Update(types.MustParsePair("CCC/DDD"), fixedpoint.MustNewFromString("10"))
	solver.Update(types.MustParsePair("DDD/ZZZ"), fixedpoint.MustNewFromString("10"))

	// the walk crosses the fewest markets, so the detour never wins
	for i := 0; i < 10; i++ {
		price, ok := solver.ResolvePrice("AAA", "ZZZ", true)
		assert.True(t, ok)
		assert.Equal(t, "6", price.String())
	}
}

func TestSimplePriceSolver_UpdateFromTickers(t *testing.T) {
	solver := NewSimplePriceResolver()
	solver.UpdateFromTickers(types.TickerMap{
		"ETH/BTC": {
			Pair: types.MustParsePair("ETH/BTC"),
			Last: fixedpoint.MustNewFromString("0.05"),
		},
		"ZRX/BTC": {
			Pair: types.MustParsePair("ZRX/BTC"),
			// zero last price is skipped
		},
	})

	price, ok := solver.ResolvePrice("ETH", "BTC", false)
	assert.True(t, ok)
	assert.Equal(t, "0.05", price.String())

	_, ok = solver.ResolvePrice("ZRX", "BTC", true)
	assert.False(t, ok)
}
