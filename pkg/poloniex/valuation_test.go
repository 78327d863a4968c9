package poloniex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valuationResponses() map[string]string {
	return map[string]string{
		"returnCompleteBalances": `{
			"BTC":{"available":"1.00000000","onOrders":"0.00000000"},
			"ETH":{"available":"10.00000000","onOrders":"0.00000000"},
			"XMR":{"available":"5.00000000","onOrders":"0.00000000"}
		}`,
		"returnTicker": `{
			"BTC_ETH":{"last":"0.05","isFrozen":"0"},
			"ETH_XMR":{"last":"0.2","isFrozen":"0"}
		}`,
		"returnCurrencies": `{"BTC":{"name":"Bitcoin"},"ETH":{"name":"Ethereum"},"XMR":{"name":"Monero"}}`,
	}
}

func TestQueryValuations(t *testing.T) {
	t.Run("no market aborts", func(t *testing.T) {
		ex, _, _ := newTestExchange(t, valuationResponses())

		// XMR only trades against ETH, so pricing it in BTC needs
		// triangulation
		_, err := ex.QueryValuations(context.Background(), "BTC")

		var unpricable *UnpricableAssetError
		require.ErrorAs(t, err, &unpricable)
		assert.Equal(t, "XMR", unpricable.Currency)
		assert.Equal(t, "BTC", unpricable.Quote)
	})

	t.Run("skip unpricable", func(t *testing.T) {
		ex, _, _ := newTestExchange(t, valuationResponses())

		valuations, err := ex.QueryValuations(context.Background(), "BTC", WithSkipUnpricable())
		require.NoError(t, err)

		assert.NotContains(t, valuations, "XMR")
		assert.Equal(t, "1", valuations["BTC"].String())
		assert.Equal(t, "0.5", valuations["ETH"].String())
	})

	t.Run("triangulation", func(t *testing.T) {
		ex, _, _ := newTestExchange(t, valuationResponses())

		valuations, err := ex.QueryValuations(context.Background(), "BTC", WithTriangulation())
		require.NoError(t, err)

		// 5 XMR * 0.2 ETH/XMR * 0.05 BTC/ETH = 0.05 BTC
		assert.Equal(t, "0.05", valuations["XMR"].String())
	})
}

func TestQueryValuation(t *testing.T) {
	t.Run("prices only the requested currency", func(t *testing.T) {
		ex, _, _ := newTestExchange(t, valuationResponses())

		// the held XMR has no BTC market, but that must not affect
		// valuing ETH
		value, err := ex.QueryValuation(context.Background(), "BTC", "ETH")
		require.NoError(t, err)
		assert.Equal(t, "0.5", value.String())
	})

	t.Run("unpricable requested currency", func(t *testing.T) {
		ex, _, _ := newTestExchange(t, valuationResponses())

		_, err := ex.QueryValuation(context.Background(), "BTC", "XMR")

		var unpricable *UnpricableAssetError
		require.ErrorAs(t, err, &unpricable)
		assert.Equal(t, "XMR", unpricable.Currency)
	})

	t.Run("unknown currency", func(t *testing.T) {
		ex, _, _ := newTestExchange(t, valuationResponses())

		_, err := ex.QueryValuation(context.Background(), "BTC", "DOGE")
		assert.ErrorIs(t, err, ErrCurrencyNotFound)
	})
}

func TestQueryTotalValuation(t *testing.T) {
	ex, _, _ := newTestExchange(t, valuationResponses())

	total, err := ex.QueryTotalValuation(context.Background(), "BTC", WithTriangulation())
	require.NoError(t, err)

	// 1 BTC + 0.5 BTC (ETH) + 0.05 BTC (XMR)
	assert.Equal(t, "1.55", total.String())
}
