package poloapi

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextNonce(t *testing.T) {
	client := NewRestClient()

	var mu sync.Mutex
	seen := make(map[int64]struct{})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			nonce := client.NextNonce()

			mu.Lock()
			defer mu.Unlock()
			_, dup := seen[nonce]
			assert.False(t, dup, "nonce %d must not repeat", nonce)
			seen[nonce] = struct{}{}
		}()
	}
	wg.Wait()

	last := client.NextNonce()
	assert.Greater(t, client.NextNonce(), last)
}

func TestQueryTrading_RequiresCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be issued without credentials")
	}))
	defer srv.Close()

	client := NewRestClientWithHttpClient(srv.URL, srv.URL, srv.Client())
	err := client.QueryTrading(context.Background(), "returnCompleteBalances", nil, nil)
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestQueryTrading_SignsRequest(t *testing.T) {
	const secret = "test-secret"

	var gotKey, gotSign, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Key")
		gotSign = r.Header.Get("Sign")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(body)

		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewRestClientWithHttpClient(srv.URL, srv.URL, srv.Client()).
		Auth("test-key", secret)

	err := client.QueryTrading(context.Background(), "returnOpenOrders", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotKey)

	form, err := url.ParseQuery(gotBody)
	require.NoError(t, err)
	assert.Equal(t, "returnOpenOrders", form.Get("command"))
	assert.NotEmpty(t, form.Get("nonce"))

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(gotBody))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), gotSign)
}

func TestQueryPublic_SetsCommand(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"BTC_ETH":{"last":"0.05"}}`))
	}))
	defer srv.Close()

	client := NewRestClientWithHttpClient(srv.URL, srv.URL, srv.Client())

	var tickers map[string]RawTicker
	err := client.QueryPublic(context.Background(), "returnTicker", nil, &tickers)
	require.NoError(t, err)

	assert.Equal(t, "returnTicker", gotQuery.Get("command"))
	require.Contains(t, tickers, "BTC_ETH")
	assert.Equal(t, "0.05", tickers["BTC_ETH"].Last.String())
}

func TestDecodeResponse(t *testing.T) {
	t.Run("error envelope with http 200", func(t *testing.T) {
		err := decodeResponse("buy", 200, []byte(`{"error":"Not enough BTC."}`), nil)
		require.Error(t, err)

		var exchangeErr *ExchangeError
		require.ErrorAs(t, err, &exchangeErr)
		assert.Equal(t, "Not enough BTC.", exchangeErr.Message)
		assert.Equal(t, 200, exchangeErr.Code)
	})

	t.Run("order not found maps to sentinel", func(t *testing.T) {
		body := []byte(`{"error":"Order not found, or you are not the person who placed it."}`)
		err := decodeResponse("cancelOrder", 200, body, nil)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("invalid pair maps to sentinel", func(t *testing.T) {
		err := decodeResponse("returnOrderBook", 200, []byte(`{"error":"Invalid currency pair."}`), nil)
		assert.ErrorIs(t, err, ErrInvalidPair)
	})

	t.Run("success zero", func(t *testing.T) {
		err := decodeResponse("moveOrder", 200, []byte(`{"success":0,"message":"Invalid order number."}`), nil)

		var exchangeErr *ExchangeError
		require.ErrorAs(t, err, &exchangeErr)
		assert.Equal(t, "Invalid order number.", exchangeErr.Message)
	})

	t.Run("http failure without envelope", func(t *testing.T) {
		err := decodeResponse("returnTicker", 502, []byte("Bad Gateway"), nil)

		var exchangeErr *ExchangeError
		require.ErrorAs(t, err, &exchangeErr)
		assert.Equal(t, 502, exchangeErr.Code)
	})

	t.Run("array payload decodes", func(t *testing.T) {
		var trades []RawTrade
		err := decodeResponse("returnTradeHistory", 200, []byte(`[{"tradeID":1,"rate":"0.05"}]`), &trades)
		require.NoError(t, err)
		require.Len(t, trades, 1)
		assert.Equal(t, "0.05", trades[0].Rate.String())
	})
}
