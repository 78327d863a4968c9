package poloniex

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/c9s/poloniex/pkg/poloniex/poloapi"
	"github.com/c9s/poloniex/pkg/types"
)

var log = logrus.WithField("exchange", "poloniex")

// Exchange is the high-level client. It owns a REST client, an optional
// confirmation gate for mutating calls and an optional call tracer.
//
// The zero value is not usable; construct with New.
type Exchange struct {
	client *poloapi.RestClient

	confirmer Confirmer
	confirmMu sync.Mutex

	tracer Tracer

	// metadata caches, fetched once per process until invalidated
	mu         sync.Mutex
	markets    types.MarketMap
	currencies map[string]poloapi.RawCurrency
}

type Option func(*Exchange)

// WithConfirmer installs a confirmation gate. Every mutating operation asks
// the confirmer before any request is sent; a decline returns
// ErrRequestCancelled without touching the network.
func WithConfirmer(c Confirmer) Option {
	return func(ex *Exchange) {
		ex.confirmer = c
	}
}

// WithTracer installs a call tracer that observes every operation's
// arguments, result and error.
func WithTracer(t Tracer) Option {
	return func(ex *Exchange) {
		ex.tracer = t
	}
}

// WithRestClient replaces the underlying REST client. Mostly for tests.
func WithRestClient(client *poloapi.RestClient) Option {
	return func(ex *Exchange) {
		ex.client = client
	}
}

// WithHttpClient replaces the http.Client used for all requests.
func WithHttpClient(client *http.Client) Option {
	return func(ex *Exchange) {
		ex.client = poloapi.NewRestClientWithHttpClient(poloapi.PublicAPIURL, poloapi.TradingAPIURL, client)
	}
}

func New(key, secret string, opts ...Option) *Exchange {
	ex := &Exchange{
		client: poloapi.NewRestClient(),
	}
	for _, opt := range opts {
		opt(ex)
	}
	ex.client.Auth(key, secret)
	return ex
}

func (e *Exchange) Name() string { return "poloniex" }

// confirm serializes confirmation prompts and returns ErrRequestCancelled
// when the installed confirmer declines. With no confirmer installed every
// operation proceeds.
func (e *Exchange) confirm(prompt string) error {
	if e.confirmer == nil {
		return nil
	}

	e.confirmMu.Lock()
	defer e.confirmMu.Unlock()

	if !e.confirmer.Confirm(prompt) {
		return ErrRequestCancelled
	}
	return nil
}

func (e *Exchange) trace(method string, args map[string]interface{}, result interface{}, err error) {
	if e.tracer == nil {
		return
	}
	e.tracer.Trace(method, args, result, err)
}

// QueryCurrencies returns the currency metadata, fetched once and cached for
// the lifetime of the process. Call InvalidateCache to force a refresh.
func (e *Exchange) QueryCurrencies(ctx context.Context) (map[string]poloapi.RawCurrency, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.currencies != nil {
		return e.currencies, nil
	}

	currencies, err := e.client.PublicService.Currencies(ctx)
	if err != nil {
		return nil, err
	}

	e.currencies = currencies
	return currencies, nil
}

// QueryMarkets returns the tradable markets, derived from the ticker pair
// listing and cached for the lifetime of the process.
func (e *Exchange) QueryMarkets(ctx context.Context) (types.MarketMap, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.markets != nil {
		return e.markets, nil
	}

	tickers, err := e.client.PublicService.Tickers(ctx)
	if err != nil {
		return nil, err
	}

	markets := types.MarketMap{}
	for localSymbol := range tickers {
		pair, err := types.ParseLocalSymbol(localSymbol)
		if err != nil {
			log.WithError(err).Warnf("skipping unparsable pair %q", localSymbol)
			continue
		}
		markets[pair.String()] = types.NewMarket(pair)
	}

	e.markets = markets
	return markets, nil
}

// InvalidateCache drops the cached currency and market metadata so the next
// query refetches it.
func (e *Exchange) InvalidateCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.markets = nil
	e.currencies = nil
}

func (e *Exchange) QueryTickers(ctx context.Context) (types.TickerMap, error) {
	raws, err := e.client.PublicService.Tickers(ctx)
	e.trace("QueryTickers", nil, raws, err)
	if err != nil {
		return nil, err
	}

	tickers := types.TickerMap{}
	for localSymbol, raw := range raws {
		pair, err := types.ParseLocalSymbol(localSymbol)
		if err != nil {
			log.WithError(err).Warnf("skipping unparsable pair %q", localSymbol)
			continue
		}
		tickers[pair.String()] = convertTicker(pair, raw)
	}
	return tickers, nil
}

func (e *Exchange) QueryTicker(ctx context.Context, pair types.Pair) (*types.Ticker, error) {
	tickers, err := e.QueryTickers(ctx)
	if err != nil {
		return nil, err
	}

	ticker, ok := tickers[pair.String()]
	if !ok {
		return nil, ErrInvalidPair
	}
	return &ticker, nil
}

func (e *Exchange) QueryOrderBook(ctx context.Context, pair types.Pair, depth int) (*types.OrderBook, error) {
	raw, err := e.client.PublicService.OrderBook(ctx, pair.LocalSymbol(), depth)
	e.trace("QueryOrderBook", map[string]interface{}{
		"pair":  pair.String(),
		"depth": depth,
	}, raw, err)
	if err != nil {
		return nil, err
	}
	return convertOrderBook(pair, raw)
}

func (e *Exchange) QueryAllOrderBooks(ctx context.Context, depth int) (map[string]*types.OrderBook, error) {
	raws, err := e.client.PublicService.AllOrderBooks(ctx, depth)
	if err != nil {
		return nil, err
	}

	books := make(map[string]*types.OrderBook, len(raws))
	for localSymbol, raw := range raws {
		pair, err := types.ParseLocalSymbol(localSymbol)
		if err != nil {
			log.WithError(err).Warnf("skipping unparsable pair %q", localSymbol)
			continue
		}

		raw := raw
		book, err := convertOrderBook(pair, &raw)
		if err != nil {
			return nil, err
		}
		books[pair.String()] = book
	}
	return books, nil
}

// knownCurrency reports whether the exchange lists the currency, consulting
// the cached currency metadata.
func (e *Exchange) knownCurrency(ctx context.Context, currency string) (bool, error) {
	currencies, err := e.QueryCurrencies(ctx)
	if err != nil {
		return false, err
	}
	_, ok := currencies[currency]
	return ok, nil
}

func describeOrder(order types.SubmitOrder) string {
	return fmt.Sprintf("%s %s %s @ %s %s (total %s %s)",
		order.Side, order.Amount.String(), order.Pair.Base,
		order.Rate.String(), order.Pair.Quote,
		order.Total().String(), order.Pair.Quote)
}
