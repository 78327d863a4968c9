package poloapi

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/c9s/poloniex/pkg/fixedpoint"
)

type PublicService struct {
	client *RestClient
}

// RawTicker is the returnTicker row, keyed by the exchange pair encoding.
type RawTicker struct {
	ID            int              `json:"id"`
	Last          fixedpoint.Value `json:"last"`
	LowestAsk     fixedpoint.Value `json:"lowestAsk"`
	HighestBid    fixedpoint.Value `json:"highestBid"`
	PercentChange fixedpoint.Value `json:"percentChange"`
	BaseVolume    fixedpoint.Value `json:"baseVolume"`
	QuoteVolume   fixedpoint.Value `json:"quoteVolume"`
	IsFrozen      json.Number      `json:"isFrozen"`
	High24Hr      fixedpoint.Value `json:"high24hr"`
	Low24Hr       fixedpoint.Value `json:"low24hr"`
}

// Note: returnTicker keys are "QUOTE_BASE", and baseVolume/quoteVolume are
// swapped relative to this library's pair orientation: the exchange's
// baseVolume is the volume of its base currency, which is our quote.
func (s *PublicService) Tickers(ctx context.Context) (map[string]RawTicker, error) {
	var tickers map[string]RawTicker
	if err := s.client.QueryPublic(ctx, "returnTicker", nil, &tickers); err != nil {
		return nil, err
	}
	return tickers, nil
}

type RawCurrency struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	TxFee          fixedpoint.Value `json:"txFee"`
	MinConf        int              `json:"minConf"`
	Disabled       int              `json:"disabled"`
	Delisted       int              `json:"delisted"`
	Frozen         int              `json:"frozen"`
	DepositAddress string           `json:"depositAddress,omitempty"`
}

func (s *PublicService) Currencies(ctx context.Context) (map[string]RawCurrency, error) {
	var currencies map[string]RawCurrency
	if err := s.client.QueryPublic(ctx, "returnCurrencies", nil, &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}

// RawOrderBook rows are [price, amount] tuples. Both elements are decoded as
// json.Number so the literal text reaches fixedpoint untouched; the exchange
// sends the price as a string and the amount as a bare number.
type RawOrderBook struct {
	Asks     [][]json.Number `json:"asks"`
	Bids     [][]json.Number `json:"bids"`
	IsFrozen json.Number     `json:"isFrozen"`
	Seq      int64           `json:"seq"`
}

func (s *PublicService) OrderBook(ctx context.Context, localSymbol string, depth int) (*RawOrderBook, error) {
	args := url.Values{}
	args.Set("currencyPair", localSymbol)
	args.Set("depth", strconv.Itoa(depth))

	var book RawOrderBook
	if err := s.client.QueryPublic(ctx, "returnOrderBook", args, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *PublicService) AllOrderBooks(ctx context.Context, depth int) (map[string]RawOrderBook, error) {
	args := url.Values{}
	args.Set("currencyPair", "all")
	args.Set("depth", strconv.Itoa(depth))

	var books map[string]RawOrderBook
	if err := s.client.QueryPublic(ctx, "returnOrderBook", args, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// RawTrade is a trade row from either returnTradeHistory endpoint. The
// private variant additionally carries fee, orderNumber and category.
type RawTrade struct {
	GlobalTradeID json.Number `json:"globalTradeID"`
	TradeID       json.Number `json:"tradeID"`
	OrderNumber   json.Number `json:"orderNumber"`

	Date     string `json:"date"`
	Type     string `json:"type"`
	Category string `json:"category"`

	Rate   fixedpoint.Value `json:"rate"`
	Amount fixedpoint.Value `json:"amount"`
	Total  fixedpoint.Value `json:"total"`

	// Fee is the fee fraction, not an absolute amount.
	Fee fixedpoint.Value `json:"fee"`

	// CurrencyPair is only present on returnOrderTrades rows.
	CurrencyPair string `json:"currencyPair"`
}

// TradeHistory returns the public trades of a pair between start and end,
// both unix seconds inclusive. A single page caps at 50000 trades; when
// capped, the page is chronologically contiguous.
func (s *PublicService) TradeHistory(ctx context.Context, localSymbol string, start, end int64) ([]RawTrade, error) {
	args := url.Values{}
	args.Set("currencyPair", localSymbol)
	args.Set("start", strconv.FormatInt(start, 10))
	args.Set("end", strconv.FormatInt(end, 10))

	var trades []RawTrade
	if err := s.client.QueryPublic(ctx, "returnTradeHistory", args, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}
