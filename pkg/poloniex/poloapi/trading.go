package poloapi

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/c9s/poloniex/pkg/fixedpoint"
)

type TradeService struct {
	client *RestClient
}

type RawCompleteBalance struct {
	Available fixedpoint.Value `json:"available"`
	OnOrders  fixedpoint.Value `json:"onOrders"`
	BtcValue  fixedpoint.Value `json:"btcValue"`
}

// CompleteBalances returns available and on-order funds per currency.
// account is "exchange" (the default when empty) or "all".
func (s *TradeService) CompleteBalances(ctx context.Context, account string) (map[string]RawCompleteBalance, error) {
	args := url.Values{}
	if account != "" {
		args.Set("account", account)
	}

	var balances map[string]RawCompleteBalance
	if err := s.client.QueryTrading(ctx, "returnCompleteBalances", args, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// AvailableAccountBalances returns free (not on order) funds grouped by
// wallet: {"exchange": {...}, "margin": {...}, "lending": {...}}. Passing an
// account restricts the response to that wallet.
func (s *TradeService) AvailableAccountBalances(ctx context.Context, account string) (map[string]map[string]fixedpoint.Value, error) {
	args := url.Values{}
	if account != "" {
		args.Set("account", account)
	}

	var balances map[string]map[string]fixedpoint.Value
	if err := s.client.QueryTrading(ctx, "returnAvailableAccountBalances", args, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

type RawOrder struct {
	OrderNumber    json.Number      `json:"orderNumber"`
	Type           string           `json:"type"`
	Rate           fixedpoint.Value `json:"rate"`
	StartingAmount fixedpoint.Value `json:"startingAmount"`
	Amount         fixedpoint.Value `json:"amount"`
	Total          fixedpoint.Value `json:"total"`
	Date           string           `json:"date"`
	Margin         int              `json:"margin"`
}

func (s *TradeService) OpenOrders(ctx context.Context, localSymbol string) ([]RawOrder, error) {
	args := url.Values{}
	args.Set("currencyPair", localSymbol)

	var orders []RawOrder
	if err := s.client.QueryTrading(ctx, "returnOpenOrders", args, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *TradeService) AllOpenOrders(ctx context.Context) (map[string][]RawOrder, error) {
	args := url.Values{}
	args.Set("currencyPair", "all")

	var orders map[string][]RawOrder
	if err := s.client.QueryTrading(ctx, "returnOpenOrders", args, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// TradeHistory returns the member's own trades for a pair between start and
// end, unix seconds inclusive, with the same 50000-row page cap and
// contiguity guarantee as the public endpoint.
func (s *TradeService) TradeHistory(ctx context.Context, localSymbol string, start, end int64) ([]RawTrade, error) {
	args := url.Values{}
	args.Set("currencyPair", localSymbol)
	args.Set("start", strconv.FormatInt(start, 10))
	args.Set("end", strconv.FormatInt(end, 10))

	var trades []RawTrade
	if err := s.client.QueryTrading(ctx, "returnTradeHistory", args, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

func (s *TradeService) OrderTrades(ctx context.Context, orderNumber uint64) ([]RawTrade, error) {
	args := url.Values{}
	args.Set("orderNumber", strconv.FormatUint(orderNumber, 10))

	var trades []RawTrade
	if err := s.client.QueryTrading(ctx, "returnOrderTrades", args, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

type PlaceOrderResponse struct {
	OrderNumber     json.Number `json:"orderNumber"`
	ResultingTrades []RawTrade  `json:"resultingTrades"`
}

// Rates and amounts are sent in the full 8 digit wire format.
func orderArgs(localSymbol string, rate, amount fixedpoint.Value) url.Values {
	args := url.Values{}
	args.Set("currencyPair", localSymbol)
	args.Set("rate", rate.FormatString(fixedpoint.DefaultPrecision))
	args.Set("amount", amount.FormatString(fixedpoint.DefaultPrecision))
	return args
}

func (s *TradeService) Buy(ctx context.Context, localSymbol string, rate, amount fixedpoint.Value) (*PlaceOrderResponse, error) {
	return s.placeOrder(ctx, "buy", orderArgs(localSymbol, rate, amount))
}

func (s *TradeService) Sell(ctx context.Context, localSymbol string, rate, amount fixedpoint.Value) (*PlaceOrderResponse, error) {
	return s.placeOrder(ctx, "sell", orderArgs(localSymbol, rate, amount))
}

func (s *TradeService) MarginBuy(ctx context.Context, localSymbol string, rate, amount, lendingRate fixedpoint.Value) (*PlaceOrderResponse, error) {
	args := orderArgs(localSymbol, rate, amount)
	args.Set("lendingRate", lendingRate.FormatString(fixedpoint.DefaultPrecision))
	return s.placeOrder(ctx, "marginBuy", args)
}

func (s *TradeService) MarginSell(ctx context.Context, localSymbol string, rate, amount, lendingRate fixedpoint.Value) (*PlaceOrderResponse, error) {
	args := orderArgs(localSymbol, rate, amount)
	args.Set("lendingRate", lendingRate.FormatString(fixedpoint.DefaultPrecision))
	return s.placeOrder(ctx, "marginSell", args)
}

func (s *TradeService) placeOrder(ctx context.Context, command string, args url.Values) (*PlaceOrderResponse, error) {
	var resp PlaceOrderResponse
	if err := s.client.QueryTrading(ctx, command, args, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *TradeService) CancelOrder(ctx context.Context, orderNumber uint64) error {
	args := url.Values{}
	args.Set("orderNumber", strconv.FormatUint(orderNumber, 10))
	return s.client.QueryTrading(ctx, "cancelOrder", args, nil)
}

type MoveOrderResponse struct {
	Success         int                   `json:"success"`
	OrderNumber     json.Number           `json:"orderNumber"`
	ResultingTrades map[string][]RawTrade `json:"resultingTrades"`
}

// MoveOrder replaces an open order's rate and optionally its amount, keeping
// its position only if possible. A zero amount leaves the amount unchanged.
func (s *TradeService) MoveOrder(ctx context.Context, orderNumber uint64, rate fixedpoint.Value, amount fixedpoint.Value) (*MoveOrderResponse, error) {
	args := url.Values{}
	args.Set("orderNumber", strconv.FormatUint(orderNumber, 10))
	args.Set("rate", rate.FormatString(fixedpoint.DefaultPrecision))
	if !amount.IsZero() {
		args.Set("amount", amount.FormatString(fixedpoint.DefaultPrecision))
	}

	var resp MoveOrderResponse
	if err := s.client.QueryTrading(ctx, "moveOrder", args, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
