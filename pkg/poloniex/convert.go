package poloniex

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"

	"github.com/c9s/poloniex/pkg/fixedpoint"
	"github.com/c9s/poloniex/pkg/poloniex/poloapi"
	"github.com/c9s/poloniex/pkg/types"
)

func parseID(n json.Number) (uint64, error) {
	s := n.String()
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

func convertTicker(pair types.Pair, raw poloapi.RawTicker) types.Ticker {
	// The exchange's base currency is this library's quote currency, so the
	// volume fields swap.
	return types.Ticker{
		Pair:          pair,
		Last:          raw.Last,
		HighestBid:    raw.HighestBid,
		LowestAsk:     raw.LowestAsk,
		BaseVolume:    raw.QuoteVolume,
		QuoteVolume:   raw.BaseVolume,
		PercentChange: raw.PercentChange,
		IsFrozen:      raw.IsFrozen.String() == "1",
	}
}

func convertOrderBook(pair types.Pair, raw *poloapi.RawOrderBook) (*types.OrderBook, error) {
	book := &types.OrderBook{Pair: pair}

	convertSide := func(rows [][]json.Number) ([]types.PriceVolume, error) {
		side := make([]types.PriceVolume, 0, len(rows))
		for _, row := range rows {
			if len(row) < 2 {
				return nil, errors.Errorf("malformed order book row for %s", pair.String())
			}

			price, err := fixedpoint.NewFromString(row[0].String())
			if err != nil {
				return nil, errors.Wrapf(err, "order book price for %s", pair.String())
			}
			volume, err := fixedpoint.NewFromString(row[1].String())
			if err != nil {
				return nil, errors.Wrapf(err, "order book volume for %s", pair.String())
			}
			side = append(side, types.PriceVolume{Price: price, Volume: volume})
		}
		return side, nil
	}

	var err error
	if book.Bids, err = convertSide(raw.Bids); err != nil {
		return nil, err
	}
	if book.Asks, err = convertSide(raw.Asks); err != nil {
		return nil, err
	}
	return book, nil
}

// convertTrade maps a raw trade row onto the domain type. The exchange
// reports the fee as a fraction; the materialized base-currency fee is
// always rounded up to the unit of least precision, never to nearest.
func convertTrade(pair types.Pair, raw poloapi.RawTrade) (types.Trade, error) {
	globalID, err := parseID(raw.GlobalTradeID)
	if err != nil {
		return types.Trade{}, errors.Wrap(err, "global trade id")
	}

	tradeID, err := parseID(raw.TradeID)
	if err != nil {
		return types.Trade{}, errors.Wrap(err, "trade id")
	}

	orderID, err := parseID(raw.OrderNumber)
	if err != nil {
		return types.Trade{}, errors.Wrap(err, "order number")
	}

	side, err := types.ParseSideType(raw.Type)
	if err != nil {
		return types.Trade{}, err
	}

	tradeTime, err := types.ParseExchangeTime(raw.Date)
	if err != nil {
		return types.Trade{}, err
	}

	trade := types.Trade{
		GlobalID: globalID,
		ID:       tradeID,
		OrderID:  orderID,
		Pair:     pair,
		Side:     side,
		Rate:     raw.Rate,
		Amount:   raw.Amount,
		Total:    raw.Total,
		FeeRate:  raw.Fee,
		Time:     tradeTime,
	}

	if raw.Category != "" {
		subtype, err := types.ParseOrderSubtype(raw.Category)
		if err == nil {
			trade.Subtype = subtype
		}
	}

	if !raw.Fee.IsZero() {
		trade.Fee = raw.Amount.MulUp(raw.Fee)
	}
	return trade, nil
}

func convertTrades(pair types.Pair, raws []poloapi.RawTrade) ([]types.Trade, error) {
	trades := make([]types.Trade, 0, len(raws))
	for _, raw := range raws {
		trade, err := convertTrade(pair, raw)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

func convertOpenOrder(pair types.Pair, raw poloapi.RawOrder) (types.Order, error) {
	orderID, err := parseID(raw.OrderNumber)
	if err != nil {
		return types.Order{}, errors.Wrap(err, "order number")
	}

	side, err := types.ParseSideType(raw.Type)
	if err != nil {
		return types.Order{}, err
	}

	subtype := types.OrderSubtypeExchange
	if raw.Margin == 1 {
		subtype = types.OrderSubtypeMargin
	}

	// startingAmount is absent on some payloads; the outstanding amount
	// never exceeds it, so the larger of the two is the original size
	startingAmount := fixedpoint.Max(raw.StartingAmount, raw.Amount)

	status := types.OrderStatusNew
	if raw.Amount.Compare(startingAmount) < 0 {
		status = types.OrderStatusPartiallyFilled
	}

	order := types.Order{
		SubmitOrder: types.SubmitOrder{
			Side:    side,
			Subtype: subtype,
			Pair:    pair,
			Rate:    raw.Rate,
			Amount:  startingAmount,
		},
		OrderID:           orderID,
		Status:            status,
		AmountOutstanding: raw.Amount,
	}

	if raw.Date != "" {
		if t, err := types.ParseExchangeTime(raw.Date); err == nil {
			order.CreationTime = t
		}
	}
	return order, nil
}
