package poloniex

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/c9s/poloniex/pkg/fixedpoint"
	"github.com/c9s/poloniex/pkg/poloniex/poloapi"
	"github.com/c9s/poloniex/pkg/types"
)

// DefaultLendingRate is sent with margin orders when the caller does not
// specify a maximum lending rate, matching the exchange's own default of 2%.
var DefaultLendingRate = fixedpoint.MustNewFromString("0.02")

// SubmitOrder places a limit order. The order is validated locally, then
// gated by the confirmer; placement failures after the request is dispatched
// surface as *AmbiguousOutcomeError since the order may have been accepted.
func (e *Exchange) SubmitOrder(ctx context.Context, order types.SubmitOrder) (*types.Order, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := e.confirm(describeOrder(order)); err != nil {
		return nil, err
	}

	resp, err := e.placeOrder(ctx, order)
	e.trace("SubmitOrder", map[string]interface{}{
		"side":    string(order.Side),
		"subtype": string(order.Subtype),
		"pair":    order.Pair.String(),
		"rate":    order.Rate.String(),
		"amount":  order.Amount.String(),
	}, resp, err)
	if err != nil {
		return nil, wrapAmbiguous("SubmitOrder", err)
	}

	orderID, err := parseID(resp.OrderNumber)
	if err != nil {
		return nil, errors.Wrap(err, "order number")
	}

	filled := fixedpoint.Zero
	for _, raw := range resp.ResultingTrades {
		filled = filled.Add(raw.Amount)
	}

	placed := &types.Order{
		SubmitOrder:       order,
		OrderID:           orderID,
		Status:            types.OrderStatusNew,
		AmountOutstanding: order.Amount.Sub(filled),
	}
	switch {
	case placed.AmountOutstanding.IsZero():
		placed.Status = types.OrderStatusFilled
	case !filled.IsZero():
		placed.Status = types.OrderStatusPartiallyFilled
	}
	return placed, nil
}

func (e *Exchange) placeOrder(ctx context.Context, order types.SubmitOrder) (*poloapi.PlaceOrderResponse, error) {
	localSymbol := order.Pair.LocalSymbol()

	switch order.Subtype {
	case types.OrderSubtypeExchange:
		if order.Side == types.SideTypeBuy {
			return e.client.TradeService.Buy(ctx, localSymbol, order.Rate, order.Amount)
		}
		return e.client.TradeService.Sell(ctx, localSymbol, order.Rate, order.Amount)

	case types.OrderSubtypeMargin:
		lendingRate := order.LendingRate
		if lendingRate.IsZero() {
			lendingRate = DefaultLendingRate
		}
		if order.Side == types.SideTypeBuy {
			return e.client.TradeService.MarginBuy(ctx, localSymbol, order.Rate, order.Amount, lendingRate)
		}
		return e.client.TradeService.MarginSell(ctx, localSymbol, order.Rate, order.Amount, lendingRate)
	}

	return nil, errors.Wrapf(types.ErrInvalidOrderSubtype, "%q", order.Subtype)
}

func (e *Exchange) QueryOpenOrders(ctx context.Context, pair types.Pair) ([]types.Order, error) {
	raws, err := e.client.TradeService.OpenOrders(ctx, pair.LocalSymbol())
	e.trace("QueryOpenOrders", map[string]interface{}{"pair": pair.String()}, raws, err)
	if err != nil {
		return nil, err
	}

	orders := make([]types.Order, 0, len(raws))
	for _, raw := range raws {
		order, err := convertOpenOrder(pair, raw)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// QueryAllOpenOrders returns the open orders of every market, keyed by the
// canonical pair string. Markets with no open orders are omitted.
func (e *Exchange) QueryAllOpenOrders(ctx context.Context) (map[string][]types.Order, error) {
	raws, err := e.client.TradeService.AllOpenOrders(ctx)
	e.trace("QueryAllOpenOrders", nil, raws, err)
	if err != nil {
		return nil, err
	}

	orders := make(map[string][]types.Order)
	for localSymbol, rawOrders := range raws {
		if len(rawOrders) == 0 {
			continue
		}

		pair, err := types.ParseLocalSymbol(localSymbol)
		if err != nil {
			log.WithError(err).Warnf("skipping unparsable pair %q", localSymbol)
			continue
		}

		for _, raw := range rawOrders {
			order, err := convertOpenOrder(pair, raw)
			if err != nil {
				return nil, err
			}
			orders[pair.String()] = append(orders[pair.String()], order)
		}
	}
	return orders, nil
}

// QueryOrderTrades returns the fills of a single order. An order the
// exchange no longer knows about yields an empty list, not an error.
func (e *Exchange) QueryOrderTrades(ctx context.Context, orderID uint64) ([]types.Trade, error) {
	raws, err := e.client.TradeService.OrderTrades(ctx, orderID)
	e.trace("QueryOrderTrades", map[string]interface{}{"orderID": orderID}, raws, err)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, nil
		}
		return nil, err
	}

	trades := make([]types.Trade, 0, len(raws))
	for _, raw := range raws {
		pair, err := types.ParseLocalSymbol(raw.CurrencyPair)
		if err != nil {
			return nil, err
		}

		trade, err := convertTrade(pair, raw)
		if err != nil {
			return nil, err
		}
		trade.OrderID = orderID
		trades = append(trades, trade)
	}
	return trades, nil
}

// CancelOrder cancels an open order. Cancellation is confirmation-gated;
// transport failures after dispatch surface as *AmbiguousOutcomeError.
func (e *Exchange) CancelOrder(ctx context.Context, orderID uint64) error {
	if err := e.confirm(fmt.Sprintf("cancel order %d", orderID)); err != nil {
		return err
	}

	err := e.client.TradeService.CancelOrder(ctx, orderID)
	e.trace("CancelOrder", map[string]interface{}{"orderID": orderID}, nil, err)
	if err != nil {
		return wrapAmbiguous("CancelOrder", err)
	}
	return nil
}

// MoveOrder replaces an open order's rate and optionally its amount. A nil
// rate keeps the current rate, a nil amount keeps the outstanding amount;
// both nil is a no-op that performs no request and returns a nil order.
// The exchange assigns a new order number to the moved order.
func (e *Exchange) MoveOrder(ctx context.Context, orderID uint64, rate, amount *fixedpoint.Value) (*types.Order, error) {
	if rate == nil && amount == nil {
		return nil, nil
	}

	existing, err := e.findOpenOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	newRate := existing.Rate
	if rate != nil {
		newRate = *rate
	}
	newAmount := fixedpoint.Zero
	if amount != nil {
		newAmount = *amount
	}

	if err := e.confirm(fmt.Sprintf("move order %d to %s %s", orderID,
		newRate.String(), existing.Pair.Quote)); err != nil {
		return nil, err
	}

	resp, err := e.client.TradeService.MoveOrder(ctx, orderID, newRate, newAmount)
	e.trace("MoveOrder", map[string]interface{}{
		"orderID": orderID,
		"rate":    newRate.String(),
	}, resp, err)
	if err != nil {
		return nil, wrapAmbiguous("MoveOrder", err)
	}

	newOrderID, err := parseID(resp.OrderNumber)
	if err != nil {
		return nil, errors.Wrap(err, "order number")
	}

	moved := *existing
	moved.OrderID = newOrderID
	moved.Rate = newRate
	if amount != nil {
		moved.Amount = newAmount
		moved.AmountOutstanding = newAmount
	}
	return &moved, nil
}

func (e *Exchange) findOpenOrder(ctx context.Context, orderID uint64) (*types.Order, error) {
	all, err := e.QueryAllOpenOrders(ctx)
	if err != nil {
		return nil, err
	}

	for _, orders := range all {
		for _, order := range orders {
			if order.OrderID == orderID {
				order := order
				return &order, nil
			}
		}
	}
	return nil, errors.Wrapf(ErrOrderNotFound, "order %d", orderID)
}
