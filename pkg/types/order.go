package types

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/c9s/poloniex/pkg/fixedpoint"
)

// OrderSubtype tells whether an order trades exchange-held funds or borrowed
// (margin) funds.
type OrderSubtype string

const (
	OrderSubtypeExchange OrderSubtype = "exchange"
	OrderSubtypeMargin   OrderSubtype = "margin"
)

var ErrInvalidOrderSubtype = errors.New("order subtype must be one of: exchange, margin")

func ParseOrderSubtype(s string) (OrderSubtype, error) {
	subtype := OrderSubtype(strings.ToLower(s))
	switch subtype {
	case OrderSubtypeExchange, OrderSubtypeMargin:
		return subtype, nil
	}
	return subtype, errors.Wrapf(ErrInvalidOrderSubtype, "%q", s)
}

type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCanceled        OrderStatus = "CANCELED"
)

// SubmitOrder describes an order to be placed. Rate and Amount are exact
// fixed-point values; construct them with fixedpoint.New or
// fixedpoint.NewFromString, never from floats.
type SubmitOrder struct {
	Side    SideType     `json:"side"`
	Subtype OrderSubtype `json:"subtype"`
	Pair    Pair         `json:"pair"`

	// Rate is the limit price in the quote currency.
	Rate fixedpoint.Value `json:"rate"`

	// Amount is the order size in the base currency.
	Amount fixedpoint.Value `json:"amount"`

	// LendingRate caps the loan rate for margin orders. Ignored for
	// exchange orders.
	LendingRate fixedpoint.Value `json:"lendingRate,omitempty"`
}

// Total returns the order's value in the quote currency, rate x amount.
func (o SubmitOrder) Total() fixedpoint.Value {
	return o.Rate.Mul(o.Amount)
}

func (o SubmitOrder) Validate() error {
	if o.Pair.IsZero() {
		return errors.Wrap(ErrMalformedPair, "submit order")
	}
	if _, err := ParseSideType(string(o.Side)); err != nil {
		return err
	}
	if _, err := ParseOrderSubtype(string(o.Subtype)); err != nil {
		return err
	}
	if o.Rate.Sign() < 0 {
		return errors.New("order rate must be >= 0")
	}
	if o.Amount.Sign() <= 0 {
		return errors.New("order amount must be > 0")
	}
	return nil
}

func (o SubmitOrder) String() string {
	return fmt.Sprintf("SubmitOrder %s %s %s @ %s", strings.ToUpper(string(o.Side)), o.Amount.String(), o.Pair.String(), o.Rate.String())
}

// Order is a snapshot of a resting or historical order. The exchange is
// authoritative; this is not a live handle.
type Order struct {
	SubmitOrder

	OrderID uint64      `json:"orderID"`
	Status  OrderStatus `json:"status"`

	// AmountOutstanding is the base-currency amount not yet filled.
	AmountOutstanding fixedpoint.Value `json:"amountOutstanding"`

	CreationTime Time `json:"creationTime,omitempty"`
}

func (o Order) IsOpen() bool {
	return o.Status == OrderStatusNew || o.Status == OrderStatusPartiallyFilled
}

func (o Order) String() string {
	return fmt.Sprintf("ORDER %d %s %s %s @ %s | outstanding %s | %s",
		o.OrderID,
		strings.ToUpper(string(o.Side)),
		o.Amount.String(),
		o.Pair.String(),
		o.Rate.String(),
		o.AmountOutstanding.String(),
		o.Status,
	)
}
