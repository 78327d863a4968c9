package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/poloniex/pkg/fixedpoint"
)

func TestSubmitOrderTotal(t *testing.T) {
	o := SubmitOrder{
		Side:    SideTypeBuy,
		Subtype: OrderSubtypeExchange,
		Pair:    MustParsePair("ETH/BTC"),
		Rate:    fixedpoint.MustNewFromString("0.05"),
		Amount:  fixedpoint.MustNewFromString("100.0"),
	}

	require.NoError(t, o.Validate())
	assert.Equal(t, fixedpoint.MustNewFromString("5.00000000"), o.Total())
}

func TestSubmitOrderValidate(t *testing.T) {
	base := SubmitOrder{
		Side:    SideTypeSell,
		Subtype: OrderSubtypeMargin,
		Pair:    MustParsePair("XMR/BTC"),
		Rate:    fixedpoint.MustNewFromString("0.01"),
		Amount:  fixedpoint.MustNewFromString("2"),
	}
	require.NoError(t, base.Validate())

	o := base
	o.Subtype = "lending"
	assert.ErrorIs(t, o.Validate(), ErrInvalidOrderSubtype)

	o = base
	o.Side = "short"
	assert.ErrorIs(t, o.Validate(), ErrInvalidSideType)

	o = base
	o.Amount = fixedpoint.Zero
	assert.Error(t, o.Validate())

	o = base
	o.Rate = fixedpoint.MustNewFromString("-0.1")
	assert.Error(t, o.Validate())
}

func TestOrderIsOpen(t *testing.T) {
	o := Order{Status: OrderStatusNew}
	assert.True(t, o.IsOpen())

	o.Status = OrderStatusPartiallyFilled
	assert.True(t, o.IsOpen())

	o.Status = OrderStatusFilled
	assert.False(t, o.IsOpen())

	o.Status = OrderStatusCanceled
	assert.False(t, o.IsOpen())
}
