package types

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/c9s/poloniex/pkg/fixedpoint"
)

// Trade is an executed fill, public or the member's own. Trades are
// historical facts and are never mutated after construction.
type Trade struct {
	// GlobalID is the exchange-wide trade identifier, assigned on both the
	// public and the private trade history payloads. It is the
	// deduplication key: two distinct trades can share rate, amount and
	// timestamp, but never a global id.
	GlobalID uint64 `json:"globalTradeID"`

	// ID is the per-market trade identifier.
	ID uint64 `json:"tradeID"`

	// OrderID is the member's order this fill belongs to. Zero on public
	// trades.
	OrderID uint64 `json:"orderID,omitempty"`

	Pair    Pair         `json:"pair"`
	Side    SideType     `json:"side"`
	Subtype OrderSubtype `json:"subtype,omitempty"`

	Rate   fixedpoint.Value `json:"rate"`
	Amount fixedpoint.Value `json:"amount"`
	Total  fixedpoint.Value `json:"total"`

	// FeeRate is the fee fraction reported by the exchange; Fee is the
	// materialized base-currency fee, ceiling-rounded to the ULP. Both are
	// zero on public trades.
	FeeRate fixedpoint.Value `json:"feeRate,omitempty"`
	Fee     fixedpoint.Value `json:"fee,omitempty"`

	Time Time `json:"time"`
}

// Key returns the deduplication key for merging paginated history.
func (t Trade) Key() string {
	return strconv.FormatUint(t.GlobalID, 10)
}

// String is for console output.
func (t Trade) String() string {
	return fmt.Sprintf("TRADE %s %4s %s @ %s | TOTAL %s | FEE %s | GID %d | %s",
		t.Pair.String(),
		strings.ToUpper(string(t.Side)),
		t.Amount.String(),
		t.Rate.String(),
		t.Total.String(),
		t.Fee.String(),
		t.GlobalID,
		t.Time.Time().Format(time.RFC3339),
	)
}

// SortTradesAscending sorts trades by execution time, oldest first, with the
// global id as the tie breaker.
func SortTradesAscending(trades []Trade) []Trade {
	sort.Slice(trades, func(i, j int) bool {
		ti, tj := trades[i].Time.Time(), trades[j].Time.Time()
		if ti.Equal(tj) {
			return trades[i].GlobalID < trades[j].GlobalID
		}
		return ti.Before(tj)
	})
	return trades
}
