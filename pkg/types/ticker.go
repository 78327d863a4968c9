package types

import (
	"fmt"
	"sort"

	"github.com/c9s/poloniex/pkg/fixedpoint"
)

type Ticker struct {
	Pair Pair `json:"pair"`

	Last          fixedpoint.Value `json:"last"`
	HighestBid    fixedpoint.Value `json:"highestBid"`
	LowestAsk     fixedpoint.Value `json:"lowestAsk"`
	BaseVolume    fixedpoint.Value `json:"baseVolume"`
	QuoteVolume   fixedpoint.Value `json:"quoteVolume"`
	PercentChange fixedpoint.Value `json:"percentChange"`
	IsFrozen      bool             `json:"isFrozen"`
}

func (t Ticker) String() string {
	return fmt.Sprintf("TICKER %s last %s bid %s ask %s", t.Pair.String(), t.Last.String(), t.HighestBid.String(), t.LowestAsk.String())
}

// TickerMap maps the canonical pair string to its ticker.
type TickerMap map[string]Ticker

// Pairs returns the pair strings in sorted order.
func (m TickerMap) Pairs() []string {
	pairs := make([]string, 0, len(m))
	for pair := range m {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)
	return pairs
}
