package types

import (
	"fmt"

	"github.com/c9s/poloniex/pkg/fixedpoint"
)

type PriceVolume struct {
	Price  fixedpoint.Value `json:"price"`
	Volume fixedpoint.Value `json:"volume"`
}

func (pv PriceVolume) String() string {
	return fmt.Sprintf("%s @ %s", pv.Volume.String(), pv.Price.String())
}

// OrderBook is a depth snapshot. Bids are in descending and asks in
// ascending order by price, as delivered by the exchange.
type OrderBook struct {
	Pair Pair          `json:"pair"`
	Bids []PriceVolume `json:"bids"`
	Asks []PriceVolume `json:"asks"`
}

func (b OrderBook) BestBid() (PriceVolume, bool) {
	if len(b.Bids) == 0 {
		return PriceVolume{}, false
	}
	return b.Bids[0], true
}

func (b OrderBook) BestAsk() (PriceVolume, bool) {
	if len(b.Asks) == 0 {
		return PriceVolume{}, false
	}
	return b.Asks[0], true
}
