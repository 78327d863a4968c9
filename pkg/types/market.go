package types

import (
	"github.com/leekchan/accounting"
)

// Market describes a tradable pair. Poloniex quantizes every currency to
// 1e-8, so both precisions are fixed at 8.
type Market struct {
	Pair Pair `json:"pair"`

	PricePrecision  int `json:"pricePrecision"`
	VolumePrecision int `json:"volumePrecision"`
}

func NewMarket(pair Pair) Market {
	return Market{
		Pair:            pair,
		PricePrecision:  8,
		VolumePrecision: 8,
	}
}

func (m Market) BaseCurrencyFormatter() *accounting.Accounting {
	a := accounting.DefaultAccounting(m.Pair.Base, m.VolumePrecision)
	a.Format = "%v %s"
	return a
}

func (m Market) QuoteCurrencyFormatter() *accounting.Accounting {
	a := accounting.DefaultAccounting(m.Pair.Quote, m.PricePrecision)
	a.Format = "%v %s"
	return a
}

// MarketMap maps the canonical pair string to its market metadata.
type MarketMap map[string]Market

func (m MarketMap) Has(pair Pair) bool {
	_, ok := m[pair.String()]
	return ok
}
