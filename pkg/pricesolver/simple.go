// Package pricesolver resolves the price of an asset in a quote currency
// from a set of observed market prices, optionally inferring through
// intermediate currencies when no direct market exists.
package pricesolver

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/c9s/poloniex/pkg/fixedpoint"
	"github.com/c9s/poloniex/pkg/types"
)

var log = logrus.WithField("component", "pricesolver")

// SimplePriceSolver implements a map-structure-based price index.
type SimplePriceSolver struct {
	// pricesByBase maps a base currency to the quote currencies it trades
	// against and the last observed price; pricesByQuote is the mirror.
	pricesByBase  map[string]map[string]fixedpoint.Value
	pricesByQuote map[string]map[string]fixedpoint.Value

	mu sync.Mutex
}

func NewSimplePriceResolver() *SimplePriceSolver {
	return &SimplePriceSolver{
		pricesByBase:  make(map[string]map[string]fixedpoint.Value),
		pricesByQuote: make(map[string]map[string]fixedpoint.Value),
	}
}

// Update records the last price of a pair.
func (m *SimplePriceSolver) Update(pair types.Pair, price fixedpoint.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()

	quoteMap, ok := m.pricesByBase[pair.Base]
	if !ok {
		quoteMap = make(map[string]fixedpoint.Value)
		m.pricesByBase[pair.Base] = quoteMap
	}
	quoteMap[pair.Quote] = price

	baseMap, ok := m.pricesByQuote[pair.Quote]
	if !ok {
		baseMap = make(map[string]fixedpoint.Value)
		m.pricesByQuote[pair.Quote] = baseMap
	}
	baseMap[pair.Base] = price
}

// UpdateFromTickers records the last price of every ticker in the map.
func (m *SimplePriceSolver) UpdateFromTickers(tickers types.TickerMap) {
	for _, ticker := range tickers {
		if ticker.Last.IsZero() {
			continue
		}
		m.Update(ticker.Pair, ticker.Last)
	}
}

type edge struct {
	currency string
	price    fixedpoint.Value
}

// neighbors returns the currencies one market away, each with the price of
// one unit of the given currency in it, in sorted order. A direct market
// wins over an inverted one against the same neighbor.
func (m *SimplePriceSolver) neighbors(currency string) []edge {
	prices := make(map[string]fixedpoint.Value)
	for quoteCurrency, price := range m.pricesByBase[currency] {
		prices[quoteCurrency] = price
	}
	for baseCurrency, price := range m.pricesByQuote[currency] {
		if price.IsZero() {
			continue
		}
		if _, ok := prices[baseCurrency]; !ok {
			prices[baseCurrency] = fixedpoint.One.Div(price)
		}
	}

	currencies := make([]string, 0, len(prices))
	for c := range prices {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	edges := make([]edge, 0, len(currencies))
	for _, c := range currencies {
		edges = append(edges, edge{currency: c, price: prices[c]})
	}
	return edges
}

// inferencePrice walks the pair graph breadth-first from asset, folding
// prices along the way, so the first path reaching quote crosses the fewest
// markets and the result is deterministic.
func (m *SimplePriceSolver) inferencePrice(asset, quote string) (fixedpoint.Value, bool) {
	type step struct {
		currency string
		price    fixedpoint.Value
	}

	visited := map[string]struct{}{asset: {}}
	queue := []step{{currency: asset, price: fixedpoint.One}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, e := range m.neighbors(cur.currency) {
			if _, seen := visited[e.currency]; seen {
				continue
			}

			price := cur.price.Mul(e.price)
			if e.currency == quote {
				return price, true
			}

			visited[e.currency] = struct{}{}
			queue = append(queue, step{currency: e.currency, price: price})
		}
	}

	return fixedpoint.Zero, false
}

// ResolvePrice resolves the price of asset denominated in quote. When
// allowInference is false only a direct or directly inverted market is
// consulted; otherwise the solver walks through intermediate currencies.
func (m *SimplePriceSolver) ResolvePrice(asset, quote string, allowInference bool) (fixedpoint.Value, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if asset == quote {
		return fixedpoint.One, true
	}

	if !allowInference {
		if quotePrices, ok := m.pricesByBase[asset]; ok {
			if price, ok := quotePrices[quote]; ok {
				return price, true
			}
		}
		if basePrices, ok := m.pricesByQuote[asset]; ok {
			if price, ok := basePrices[quote]; ok && !price.IsZero() {
				return fixedpoint.One.Div(price), true
			}
		}
		return fixedpoint.Zero, false
	}

	price, ok := m.inferencePrice(asset, quote)
	if !ok {
		log.Debugf("unable to resolve price for %s in %s", asset, quote)
	}
	return price, ok
}
