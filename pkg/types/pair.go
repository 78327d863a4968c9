package types

import (
	"strings"

	"github.com/pkg/errors"
)

// Pair is a tradable base/quote currency combination. The canonical string
// form is "BASE/QUOTE"; the exchange's own wire encoding is "QUOTE_BASE".
type Pair struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

var ErrMalformedPair = errors.New("malformed currency pair")

func isCurrencySymbol(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// ParsePair parses the canonical "BASE/QUOTE" form.
func ParsePair(s string) (Pair, error) {
	base, quote, ok := strings.Cut(s, "/")
	if !ok || !isCurrencySymbol(base) || !isCurrencySymbol(quote) || base == quote {
		return Pair{}, errors.Wrapf(ErrMalformedPair, "%q", s)
	}
	return Pair{Base: base, Quote: quote}, nil
}

func MustParsePair(s string) Pair {
	p, err := ParsePair(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseLocalSymbol parses the exchange encoding "QUOTE_BASE",
// e.g. "BTC_ETH" is the ETH/BTC pair.
func ParseLocalSymbol(s string) (Pair, error) {
	quote, base, ok := strings.Cut(s, "_")
	if !ok || !isCurrencySymbol(base) || !isCurrencySymbol(quote) || base == quote {
		return Pair{}, errors.Wrapf(ErrMalformedPair, "%q", s)
	}
	return Pair{Base: base, Quote: quote}, nil
}

func (p Pair) String() string {
	return p.Base + "/" + p.Quote
}

// LocalSymbol returns the exchange encoding of the pair.
func (p Pair) LocalSymbol() string {
	return p.Quote + "_" + p.Base
}

func (p Pair) IsZero() bool {
	return p.Base == "" && p.Quote == ""
}
