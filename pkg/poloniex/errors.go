package poloniex

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/c9s/poloniex/pkg/poloniex/poloapi"
)

// Wire-level error kinds, re-exported so most callers only import this
// package.
var (
	ErrAuthenticationRequired = poloapi.ErrAuthenticationRequired
	ErrOrderNotFound          = poloapi.ErrOrderNotFound
	ErrInvalidPair            = poloapi.ErrInvalidPair
)

type (
	TransportError = poloapi.TransportError
	ExchangeError  = poloapi.ExchangeError
)

// ErrRequestCancelled is returned when the confirmation collaborator
// declines a trading call. No request has been sent.
var ErrRequestCancelled = errors.New("poloniex: request cancelled by user")

// ErrCurrencyNotFound is returned when a queried currency is not listed on
// the exchange at all.
var ErrCurrencyNotFound = errors.New("poloniex: currency not found on the exchange")

// ErrNotSupported marks balance filter combinations the exchange has no
// endpoint for.
var ErrNotSupported = errors.New("poloniex: not supported by the exchange API")

// AmbiguousOutcomeError wraps a transport failure of a trading mutation: the
// request may have been executed by the exchange even though no response
// arrived. The call is never re-issued automatically; the caller must
// reconcile against the exchange state.
type AmbiguousOutcomeError struct {
	Op  string
	Err error
}

func (e *AmbiguousOutcomeError) Error() string {
	return fmt.Sprintf("poloniex: %s outcome is unknown, the request may have reached the exchange: %v", e.Op, e.Err)
}

func (e *AmbiguousOutcomeError) Unwrap() error {
	return e.Err
}

// UnpricableAssetError aborts a valuation when a held currency has no market
// against the quote currency (and triangulation was not opted into).
type UnpricableAssetError struct {
	Currency string
	Quote    string
}

func (e *UnpricableAssetError) Error() string {
	return fmt.Sprintf("poloniex: no market available to price %s in %s", e.Currency, e.Quote)
}

// wrapAmbiguous converts a transport failure of a trading mutation into an
// AmbiguousOutcomeError. Exchange-reported errors pass through: a rejected
// request definitely did not execute.
func wrapAmbiguous(op string, err error) error {
	if err == nil {
		return nil
	}

	var te *TransportError
	if errors.As(err, &te) {
		return &AmbiguousOutcomeError{Op: op, Err: te}
	}
	return err
}
