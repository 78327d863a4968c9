package poloapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrAuthenticationRequired is returned when a trading API call is attempted
// without credentials; no request is issued.
var ErrAuthenticationRequired = errors.New("poloniex: trading API call requires an api key and secret")

// ErrOrderNotFound matches the exchange's order-not-found error message.
var ErrOrderNotFound = errors.New("poloniex: order not found")

// ErrInvalidPair matches the exchange's invalid-currency-pair error messages.
var ErrInvalidPair = errors.New("poloniex: nonexistent currency pair")

const orderNotFoundMessage = "Order not found, or you are not the person who placed it."

var invalidPairMessages = map[string]struct{}{
	"Invalid currency pair.":          {},
	"Invalid currencyPair parameter.": {},
}

// TransportError wraps a network level failure: the request may or may not
// have reached the exchange.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "poloniex: transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ExchangeError is a well-formed error response from the exchange. Message
// carries the exchange-provided text verbatim.
type ExchangeError struct {
	Code    int
	Message string
	Command string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("poloniex: command %q failed (status %d): %s", e.Command, e.Code, e.Message)
}

// Is maps well-known exchange error messages onto sentinel errors so callers
// can use errors.Is without string matching.
func (e *ExchangeError) Is(target error) bool {
	switch target {
	case ErrOrderNotFound:
		return e.Message == orderNotFoundMessage
	case ErrInvalidPair:
		_, ok := invalidPairMessages[e.Message]
		return ok
	}
	return false
}

// decodeResponse inspects the error envelope the exchange wraps failures in,
// then decodes the payload into result. The exchange reports most errors
// with HTTP 200, so the envelope is checked before the status code.
func decodeResponse(command string, status int, body []byte, result interface{}) error {
	var envelope struct {
		Error   string `json:"error"`
		Success *int   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return &ExchangeError{Code: status, Message: envelope.Error, Command: command}
		}
		if envelope.Success != nil && *envelope.Success != 1 {
			return &ExchangeError{Code: status, Message: envelope.Message, Command: command}
		}
	}

	if status < 200 || status >= 300 {
		return &ExchangeError{Code: status, Message: strings.TrimSpace(string(body)), Command: command}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return errors.Wrapf(err, "poloniex: can not decode %q response", command)
	}
	return nil
}
