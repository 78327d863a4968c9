package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/poloniex/pkg/fixedpoint"
)

// BalanceType filters funds by availability.
type BalanceType string

const (
	BalanceTypeAll       BalanceType = "all"
	BalanceTypeAvailable BalanceType = "available"
	BalanceTypeOnOrder   BalanceType = "on_order"
)

var ErrInvalidBalanceType = errors.New("balance type must be one of: all, available, on_order")

func ParseBalanceType(s string) (BalanceType, error) {
	b := BalanceType(strings.ToLower(s))
	switch b {
	case BalanceTypeAll, BalanceTypeAvailable, BalanceTypeOnOrder:
		return b, nil
	}
	return b, errors.Wrapf(ErrInvalidBalanceType, "%q", s)
}

func (b *BalanceType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	t, err := ParseBalanceType(s)
	if err != nil {
		return err
	}

	*b = t
	return nil
}

// AccountType filters funds by the wallet they sit in.
type AccountType string

const (
	AccountTypeAll      AccountType = "all"
	AccountTypeExchange AccountType = "exchange"
	AccountTypeMargin   AccountType = "margin"
	AccountTypeLending  AccountType = "lending"
)

var ErrInvalidAccountType = errors.New("account type must be one of: all, exchange, margin, lending")

func ParseAccountType(s string) (AccountType, error) {
	a := AccountType(strings.ToLower(s))
	switch a {
	case AccountTypeAll, AccountTypeExchange, AccountTypeMargin, AccountTypeLending:
		return a, nil
	}
	return a, errors.Wrapf(ErrInvalidAccountType, "%q", s)
}

// Balance is the member's holding of a single currency. Locked means on
// open orders.
type Balance struct {
	Currency  string           `json:"currency"`
	Available fixedpoint.Value `json:"available"`
	Locked    fixedpoint.Value `json:"locked"`
}

func (b Balance) Total() fixedpoint.Value {
	return b.Available.Add(b.Locked)
}

func (b Balance) String() string {
	if b.Locked.Sign() > 0 {
		return fmt.Sprintf("%s: %s (on orders %s)", b.Currency, b.Available.String(), b.Locked.String())
	}
	return fmt.Sprintf("%s: %s", b.Currency, b.Available.String())
}

// BalanceMap maps a currency code to its balance. Derived views never carry
// zero entries.
type BalanceMap map[string]Balance

// Currencies returns the currency codes in sorted order.
func (m BalanceMap) Currencies() []string {
	currencies := make([]string, 0, len(m))
	for c := range m {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	return currencies
}

func (m BalanceMap) String() string {
	var ss []string
	for _, c := range m.Currencies() {
		ss = append(ss, m[c].String())
	}
	return "BalanceMap[" + strings.Join(ss, ", ") + "]"
}

func (m BalanceMap) Print(logger logrus.FieldLogger) {
	for _, c := range m.Currencies() {
		logger.Infof(" %s", m[c].String())
	}
}
