package types

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// SideType defines the trade direction, buy or sell.
type SideType string

const (
	SideTypeBuy  SideType = "buy"
	SideTypeSell SideType = "sell"
)

var ErrInvalidSideType = errors.New("invalid side type")

func ParseSideType(s string) (SideType, error) {
	side := SideType(strings.ToLower(s))
	switch side {
	case SideTypeBuy, SideTypeSell:
		return side, nil
	}
	return side, errors.Wrapf(ErrInvalidSideType, "%q", s)
}

func (s SideType) Reverse() SideType {
	if s == SideTypeBuy {
		return SideTypeSell
	}
	return SideTypeBuy
}

func (s SideType) String() string {
	return string(s)
}

func (s *SideType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	side, err := ParseSideType(raw)
	if err != nil {
		return err
	}

	*s = side
	return nil
}
