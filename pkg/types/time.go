package types

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// ExchangeTimeLayout is the UTC layout the exchange uses for trade and order
// timestamps.
const ExchangeTimeLayout = "2006-01-02 15:04:05"

// Time wraps time.Time; the wire boundary is unix epoch seconds or the
// exchange's "2006-01-02 15:04:05" UTC layout, internally it is a UTC
// instant.
type Time time.Time

func NewTimeFromUnix(sec int64) Time {
	return Time(time.Unix(sec, 0).UTC())
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) String() string {
	return time.Time(t).UTC().Format(ExchangeTimeLayout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}

	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return errors.Wrap(err, "invalid time string")
		}

		parsed, err := ParseExchangeTime(unquoted)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid unix timestamp %q", s)
	}
	*t = NewTimeFromUnix(sec)
	return nil
}

// ParseExchangeTime parses the exchange timestamp layout as UTC.
func ParseExchangeTime(s string) (Time, error) {
	parsed, err := time.ParseInLocation(ExchangeTimeLayout, s, time.UTC)
	if err != nil {
		return Time{}, errors.Wrapf(err, "invalid exchange timestamp %q", s)
	}
	return Time(parsed), nil
}
