// Package fixedpoint provides an exact base-10 fixed-point value type for
// currency quantities. Every amount on Poloniex is quantized to 1e-8, so a
// Value is an int64 count of those units. Arithmetic never passes through
// binary floating point.
package fixedpoint

import (
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const DefaultPrecision = 8

// DefaultPow is the scaling factor, 10^DefaultPrecision.
const DefaultPow int64 = 100_000_000

type Value int64

var (
	Zero = Value(0)
	One  = Value(DefaultPow)
)

// ErrFloatConversion is returned by New for float32/float64 inputs. Binary
// floats cannot represent most decimal fractions exactly, so accepting them
// would silently corrupt traded quantities.
var ErrFloatConversion = errors.New("fixedpoint: binary floating point values are not accepted, use a decimal string")

var ErrPrecisionLoss = errors.New("fixedpoint: value exceeds the maximum precision of 8 fraction digits")

const maxWhole = math.MaxInt64 / DefaultPow

var pow10 = [...]int64{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000}

func NewFromInt(v int) Value {
	return NewFromInt64(int64(v))
}

func NewFromInt64(v int64) Value {
	return Value(v * DefaultPow)
}

// New constructs a Value from an exact representation: int, int64, string or
// Value. float32 and float64 are rejected with ErrFloatConversion.
func New(a interface{}) (Value, error) {
	switch v := a.(type) {
	case Value:
		return v, nil
	case int:
		return NewFromInt(v), nil
	case int64:
		return NewFromInt64(v), nil
	case string:
		return NewFromString(v)
	case float32, float64:
		return Zero, ErrFloatConversion
	default:
		return Zero, errors.Errorf("fixedpoint: unsupported type %T", a)
	}
}

// NewFromString parses a decimal string exactly, digit by digit. An optional
// exponent part is honored. Fraction digits beyond 1e-8 must be zero,
// otherwise ErrPrecisionLoss is returned.
func NewFromString(input string) (Value, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Zero, errors.New("fixedpoint: empty value")
	}

	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}

	mantissa := s
	exp := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Zero, errors.Wrapf(err, "fixedpoint: malformed exponent in %q", input)
		}
		exp = e
	}

	intPart, fracPart, _ := strings.Cut(mantissa, ".")
	if len(intPart) == 0 && len(fracPart) == 0 {
		return Zero, errors.Errorf("fixedpoint: malformed value %q", input)
	}

	digits := intPart + fracPart
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Zero, errors.Errorf("fixedpoint: malformed value %q", input)
		}
	}

	// fracLen is the number of digits behind the decimal point after the
	// exponent is applied.
	fracLen := len(fracPart) - exp

	// Digits below the ULP must all be zero.
	for fracLen > DefaultPrecision && len(digits) > 0 {
		if digits[len(digits)-1] != '0' {
			return Zero, errors.Wrapf(ErrPrecisionLoss, "parsing %q", input)
		}
		digits = digits[:len(digits)-1]
		fracLen--
	}
	if fracLen > DefaultPrecision {
		fracLen = DefaultPrecision
	}

	// An exponent shifting the point past the fraction digits leaves whole
	// trailing zeros to materialize, e.g. "1.5e3" is the digits 1500.
	if fracLen < 0 {
		digits += strings.Repeat("0", -fracLen)
		fracLen = 0
	}

	var unscaled int64
	for i := 0; i < len(digits); i++ {
		if unscaled > (math.MaxInt64-9)/10 {
			return Zero, errors.Errorf("fixedpoint: value %q overflows", input)
		}
		unscaled = unscaled*10 + int64(digits[i]-'0')
	}

	shift := DefaultPrecision - fracLen
	if shift > 0 {
		if shift >= len(pow10) || unscaled > math.MaxInt64/pow10[shift] {
			return Zero, errors.Errorf("fixedpoint: value %q overflows", input)
		}
		unscaled *= pow10[shift]
	}

	if neg {
		unscaled = -unscaled
	}
	return Value(unscaled), nil
}

func MustNewFromString(input string) Value {
	v, err := NewFromString(input)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Value) Add(v2 Value) Value {
	return v + v2
}

func (v Value) Sub(v2 Value) Value {
	return v - v2
}

func (v Value) Neg() Value {
	return -v
}

func (v Value) Abs() Value {
	if v < 0 {
		return -v
	}
	return v
}

// Mul returns the exact 128-bit product rounded half away from zero at the
// ULP.
func (v Value) Mul(v2 Value) Value {
	return mulDiv(v, v2, Value(DefaultPow), roundHalfAway)
}

// MulUp returns the exact 128-bit product rounded up (away from zero) at the
// ULP. Fees are always rounded with MulUp, never to nearest.
func (v Value) MulUp(v2 Value) Value {
	return mulDiv(v, v2, Value(DefaultPow), roundAway)
}

// Div returns v / v2 rounded half away from zero at the ULP.
func (v Value) Div(v2 Value) Value {
	return mulDiv(v, Value(DefaultPow), v2, roundHalfAway)
}

func (v Value) Compare(v2 Value) int {
	switch {
	case v < v2:
		return -1
	case v > v2:
		return 1
	}
	return 0
}

func (v Value) Sign() int {
	return v.Compare(Zero)
}

func (v Value) IsZero() bool {
	return v == 0
}

func (v Value) Int64() int64 {
	return int64(v) / DefaultPow
}

// Float64 is for display and interop only. It must never feed back into
// quantity arithmetic.
func (v Value) Float64() float64 {
	return float64(v) / float64(DefaultPow)
}

// String renders the canonical decimal form with trailing fraction zeros
// trimmed, so parsing a canonical string round-trips exactly.
func (v Value) String() string {
	s := v.FormatString(DefaultPrecision)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// FormatString renders the value with exactly prec fraction digits,
// 0 <= prec <= 8, rounding half away from zero. The exchange's wire format
// uses the full 8 digits.
func (v Value) FormatString(prec int) string {
	if prec < 0 {
		prec = 0
	}
	if prec > DefaultPrecision {
		prec = DefaultPrecision
	}

	u := uint64(v)
	sign := ""
	if v < 0 {
		sign = "-"
		u = uint64(-v)
	}

	if prec < DefaultPrecision {
		scale := uint64(pow10[DefaultPrecision-prec])
		u = (u + scale/2) / scale
	}

	scale := uint64(pow10[prec])
	whole := u / scale
	frac := u % scale
	if prec == 0 {
		return sign + strconv.FormatUint(whole, 10)
	}

	fs := strconv.FormatUint(frac, 10)
	if pad := prec - len(fs); pad > 0 {
		fs = strings.Repeat("0", pad) + fs
	}
	return sign + strconv.FormatUint(whole, 10) + "." + fs
}

func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted decimal string or a bare JSON number
// literal. Either way the literal text is parsed directly; it never passes
// through float64.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return errors.Wrap(err, "fixedpoint: invalid JSON string")
		}
		s = unquoted
	}

	nv, err := NewFromString(s)
	if err != nil {
		return err
	}
	*v = nv
	return nil
}

type roundMode int

const (
	roundHalfAway roundMode = iota
	roundAway
)

// mulDiv computes (x * y) / denom through a 128-bit intermediate so the
// product of two scaled values never loses digits before rounding.
func mulDiv(x, y, denom Value, mode roundMode) Value {
	if denom == 0 {
		panic("fixedpoint: division by zero")
	}

	neg := (x < 0) != (y < 0)
	if denom < 0 {
		neg = !neg
		denom = -denom
	}

	hi, lo := bits.Mul64(uint64(x.Abs()), uint64(y.Abs()))
	if hi >= uint64(denom) {
		panic("fixedpoint: multiplication overflow")
	}

	q, r := bits.Div64(hi, lo, uint64(denom))
	switch mode {
	case roundAway:
		if r > 0 {
			q++
		}
	default: // roundHalfAway
		if 2*r >= uint64(denom) {
			q++
		}
	}

	if q > uint64(math.MaxInt64) {
		panic("fixedpoint: multiplication overflow")
	}
	if neg {
		return Value(-int64(q))
	}
	return Value(int64(q))
}
