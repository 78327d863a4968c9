package fixedpoint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromString(t *testing.T) {
	cases := map[string]Value{
		"0":           0,
		"1":           Value(DefaultPow),
		"-1":          Value(-DefaultPow),
		"+1.5":        Value(150_000_000),
		"0.05":        Value(5_000_000),
		"100.0":       Value(100 * DefaultPow),
		"0.00000001":  1,
		"-0.00000001": -1,
		".5":          Value(50_000_000),
		"5.00000000":  Value(5 * DefaultPow),
		"1e-8":        1,
		"1.5e2":       Value(150 * DefaultPow),
		"1e2":         Value(100 * DefaultPow),
		"1.5e1":       Value(15 * DefaultPow),
		"1.5e3":       Value(1500 * DefaultPow),
		"-2.5e2":      Value(-250 * DefaultPow),
		"0.050000000": Value(5_000_000), // sub-ULP zeros are fine
	}

	for input, expected := range cases {
		v, err := NewFromString(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, expected, v, "input %q", input)
	}
}

func TestNewFromString_Malformed(t *testing.T) {
	for _, input := range []string{"", ".", "-", "1.2.3", "abc", "1,5", "0x10"} {
		_, err := NewFromString(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestNewFromString_Overflow(t *testing.T) {
	for _, input := range []string{"100000000000", "1e12", "9.3e10"} {
		_, err := NewFromString(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestNewFromString_PrecisionLoss(t *testing.T) {
	_, err := NewFromString("0.000000015")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrecisionLoss)

	_, err = NewFromString("1e-9")
	assert.ErrorIs(t, err, ErrPrecisionLoss)
}

func TestStringRoundTrip(t *testing.T) {
	// canonical strings must survive parse -> render unchanged
	for _, s := range []string{"0", "1", "-1", "0.05", "123.456", "0.00000001", "21000000", "-0.1"} {
		v, err := NewFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, v.String())
	}
}

func TestNew_RejectsFloats(t *testing.T) {
	_, err := New(0.05)
	assert.ErrorIs(t, err, ErrFloatConversion)

	_, err = New(float32(1.0))
	assert.ErrorIs(t, err, ErrFloatConversion)

	v, err := New("0.05")
	require.NoError(t, err)
	assert.Equal(t, MustNewFromString("0.05"), v)

	v, err = New(3)
	require.NoError(t, err)
	assert.Equal(t, NewFromInt(3), v)
}

func TestMul(t *testing.T) {
	rate := MustNewFromString("0.05")
	amount := MustNewFromString("100.0")
	assert.Equal(t, MustNewFromString("5.00000000"), rate.Mul(amount))

	// exact product below the ULP rounds half away
	a := MustNewFromString("0.00000003")
	b := MustNewFromString("0.5")
	assert.Equal(t, MustNewFromString("0.00000002"), a.Mul(b)) // 1.5e-8 -> 2e-8
}

func TestMulUp(t *testing.T) {
	// 0.1 * 0.00000015 = 1.5e-8 exactly, must round UP to 2e-8
	fee := MustNewFromString("0.00000015").MulUp(MustNewFromString("0.1"))
	assert.Equal(t, MustNewFromString("0.00000002"), fee)

	// any nonzero remainder rounds up, even far below the midpoint
	fee = MustNewFromString("0.00000001").MulUp(MustNewFromString("0.0001"))
	assert.Equal(t, Value(1), fee)

	// exact results stay exact
	fee = MustNewFromString("100").MulUp(MustNewFromString("0.0025"))
	assert.Equal(t, MustNewFromString("0.25"), fee)
}

func TestDiv(t *testing.T) {
	v := MustNewFromString("1").Div(MustNewFromString("8"))
	assert.Equal(t, MustNewFromString("0.125"), v)

	v = MustNewFromString("10").Div(MustNewFromString("3"))
	assert.Equal(t, MustNewFromString("3.33333333"), v)
}

func TestFormatString(t *testing.T) {
	v := MustNewFromString("5")
	assert.Equal(t, "5.00000000", v.FormatString(DefaultPrecision))
	assert.Equal(t, "5.00", v.FormatString(2))
	assert.Equal(t, "5", v.FormatString(0))

	v = MustNewFromString("-0.125")
	assert.Equal(t, "-0.12500000", v.FormatString(DefaultPrecision))
	assert.Equal(t, "-0.13", v.FormatString(2))
}

func TestJSON(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`"0.00001000"`), &v))
	assert.Equal(t, MustNewFromString("0.00001"), v)

	require.NoError(t, json.Unmarshal([]byte(`42`), &v))
	assert.Equal(t, NewFromInt(42), v)

	// bare number literals are parsed textually, not via float64
	require.NoError(t, json.Unmarshal([]byte(`0.1`), &v))
	assert.Equal(t, MustNewFromString("0.1"), v)

	out, err := json.Marshal(MustNewFromString("0.05"))
	require.NoError(t, err)
	assert.Equal(t, `"0.05"`, string(out))
}

func TestSum(t *testing.T) {
	values := []Value{MustNewFromString("0.1"), MustNewFromString("0.2"), MustNewFromString("0.3")}
	assert.Equal(t, MustNewFromString("0.6"), Sum(values))
}

func TestMaxMin(t *testing.T) {
	a := MustNewFromString("1.5")
	b := MustNewFromString("-2")
	assert.Equal(t, a, Max(a, b))
	assert.Equal(t, a, Max(b, a))
	assert.Equal(t, b, Min(a, b))
	assert.Equal(t, b, Min(b, a))
	assert.Equal(t, a, Max(a, a))
	assert.Equal(t, a, Min(a, a))
}
