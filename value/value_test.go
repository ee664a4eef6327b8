package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/types"
)

// T1: codec round-trip.
func TestCodecRoundTrip(t *testing.T) {
	cases := []TypedValue{
		Int64v(42),
		Float64v(3.25),
		StringV("hello"),
		Boolean(true),
		DateMillis(1709163679081),
	}
	for _, v := range cases {
		buf := make([]byte, 0, 64)
		buf = append(buf, v.Encode()...)
		got, err := Decode(v.TypeOf(), buf, 0)
		require.NoError(t, err)
		require.Equal(t, v.Kind, got.Kind)
		require.Equal(t, v.Unwrap(), got.Unwrap())
	}
}

// T7: Undefined/Null absorb through binary operators, Undefined dominates.
func TestUnknownAbsorption(t *testing.T) {
	x := Int64v(10)
	require.Equal(t, KindUndefined, Undefined().Plus(x).Kind)
	require.Equal(t, KindUndefined, x.Plus(Undefined()).Kind)
	require.Equal(t, KindNull, Null().Plus(x).Kind)
	require.Equal(t, KindUndefined, Undefined().Plus(Null()).Kind)
	require.Equal(t, KindUndefined, Null().Plus(Undefined()).Kind)
}

// Integer division by zero returns the type's maximum value rather than
// erroring (SPEC_FULL.md §5.1).
func TestIntegerDivisionByZero(t *testing.T) {
	got := Int64v(5).Div(Int64v(0))
	require.Equal(t, KindInt64, got.Kind)
	require.NotEqual(t, int64(0), got.Int, "division by zero must not silently yield zero or error")

	gotSmall := Int32v(5).Div(Int32v(0))
	require.Equal(t, KindInt32, gotSmall.Kind)
	require.Equal(t, int64(math.MaxInt32), gotSmall.Int)
}

// scenario 6: JSON projection of a date.
func TestToJSONDate(t *testing.T) {
	raw, err := DateMillis(1709163679081).ToJSON()
	require.NoError(t, err)
	require.Equal(t, `"2024-02-28T23:41:19.081Z"`, string(raw))
}

func TestArithmeticWidening(t *testing.T) {
	got := Int32v(2).Plus(Float64v(1.5))
	require.Equal(t, KindFloat64, got.Kind)
	require.Equal(t, 3.5, got.Float)
}

// Int64v(5).Plus(Int64v(1)) must read integer magnitude from Int, not the
// unset Float field.
func TestIntegerArithmeticReadsInt(t *testing.T) {
	require.Equal(t, int64(6), Int64v(5).Plus(Int64v(1)).Int)
	require.Equal(t, int64(2), Int64v(6).Div(Int64v(3)).Int)
	require.True(t, Int64v(7).Gt(Int64v(3)).Bool)
	require.False(t, Int64v(2).Gt(Int64v(3)).Bool)
}

func TestEnumRoundTrip(t *testing.T) {
	dt := types.Enum([]string{"red", "green", "blue"})
	v := EnumV("green", 1)
	buf := v.Encode()
	require.Len(t, buf, dt.PhysicalSize())

	got, err := Decode(dt, buf, 0)
	require.NoError(t, err)
	require.Equal(t, KindEnum, got.Kind)
	require.Equal(t, "green", got.Str)
	require.Equal(t, int64(1), got.Int)

	_, err = Decode(dt, []byte{0, 9}, 0)
	require.Error(t, err)
}
