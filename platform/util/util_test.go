package util

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

func TestBase64RoundTrip(t *testing.T) {
	encoded, err := platform.Global().Invoke(pkg, "base64_encode", []value.TypedValue{value.StringV("hello")})
	require.NoError(t, err)
	require.Equal(t, "aGVsbG8=", encoded.Str)

	decoded, err := platform.Global().Invoke(pkg, "base64_decode", []value.TypedValue{encoded})
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), decoded.Bytes)
}

func TestMd5OfBytes(t *testing.T) {
	got, err := platform.Global().Invoke(pkg, "md5", []value.TypedValue{value.StringV("hello")})
	require.NoError(t, err)
	require.Len(t, got.Bytes, 16)
}

func TestAsciiRoundTrip(t *testing.T) {
	s, err := platform.Global().Invoke(pkg, "to_ascii", []value.TypedValue{value.Int32v(65)})
	require.NoError(t, err)
	require.Equal(t, "A", s.Str)

	n, err := platform.Global().Invoke(pkg, "from_ascii", []value.TypedValue{value.StringV("A")})
	require.NoError(t, err)
	require.Equal(t, int64(65), n.Int)
}

func TestNumericNarrowing(t *testing.T) {
	got, err := platform.Global().Invoke(pkg, "to_i8", []value.TypedValue{value.Float64v(42.9)})
	require.NoError(t, err)
	require.Equal(t, int64(42), got.Int)

	gotF, err := platform.Global().Invoke(pkg, "to_f32", []value.TypedValue{value.Int64v(7)})
	require.NoError(t, err)
	require.Equal(t, float64(7), gotF.Float)
}

func TestNumericConversionRejectsNonNumeric(t *testing.T) {
	_, err := platform.Global().Invoke(pkg, "to_i32", []value.TypedValue{value.StringV("x")})
	require.Error(t, err)
}
