package str

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

// scenario 5.
func TestFormatPositionalSubstitution(t *testing.T) {
	got, err := platform.Global().Invoke(pkg, "format", []value.TypedValue{
		value.StringV("This {} the {}"), value.StringV("is"), value.StringV("way"),
	})
	require.NoError(t, err)
	require.Equal(t, "This is the way", got.Str)
}

func TestLeftNegativeCountDelegatesToRight(t *testing.T) {
	got, err := platform.Global().Invoke(pkg, "left", []value.TypedValue{
		value.StringV("Hello World"), value.Int64v(-5),
	})
	require.NoError(t, err)
	require.Equal(t, "World", got.Str)
}

func TestRightNegativeCountDelegatesToLeft(t *testing.T) {
	got, err := platform.Global().Invoke(pkg, "right", []value.TypedValue{
		value.StringV("Hello World"), value.Int64v(-5),
	})
	require.NoError(t, err)
	require.Equal(t, "Hello", got.Str)
}

func TestSplitJoinRoundTrip(t *testing.T) {
	split, err := platform.Global().Invoke(pkg, "split", []value.TypedValue{
		value.StringV("a,b,c"), value.StringV(","),
	})
	require.NoError(t, err)
	require.Len(t, split.Array, 3)

	args := append([]value.TypedValue{value.StringV("-")}, split.Array...)
	joined, err := platform.Global().Invoke(pkg, "join", args)
	require.NoError(t, err)
	require.Equal(t, "a-b-c", joined.Str)
}

func TestStartsEndsWith(t *testing.T) {
	got, err := platform.Global().Invoke(pkg, "starts_with", []value.TypedValue{value.StringV("Hello"), value.StringV("He")})
	require.NoError(t, err)
	require.True(t, got.Bool)

	got, err = platform.Global().Invoke(pkg, "ends_with", []value.TypedValue{value.StringV("Hello"), value.StringV("lo")})
	require.NoError(t, err)
	require.True(t, got.Bool)
}
