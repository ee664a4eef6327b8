package oxide

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

func TestAssertPassesOnEqualValues(t *testing.T) {
	got, err := platform.Global().Invoke(pkg, "assert", []value.TypedValue{value.Int64v(1), value.Int64v(1)})
	require.NoError(t, err)
	require.True(t, got.Bool)
}

func TestAssertFailsOnMismatch(t *testing.T) {
	_, err := platform.Global().Invoke(pkg, "assert", []value.TypedValue{value.Int64v(1), value.Int64v(2)})
	require.Error(t, err)
	require.IsType(t, &errs.AssertionError{}, err)
}

func TestHomeRespectsEnvOverride(t *testing.T) {
	t.Setenv("OXIDE_HOME", "/tmp/custom-home")
	got, err := platform.Global().Invoke(pkg, "home", nil)
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom-home", got.Str)
}

func TestMatchesRegex(t *testing.T) {
	got, err := platform.Global().Invoke(pkg, "matches", []value.TypedValue{value.StringV("hello123"), value.StringV(`^[a-z]+\d+$`)})
	require.NoError(t, err)
	require.True(t, got.Bool)
}

func TestTypeOfRendersCanonicalText(t *testing.T) {
	got, err := platform.Global().Invoke(pkg, "type_of", []value.TypedValue{value.Int32v(5)})
	require.NoError(t, err)
	require.NotEmpty(t, got.Str)
}

func TestUuidProducesDistinctValues(t *testing.T) {
	a, err := platform.Global().Invoke(pkg, "uuid", nil)
	require.NoError(t, err)
	b, err := platform.Global().Invoke(pkg, "uuid", nil)
	require.NoError(t, err)
	require.NotEqual(t, a.Uuid, b.Uuid)
}

func TestVersionIsStamped(t *testing.T) {
	got, err := platform.Global().Invoke(pkg, "version", nil)
	require.NoError(t, err)
	require.Equal(t, "0.1.0", got.Str)
}
