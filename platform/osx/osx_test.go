package osx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

func TestShellInvocation(t *testing.T) {
	got, err := platform.Global().Invoke(pkg, "shell", []value.TypedValue{value.StringV("echo hi")})
	require.NoError(t, err)
	require.Equal(t, "hi\n", got.Str)
}

func TestShellRejectsNonString(t *testing.T) {
	_, err := platform.Global().Invoke(pkg, "shell", []value.TypedValue{value.Int64v(1)})
	require.Error(t, err)
}

func TestCurrentDirMatchesGetwd(t *testing.T) {
	want, err := os.Getwd()
	require.NoError(t, err)
	got, err := platform.Global().Invoke(pkg, "current_dir", nil)
	require.NoError(t, err)
	require.Equal(t, want, got.Str)
}

func TestEnvTableIncludesSetVar(t *testing.T) {
	t.Setenv("COREDB_TEST_VAR", "present")
	got, err := platform.Global().Invoke(pkg, "env_table", nil)
	require.NoError(t, err)
	require.Equal(t, "present", got.Fields["COREDB_TEST_VAR"].Str)
}
