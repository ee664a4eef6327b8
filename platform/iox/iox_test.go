package iox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

func TestFileCreateExistsReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")

	exists, err := platform.Global().Invoke(pkg, "file_exists", []value.TypedValue{value.StringV(path)})
	require.NoError(t, err)
	require.False(t, exists.Bool)

	created, err := platform.Global().Invoke(pkg, "file_create", []value.TypedValue{value.StringV(path)})
	require.NoError(t, err)
	require.True(t, created.Bool)

	exists, err = platform.Global().Invoke(pkg, "file_exists", []value.TypedValue{value.StringV(path)})
	require.NoError(t, err)
	require.True(t, exists.Bool)

	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	text, err := platform.Global().Invoke(pkg, "file_read_text", []value.TypedValue{value.StringV(path)})
	require.NoError(t, err)
	require.Equal(t, "hello", text.Str)
}

func TestFileReadTextMissingFileErrors(t *testing.T) {
	_, err := platform.Global().Invoke(pkg, "file_read_text", []value.TypedValue{value.StringV("/nonexistent/path")})
	require.Error(t, err)
}
