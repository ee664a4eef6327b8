package namespace

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/types"
	"github.com/solidcoredata/coredb/value"
)

func TestParseValid(t *testing.T) {
	ns, err := Parse("db.schema.name")
	require.NoError(t, err)
	require.Equal(t, "db", ns.Database)
	require.Equal(t, "schema", ns.Schema)
	require.Equal(t, "name", ns.Name)
	require.Equal(t, "db.schema.name", ns.String())
}

func TestParseRejectsWrongShape(t *testing.T) {
	for _, text := range []string{"db.schema", "db.schema.name.extra", "db..name", ""} {
		_, err := Parse(text)
		require.Error(t, err, text)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	home := t.TempDir()
	ns, err := Parse("t.crud.stocks")
	require.NoError(t, err)

	columns := []row.Column{
		{Name: "symbol", Type: types.String(8)},
		{Name: "last_sale", Type: types.Float64(), Default: value.Float64v(0)},
	}
	cfg := BuildObjectConfig(columns)
	require.NoError(t, cfg.Save(home, ns))
	require.True(t, Exists(home, ns))

	loaded, err := Load(home, ns)
	require.NoError(t, err)
	restored, err := loaded.ToRowColumns()
	require.NoError(t, err)
	require.Len(t, restored, 2)
	require.Equal(t, "symbol", restored[0].Name)
	require.Equal(t, types.KindFloat64, restored[1].Type.Kind)
}

func TestTouchCreatesEmptyDataFile(t *testing.T) {
	home := t.TempDir()
	ns, err := Parse("a.b.c")
	require.NoError(t, err)
	require.NoError(t, Touch(home, ns))

	info, err := os.Stat(ns.DataPath(home))
	require.NoError(t, err)
	require.Equal(t, int64(0), info.Size())
}
