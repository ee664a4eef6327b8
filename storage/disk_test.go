package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/types"
	"github.com/solidcoredata/coredb/value"
)

func diskColumns() []row.Column {
	return []row.Column{{Name: "name", Type: types.String(8)}}
}

func openTestDisk(t *testing.T) *Disk {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.dat")
	d, err := OpenDisk(path, diskColumns())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestDiskAppendReadRoundTrip(t *testing.T) {
	d := openTestDisk(t)
	id, err := d.AppendRow(row.Row{Columns: diskColumns(), Fields: []value.TypedValue{value.StringV("a")}})
	require.NoError(t, err)
	require.Equal(t, uint64(0), id)

	r, md, err := d.ReadRow(id)
	require.NoError(t, err)
	require.True(t, md.Allocated)
	require.Equal(t, "a", r.Fields[0].Str)
}

func TestDiskDeleteUndeleteRoundTrip(t *testing.T) {
	d := openTestDisk(t)
	id, err := d.AppendRow(row.Row{Columns: diskColumns(), Fields: []value.TypedValue{value.StringV("a")}})
	require.NoError(t, err)

	affected, err := d.DeleteRow(id)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	md, err := d.ReadRowMetadata(id)
	require.NoError(t, err)
	require.False(t, md.Allocated)

	affected, err = d.UndeleteRow(id)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)
}

func TestDiskCompactRenumbersActiveRows(t *testing.T) {
	d := openTestDisk(t)
	_, err := d.AppendRow(row.Row{Columns: diskColumns(), Fields: []value.TypedValue{value.StringV("a")}})
	require.NoError(t, err)
	b, err := d.AppendRow(row.Row{Columns: diskColumns(), Fields: []value.TypedValue{value.StringV("b")}})
	require.NoError(t, err)
	_, err = d.AppendRow(row.Row{Columns: diskColumns(), Fields: []value.TypedValue{value.StringV("c")}})
	require.NoError(t, err)

	_, err = d.DeleteRow(b)
	require.NoError(t, err)

	require.NoError(t, d.Compact())

	length, err := d.Len()
	require.NoError(t, err)
	require.Equal(t, uint64(2), length)

	r0, _, err := d.ReadRow(0)
	require.NoError(t, err)
	require.Equal(t, "a", r0.Fields[0].Str)

	r1, _, err := d.ReadRow(1)
	require.NoError(t, err)
	require.Equal(t, "c", r1.Fields[0].Str)
}

func TestDiskOverwriteRowGrowsFile(t *testing.T) {
	d := openTestDisk(t)
	affected, err := d.OverwriteRow(2, row.Row{Columns: diskColumns(), Fields: []value.TypedValue{value.StringV("z")}})
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	length, err := d.Len()
	require.NoError(t, err)
	require.Equal(t, uint64(3), length)

	r, md, err := d.ReadRow(2)
	require.NoError(t, err)
	require.True(t, md.Allocated)
	require.Equal(t, "z", r.Fields[0].Str)
}
