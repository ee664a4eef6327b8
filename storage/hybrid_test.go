package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/types"
	"github.com/solidcoredata/coredb/value"
)

func hybridColumns() []row.Column {
	return []row.Column{{Name: "name", Type: types.String(8)}}
}

func appendHybrid(t *testing.T, h *Hybrid, name string) uint64 {
	t.Helper()
	id, err := h.AppendRow(row.Row{Columns: hybridColumns(), Fields: []value.TypedValue{value.StringV(name)}})
	require.NoError(t, err)
	return id
}

func TestHybridServesFromMemoryBelowThreshold(t *testing.T) {
	h := NewHybrid(hybridColumns(), 10, filepath.Join(t.TempDir(), "rows.dat"))
	appendHybrid(t, h, "a")
	require.False(t, h.onDisk)

	r, _, err := h.ReadRow(0)
	require.NoError(t, err)
	require.Equal(t, "a", r.Fields[0].Str)
}

func TestHybridSpillsToDiskAtThreshold(t *testing.T) {
	h := NewHybrid(hybridColumns(), 2, filepath.Join(t.TempDir(), "rows.dat"))
	appendHybrid(t, h, "a")
	appendHybrid(t, h, "b")
	require.False(t, h.onDisk)

	appendHybrid(t, h, "c")
	require.True(t, h.onDisk)

	for i, want := range []string{"a", "b", "c"} {
		r, _, err := h.ReadRow(uint64(i))
		require.NoError(t, err)
		require.Equal(t, want, r.Fields[0].Str)
	}
}

func TestHybridDeleteAfterSpillHitsDiskTier(t *testing.T) {
	h := NewHybrid(hybridColumns(), 1, filepath.Join(t.TempDir(), "rows.dat"))
	appendHybrid(t, h, "a")
	appendHybrid(t, h, "b")
	require.True(t, h.onDisk)

	affected, err := h.DeleteRow(0)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	md, err := h.ReadRowMetadata(0)
	require.NoError(t, err)
	require.False(t, md.Allocated)
}
