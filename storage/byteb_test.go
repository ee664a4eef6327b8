package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/types"
	"github.com/solidcoredata/coredb/value"
)

func byteColumns() []row.Column {
	return []row.Column{{Name: "name", Type: types.String(8)}}
}

func TestByteAppendAndBytesRoundTrip(t *testing.T) {
	b := NewByte(byteColumns())
	_, err := b.AppendRow(row.Row{Columns: byteColumns(), Fields: []value.TypedValue{value.StringV("a")}})
	require.NoError(t, err)

	encoded := b.Bytes()
	reopened := NewByteFromBuffer(byteColumns(), encoded)
	r, _, err := reopened.ReadRow(0)
	require.NoError(t, err)
	require.Equal(t, "a", r.Fields[0].Str)
}

func TestByteDeleteAndCompact(t *testing.T) {
	b := NewByte(byteColumns())
	_, err := b.AppendRow(row.Row{Columns: byteColumns(), Fields: []value.TypedValue{value.StringV("a")}})
	require.NoError(t, err)
	id2, err := b.AppendRow(row.Row{Columns: byteColumns(), Fields: []value.TypedValue{value.StringV("b")}})
	require.NoError(t, err)

	_, err = b.DeleteRow(id2)
	require.NoError(t, err)
	require.NoError(t, b.Compact())

	length, err := b.Len()
	require.NoError(t, err)
	require.Equal(t, uint64(1), length)

	r, _, err := b.ReadRow(0)
	require.NoError(t, err)
	require.Equal(t, "a", r.Fields[0].Str)
}

func TestByteResizeGrowsAndShrinks(t *testing.T) {
	b := NewByte(byteColumns())
	require.NoError(t, b.Resize(3))
	length, err := b.Len()
	require.NoError(t, err)
	require.Equal(t, uint64(3), length)

	require.NoError(t, b.Resize(1))
	length, err = b.Len()
	require.NoError(t, err)
	require.Equal(t, uint64(1), length)
}
