package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// T2: render(parse(t)) = t for every canonical type text.
func TestParseRenderRoundTrip(t *testing.T) {
	canonical := []string{
		"Boolean", "Byte", "Short", "Int", "Long", "Float", "f64",
		"Date", "UUID", "RecordNumber",
		"String(8)", "BLOB(16)", "CLOB(32)",
	}
	for _, text := range canonical {
		dt, err := Parse(text)
		require.NoError(t, err, text)
		require.Equal(t, text, dt.Render(), text)
	}
}

func TestParseStructWithNestedColumns(t *testing.T) {
	dt, err := Parse("Struct(symbol String(8), last_sale f64)")
	require.NoError(t, err)
	require.Equal(t, KindStructure, dt.Kind)
	require.Len(t, dt.Columns, 2)
	require.Equal(t, "symbol", dt.Columns[0].Name)
	require.Equal(t, KindFloat64, dt.Columns[1].Type.Kind)
}

func TestParseUnrecognizedType(t *testing.T) {
	_, err := Parse("NotAType")
	require.Error(t, err)
}

func TestPhysicalSize(t *testing.T) {
	require.Equal(t, 16, String(8).PhysicalSize()) // size + 8-byte length prefix
	require.Equal(t, 8, Int64().PhysicalSize())
	require.Equal(t, 1, Boolean().PhysicalSize())
}
