package tools

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/dataframe"
	"github.com/solidcoredata/coredb/namespace"
	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/types"
	"github.com/solidcoredata/coredb/value"
)

func peopleColumns() []row.Column {
	return []row.Column{
		{Name: "name", Type: types.String(16)},
		{Name: "age", Type: types.Int32()},
	}
}

func newPeople(t *testing.T) *dataframe.Dataframe {
	t.Helper()
	home := t.TempDir()
	ns, err := namespace.Parse("t.crud.people")
	require.NoError(t, err)
	df, err := dataframe.CreateTable(home, ns, peopleColumns())
	require.NoError(t, err)
	columns := peopleColumns()
	_, err = df.AppendRow(row.Row{Columns: columns, Fields: []value.TypedValue{
		value.StringV("Ada"), value.Int32v(30),
	}})
	require.NoError(t, err)
	return df
}

func tableValue(df *dataframe.Dataframe) value.TypedValue {
	return value.TypedValue{Kind: value.KindTable, Table: df}
}

func TestDescribeScanReverseFetch(t *testing.T) {
	df := newPeople(t)

	desc, err := platform.Global().Invoke(pkg, "describe", []value.TypedValue{tableValue(df)})
	require.NoError(t, err)
	require.Equal(t, value.KindTable, desc.Kind)

	scanned, err := platform.Global().Invoke(pkg, "scan", []value.TypedValue{tableValue(df)})
	require.NoError(t, err)
	require.Equal(t, value.KindTable, scanned.Kind)

	reversed, err := platform.Global().Invoke(pkg, "reverse", []value.TypedValue{tableValue(df)})
	require.NoError(t, err)
	require.Equal(t, value.KindTable, reversed.Kind)

	fetched, err := platform.Global().Invoke(pkg, "fetch", []value.TypedValue{tableValue(df), value.Int64v(0), value.Int64v(1)})
	require.NoError(t, err)
	require.Equal(t, value.KindTable, fetched.Kind)
}

func TestCompactOnTableValue(t *testing.T) {
	df := newPeople(t)
	got, err := platform.Global().Invoke(pkg, "compact", []value.TypedValue{tableValue(df)})
	require.NoError(t, err)
	require.Equal(t, value.KindOutcome, got.Kind)
}

func TestCompactRejectsNonTable(t *testing.T) {
	_, err := platform.Global().Invoke(pkg, "compact", []value.TypedValue{value.Int64v(1)})
	require.Error(t, err)
}

func TestToArrayAndToTableRoundTrip(t *testing.T) {
	df := newPeople(t)
	arr, err := platform.Global().Invoke(pkg, "to_array", []value.TypedValue{tableValue(df)})
	require.NoError(t, err)
	require.Len(t, arr.Array, 1)

	structures := value.ArrayV([]value.TypedValue{
		value.StructureV(map[string]value.TypedValue{"name": value.StringV("Ada"), "age": value.Int32v(30)}),
	})
	rebuilt, err := platform.Global().Invoke(pkg, "to_table", []value.TypedValue{structures})
	require.NoError(t, err)
	require.Equal(t, value.KindTable, rebuilt.Kind)
}

func TestToCSVIncludesHeaderAndRows(t *testing.T) {
	df := newPeople(t)
	csv, err := platform.Global().Invoke(pkg, "to_csv", []value.TypedValue{tableValue(df)})
	require.NoError(t, err)
	require.Contains(t, csv.Str, "name,age")
	require.Contains(t, csv.Str, "Ada")
}

// scenario 6-style JSON projection at the table level.
func TestToJSONOnTable(t *testing.T) {
	df := newPeople(t)
	j, err := platform.Global().Invoke(pkg, "to_json", []value.TypedValue{tableValue(df)})
	require.NoError(t, err)
	require.Contains(t, j.Str, `"name":"Ada"`)
}

func TestToJSONOnScalar(t *testing.T) {
	j, err := platform.Global().Invoke(pkg, "to_json", []value.TypedValue{value.StringV("x")})
	require.NoError(t, err)
	require.Equal(t, `"x"`, j.Str)
}
