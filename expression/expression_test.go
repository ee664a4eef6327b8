package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/value"
)

func TestBinaryBuildsPointerOperands(t *testing.T) {
	e := Binary(OpPlus, Literal(value.Int64v(1)), Literal(value.Int64v(2)))
	require.Equal(t, KindBinaryOp, e.Kind)
	require.Equal(t, OpPlus, e.Op)
	require.Equal(t, int64(1), e.Left.Literal.Int)
	require.Equal(t, int64(2), e.Right.Literal.Int)
}

func TestSetVariableBindsRightOperand(t *testing.T) {
	e := SetVariable("x", Literal(value.Int64v(5)))
	require.Equal(t, KindSetVariable, e.Kind)
	require.Equal(t, "x", e.Name)
	require.Equal(t, int64(5), e.Right.Literal.Int)
}

func TestIffPopulatesBothArms(t *testing.T) {
	e := Iff(Literal(value.Boolean(true)), Literal(value.Int64v(1)), Literal(value.Int64v(0)))
	require.Equal(t, KindIff, e.Kind)
	require.Equal(t, int64(1), e.Then.Literal.Int)
	require.Equal(t, int64(0), e.Else.Literal.Int)
}

func TestFunctionCallCarriesArgumentItems(t *testing.T) {
	e := FunctionCall("double", Literal(value.Int64v(21)))
	require.Equal(t, KindFunctionCall, e.Kind)
	require.Equal(t, "double", e.Name)
	require.Len(t, e.Items, 1)
}

func TestPlatformCallCarriesPackageAndName(t *testing.T) {
	e := PlatformCall("str", "format", Literal(value.StringV("a")))
	require.Equal(t, KindPlatformCall, e.Kind)
	require.Equal(t, "str", e.Package)
	require.Equal(t, "format", e.Name)
}

func TestSQLVerbsShareFromPredicateLimitShape(t *testing.T) {
	from := NamespaceRef("t.crud.stocks")
	predicate := Literal(value.Boolean(true))
	limit := Literal(value.Int64v(1))

	del := Delete(from, &predicate, &limit)
	require.Equal(t, KindDelete, del.Kind)
	require.Equal(t, "t.crud.stocks", del.From.Name)
	require.Same(t, &predicate, del.Predicate)
	require.Same(t, &limit, del.Limit)

	sel := Select(from, nil)
	require.Equal(t, KindSelect, sel.Kind)
	require.Nil(t, sel.Predicate)
}

func TestOverwriteAndUpdateCarryFieldAssignments(t *testing.T) {
	fields := []FieldAssignment{{Name: "last_sale", Value: Literal(value.Float64v(99.0))}}
	ow := Overwrite(NamespaceRef("t.crud.stocks"), nil, nil, fields)
	require.Equal(t, KindOverwrite, ow.Kind)
	require.Equal(t, "last_sale", ow.Fields[0].Name)

	up := Update(NamespaceRef("t.crud.stocks"), nil, nil, fields)
	require.Equal(t, KindUpdate, up.Kind)
}

func TestAppendCarriesRowTuplesInItems(t *testing.T) {
	row := Tuple(Literal(value.StringV("ABC")), Literal(value.Float64v(11.77)))
	e := Append(NamespaceRef("t.crud.stocks"), []Expr{row})
	require.Equal(t, KindAppend, e.Kind)
	require.Len(t, e.Items, 1)
}

func TestFetchSetsLowAndHigh(t *testing.T) {
	e := Fetch(NamespaceRef("t.crud.stocks"), Literal(value.Int64v(0)), Literal(value.Int64v(5)))
	require.Equal(t, KindFetch, e.Kind)
	require.Equal(t, int64(0), e.Low.Literal.Int)
	require.Equal(t, int64(5), e.High.Literal.Int)
}

func TestServeBuildsHTTPServeVerb(t *testing.T) {
	e := Serve(Literal(value.Int64v(8080)))
	require.Equal(t, KindHTTPVerb, e.Kind)
	require.Equal(t, HTTPServe, e.Verb)
	require.Equal(t, int64(8080), e.Port.Literal.Int)
}
