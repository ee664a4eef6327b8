// Package expression implements the closed expression-tree sum type of
// spec.md §4.5: literals, variable references, operators, control flow,
// SQL verbs, namespace references, platform calls, and HTTP verb nodes.
// Every node is a tree of child Expr values; there are no cycles.
package expression

import "github.com/solidcoredata/coredb/value"

// Kind tags which variant of the closed Expr sum an instance holds.
type Kind int

const (
	KindLiteral Kind = iota
	KindVariable
	KindSetVariable
	KindBinaryOp
	KindUnaryOp
	KindRange
	KindBetween
	KindFactorial
	KindTuple
	KindArray
	KindCodeBlock
	KindIf
	KindIff
	KindWhile
	KindFunctionDef
	KindFunctionCall
	KindNamespaceRef
	KindPlatformCall
	KindHTTPVerb

	// SQL verbs
	KindSelect
	KindDelete
	KindOverwrite
	KindUpdate
	KindUndelete
	KindAppend
	KindReverse
	KindScan
	KindCompact
	KindDescribe
	KindFetch
)

// Op names the arithmetic/logical/bitwise/relational operators dispatched
// by value.TypedValue's operator methods (spec.md §4.2).
type Op string

const (
	OpPlus       Op = "+"
	OpMinus      Op = "-"
	OpTimes      Op = "*"
	OpDiv        Op = "/"
	OpMod        Op = "%"
	OpPow        Op = "**"
	OpShiftLeft  Op = "<<"
	OpShiftRight Op = ">>"
	OpXor        Op = "^"
	OpAnd        Op = "&&"
	OpOr         Op = "||"
	OpNot        Op = "!"
	OpEq         Op = "=="
	OpNe         Op = "!="
	OpLt         Op = "<"
	OpLte        Op = "<="
	OpGt         Op = ">"
	OpGte        Op = ">="
)

// HTTPVerb tags the HTTP verb nodes of spec.md §4.5.
type HTTPVerb string

const (
	HTTPGet    HTTPVerb = "GET"
	HTTPPost   HTTPVerb = "POST"
	HTTPPut    HTTPVerb = "PUT"
	HTTPPatch  HTTPVerb = "PATCH"
	HTTPHead   HTTPVerb = "HEAD"
	HTTPDelete HTTPVerb = "DELETE"
	HTTPServe  HTTPVerb = "SERVE"
)

// FieldAssignment pairs a target column name with the expression producing
// its new value, used by the overwrite/update verbs' `fields`/`values`
// lists and row-literal construction (spec.md §4.4).
type FieldAssignment struct {
	Name  string
	Value Expr
}

// FunctionParam names one formal parameter of a FunctionDef.
type FunctionParam struct {
	Name string
}

// Expr is the closed expression-tree sum type. Only the fields relevant to
// Kind are populated; the rest are nil/zero, mirroring the TypedValue/
// DataType discipline used elsewhere in this module. Child expressions are
// held by pointer since Expr cannot embed itself by value.
type Expr struct {
	Kind Kind

	// KindLiteral
	Literal value.TypedValue

	// KindVariable, KindSetVariable, KindNamespaceRef ("db.schema.name")
	Name string

	// KindUnaryOp operand, KindFactorial operand, KindBetween subject
	Left *Expr

	// KindBinaryOp right operand, KindSetVariable bound expression
	Right *Expr

	Op Op

	// KindRange/KindBetween bounds
	Low  *Expr
	High *Expr

	// KindTuple, KindArray, KindCodeBlock, KindFunctionCall/KindPlatformCall
	// arguments, KindAppend row expressions (each evaluating to a Structure)
	Items []Expr

	// KindIf/KindIff/KindWhile guard
	Cond *Expr

	// KindIf/KindIff "then" arm, KindWhile loop body
	Then *Expr
	// KindIff "else" arm
	Else *Expr

	// KindFunctionDef
	Params []FunctionParam
	Body   *Expr

	// KindPlatformCall
	Package string

	// SQL verbs: From resolves to a table value (namespace ref or
	// variable); Predicate is optional (nil == none, matches every row
	// per spec.md §4.6); Limit is optional.
	From      *Expr
	Predicate *Expr
	Limit     *Expr
	Fields    []FieldAssignment

	// KindHTTPVerb
	Verb HTTPVerb
	Path *Expr
	Port *Expr
}

func ptr(e Expr) *Expr { return &e }

// Literal wraps a TypedValue as a leaf Expr.
func Literal(v value.TypedValue) Expr { return Expr{Kind: KindLiteral, Literal: v} }

// Variable builds a scope lookup node.
func Variable(name string) Expr { return Expr{Kind: KindVariable, Name: name} }

// SetVariable builds `name := value`.
func SetVariable(name string, value Expr) Expr {
	return Expr{Kind: KindSetVariable, Name: name, Right: ptr(value)}
}

// Binary builds an arithmetic/logical/bitwise/relational node.
func Binary(op Op, left, right Expr) Expr {
	return Expr{Kind: KindBinaryOp, Op: op, Left: ptr(left), Right: ptr(right)}
}

// Unary builds a unary node; the machine evaluates only OpNot (logical not).
func Unary(op Op, operand Expr) Expr {
	return Expr{Kind: KindUnaryOp, Op: op, Left: ptr(operand)}
}

// Range builds `low..high`.
func Range(low, high Expr) Expr { return Expr{Kind: KindRange, Low: ptr(low), High: ptr(high)} }

// Between builds `x between low and high`.
func Between(x, low, high Expr) Expr {
	return Expr{Kind: KindBetween, Left: ptr(x), Low: ptr(low), High: ptr(high)}
}

// Factorial builds `x!`.
func Factorial(x Expr) Expr { return Expr{Kind: KindFactorial, Left: ptr(x)} }

// Tuple/Array build fixed or homogeneous sequences.
func Tuple(items ...Expr) Expr { return Expr{Kind: KindTuple, Items: items} }
func Array(items ...Expr) Expr { return Expr{Kind: KindArray, Items: items} }

// CodeBlock folds ops left to right, discarding intermediate results
// (spec.md §4.6).
func CodeBlock(ops ...Expr) Expr { return Expr{Kind: KindCodeBlock, Items: ops} }

// If builds a one-armed conditional; Iff builds the two-armed form.
func If(cond, then Expr) Expr { return Expr{Kind: KindIf, Cond: ptr(cond), Then: ptr(then)} }
func Iff(cond, then, els Expr) Expr {
	return Expr{Kind: KindIff, Cond: ptr(cond), Then: ptr(then), Else: ptr(els)}
}

// While builds a loop node.
func While(cond, body Expr) Expr {
	return Expr{Kind: KindWhile, Cond: ptr(cond), Then: ptr(body)}
}

// FunctionDef/FunctionCall build user-defined function nodes.
func FunctionDef(name string, params []FunctionParam, body Expr) Expr {
	return Expr{Kind: KindFunctionDef, Name: name, Params: params, Body: ptr(body)}
}
func FunctionCall(name string, args ...Expr) Expr {
	return Expr{Kind: KindFunctionCall, Name: name, Items: args}
}

// NamespaceRef builds `ns("db.schema.name")`.
func NamespaceRef(text string) Expr { return Expr{Kind: KindNamespaceRef, Name: text} }

// PlatformCall builds a (package, name) built-in invocation (spec.md §4.7).
func PlatformCall(pkg, name string, args ...Expr) Expr {
	return Expr{Kind: KindPlatformCall, Package: pkg, Name: name, Items: args}
}

// HTTP builds one of the path-addressed HTTP verb nodes (spec.md §4.5/§6).
func HTTP(verb HTTPVerb, path Expr) Expr {
	return Expr{Kind: KindHTTPVerb, Verb: verb, Path: ptr(path)}
}

// Serve builds `www::serve(port)`'s expression-tree form.
func Serve(port Expr) Expr { return Expr{Kind: KindHTTPVerb, Verb: HTTPServe, Port: ptr(port)} }

// sqlVerb is the shared constructor for the SQL verb family, all of which
// share the same {from, predicate, limit, fields} shape.
func sqlVerb(kind Kind, from Expr, predicate *Expr, limit *Expr, fields []FieldAssignment, rows []Expr) Expr {
	return Expr{Kind: kind, From: ptr(from), Predicate: predicate, Limit: limit, Fields: fields, Items: rows}
}

func Select(from Expr, predicate *Expr) Expr {
	return sqlVerb(KindSelect, from, predicate, nil, nil, nil)
}

func Delete(from Expr, predicate *Expr, limit *Expr) Expr {
	return sqlVerb(KindDelete, from, predicate, limit, nil, nil)
}

func Undelete(from Expr, predicate *Expr, limit *Expr) Expr {
	return sqlVerb(KindUndelete, from, predicate, limit, nil, nil)
}

func Overwrite(from Expr, predicate *Expr, limit *Expr, fields []FieldAssignment) Expr {
	return sqlVerb(KindOverwrite, from, predicate, limit, fields, nil)
}

func Update(from Expr, predicate *Expr, limit *Expr, fields []FieldAssignment) Expr {
	return sqlVerb(KindUpdate, from, predicate, limit, fields, nil)
}

// Append builds `append from from rows` (each element of rows must evaluate
// to a Structure value, whose fields are matched to columns by name).
func Append(from Expr, rows []Expr) Expr {
	return sqlVerb(KindAppend, from, nil, nil, nil, rows)
}

func Reverse(from Expr) Expr  { return sqlVerb(KindReverse, from, nil, nil, nil, nil) }
func Scan(from Expr) Expr     { return sqlVerb(KindScan, from, nil, nil, nil, nil) }
func Compact(from Expr) Expr  { return sqlVerb(KindCompact, from, nil, nil, nil, nil) }
func Describe(from Expr) Expr { return sqlVerb(KindDescribe, from, nil, nil, nil, nil) }

// Fetch builds `from[low:high]`, the contiguous id-range read (spec.md §6).
func Fetch(from Expr, low, high Expr) Expr {
	e := sqlVerb(KindFetch, from, nil, nil, nil, nil)
	e.Low, e.High = ptr(low), ptr(high)
	return e
}
