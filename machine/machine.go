// Package machine implements the evaluator described in spec.md §4.6: a
// purely functional state machine (value stack + name->TypedValue scope)
// that evaluates an expression.Expr tree, returning a new machine and a
// result value rather than mutating in place.
package machine

import (
	"github.com/sirupsen/logrus"

	"github.com/solidcoredata/coredb/dataframe"
	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/expression"
	"github.com/solidcoredata/coredb/namespace"
	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/row"
	"github.com/solidcoredata/coredb/storage"
	"github.com/solidcoredata/coredb/value"
)

// Env holds the stateless services a machine needs but does not thread by
// value: the namespace home directory, the open-table resolver, and the
// platform registry (spec.md §9: "the namespace resolver reads an
// environment-configured home directory; treat this as injected
// configuration, not ambient state").
type Env struct {
	Home      string
	Resolver  *namespace.Resolver
	Platform  *platform.Registry
	functions map[string]expression.Expr
}

// NewEnv builds an Env rooted at home, using the global platform registry.
func NewEnv(home string) *Env {
	return &Env{
		Home:      home,
		Resolver:  namespace.NewResolver(home),
		Platform:  platform.Global(),
		functions: make(map[string]expression.Expr),
	}
}

// Machine is the purely functional evaluator state: a value stack and a
// name scope. Every Eval call returns a new Machine rather than mutating
// the receiver (spec.md §4.6/§9).
type Machine struct {
	Env   *Env
	Stack []value.TypedValue
	Scope map[string]value.TypedValue
}

// New creates an empty Machine bound to env.
func New(env *Env) Machine {
	return Machine{Env: env, Scope: make(map[string]value.TypedValue)}
}

// withVar returns a copy of m with name bound to v in a fresh scope map
// (copy-on-write, spec.md §9: "deep-clone-on-write ... for the scope").
func (m Machine) withVar(name string, v value.TypedValue) Machine {
	scope := make(map[string]value.TypedValue, len(m.Scope)+1)
	for k, sv := range m.Scope {
		scope[k] = sv
	}
	scope[name] = v
	out := m
	out.Scope = scope
	return out
}

func (m Machine) push(v value.TypedValue) Machine {
	out := m
	out.Stack = append(append([]value.TypedValue(nil), m.Stack...), v)
	return out
}

// ack is the sentinel result returned by statement-shaped nodes that
// produce no value of their own (SetVariable, FunctionDef, and a While
// whose body never runs; otherwise While returns its last body value);
// represented as a zero-row Outcome per spec.md's Ack/Outcome convention.
func ack() value.TypedValue { return value.Outcome(0) }

// Eval recursively evaluates e against m, returning the resulting machine
// and value. The returned Go error is reserved for truly impossible
// invariants (spec.md §7); ordinary failures surface as an Error-kind
// TypedValue on the result, and evaluation does not unwind.
func Eval(m Machine, e expression.Expr) (Machine, value.TypedValue, error) {
	switch e.Kind {
	case expression.KindLiteral:
		return m, e.Literal, nil

	case expression.KindVariable:
		v, ok := m.Scope[e.Name]
		if !ok {
			return m, value.Undefined(), nil
		}
		return m, v, nil

	case expression.KindSetVariable:
		m2, v, err := Eval(m, *e.Right)
		if err != nil {
			return m2, value.Undefined(), err
		}
		return m2.withVar(e.Name, v), ack(), nil

	case expression.KindBinaryOp:
		return evalBinary(m, e)

	case expression.KindUnaryOp:
		m2, v, err := Eval(m, *e.Left)
		if err != nil {
			return m2, value.Undefined(), err
		}
		if e.Op == expression.OpNot {
			return m2, v.Not(), nil
		}
		return m2, value.Undefined(), nil

	case expression.KindRange:
		m2, lo, err := Eval(m, *e.Low)
		if err != nil {
			return m2, value.Undefined(), err
		}
		m3, hi, err := Eval(m2, *e.High)
		if err != nil {
			return m3, value.Undefined(), err
		}
		return m3, lo.Range(hi), nil

	case expression.KindBetween:
		m2, x, err := Eval(m, *e.Left)
		if err != nil {
			return m2, value.Undefined(), err
		}
		m3, lo, err := Eval(m2, *e.Low)
		if err != nil {
			return m3, value.Undefined(), err
		}
		m4, hi, err := Eval(m3, *e.High)
		if err != nil {
			return m4, value.Undefined(), err
		}
		return m4, x.Between(lo, hi), nil

	case expression.KindFactorial:
		m2, v, err := Eval(m, *e.Left)
		if err != nil {
			return m2, value.Undefined(), err
		}
		return m2, v.Factorial(), nil

	case expression.KindTuple, expression.KindArray:
		cur := m
		items := make([]value.TypedValue, 0, len(e.Items))
		for _, item := range e.Items {
			next, v, err := Eval(cur, item)
			if err != nil {
				return next, value.Undefined(), err
			}
			cur = next
			items = append(items, v)
		}
		return cur, value.ArrayV(items), nil

	case expression.KindCodeBlock:
		cur := m
		result := value.Null()
		for _, op := range e.Items {
			next, v, err := Eval(cur, op)
			if err != nil {
				return next, value.Undefined(), err
			}
			cur, result = next, v
		}
		return cur, result, nil

	case expression.KindIf:
		m2, cond, err := Eval(m, *e.Cond)
		if err != nil {
			return m2, value.Undefined(), err
		}
		if cond.Kind == value.KindBoolean && cond.Bool {
			return Eval(m2, *e.Then)
		}
		return m2, value.Null(), nil

	case expression.KindIff:
		m2, cond, err := Eval(m, *e.Cond)
		if err != nil {
			return m2, value.Undefined(), err
		}
		if cond.Kind == value.KindBoolean && cond.Bool {
			return Eval(m2, *e.Then)
		}
		return Eval(m2, *e.Else)

	case expression.KindWhile:
		cur := m
		result := ack()
		for {
			next, cond, err := Eval(cur, *e.Cond)
			if err != nil {
				return next, value.Undefined(), err
			}
			cur = next
			if cond.Kind != value.KindBoolean || !cond.Bool {
				break
			}
			next, v, err := Eval(cur, *e.Then)
			if err != nil {
				return next, value.Undefined(), err
			}
			cur, result = next, v
		}
		return cur, result, nil

	case expression.KindFunctionDef:
		m.Env.functions[e.Name] = e
		return m, ack(), nil

	case expression.KindFunctionCall:
		return evalFunctionCall(m, e)

	case expression.KindNamespaceRef:
		return evalNamespaceRef(m, e)

	case expression.KindPlatformCall:
		return evalPlatformCall(m, e)

	case expression.KindHTTPVerb:
		// HTTP transport (spec.md §5/§6) is wired externally by the REST
		// listener, which evaluates individual row operations directly
		// against a Dataframe rather than routing through this node kind.
		return m, value.ErrorV(&errs.Unhandled{Node: "http:" + string(e.Verb)}), nil

	case expression.KindSelect:
		return evalSelect(m, e)
	case expression.KindDelete:
		return evalMutatingVerb(m, e, deleteWhere)
	case expression.KindUndelete:
		return evalMutatingVerb(m, e, undeleteWhere)
	case expression.KindOverwrite:
		return evalTransformVerb(m, e, true)
	case expression.KindUpdate:
		return evalTransformVerb(m, e, false)
	case expression.KindAppend:
		return evalAppend(m, e)
	case expression.KindReverse:
		return evalTableOp(m, e, func(df *dataframe.Dataframe) (*dataframe.Dataframe, error) { return df.Reverse() })
	case expression.KindScan:
		return evalTableOp(m, e, func(df *dataframe.Dataframe) (*dataframe.Dataframe, error) { return df.Scan() })
	case expression.KindCompact:
		return evalTableOp(m, e, func(df *dataframe.Dataframe) (*dataframe.Dataframe, error) { return df, df.Compact() })
	case expression.KindDescribe:
		return evalTableOp(m, e, func(df *dataframe.Dataframe) (*dataframe.Dataframe, error) { return df.DescribeSelf(), nil })
	case expression.KindFetch:
		return evalFetch(m, e)

	default:
		return m, value.ErrorV(&errs.Unhandled{Node: "unknown expression kind"}), nil
	}
}

func evalBinary(m Machine, e expression.Expr) (Machine, value.TypedValue, error) {
	m2, a, err := Eval(m, *e.Left)
	if err != nil {
		return m2, value.Undefined(), err
	}
	m3, b, err := Eval(m2, *e.Right)
	if err != nil {
		return m3, value.Undefined(), err
	}
	var result value.TypedValue
	switch e.Op {
	case expression.OpPlus:
		result = a.Plus(b)
	case expression.OpMinus:
		result = a.Minus(b)
	case expression.OpTimes:
		result = a.Times(b)
	case expression.OpDiv:
		result = a.Div(b)
	case expression.OpMod:
		result = a.Mod(b)
	case expression.OpPow:
		result = a.Pow(b)
	case expression.OpShiftLeft:
		result = a.ShiftLeft(b)
	case expression.OpShiftRight:
		result = a.ShiftRight(b)
	case expression.OpXor:
		result = a.Xor(b)
	case expression.OpAnd:
		result = a.And(b)
	case expression.OpOr:
		result = a.Or(b)
	case expression.OpEq:
		result = a.Eq(b)
	case expression.OpNe:
		result = a.Ne(b)
	case expression.OpLt:
		result = a.Lt(b)
	case expression.OpLte:
		result = a.Lte(b)
	case expression.OpGt:
		result = a.Gt(b)
	case expression.OpGte:
		result = a.Gte(b)
	default:
		result = value.ErrorV(&errs.Unhandled{Node: "operator " + string(e.Op)})
	}
	return m3, result, nil
}

func evalFunctionCall(m Machine, e expression.Expr) (Machine, value.TypedValue, error) {
	def, ok := m.Env.functions[e.Name]
	if !ok {
		return m, value.ErrorV(&errs.Unhandled{Node: "function " + e.Name}), nil
	}
	cur := m
	args := make([]value.TypedValue, 0, len(e.Items))
	for _, a := range e.Items {
		next, v, err := Eval(cur, a)
		if err != nil {
			return next, value.Undefined(), err
		}
		cur = next
		args = append(args, v)
	}
	callScope := cur
	for i, p := range def.Params {
		v := value.Undefined()
		if i < len(args) {
			v = args[i]
		}
		callScope = callScope.withVar(p.Name, v)
	}
	_, result, err := Eval(callScope, *def.Body)
	if err != nil {
		return cur, value.Undefined(), err
	}
	// the call's own bindings do not escape to the caller's scope, matching
	// spec.md §9's persistent/copy-on-write discipline.
	return cur, result, nil
}

func evalNamespaceRef(m Machine, e expression.Expr) (Machine, value.TypedValue, error) {
	ns, err := namespace.Parse(e.Name)
	if err != nil {
		return m, value.ErrorV(err), nil
	}
	handle, err := m.Env.Resolver.Resolve(ns, func() (interface{}, error) {
		return dataframe.Open(m.Env.Home, ns)
	})
	if err != nil {
		return m, value.ErrorV(err), nil
	}
	df := handle.(*dataframe.Dataframe)
	return m, value.TypedValue{Kind: value.KindTable, Table: df}, nil
}

// evalPlatformCall dispatches a platform call. oxide::history and
// oxide::reset only need the Env (the function table and the calling
// machine's own stack), so they're handled here rather than through the
// registry's argument-only Invoke. oxide::compile/eval would need a text
// parser for expression.Expr, which is out of scope (expressions are built
// programmatically, not parsed from source); www::serve starts the REST
// listener from cmd/coredb, not from inside evaluation. All three still
// surface as a clean Unhandled error rather than panicking.
func evalPlatformCall(m Machine, e expression.Expr) (Machine, value.TypedValue, error) {
	if e.Package == "oxide" && e.Name == "history" {
		return m, value.ArrayV(append([]value.TypedValue(nil), m.Stack...)), nil
	}
	if e.Package == "oxide" && e.Name == "reset" {
		m.Env.functions = make(map[string]expression.Expr)
		return m, ack(), nil
	}
	if e.Package == "oxide" && (e.Name == "compile" || e.Name == "eval") {
		return m, value.ErrorV(&errs.Unhandled{Node: "oxide::" + e.Name + " (no expression parser wired)"}), nil
	}
	if e.Package == "www" && e.Name == "serve" {
		return m, value.ErrorV(&errs.Unhandled{Node: "www::serve (started by cmd/coredb, not the evaluator)"}), nil
	}

	cur := m
	args := make([]value.TypedValue, 0, len(e.Items))
	for _, a := range e.Items {
		next, v, err := Eval(cur, a)
		if err != nil {
			return next, value.Undefined(), err
		}
		cur = next
		args = append(args, v)
	}
	result, err := cur.Env.Platform.Invoke(e.Package, e.Name, args)
	if err != nil {
		return cur, value.ErrorV(err), nil
	}
	return cur, result, nil
}

// resolveTable evaluates a SQL verb's `from` expression to a table value:
// a namespace reference opens the file, a variable reference returns the
// already-bound dataframe (spec.md §4.6).
func resolveTable(m Machine, from expression.Expr) (Machine, *dataframe.Dataframe, error) {
	next, v, err := Eval(m, from)
	if err != nil {
		return next, nil, err
	}
	if v.Kind != value.KindTable {
		return next, nil, &errs.TableExpected{Kind: "Table", Got: v.TypeOf().Render()}
	}
	df, ok := v.Table.(*dataframe.Dataframe)
	if !ok {
		return next, nil, &errs.TableExpected{Kind: "Table", Got: "unknown table handle"}
	}
	return next, df, nil
}

// rowPredicate builds a dataframe.Predicate that evaluates pred (if any)
// in a row-scoped sub-machine: each column of the current row is bound by
// name into the scope before evaluation (spec.md §4.6). A missing
// predicate matches every row; a non-Boolean result is logged and treated
// as false.
func rowPredicate(env *Env, columns []row.Column, pred *expression.Expr) dataframe.Predicate {
	if pred == nil {
		return nil
	}
	return func(r row.Row) (bool, error) {
		sub := New(env)
		for i, c := range columns {
			sub = sub.withVar(c.Name, r.Fields[i])
		}
		_, v, err := Eval(sub, *pred)
		if err != nil {
			return false, err
		}
		if v.Kind != value.KindBoolean {
			logrus.WithField("kind", v.TypeOf().Render()).Warn("predicate evaluated to a non-Boolean; treating as false")
			return false, nil
		}
		return v.Bool, nil
	}
}

func intLimit(m Machine, limit *expression.Expr) (Machine, *int64, error) {
	if limit == nil {
		return m, nil, nil
	}
	next, v, err := Eval(m, *limit)
	if err != nil {
		return next, nil, err
	}
	if v.Kind == value.KindUndefined || v.Kind == value.KindNull {
		return next, nil, nil
	}
	n := v.Int
	return next, &n, nil
}

func evalSelect(m Machine, e expression.Expr) (Machine, value.TypedValue, error) {
	m2, df, err := resolveTable(m, *e.From)
	if err != nil {
		return m2, value.ErrorV(err), nil
	}
	pred := rowPredicate(m2.Env, df.Columns(), e.Predicate)
	rows, err := df.Rows()
	if err != nil {
		return m2, value.ErrorV(err), nil
	}
	var matched []row.Row
	for _, r := range rows {
		ok := true
		if pred != nil {
			ok, err = pred(r)
			if err != nil {
				return m2, value.ErrorV(err), nil
			}
		}
		if ok {
			matched = append(matched, r)
		}
	}
	return m2, value.TypedValue{Kind: value.KindTable, Table: dataframe.New(rowsBackend(df.Columns(), matched))}, nil
}

func rowsBackend(columns []row.Column, rows []row.Row) *dataframe.Dataframe {
	return dataframe.New(storage.FromRows(columns, rows))
}

func evalMutatingVerb(m Machine, e expression.Expr, op func(df *dataframe.Dataframe, pred dataframe.Predicate, limit *int64) (int64, error)) (Machine, value.TypedValue, error) {
	m2, df, err := resolveTable(m, *e.From)
	if err != nil {
		return m2, value.ErrorV(err), nil
	}
	m3, limit, err := intLimit(m2, e.Limit)
	if err != nil {
		return m3, value.ErrorV(err), nil
	}
	pred := rowPredicate(m3.Env, df.Columns(), e.Predicate)
	n, err := op(df, pred, limit)
	if err != nil {
		return m3, value.ErrorV(err), nil
	}
	return m3, value.Outcome(n), nil
}

func deleteWhere(df *dataframe.Dataframe, pred dataframe.Predicate, limit *int64) (int64, error) {
	return df.DeleteWhere(pred, limit)
}
func undeleteWhere(df *dataframe.Dataframe, pred dataframe.Predicate, limit *int64) (int64, error) {
	return df.UndeleteWhere(pred, limit)
}

func evalTransformVerb(m Machine, e expression.Expr, resetToDefaults bool) (Machine, value.TypedValue, error) {
	m2, df, err := resolveTable(m, *e.From)
	if err != nil {
		return m2, value.ErrorV(err), nil
	}
	m3, limit, err := intLimit(m2, e.Limit)
	if err != nil {
		return m3, value.ErrorV(err), nil
	}
	pred := rowPredicate(m3.Env, df.Columns(), e.Predicate)
	env := m3.Env
	columns := df.Columns()
	fields := e.Fields
	transform := func(r row.Row) ([]string, []value.TypedValue, error) {
		sub := New(env)
		for i, c := range columns {
			sub = sub.withVar(c.Name, r.Fields[i])
		}
		names := make([]string, len(fields))
		values := make([]value.TypedValue, len(fields))
		for i, fa := range fields {
			next, v, err := Eval(sub, fa.Value)
			if err != nil {
				return nil, nil, err
			}
			sub = next
			names[i] = fa.Name
			values[i] = v
		}
		return names, values, nil
	}
	var n int64
	if resetToDefaults {
		n, err = df.OverwriteWhere(transform, pred, limit)
	} else {
		n, err = df.UpdateWhere(transform, pred, limit)
	}
	if err != nil {
		return m3, value.ErrorV(err), nil
	}
	return m3, value.Outcome(n), nil
}

func evalAppend(m Machine, e expression.Expr) (Machine, value.TypedValue, error) {
	m2, df, err := resolveTable(m, *e.From)
	if err != nil {
		return m2, value.ErrorV(err), nil
	}
	cur := m2
	columns := df.Columns()
	var lastID uint64
	for _, rowExpr := range e.Items {
		next, v, err := Eval(cur, rowExpr)
		if err != nil {
			return next, value.Undefined(), err
		}
		cur = next
		if v.Kind != value.KindStructure {
			return cur, value.ErrorV(&errs.CollectionExpected{Got: v.TypeOf().Render()}), nil
		}
		r := row.Defaults(0, columns)
		for i, c := range columns {
			if fv, ok := v.Fields[c.Name]; ok {
				r.Fields[i] = fv
			}
		}
		id, err := df.AppendRow(r)
		if err != nil {
			return cur, value.ErrorV(err), nil
		}
		lastID = id
	}
	return cur, value.RecordNumber(int64(lastID)), nil
}

func evalTableOp(m Machine, e expression.Expr, op func(df *dataframe.Dataframe) (*dataframe.Dataframe, error)) (Machine, value.TypedValue, error) {
	m2, df, err := resolveTable(m, *e.From)
	if err != nil {
		return m2, value.ErrorV(err), nil
	}
	result, err := op(df)
	if err != nil {
		return m2, value.ErrorV(err), nil
	}
	return m2, value.TypedValue{Kind: value.KindTable, Table: result}, nil
}

func evalFetch(m Machine, e expression.Expr) (Machine, value.TypedValue, error) {
	m2, df, err := resolveTable(m, *e.From)
	if err != nil {
		return m2, value.ErrorV(err), nil
	}
	m3, lo, err := Eval(m2, *e.Low)
	if err != nil {
		return m3, value.Undefined(), err
	}
	m4, hi, err := Eval(m3, *e.High)
	if err != nil {
		return m4, value.Undefined(), err
	}
	result, err := df.Fetch(uint64(lo.Int), uint64(hi.Int))
	if err != nil {
		return m4, value.ErrorV(err), nil
	}
	return m4, value.TypedValue{Kind: value.KindTable, Table: result}, nil
}
