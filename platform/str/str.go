// Package str registers the platform::str built-ins of spec.md §4.7:
// string predicates, slicing, splitting/joining, and positional
// formatting.
package str

import (
	"strings"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

const pkg = "str"

const (
	opEndsWith platform.Opcode = iota + 200
	opFormat
	opIndexOf
	opJoin
	opLeft
	opLen
	opRight
	opSplit
	opStartsWith
	opSubstring
	opToString
)

func asString(v value.TypedValue) (string, error) {
	switch v.Kind {
	case value.KindString, value.KindClob:
		return v.Str, nil
	default:
		return "", &errs.StringExpected{Got: v.TypeOf().Render()}
	}
}

func init() {
	r := platform.Global()

	r.Register(platform.Signature{Package: pkg, Name: "ends_with", Arity: 2, Opcode: opEndsWith,
		Call: platform.Arity2(func(a, b value.TypedValue) (value.TypedValue, error) {
			s, err := asString(a)
			if err != nil {
				return value.Undefined(), err
			}
			suf, err := asString(b)
			if err != nil {
				return value.Undefined(), err
			}
			return value.Boolean(strings.HasSuffix(s, suf)), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "starts_with", Arity: 2, Opcode: opStartsWith,
		Call: platform.Arity2(func(a, b value.TypedValue) (value.TypedValue, error) {
			s, err := asString(a)
			if err != nil {
				return value.Undefined(), err
			}
			pre, err := asString(b)
			if err != nil {
				return value.Undefined(), err
			}
			return value.Boolean(strings.HasPrefix(s, pre)), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "index_of", Arity: 2, Opcode: opIndexOf,
		Call: platform.Arity2(func(a, b value.TypedValue) (value.TypedValue, error) {
			s, err := asString(a)
			if err != nil {
				return value.Undefined(), err
			}
			sub, err := asString(b)
			if err != nil {
				return value.Undefined(), err
			}
			return value.Int64v(int64(strings.Index(s, sub))), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "len", Arity: 1, Opcode: opLen,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			s, err := asString(a)
			if err != nil {
				return value.Undefined(), err
			}
			return value.Int64v(int64(len(s))), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "to_string", Arity: 1, Opcode: opToString,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			return value.StringV(a.Unwrap()), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "substring", Arity: 3, Opcode: opSubstring,
		Call: platform.Arity3(func(a, start, end value.TypedValue) (value.TypedValue, error) {
			s, err := asString(a)
			if err != nil {
				return value.Undefined(), err
			}
			lo, hi := int(start.Int), int(end.Int)
			if lo < 0 {
				lo = 0
			}
			if hi > len(s) {
				hi = len(s)
			}
			if lo > hi {
				return value.StringV(""), nil
			}
			return value.StringV(s[lo:hi]), nil
		}),
	})

	// left/right with negative counts delegate to the opposite side
	// (spec.md §4.7: `str::left("Hello World", -5)` == "World").
	r.Register(platform.Signature{Package: pkg, Name: "left", Arity: 2, Opcode: opLeft,
		Call: platform.Arity2(func(a, n value.TypedValue) (value.TypedValue, error) {
			s, err := asString(a)
			if err != nil {
				return value.Undefined(), err
			}
			return value.StringV(takeSide(s, n.Int, true)), nil
		}),
	})
	r.Register(platform.Signature{Package: pkg, Name: "right", Arity: 2, Opcode: opRight,
		Call: platform.Arity2(func(a, n value.TypedValue) (value.TypedValue, error) {
			s, err := asString(a)
			if err != nil {
				return value.Undefined(), err
			}
			return value.StringV(takeSide(s, n.Int, false)), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "split", Arity: 2, Opcode: opSplit,
		Call: platform.Arity2(func(a, sep value.TypedValue) (value.TypedValue, error) {
			s, err := asString(a)
			if err != nil {
				return value.Undefined(), err
			}
			d, err := asString(sep)
			if err != nil {
				return value.Undefined(), err
			}
			parts := strings.Split(s, d)
			items := make([]value.TypedValue, len(parts))
			for i, p := range parts {
				items[i] = value.StringV(p)
			}
			return value.ArrayV(items), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "join", Arity: -1, Opcode: opJoin,
		Call: platform.Variadic(func(args []value.TypedValue) (value.TypedValue, error) {
			if len(args) < 1 {
				return value.Undefined(), &errs.ArgumentsMismatched{Expected: 2, Got: len(args)}
			}
			sep, err := asString(args[0])
			if err != nil {
				return value.Undefined(), err
			}
			parts := make([]string, 0, len(args)-1)
			for _, v := range args[1:] {
				parts = append(parts, v.Unwrap())
			}
			return value.StringV(strings.Join(parts, sep)), nil
		}),
	})

	// format performs positional {} substitution (spec.md §4.7:
	// `str::format("This {} the {}", "is", "way")` == "This is the way").
	r.Register(platform.Signature{Package: pkg, Name: "format", Arity: -1, Opcode: opFormat,
		Call: platform.Variadic(func(args []value.TypedValue) (value.TypedValue, error) {
			if len(args) < 1 {
				return value.Undefined(), &errs.ArgumentsMismatched{Expected: 1, Got: len(args)}
			}
			tmpl, err := asString(args[0])
			if err != nil {
				return value.Undefined(), err
			}
			var b strings.Builder
			argIdx := 1
			for i := 0; i < len(tmpl); i++ {
				if tmpl[i] == '{' && i+1 < len(tmpl) && tmpl[i+1] == '}' {
					if argIdx < len(args) {
						b.WriteString(args[argIdx].Unwrap())
						argIdx++
					}
					i++
					continue
				}
				b.WriteByte(tmpl[i])
			}
			return value.StringV(b.String()), nil
		}),
	})
}

// takeSide returns the first/last |n| bytes of s; a negative n delegates
// to the opposite side (spec.md §4.7).
func takeSide(s string, n int64, left bool) string {
	if n < 0 {
		return takeSide(s, -n, !left)
	}
	count := int(n)
	if count > len(s) {
		count = len(s)
	}
	if left {
		return s[:count]
	}
	return s[len(s)-count:]
}
