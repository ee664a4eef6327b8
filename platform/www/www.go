// Package www registers the platform::www built-ins of spec.md §4.7:
// URL encode/decode, and serve (registered by name only; the REST listener
// itself lives in package rest and is started by cmd/coredb's serve
// command — see spec.md §5/§6).
package www

import (
	"net/url"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

const pkg = "www"

const (
	opURLEncode platform.Opcode = iota + 700
	opURLDecode
	opServe
)

func init() {
	r := platform.Global()

	r.Register(platform.Signature{Package: pkg, Name: "url_encode", Arity: 1, Opcode: opURLEncode,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			if a.Kind != value.KindString {
				return value.Undefined(), &errs.StringExpected{Got: a.TypeOf().Render()}
			}
			return value.StringV(url.QueryEscape(a.Str)), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "url_decode", Arity: 1, Opcode: opURLDecode,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			if a.Kind != value.KindString {
				return value.Undefined(), &errs.StringExpected{Got: a.TypeOf().Render()}
			}
			decoded, err := url.QueryUnescape(a.Str)
			if err != nil {
				return value.Undefined(), &errs.ConversionError{Message: err.Error()}
			}
			return value.StringV(decoded), nil
		}),
	})

	// serve is registered as a recognizable entry only: invoking it returns
	// Unhandled, and the machine package likewise evaluates a www::serve
	// call or an HTTP verb node to Unhandled. The listener is started by
	// cmd/coredb through package rest.
	r.Register(platform.Signature{Package: pkg, Name: "serve", Arity: 1, Opcode: opServe,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			return value.Undefined(), &errs.Unhandled{Node: "www::serve (handled by machine dispatch)"}
		}),
	})
}
