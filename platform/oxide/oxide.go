// Package oxide registers the platform::oxide built-ins of spec.md §4.7:
// assert, help, home, matches, println, type_of, uuid, version. compile,
// eval, history, and reset need the calling machine itself (its stack, its
// function table), not just argument values, so the machine package
// special-cases those four at dispatch time rather than routing them
// through this registry's Invoke.
package oxide

import (
	"fmt"
	"os"
	"regexp"

	"github.com/google/uuid"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

const pkg = "oxide"

const (
	opAssert platform.Opcode = iota + 600
	opHelp
	opHome
	opMatches
	opPrintln
	opTypeOf
	opUuid
	opVersion
)

// version is embedded rather than derived from build info, matching the
// teacher pack's convention of a stamped constant for --version output.
const version = "0.1.0"

func init() {
	r := platform.Global()

	r.Register(platform.Signature{Package: pkg, Name: "assert", Arity: 2, Opcode: opAssert,
		Call: platform.Arity2(func(expected, actual value.TypedValue) (value.TypedValue, error) {
			eq := expected.Eq(actual)
			if eq.Kind == value.KindBoolean && eq.Bool {
				return value.Boolean(true), nil
			}
			return value.Undefined(), &errs.AssertionError{Expected: expected.Unwrap(), Actual: actual.Unwrap()}
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "help", Arity: 0, Opcode: opHelp,
		Call: platform.Arity0(func() (value.TypedValue, error) {
			return value.StringV("see the platform registry for the full built-in catalog"), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "home", Arity: 0, Opcode: opHome,
		Call: platform.Arity0(func() (value.TypedValue, error) {
			if h := os.Getenv("OXIDE_HOME"); h != "" {
				return value.StringV(h), nil
			}
			home, _ := os.UserHomeDir()
			return value.StringV(home), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "matches", Arity: 2, Opcode: opMatches,
		Call: platform.Arity2(func(a, pattern value.TypedValue) (value.TypedValue, error) {
			if a.Kind != value.KindString || pattern.Kind != value.KindString {
				return value.Undefined(), &errs.StringExpected{Got: a.TypeOf().Render()}
			}
			re, err := regexp.Compile(pattern.Str)
			if err != nil {
				return value.Undefined(), &errs.ConversionError{Message: err.Error()}
			}
			return value.Boolean(re.MatchString(a.Str)), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "println", Arity: 1, Opcode: opPrintln,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			fmt.Println(a.Unwrap())
			return value.Outcome(1), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "type_of", Arity: 1, Opcode: opTypeOf,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			return value.StringV(a.TypeOf().Render()), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "uuid", Arity: 0, Opcode: opUuid,
		Call: platform.Arity0(func() (value.TypedValue, error) {
			return value.UuidV(uuid.New()), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "version", Arity: 0, Opcode: opVersion,
		Call: platform.Arity0(func() (value.TypedValue, error) {
			return value.StringV(version), nil
		}),
	})
}
