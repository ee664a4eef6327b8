// Package iox registers the platform::io built-ins of spec.md §4.7: file
// create/exists/read-text, and stderr/stdout writers. Named iox (not io)
// to avoid colliding with the standard library package.
package iox

import (
	"os"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

const pkg = "io"

const (
	opFileCreate platform.Opcode = iota + 500
	opFileExists
	opFileReadText
	opStderr
	opStdout
)

func asPath(v value.TypedValue) (string, error) {
	if v.Kind != value.KindString {
		return "", &errs.StringExpected{Got: v.TypeOf().Render()}
	}
	return v.Str, nil
}

func init() {
	r := platform.Global()

	r.Register(platform.Signature{Package: pkg, Name: "file_create", Arity: 1, Opcode: opFileCreate,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			path, err := asPath(a)
			if err != nil {
				return value.Undefined(), err
			}
			f, err := os.Create(path)
			if err != nil {
				return value.Boolean(false), errs.Wrap(err, "creating file")
			}
			f.Close()
			return value.Boolean(true), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "file_exists", Arity: 1, Opcode: opFileExists,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			path, err := asPath(a)
			if err != nil {
				return value.Undefined(), err
			}
			_, statErr := os.Stat(path)
			return value.Boolean(statErr == nil), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "file_read_text", Arity: 1, Opcode: opFileReadText,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			path, err := asPath(a)
			if err != nil {
				return value.Undefined(), err
			}
			buf, err := os.ReadFile(path)
			if err != nil {
				return value.Undefined(), errs.Wrap(err, "reading file")
			}
			return value.StringV(string(buf)), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "stderr", Arity: 1, Opcode: opStderr,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			os.Stderr.WriteString(a.Unwrap())
			return value.Outcome(1), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "stdout", Arity: 1, Opcode: opStdout,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			os.Stdout.WriteString(a.Unwrap())
			return value.Outcome(1), nil
		}),
	})
}
