// Package osx registers the platform::os built-ins of spec.md §4.7: shell
// invocation, current directory, the environment table, and clear screen.
// Named osx (not os) to avoid colliding with the standard library package.
package osx

import (
	"os"
	"os/exec"
	"strings"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

const pkg = "os"

const (
	opShell platform.Opcode = iota + 400
	opCurrentDir
	opEnvTable
	opClearScreen
)

func init() {
	r := platform.Global()

	r.Register(platform.Signature{Package: pkg, Name: "shell", Arity: 1, Opcode: opShell,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			if a.Kind != value.KindString {
				return value.Undefined(), &errs.StringExpected{Got: a.TypeOf().Render()}
			}
			out, err := exec.Command("/bin/sh", "-c", a.Str).CombinedOutput()
			if err != nil {
				return value.Undefined(), errs.Wrap(err, "shell invocation failed")
			}
			return value.StringV(string(out)), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "current_dir", Arity: 0, Opcode: opCurrentDir,
		Call: platform.Arity0(func() (value.TypedValue, error) {
			wd, err := os.Getwd()
			if err != nil {
				return value.Undefined(), errs.Wrap(err, "reading working directory")
			}
			return value.StringV(wd), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "env_table", Arity: 0, Opcode: opEnvTable,
		Call: platform.Arity0(func() (value.TypedValue, error) {
			fields := make(map[string]value.TypedValue)
			for _, kv := range os.Environ() {
				parts := strings.SplitN(kv, "=", 2)
				if len(parts) == 2 {
					fields[parts[0]] = value.StringV(parts[1])
				}
			}
			return value.StructureV(fields), nil
		}),
	})

	r.Register(platform.Signature{Package: pkg, Name: "clear_screen", Arity: 0, Opcode: opClearScreen,
		Call: platform.Arity0(func() (value.TypedValue, error) {
			os.Stdout.WriteString("\033[H\033[2J")
			return value.Outcome(1), nil
		}),
	})
}
