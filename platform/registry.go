// Package platform implements the frozen built-in function catalog of
// spec.md §4.7: a registry keyed by (package, name), typed signatures, and
// arity adapters that unpack the argument slice for the underlying Go
// function. Registry.Invoke checks the argument count before calling it.
package platform

import (
	"fmt"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/value"
)

// Opcode is the stable serialized tag for a registered function, so that
// expression trees containing platform calls survive persistence and
// reload (spec.md §4.7).
type Opcode uint16

// Func is the uniform shape every registered built-in is adapted to.
type Func func(args []value.TypedValue) (value.TypedValue, error)

// Signature describes one registered built-in.
type Signature struct {
	Package string
	Name    string
	Arity   int // -1 means variadic; Invoke then skips its count check and the function checks its own arguments
	Opcode  Opcode
	Call    Func
}

// Registry is a static table keyed by (package, name).
type Registry struct {
	entries map[string]Signature
	byCode  map[Opcode]Signature
}

var global = NewRegistry()

// NewRegistry creates an empty registry; Global returns the process-wide
// frozen catalog populated by this package's init-time registrations.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Signature), byCode: make(map[Opcode]Signature)}
}

// Global returns the shared platform registry populated by cal/str/tools/
// util/osx/iox/oxide/www's init functions.
func Global() *Registry { return global }

func key(pkg, name string) string { return pkg + "::" + name }

// Register adds sig to the registry. Called from each subpackage's init.
func (r *Registry) Register(sig Signature) {
	r.entries[key(sig.Package, sig.Name)] = sig
	r.byCode[sig.Opcode] = sig
}

// Lookup resolves (pkg, name) to its Signature.
func (r *Registry) Lookup(pkg, name string) (Signature, bool) {
	sig, ok := r.entries[key(pkg, name)]
	return sig, ok
}

// LookupOpcode resolves a stable opcode back to its Signature, for
// deserializing persisted expression trees.
func (r *Registry) LookupOpcode(code Opcode) (Signature, bool) {
	sig, ok := r.byCode[code]
	return sig, ok
}

// Invoke looks up (pkg, name), checks arity, and calls the underlying
// function, surfacing ArgumentsMismatched on a mismatch (spec.md §4.7).
func (r *Registry) Invoke(pkg, name string, args []value.TypedValue) (value.TypedValue, error) {
	sig, ok := r.Lookup(pkg, name)
	if !ok {
		return value.Undefined(), &errs.Unhandled{Node: fmt.Sprintf("%s::%s", pkg, name)}
	}
	if sig.Arity >= 0 && len(args) != sig.Arity {
		return value.Undefined(), &errs.ArgumentsMismatched{Expected: sig.Arity, Got: len(args)}
	}
	return sig.Call(args)
}

// Arity0 adapts a zero-argument function.
func Arity0(f func() (value.TypedValue, error)) Func {
	return func(args []value.TypedValue) (value.TypedValue, error) { return f() }
}

// Arity1 adapts a one-argument function.
func Arity1(f func(a value.TypedValue) (value.TypedValue, error)) Func {
	return func(args []value.TypedValue) (value.TypedValue, error) { return f(args[0]) }
}

// Arity2 adapts a two-argument function.
func Arity2(f func(a, b value.TypedValue) (value.TypedValue, error)) Func {
	return func(args []value.TypedValue) (value.TypedValue, error) { return f(args[0], args[1]) }
}

// Arity3 adapts a three-argument function.
func Arity3(f func(a, b, c value.TypedValue) (value.TypedValue, error)) Func {
	return func(args []value.TypedValue) (value.TypedValue, error) { return f(args[0], args[1], args[2]) }
}

// Arity1WithOpcode adapts a one-argument function that also needs to know
// its own opcode tag. None of the built-in packages registers a function
// through it.
func Arity1WithOpcode(code Opcode, f func(code Opcode, a value.TypedValue) (value.TypedValue, error)) Func {
	return func(args []value.TypedValue) (value.TypedValue, error) { return f(code, args[0]) }
}

// Variadic adapts a function taking any number of arguments (spec.md §4.7
// str::format, str::join and similar).
func Variadic(f func(args []value.TypedValue) (value.TypedValue, error)) Func { return f }
