// Package errs defines the closed set of error values the core produces.
//
// Errors are first-class values here, not bare strings: every kind below
// implements error so it composes with github.com/pkg/errors, but callers
// that need to branch on the specific failure can type-assert back to the
// concrete kind.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// TypeMismatch reports that a value of Got's shape was supplied where
// Expected was required.
type TypeMismatch struct {
	Expected string
	Got      string
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// StringExpected reports a non-string value where a string was required.
type StringExpected struct{ Got string }

func (e *StringExpected) Error() string { return fmt.Sprintf("string expected, got %s", e.Got) }

// DateExpected reports a non-date value where a date was required.
type DateExpected struct{ Got string }

func (e *DateExpected) Error() string { return fmt.Sprintf("date expected, got %s", e.Got) }

// CollectionExpected reports a non-collection (array/table) value where one was required.
type CollectionExpected struct{ Got string }

func (e *CollectionExpected) Error() string {
	return fmt.Sprintf("collection expected, got %s", e.Got)
}

// TableExpected reports a non-table value where a table of Kind was required.
type TableExpected struct {
	Kind string
	Got  string
}

func (e *TableExpected) Error() string {
	return fmt.Sprintf("table (%s) expected, got %s", e.Kind, e.Got)
}

// ArgumentsMismatched reports a platform-function call with the wrong arity.
type ArgumentsMismatched struct {
	Expected int
	Got      int
}

func (e *ArgumentsMismatched) Error() string {
	return fmt.Sprintf("arguments mismatched: expected %d, got %d", e.Expected, e.Got)
}

// Exact carries a human-readable parse/compile/I-O error message.
type Exact struct{ Message string }

func (e *Exact) Error() string { return e.Message }

// ConversionError reports a failed value conversion (e.g. text to number).
type ConversionError struct{ Message string }

func (e *ConversionError) Error() string { return "conversion error: " + e.Message }

// AssertionError reports a failed oxide::assert invocation.
type AssertionError struct {
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: expected %s, got %s", e.Expected, e.Actual)
}

// Unhandled reports an expression node the evaluator has no dispatch rule for.
type Unhandled struct{ Node string }

func (e *Unhandled) Error() string { return "unhandled expression: " + e.Node }

// Wrap attaches a message to an underlying I/O or system error, converting
// it into an *Exact per spec.md §7's "I/O errors wrapped ... into Exact".
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Exact{Message: errors.Wrap(err, message).Error()}
}
