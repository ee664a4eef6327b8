package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessagesAreHumanReadable(t *testing.T) {
	require.Equal(t, "type mismatch: expected Int64, got String", (&TypeMismatch{Expected: "Int64", Got: "String"}).Error())
	require.Equal(t, "string expected, got Int64", (&StringExpected{Got: "Int64"}).Error())
	require.Equal(t, "arguments mismatched: expected 2, got 1", (&ArgumentsMismatched{Expected: 2, Got: 1}).Error())
	require.Equal(t, "assertion failed: expected 1, got 2", (&AssertionError{Expected: "1", Actual: "2"}).Error())
	require.Equal(t, "unhandled expression: oxide::compile", (&Unhandled{Node: "oxide::compile"}).Error())
}

func TestWrapReturnsNilForNilError(t *testing.T) {
	require.NoError(t, Wrap(nil, "reading file"))
}

func TestWrapProducesExactWithContext(t *testing.T) {
	err := Wrap(errors.New("disk full"), "writing row file")
	require.Error(t, err)
	require.IsType(t, &Exact{}, err)
	require.Contains(t, err.Error(), "writing row file")
	require.Contains(t, err.Error(), "disk full")
}
