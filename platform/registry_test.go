package platform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/value"
)

func TestRegisterLookupInvoke(t *testing.T) {
	r := NewRegistry()
	r.Register(Signature{Package: "test", Name: "double", Arity: 1, Opcode: 9001,
		Call: Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			return value.Int64v(a.Int * 2), nil
		}),
	})

	sig, ok := r.Lookup("test", "double")
	require.True(t, ok)
	require.Equal(t, Opcode(9001), sig.Opcode)

	byCode, ok := r.LookupOpcode(9001)
	require.True(t, ok)
	require.Equal(t, "double", byCode.Name)

	got, err := r.Invoke("test", "double", []value.TypedValue{value.Int64v(21)})
	require.NoError(t, err)
	require.Equal(t, int64(42), got.Int)
}

func TestInvokeUnregisteredIsUnhandled(t *testing.T) {
	r := NewRegistry()
	_, err := r.Invoke("test", "missing", nil)
	require.Error(t, err)
	require.IsType(t, &errs.Unhandled{}, err)
}

func TestInvokeArityMismatch(t *testing.T) {
	r := NewRegistry()
	r.Register(Signature{Package: "test", Name: "one", Arity: 1, Opcode: 1,
		Call: Arity1(func(a value.TypedValue) (value.TypedValue, error) { return a, nil }),
	})
	_, err := r.Invoke("test", "one", nil)
	require.Error(t, err)
	require.IsType(t, &errs.ArgumentsMismatched{}, err)
}

func TestGlobalRegistryMissesUnknownEntry(t *testing.T) {
	// cal/str/tools/util/osx/iox/oxide/www register themselves via their
	// own init functions, so Global() holds their entries only in a binary
	// that imports them. This package imports none of them; here we only
	// verify that a lookup of an unknown entry misses.
	_, ok := Global().Lookup("nonexistent", "nonexistent")
	require.False(t, ok)
}
