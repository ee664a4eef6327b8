package namespace

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDeduplicatesConcurrentLoads(t *testing.T) {
	r := NewResolver(t.TempDir())
	ns, err := Parse("d.s.n")
	require.NoError(t, err)

	var loads int32
	load := func() (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		return "handle", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := r.Resolve(ns, load)
			require.NoError(t, err)
			require.Equal(t, "handle", v)
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestForgetEvictsCache(t *testing.T) {
	r := NewResolver(t.TempDir())
	ns, err := Parse("d.s.n")
	require.NoError(t, err)

	var loads int32
	load := func() (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		return "handle", nil
	}
	_, err = r.Resolve(ns, load)
	require.NoError(t, err)
	r.Forget(ns)
	_, err = r.Resolve(ns, load)
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(&loads))
}
