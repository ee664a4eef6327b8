package start

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartReturnsRunErrorOnCompletion(t *testing.T) {
	want := errors.New("boom")
	err := Start(context.Background(), time.Second, func(ctx context.Context) error {
		return want
	})
	require.Equal(t, want, err)
}

func TestStartCancelsContextAfterRunCompletes(t *testing.T) {
	var runCtx context.Context
	err := Start(context.Background(), time.Second, func(ctx context.Context) error {
		runCtx = ctx
		return nil
	})
	require.NoError(t, err)
	require.ErrorIs(t, runCtx.Err(), context.Canceled)
}

func TestRunAllWaitsForAllServices(t *testing.T) {
	var aRan, bRan bool
	err := RunAll(context.Background(),
		func(ctx context.Context) error { aRan = true; return nil },
		func(ctx context.Context) error { bRan = true; return nil },
	)
	require.NoError(t, err)
	require.True(t, aRan)
	require.True(t, bRan)
}

func TestRunAllPropagatesFirstError(t *testing.T) {
	want := errors.New("service failed")
	err := RunAll(context.Background(),
		func(ctx context.Context) error { return want },
		func(ctx context.Context) error { <-ctx.Done(); return nil },
	)
	require.Equal(t, want, err)
}
