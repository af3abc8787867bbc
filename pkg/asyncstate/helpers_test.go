package asyncstate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/statekit/pkg/asyncstate"
)

func collect[T any](t *testing.T, ch <-chan asyncstate.State[T]) []asyncstate.State[T] {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	states, err := asyncstate.Collect(ctx, ch)
	require.NoError(t, err, "stream did not close in time")
	return states
}

func kinds[T any](states []asyncstate.State[T]) []asyncstate.Kind {
	out := make([]asyncstate.Kind, len(states))
	for i, s := range states {
		out[i] = s.Kind()
	}
	return out
}

// requireClosed fails unless ch is closed within d.
func requireClosed[T any](t *testing.T, ch <-chan asyncstate.State[T], d time.Duration) {
	t.Helper()
	deadline := time.After(d)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream not closed")
		}
	}
}
