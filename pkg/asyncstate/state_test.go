package asyncstate_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/statekit/pkg/asyncstate"
	"github.com/dmitrymomot/statekit/pkg/errmsg"
)

func TestZeroValueIsIdle(t *testing.T) {
	t.Parallel()

	var s asyncstate.State[int]
	assert.True(t, s.IsIdle())
	assert.Equal(t, asyncstate.Idle[int](), s)
}

func TestEquality(t *testing.T) {
	t.Parallel()

	assert.Equal(t, asyncstate.Idle[string](), asyncstate.Idle[string]())
	assert.Equal(t, asyncstate.Loading[string](), asyncstate.Loading[string]())
	assert.Equal(t, asyncstate.LoadingProgress[string](0.5), asyncstate.LoadingProgress[string](0.5))
	assert.NotEqual(t, asyncstate.LoadingProgress[string](0.5), asyncstate.Loading[string]())
	assert.True(t, asyncstate.Success("a") == asyncstate.Success("a"))
	assert.False(t, asyncstate.Success("a") == asyncstate.Success("b"))

	cause := errors.New("boom")
	assert.True(t, asyncstate.Error[string](cause) == asyncstate.Error[string](cause))
}

func TestLoadingProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want float64
		ok   bool
	}{
		{"in range", 0.4, 0.4, true},
		{"below zero", -1, 0, true},
		{"above one", 3, 1, true},
		{"nan is indeterminate", math.NaN(), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, ok := asyncstate.LoadingProgress[int](tt.in).Progress()
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, p, 1e-9)
		})
	}
}

func TestErrorPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { asyncstate.Error[int](nil) })
	assert.Panics(t, func() { asyncstate.Error[int](context.Canceled) })
	assert.Panics(t, func() { asyncstate.Error[int](fmt.Errorf("wrapped: %w", context.Canceled)) })
	assert.NotPanics(t, func() { asyncstate.Error[int](context.DeadlineExceeded) })
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	v, ok := asyncstate.Success(7).Value()
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = asyncstate.Loading[int]().Value()
	assert.False(t, ok)

	got, err := asyncstate.Success(7).Get()
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	_, err = asyncstate.Error[int](cause).Get()
	assert.Same(t, cause, err)

	_, err = asyncstate.Idle[int]().Get()
	assert.ErrorIs(t, err, asyncstate.ErrNotTerminal)
	_, err = asyncstate.Loading[int]().Get()
	assert.ErrorIs(t, err, asyncstate.ErrNotTerminal)

	assert.Same(t, cause, asyncstate.Error[int](cause).Err())
	assert.NoError(t, asyncstate.Success(1).Err())

	assert.True(t, asyncstate.Success(1).IsTerminal())
	assert.True(t, asyncstate.Error[int](cause).IsTerminal())
	assert.False(t, asyncstate.Loading[int]().IsTerminal())
	assert.False(t, asyncstate.Idle[int]().IsTerminal())
}

func TestOnChains(t *testing.T) {
	t.Parallel()

	var calls []string
	record := func(s asyncstate.State[int]) {
		s.OnIdle(func() { calls = append(calls, "idle") }).
			OnLoading(func(float64, bool) { calls = append(calls, "loading") }).
			OnSuccess(func(int) { calls = append(calls, "success") }).
			OnError(func(error) { calls = append(calls, "error") })
	}

	record(asyncstate.Idle[int]())
	record(asyncstate.LoadingProgress[int](0.1))
	record(asyncstate.Success(1))
	record(asyncstate.Error[int](errors.New("x")))

	assert.Equal(t, []string{"idle", "loading", "success", "error"}, calls)
}

func TestMatch(t *testing.T) {
	t.Parallel()

	describe := func(s asyncstate.State[int]) string {
		return asyncstate.Match(s,
			func() string { return "idle" },
			func(p float64, ok bool) string {
				if !ok {
					return "loading"
				}
				return fmt.Sprintf("loading %.0f%%", p*100)
			},
			func(v int) string { return fmt.Sprintf("value %d", v) },
			func(err error) string { return "error " + err.Error() },
		)
	}

	assert.Equal(t, "idle", describe(asyncstate.Idle[int]()))
	assert.Equal(t, "loading", describe(asyncstate.Loading[int]()))
	assert.Equal(t, "loading 50%", describe(asyncstate.LoadingProgress[int](0.5)))
	assert.Equal(t, "value 3", describe(asyncstate.Success(3)))
	assert.Equal(t, "error boom", describe(asyncstate.Error[int](errors.New("boom"))))
}

func TestMap(t *testing.T) {
	t.Parallel()

	double := func(v int) int { return v * 2 }
	cause := errors.New("boom")

	assert.Equal(t, asyncstate.Success(4), asyncstate.Map(asyncstate.Success(2), double))
	assert.Equal(t, asyncstate.Idle[int](), asyncstate.Map(asyncstate.Idle[int](), double))
	assert.Equal(t, asyncstate.LoadingProgress[int](0.3), asyncstate.Map(asyncstate.LoadingProgress[int](0.3), double))
	assert.Same(t, cause, asyncstate.Map(asyncstate.Error[int](cause), double).Err())

	assert.Equal(t, asyncstate.Success(asyncstate.Unit{}), asyncstate.AsUnit(asyncstate.Success("x")))
}

func TestNilHandling(t *testing.T) {
	t.Parallel()

	v := 1
	cause := errors.New("boom")

	assert.ErrorIs(t, asyncstate.NilAsError(asyncstate.Success[*int](nil)).Err(), asyncstate.ErrNilData)
	assert.Equal(t, asyncstate.Success(&v), asyncstate.NilAsError(asyncstate.Success(&v)))
	assert.Equal(t, asyncstate.LoadingProgress[*int](0.2), asyncstate.NilAsError(asyncstate.LoadingProgress[*int](0.2)))
	assert.Same(t, cause, asyncstate.NilAsError(asyncstate.Error[*int](cause)).Err())

	assert.True(t, asyncstate.NilAsIdle(asyncstate.Success[*int](nil)).IsIdle())
	assert.Equal(t, asyncstate.Success(&v), asyncstate.NilAsIdle(asyncstate.Success(&v)))
}

func TestPresentable(t *testing.T) {
	t.Parallel()

	s := asyncstate.Presentable[int]("Offline", "Reconnect and retry.", false)
	require.True(t, s.IsError())

	var pe *errmsg.PresentableError
	require.ErrorAs(t, s.Err(), &pe)
	assert.Equal(t, "Offline", pe.Message().Title)
	assert.False(t, pe.Retryable())

	assert.Equal(t, asyncstate.Success(5), asyncstate.Of(5))
	assert.True(t, asyncstate.Failed[int](errors.New("x")).IsError())
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", asyncstate.KindIdle.String())
	assert.Equal(t, "loading", asyncstate.KindLoading.String())
	assert.Equal(t, "success", asyncstate.KindSuccess.String())
	assert.Equal(t, "error", asyncstate.KindError.String())
	assert.Equal(t, "Loading(0.50)", asyncstate.LoadingProgress[int](0.5).String())
	assert.Equal(t, "Success(3)", asyncstate.Success(3).String())
}
