package deferred

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	v := Of("eager")

	got, ok, err := v.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "eager", got)
	assert.True(t, v.IsSet())
}

func TestFromEvaluatesEveryCall(t *testing.T) {
	calls := 0
	v := From(Func(func() (int, error) {
		calls++
		return calls * 10, nil
	}))

	for want := 10; want <= 30; want += 10 {
		got, ok, err := v.Get()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 3, calls)
	assert.False(t, v.IsSet())
}

func TestSetShadowsProvider(t *testing.T) {
	calls := 0
	v := From(Func(func() (string, error) {
		calls++
		return "lazy", nil
	}))

	got, _, _ := v.Get()
	assert.Equal(t, "lazy", got)

	v.Set("eager")
	for range 3 {
		got, ok, err := v.Get()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "eager", got)
	}
	assert.Equal(t, 1, calls, "provider must not run once an eager value is set")
}

func TestSetNilFallsBackToProvider(t *testing.T) {
	calls := 0
	v := From(Func(func() (*int, error) {
		calls++
		n := 7
		return &n, nil
	}))

	v.Set(nil)
	assert.False(t, v.IsSet())
	got, ok, err := v.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, got)
	assert.Equal(t, 7, *got)
	assert.Equal(t, 1, calls)
}

func TestSetNilAfterEagerClearsIt(t *testing.T) {
	eager, lazy := 1, 2
	v := From(Func(func() (*int, error) { return &lazy, nil }))

	v.Set(&eager)
	got, _, _ := v.Get()
	assert.Same(t, &eager, got)

	v.Set(nil)
	got, _, _ = v.Get()
	assert.Same(t, &lazy, got)
}

func TestSetZeroScalarStillShadows(t *testing.T) {
	v := From(Func(func() (int, error) { return 7, nil }))

	v.Set(0)
	got, ok, err := v.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestSetNilWithoutProvider(t *testing.T) {
	v := Of[map[string]int](nil)
	assert.False(t, v.IsSet())

	got, ok, err := v.Get()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSetOverwritesEager(t *testing.T) {
	v := Of(1)
	v.Set(2)
	v.Set(3)

	got, _, _ := v.Get()
	assert.Equal(t, 3, got)
}

func TestAbsent(t *testing.T) {
	tests := []struct {
		name  string
		value *Value[string]
	}{
		{"absent provider", From(Absent[string]())},
		{"nil provider", From[string](nil)},
		{"provider reporting absence", From[string](ProviderFunc[string](func() (string, bool, error) {
			return "", false, nil
		}))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := tt.value.Get()
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestProviderErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("boom")
	v := From(Func(func() (string, error) {
		return "", boom
	}))

	_, ok, err := v.Get()
	assert.False(t, ok)
	assert.Same(t, boom, err)

	v.Set("fixed")
	got, _, err := v.Get()
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)
}

func TestMemoize(t *testing.T) {
	calls := 0
	p := Memoize(Func(func() (int, error) {
		calls++
		return calls, nil
	}))
	v := From(p)

	for range 3 {
		got, ok, err := v.Get()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1, got)
	}
	assert.Equal(t, 1, calls)
}

func TestMemoizeRetriesFailures(t *testing.T) {
	calls := 0
	p := Memoize(Func(func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("transient")
		}
		return "ready", nil
	}))

	_, _, err := p.Resolve()
	require.Error(t, err)

	got, ok, err := p.Resolve()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ready", got)

	_, _, _ = p.Resolve()
	assert.Equal(t, 2, calls)
}
