package deferred

import "sync"

// Memoize wraps p so that its first successful resolution is remembered.
// Failed resolutions are not remembered and are retried on the next call.
// An absent result counts as a success and is remembered too.
func Memoize[T any](p Provider[T]) Provider[T] {
	return &memoized[T]{inner: p}
}

type memoized[T any] struct {
	mu    sync.Mutex
	inner Provider[T]
	done  bool
	value T
	ok    bool
}

func (m *memoized[T]) Resolve() (T, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return m.value, m.ok, nil
	}
	v, ok, err := m.inner.Resolve()
	if err != nil {
		return v, ok, err
	}
	m.value, m.ok, m.done = v, ok, true
	return v, ok, nil
}
