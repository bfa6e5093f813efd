package deferred

import "reflect"

// Provider computes a value on demand. The boolean result reports whether a
// value is present; an absent value is not an error.
type Provider[T any] interface {
	Resolve() (T, bool, error)
}

// ProviderFunc adapts an ordinary function to the [Provider] interface.
type ProviderFunc[T any] func() (T, bool, error)

// Resolve calls f.
func (f ProviderFunc[T]) Resolve() (T, bool, error) {
	return f()
}

// Func returns a provider whose value is present whenever fn succeeds.
func Func[T any](fn func() (T, error)) Provider[T] {
	return ProviderFunc[T](func() (T, bool, error) {
		v, err := fn()
		if err != nil {
			var zero T
			return zero, false, err
		}
		return v, true, nil
	})
}

// Absent returns a provider that never has a value.
func Absent[T any]() Provider[T] {
	return ProviderFunc[T](func() (T, bool, error) {
		var zero T
		return zero, false, nil
	})
}

// Value resolves to an eager value when one has been set and to the result
// of its provider otherwise.
type Value[T any] struct {
	eager    T
	hasEager bool
	lazy     Provider[T]
}

// Of creates a Value with an eager value and no provider.
func Of[T any](v T) *Value[T] {
	return &Value[T]{eager: v, hasEager: true}
}

// From creates a Value backed only by p. A nil provider behaves like
// [Absent].
func From[T any](p Provider[T]) *Value[T] {
	return &Value[T]{lazy: p}
}

// Get returns the eager value if one was set and is not nil. Otherwise it
// evaluates the provider and returns its current result, including any error,
// unchanged. With neither source available it returns the zero value and false.
func (v *Value[T]) Get() (T, bool, error) {
	if v.IsSet() {
		return v.eager, true, nil
	}
	if v.lazy == nil {
		var zero T
		return zero, false, nil
	}
	return v.lazy.Resolve()
}

// Set stores an eager value that shadows the provider for every later Get.
// Setting a nil pointer, interface, map, slice, func or channel clears the
// eager value, so the provider is consulted again.
func (v *Value[T]) Set(val T) {
	v.eager = val
	v.hasEager = !isNil(val)
}

// IsSet reports whether a non-nil eager value has been set.
func (v *Value[T]) IsSet() bool {
	return v.hasEager
}

// isNil reports whether val is a nil reference. Zero values of other kinds
// (0, "", false, empty structs) are real values and count as set.
func isNil[T any](val T) bool {
	rv := reflect.ValueOf(any(val))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
