// Package deferred provides a configuration value that can be supplied either
// immediately or as a computation resolved only when it is needed.
//
// A [Value] holds an optional eager value and an optional lazy [Provider].
// Resolution follows one rule: a non-nil eager value always wins;
// otherwise the provider is evaluated on every call to [Value.Get]. Setting
// a nil reference hands resolution back to the provider.
//
//	v := deferred.From(deferred.Func(func() (*xmlmerge.Transformer, error) {
//	    return loadTransformer()
//	}))
//	t, ok, err := v.Get() // evaluates the provider
//
//	v.Set(custom)
//	t, ok, err = v.Get() // always custom from now on
//
// The holder never caches a provider result and never wraps or suppresses
// provider errors. Wrap a provider with [Memoize] when evaluating it once is
// the desired behavior.
//
// # Concurrency
//
// A Value is meant to be configured from a single goroutine before it is
// read. It performs no locking of its own.
package deferred
