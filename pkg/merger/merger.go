// Package merger models the merge hooks of a generated configuration file.
//
// Generators that rewrite a file the user may have edited go through three
// phases: the existing content is loaded into a domain object, generated
// defaults are merged into it, and the result is rendered. [ContentMerger]
// lets callers hook in before and after the merge of the domain object;
// [XMLContentMerger] additionally lets them rewrite the rendered XML through
// an [xmlmerge.Transformer] that may be supplied eagerly or lazily.
package merger

import (
	"fmt"
	"sync"
)

// ContentMerger holds the hooks run around the merge of a domain object of
// type T. Hooks run in registration order and the first error stops the run.
type ContentMerger[T any] struct {
	mu     sync.Mutex
	before []func(T) error
	when   []func(T) error
}

// BeforeMerged registers fn to run after the existing content was loaded
// and before generated content is merged in.
func (m *ContentMerger[T]) BeforeMerged(fn func(T) error) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.before = append(m.before, fn)
}

// WhenMerged registers fn to run once generated content has been merged
// into the domain object.
func (m *ContentMerger[T]) WhenMerged(fn func(T) error) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.when = append(m.when, fn)
}

// RunBeforeMerged runs the before-merged hooks against obj.
func (m *ContentMerger[T]) RunBeforeMerged(obj T) error {
	return runHooks("before-merged", m.snapshot(&m.before), obj)
}

// RunWhenMerged runs the when-merged hooks against obj.
func (m *ContentMerger[T]) RunWhenMerged(obj T) error {
	return runHooks("when-merged", m.snapshot(&m.when), obj)
}

func (m *ContentMerger[T]) snapshot(hooks *[]func(T) error) []func(T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]func(T) error(nil), (*hooks)...)
}

func runHooks[T any](phase string, hooks []func(T) error, obj T) error {
	for i, fn := range hooks {
		if err := fn(obj); err != nil {
			return fmt.Errorf("%s hook %d: %w", phase, i+1, err)
		}
	}
	return nil
}
