// Package generator drives the regeneration of an XML configuration file that
// users may also edit by hand.
//
// A [Generator] knows how to read the existing file into a domain object,
// apply generated settings to it and render it back. [Task] runs one
// generator against one output path, calling the hooks of an
// [merger.XMLContentMerger] at the right points:
//
//	load existing → before-merged hooks → configure → when-merged hooks
//	→ render → XML actions → atomic write
//
// Any failure aborts the task before the output file is touched.
package generator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/xmlmerge/pkg/errors"
	pkgio "github.com/matzehuels/xmlmerge/pkg/io"
	"github.com/matzehuels/xmlmerge/pkg/merger"
)

// Generator produces a document from a domain object of type T.
type Generator[T any] interface {
	// Load builds the domain object from the current file contents.
	// existing is nil when the file does not exist yet.
	Load(existing []byte) (T, error)

	// Configure applies generated settings to obj.
	Configure(obj T) error

	// Render serializes obj.
	Render(obj T) ([]byte, error)
}

// Funcs adapts three functions to [Generator]. A nil Configure is a no-op.
type Funcs[T any] struct {
	LoadFunc      func(existing []byte) (T, error)
	ConfigureFunc func(obj T) error
	RenderFunc    func(obj T) ([]byte, error)
}

// Load calls LoadFunc.
func (f Funcs[T]) Load(existing []byte) (T, error) { return f.LoadFunc(existing) }

// Configure calls ConfigureFunc if set.
func (f Funcs[T]) Configure(obj T) error {
	if f.ConfigureFunc == nil {
		return nil
	}
	return f.ConfigureFunc(obj)
}

// Render calls RenderFunc.
func (f Funcs[T]) Render(obj T) ([]byte, error) { return f.RenderFunc(obj) }

// Task regenerates Output with Generator. Merger is optional; without it the
// rendered bytes are written as-is.
type Task[T any] struct {
	Generator Generator[T]
	Merger    *merger.XMLContentMerger[T]
	Output    string
	Logger    *log.Logger
}

// Result describes a finished task.
type Result struct {
	Path     string
	Existed  bool // whether Output existed before the run
	Changed  bool // whether the new content differs from the old
	Size     int
	Duration time.Duration
}

// Run executes the task. The output is only rewritten when its content
// changes.
func (t *Task[T]) Run(ctx context.Context) (*Result, error) {
	if t.Generator == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "generator is required")
	}
	if t.Output == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "output path is required")
	}
	logger := t.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	start := time.Now()

	existing, existed, err := pkgio.ReadExisting(t.Output)
	if err != nil {
		return nil, fmt.Errorf("read existing: %w", err)
	}

	out, err := t.produce(ctx, existing, logger)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Path:    t.Output,
		Existed: existed,
		Changed: !existed || !bytes.Equal(existing, out),
		Size:    len(out),
	}
	if res.Changed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := pkgio.WriteDocument(t.Output, out); err != nil {
			return nil, fmt.Errorf("write: %w", err)
		}
	}
	res.Duration = time.Since(start)

	logger.Debug("generated file",
		"path", t.Output,
		"existed", existed,
		"changed", res.Changed,
		"bytes", res.Size,
		"duration", res.Duration)
	return res, nil
}

func (t *Task[T]) produce(ctx context.Context, existing []byte, logger *log.Logger) ([]byte, error) {
	obj, err := t.Generator.Load(existing)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if t.Merger != nil {
		if err := t.Merger.RunBeforeMerged(obj); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := t.Generator.Configure(obj); err != nil {
		return nil, fmt.Errorf("configure: %w", err)
	}
	if t.Merger != nil {
		if err := t.Merger.RunWhenMerged(obj); err != nil {
			return nil, err
		}
	}

	rendered, err := t.Generator.Render(obj)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	logger.Debug("rendered document", "bytes", len(rendered))

	if t.Merger == nil {
		return rendered, nil
	}
	out, err := t.Merger.Merge(rendered)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return out, nil
}
