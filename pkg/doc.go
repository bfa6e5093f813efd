// Package pkg provides the libraries behind xmlmerge.
//
// # Overview
//
// xmlmerge rewrites XML configuration files by running an ordered list of
// actions over a mutable document tree and serializing the result with a
// deterministic writer. The pkg directory is organized into these areas:
//
//  1. [xmlmerge] - the transform pipeline (actions, document provider, writer)
//  2. [deferred] - values that are either set eagerly or resolved on demand
//  3. [merger] - before/when-merged hooks and the lazily resolved transformer
//  4. [generator] - regeneration of a file from a domain object
//  5. [script] - declarative TOML edit scripts
//  6. [pipeline] - read → script → transform → write orchestration with caching
//  7. [cache], [io], [errors], [observability], [buildinfo] - infrastructure
//
// # Architecture
//
// The typical data flow for a command-line run:
//
//	input.xml + edit.toml
//	         ↓
//	    [script] package (parse and validate actions)
//	         ↓
//	    [xmlmerge] package (parse, run actions in order, serialize)
//	         ↓
//	    [io] package (atomic write)
//
// # Quick Start
//
// Register actions in Go and transform a document:
//
//	t := xmlmerge.New()
//	t.AddAction(xmlmerge.ActionFunc(func(p *xmlmerge.Provider) error {
//	    _, err := p.AppendChild("/root", "b")
//	    return err
//	}))
//	out, err := t.Transform([]byte("<root><a/></root>"))
//
// Or run a script through the cached pipeline:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    InputPath:  "workspace.xml",
//	    ScriptPath: "edit.toml",
//	})
//
// # Error Handling
//
// Errors carry a machine-readable code from [errors]. Parse failures, failing
// actions and unserializable output are distinct codes, so callers can tell
// a bad document from a bad edit:
//
//	if errors.Is(err, errors.ErrCodeActionFailed) {
//	    var ae *xmlmerge.ActionError
//	    stderrors.As(err, &ae) // ae.Index, ae.Name
//	}
package pkg
