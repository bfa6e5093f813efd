// Package pipeline runs the read → script → transform → write flow shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Read: load the input document from disk or take it from the request
//  2. Script: load and validate the edit script
//  3. Transform: apply the script's actions, consulting the result cache
//  4. Write: atomically replace the output file (CLI only)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    InputPath:  "workspace.xml",
//	    ScriptPath: "edit.toml",
//	    OutputPath: "workspace.xml",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.CacheInfo.TransformHit)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/xmlmerge/pkg/errors"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. Document and Script take precedence over
// their path counterparts, which lets the server pass request bodies
// straight through. JSON tags cover the fields that make sense over HTTP.
type Options struct {
	// Input
	InputPath string `json:"-"`
	Document  []byte `json:"document,omitempty"`

	// Edit script (TOML)
	ScriptPath string `json:"-"`
	Script     []byte `json:"script,omitempty"`

	// Output; empty means the result is only returned.
	OutputPath string `json:"-"`

	// Refresh skips the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the merged document.
	Document []byte

	// DocumentHash is the content hash of the input document.
	DocumentHash string

	// ScriptHash is the content hash of the raw script.
	ScriptHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Actions       int
	InputSize     int
	OutputSize    int
	ReadTime      time.Duration
	TransformTime time.Duration
	WriteTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TransformHit bool // Whether the merged document came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.InputPath == "" && len(o.Document) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "input path or document is required")
	}
	if o.ScriptPath == "" && len(o.Script) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "script path or script is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
