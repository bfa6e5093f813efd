package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/xmlmerge/pkg/cache"
	pkgio "github.com/matzehuels/xmlmerge/pkg/io"
	"github.com/matzehuels/xmlmerge/pkg/observability"
	"github.com/matzehuels/xmlmerge/pkg/script"
	"github.com/matzehuels/xmlmerge/pkg/xmlmerge"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete read → script → transform → write pipeline.
// Nothing is written unless every earlier stage succeeded.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Read
	readStart := time.Now()
	doc, err := r.readDocument(opts)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	result.DocumentHash = cache.Hash(doc)
	result.Stats.InputSize = len(doc)
	result.Stats.ReadTime = time.Since(readStart)

	// Stage 2: Script
	raw, s, err := r.loadScript(opts)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	result.ScriptHash = cache.Hash(raw)
	result.Stats.Actions = len(s.Steps)

	r.Logger.Debug("loaded inputs",
		"bytes", len(doc),
		"actions", len(s.Steps),
		"duration", result.Stats.ReadTime)

	// Stage 3: Transform
	transformStart := time.Now()
	out, hit, err := r.TransformWithCacheInfo(ctx, doc, s, result.DocumentHash, result.ScriptHash, opts)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	result.Document = out
	result.Stats.OutputSize = len(out)
	result.Stats.TransformTime = time.Since(transformStart)
	result.CacheInfo.TransformHit = hit

	r.Logger.Info("merged document",
		"actions", len(s.Steps),
		"bytes", len(out),
		"cached", hit,
		"duration", result.Stats.TransformTime)

	// Stage 4: Write
	if opts.OutputPath != "" {
		writeStart := time.Now()
		if err := pkgio.WriteDocument(opts.OutputPath, out); err != nil {
			return nil, fmt.Errorf("write: %w", err)
		}
		result.Stats.WriteTime = time.Since(writeStart)
		r.Logger.Debug("wrote output", "path", opts.OutputPath, "duration", result.Stats.WriteTime)
	}

	return result, nil
}

// TransformWithCacheInfo applies s to doc, serving the result from cache
// when possible, and reports whether it was a cache hit. The hashes identify
// doc and the raw script in the cache key.
func (r *Runner) TransformWithCacheInfo(ctx context.Context, doc []byte, s *script.Script, docHash, scriptHash string, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)

	indent, decl, sorted := s.Settings()
	cacheKey := r.Keyer.MergeKey(docHash, scriptHash, cache.MergeKeyOpts{
		Indent:         indent,
		Declaration:    decl,
		SortAttributes: sorted,
	})
	hooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err != nil {
			r.Logger.Warn("cache lookup failed", "error", err)
		} else if hit {
			hooks.OnCacheHit(ctx, cacheKey)
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, cacheKey)
	}

	out, err := s.Transformer(xmlmerge.WithLogger(opts.Logger)).Transform(doc)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, out, cache.TTLMerge); err != nil {
		r.Logger.Warn("cache store failed", "error", err)
	} else {
		hooks.OnCacheSet(ctx, cacheKey, len(out))
	}
	return out, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) readDocument(opts Options) ([]byte, error) {
	if len(opts.Document) > 0 {
		return opts.Document, nil
	}
	return pkgio.ReadDocument(opts.InputPath)
}

func (r *Runner) loadScript(opts Options) ([]byte, *script.Script, error) {
	raw := opts.Script
	if len(raw) == 0 {
		var err error
		if raw, err = script.ReadSource(opts.ScriptPath); err != nil {
			return nil, nil, err
		}
	}
	s, err := script.Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	return raw, s, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
