package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/intergeo/pkg/cache"
	"github.com/matzehuels/intergeo/pkg/dag"
	"github.com/matzehuels/intergeo/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
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

// Execute runs the complete import → render pipeline with caching.
//
// If the import fails on a fatal error, Execute returns the error together
// with a Result holding the diagnostics and the partial construction.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForImport(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{ID: uuid.NewString()}
	logger := r.Logger.With("run", result.ID)

	// Stage 1: Import
	importStart := time.Now()
	im, importHit, err := r.ImportWithCacheInfo(ctx, opts)
	if im != nil {
		result.Construction = im.Construction
		result.Diagnostics = im.Diagnostics
	}
	if err != nil {
		return result, fmt.Errorf("import: %w", err)
	}
	result.Graph = im.Graph
	result.GraphHash = im.GraphHash
	result.Stats.ImportTime = time.Since(importStart)
	result.Stats.NodeCount = im.Graph.NodeCount()
	result.Stats.EdgeCount = im.Graph.EdgeCount()
	result.CacheInfo.ImportHit = importHit

	logger.Info("imported construction",
		"source", opts.Source,
		"elements", im.Graph.NodeCount(),
		"diagnostics", len(im.Diagnostics),
		"cached", importHit,
		"duration", result.Stats.ImportTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, im.Graph, im.GraphHash, opts)
	if err != nil {
		return result, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ImportWithCacheInfo imports the document with caching and returns cache
// hit info. Failed imports are never cached.
func (r *Runner) ImportWithCacheInfo(ctx context.Context, opts Options) (*Imported, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForImport(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.GraphKey(cache.Hash(opts.Document), opts.GraphKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit := r.cacheGet(ctx, "graph", cacheKey); hit {
			if im, err := decodeImported(data); err == nil {
				return im, true, nil
			}
		}
	}

	hooks := observability.Pipeline()
	hooks.OnImportStart(ctx, opts.Source)
	start := time.Now()
	im, err := Import(opts)
	elements := 0
	if im != nil && im.Graph != nil {
		elements = im.Graph.NodeCount()
	}
	diagnostics := 0
	if im != nil {
		diagnostics = len(im.Diagnostics)
	}
	hooks.OnImportComplete(ctx, opts.Source, elements, diagnostics, time.Since(start), err)
	if err != nil {
		return im, false, err
	}

	data, err := im.encode()
	if err != nil {
		return nil, false, fmt.Errorf("serialize graph: %w", err)
	}
	r.cacheSet(ctx, "graph", cacheKey, data, opts.TTL)

	return im, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. graphHash keys the artifacts; it is the GraphHash of the import.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *dag.DAG, graphHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	var missing []string
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		if data, hit := r.cacheGet(ctx, "artifact", cacheKey); hit {
			artifacts[format] = data
		} else {
			missing = append(missing, format)
		}
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	// Render the formats the cache could not serve
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, g, renderOpts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		r.cacheSet(ctx, "artifact", cacheKey, data, opts.TTL)
		artifacts[format] = data
	}

	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cacheGet reads from the cache, retrying transient backend failures.
// Errors are logged and treated as misses.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	var data []byte
	var hit bool
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, hit
}

func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
