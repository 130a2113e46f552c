package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/groupgen/groupgen/pkg/cache"
	"github.com/groupgen/groupgen/pkg/gen"
	"github.com/groupgen/groupgen/pkg/registry"
	"github.com/groupgen/groupgen/pkg/resolve"
)

// Runner encapsulates export execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely share one Runner
// with different options; each run gets its own generator.
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

// Execute runs the complete resolve → order → generate pipeline with
// caching. Failures abort with no partial text.
func (r *Runner) Execute(ctx context.Context, reg registry.Registry, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID: uuid.NewString(),
		Root:  opts.Group,
	}

	// Stage 1: Resolve
	resolveStart := time.Now()
	closure, err := resolve.Build(ctx, reg, opts.Group, opts.IncludeNested)
	if err != nil {
		return nil, err
	}
	ordered, err := closure.Order()
	if err != nil {
		return nil, err
	}
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.NestedGroupCount = closure.NestedCount()
	result.WholeTreeWarning = closure.Root.HasTerminal() && len(closure.Root.Interface) == 0

	for _, g := range ordered {
		result.Stats.GroupCount++
		result.Stats.NodeCount += len(g.Nodes)
		result.Stats.LinkCount += len(g.Links)
	}

	// The ordered closure fully determines the output, so its hash plus
	// the emission options addresses the cache.
	closureData, err := json.Marshal(ordered)
	if err != nil {
		return nil, fmt.Errorf("serialize closure for cache key: %w", err)
	}
	result.ClosureHash = cache.Hash(closureData)

	r.Logger.Info("resolved closure",
		"root", opts.Group,
		"groups", result.Stats.GroupCount,
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.ResolveTime)

	cacheKey := r.Keyer.ExportKey(result.ClosureHash, cache.ExportKeyOpts{
		IncludeNested: opts.IncludeNested,
		AutoAssign:    opts.AutoAssign,
	})

	// Stage 2: Generate (cache first unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			result.Code = string(data)
			result.CacheInfo.CodeHit = true
			r.Logger.Info("generated code from cache", "run_id", result.RunID)
			return result, nil
		}
	}

	genStart := time.Now()
	code, err := gen.New().Program(ordered, closure.Root, opts.AutoAssign)
	if err != nil {
		return nil, err
	}
	result.Code = code
	result.Stats.GenerateTime = time.Since(genStart)

	_ = r.Cache.Set(ctx, cacheKey, []byte(code), cache.TTLExport)

	r.Logger.Info("generated code",
		"run_id", result.RunID,
		"bytes", len(code),
		"duration", result.Stats.GenerateTime)

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
