// Package export provides the full snapshot → closure → order → generate
// pipeline behind both the CLI and the HTTP API. Centralizing it in a
// Runner keeps caching and metadata handling identical across entry
// points.
//
// # Usage
//
// Create a Runner and execute an export:
//
//	runner := export.NewRunner(cache, nil, logger)
//	opts := export.DefaultOptions()
//	opts.Group = "Scatter"
//	result, err := runner.Execute(ctx, reg, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Code)
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Options contains all configuration for one export run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Group is the name of the root group to export.
	Group string `json:"group"`

	// IncludeNested exports every group reachable through reference
	// nodes as a dependency routine. When false only the root is
	// emitted and reference nodes fall back to lookup by name.
	IncludeNested bool `json:"include_nested"`

	// AutoAssign appends the context-attachment helper and call for the
	// root group's domain.
	AutoAssign bool `json:"auto_assign"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// DefaultOptions returns options with the standard defaults: nested
// groups included, attachment code emitted.
func DefaultOptions() Options {
	return Options{
		IncludeNested: true,
		AutoAssign:    true,
	}
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Group == "" {
		return fmt.Errorf("group is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of one export run.
type Result struct {
	// Code is the complete generated Python script.
	Code string

	// RunID identifies this run in logs and API responses.
	RunID string

	// Root is the exported root group's name.
	Root string

	// ClosureHash is the content hash of the ordered closure.
	ClosureHash string

	// NestedGroupCount is the number of dependency groups emitted
	// before the root.
	NestedGroupCount int

	// WholeTreeWarning is set when the root looks like a whole
	// material or scene tree rather than a reusable group: it contains
	// a terminal output node and declares no interface.
	WholeTreeWarning bool

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the code came from cache.
	CacheInfo CacheInfo
}

// Stats contains export execution statistics.
type Stats struct {
	GroupCount   int
	NodeCount    int
	LinkCount    int
	ResolveTime  time.Duration
	GenerateTime time.Duration
}

// CacheInfo tracks cache hits for the run.
type CacheInfo struct {
	CodeHit bool // Whether the generated code came from cache
}
