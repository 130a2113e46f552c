// Package pkg provides the core libraries for groupgen code generation.
//
// # Overview
//
// Groupgen converts node-group graph snapshots into idempotent Python
// scripts that rebuild the graphs inside a Blender-style host. The pkg
// directory is organized into three main areas:
//
//  1. Model and resolution ([model], [depgraph], [registry], [resolve])
//  2. Generation ([gen], [render])
//  3. Orchestration and infrastructure ([export], [cache], [errors])
//
// # Architecture
//
// The typical data flow through groupgen:
//
//	Library file / MongoDB registry
//	         ↓
//	    [resolve] package (dependency closure + emission order)
//	         ↓
//	    [gen] package (Python routine per group, attachment helper)
//	         ↓
//	    [export] package (caching, run metadata)
//	         ↓
//	    .py script on stdout, disk, or the HTTP API
//
// # Quick Start
//
// Export a group from a library file:
//
//	lib, _ := model.ReadLibraryFile("library.json")
//	runner := export.NewRunner(cache.NewNullCache(), nil, nil)
//
//	opts := export.DefaultOptions()
//	opts.Group = "Scatter"
//	result, _ := runner.Execute(ctx, registry.NewMemory(lib), opts)
//	fmt.Print(result.Code)
//
// # Main Packages
//
// [model] - Snapshot data model: groups, nodes, sockets, links, tagged
// property values, and structural validation. Includes the JSON library
// file format.
//
// [depgraph] - Directed graph over group names with cycle detection and
// deterministic topological ordering.
//
// [registry] - Group lookup boundary with in-memory (CLI) and MongoDB
// (server) backends.
//
// [resolve] - Builds the dependency closure of a root group and orders
// it dependencies-first for emission.
//
// [gen] - Renders one Python routine per group plus the context
// attachment helper for the root group's domain.
//
// [render] - DOT emission and Graphviz SVG rendering of dependency
// graphs.
//
// [export] - The orchestrator Runner shared by CLI and API: options,
// content-addressed caching, and run statistics.
//
// [cache] - Cache and Keyer interfaces with file, redis, and null
// backends.
//
// [errors] - Coded errors for the CLI/API surface and the classifier
// that maps engine errors onto them.
//
// [model]: https://pkg.go.dev/github.com/groupgen/groupgen/pkg/model
// [depgraph]: https://pkg.go.dev/github.com/groupgen/groupgen/pkg/depgraph
// [registry]: https://pkg.go.dev/github.com/groupgen/groupgen/pkg/registry
// [resolve]: https://pkg.go.dev/github.com/groupgen/groupgen/pkg/resolve
// [gen]: https://pkg.go.dev/github.com/groupgen/groupgen/pkg/gen
// [render]: https://pkg.go.dev/github.com/groupgen/groupgen/pkg/render
// [export]: https://pkg.go.dev/github.com/groupgen/groupgen/pkg/export
// [cache]: https://pkg.go.dev/github.com/groupgen/groupgen/pkg/cache
// [errors]: https://pkg.go.dev/github.com/groupgen/groupgen/pkg/errors
package pkg
