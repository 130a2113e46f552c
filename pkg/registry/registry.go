// Package registry abstracts the source of group snapshots: the host's
// datablock registry at export time. The engine only ever reads through
// this boundary.
package registry

import (
	"context"
	"errors"

	"github.com/groupgen/groupgen/pkg/model"
)

// ErrGroupNotFound is returned by [Registry.Lookup] when no group with
// the requested name exists. Resolution wraps it into a missing-reference
// failure that aborts the export.
var ErrGroupNotFound = errors.New("group not found")

// Registry resolves group names to snapshots.
//
// Implementations must be read-only from the engine's point of view and
// must return ErrGroupNotFound (possibly wrapped) for unknown names.
type Registry interface {
	// Lookup returns the snapshot for name.
	Lookup(ctx context.Context, name string) (*model.Group, error)

	// Names enumerates all group names known to the registry, in a
	// deterministic order.
	Names(ctx context.Context) ([]string, error)
}

// Storer is implemented by registries that accept uploads. The server's
// upload endpoint feeds it; the export engine never writes.
type Storer interface {
	// Store validates g and inserts or replaces it under its name.
	Store(ctx context.Context, g *model.Group) error
}
