// Package resolve discovers the dependency closure of a root group and
// computes a safe emission order.
//
// Discovery walks group-reference nodes breadth-first from the root,
// resolving referents through the registry and snapshotting each distinct
// group exactly once. The recorded first-discovery order is the
// deterministic tie-break for ordering, so repeated exports of an
// unchanged graph produce identical output.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/groupgen/groupgen/pkg/depgraph"
	"github.com/groupgen/groupgen/pkg/model"
	"github.com/groupgen/groupgen/pkg/registry"
)

// MissingReferenceError reports a group-reference node whose referent
// could not be resolved in the registry. The export aborts; no partial
// text is produced.
type MissingReferenceError struct {
	Group string // group containing the dangling reference
	Ref   string // name that failed to resolve
	Err   error  // underlying registry error
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("group %q references %q which cannot be resolved: %v", e.Group, e.Ref, e.Err)
}

func (e *MissingReferenceError) Unwrap() error { return e.Err }

// CycleError reports a reference cycle between groups. Cycles are a
// malformed-input condition: the host cannot evaluate them either, but a
// registry assembled by hand can contain one, and emitting code for it
// would recurse forever.
type CycleError struct {
	Members []string // cycle membership in reference order
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle between groups: %s", strings.Join(e.Members, " -> "))
}

// Closure is the full set of snapshots one export run operates on. It is
// owned by that run and discarded with it.
type Closure struct {
	// Root is the group the export was requested for.
	Root *model.Group

	// Discovery lists group names in first-discovery order, root first.
	Discovery []string

	// Graph is the derived dependency graph over the closure.
	Graph *depgraph.Graph

	groups map[string]*model.Group
}

// Group returns the snapshot with the given name and true, or nil and
// false if it is not part of the closure.
func (c *Closure) Group(name string) (*model.Group, bool) {
	g, ok := c.groups[name]
	return g, ok
}

// NestedCount returns the number of groups in the closure besides the
// root.
func (c *Closure) NestedCount() int { return len(c.Discovery) - 1 }

// Build snapshots the root group and, when includeNested is set, every
// distinct group reachable through group-reference nodes. Each group is
// validated as it enters the closure. The registry is only read.
//
// With includeNested false the closure contains the root alone and
// references are left unresolved; the generator then falls back to
// lookup-by-name for reference nodes instead of calling dependency
// routines.
func Build(ctx context.Context, reg registry.Registry, rootName string, includeNested bool) (*Closure, error) {
	root, err := reg.Lookup(ctx, rootName)
	if err != nil {
		return nil, &MissingReferenceError{Group: rootName, Ref: rootName, Err: err}
	}
	if err := model.Validate(root); err != nil {
		return nil, err
	}

	c := &Closure{
		Root:   root,
		Graph:  depgraph.New(),
		groups: map[string]*model.Group{rootName: root},
	}
	c.Discovery = []string{rootName}
	if err := c.Graph.AddNode(rootName); err != nil {
		return nil, err
	}

	if !includeNested {
		return c, nil
	}

	// Breadth-first over groups; each group's references in node order.
	queue := []string{rootName}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		g := c.groups[name]

		for _, ref := range g.Refs() {
			if _, seen := c.groups[ref]; !seen {
				dep, err := reg.Lookup(ctx, ref)
				if err != nil {
					return nil, &MissingReferenceError{Group: name, Ref: ref, Err: err}
				}
				if err := model.Validate(dep); err != nil {
					return nil, err
				}
				c.groups[ref] = dep
				c.Discovery = append(c.Discovery, ref)
				if err := c.Graph.AddNode(ref); err != nil {
					return nil, err
				}
				queue = append(queue, ref)
			}
			if err := c.Graph.AddEdge(name, ref); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

// Order linearizes the closure so that every group appears strictly
// after all groups it references: dependencies first, root last. Returns
// a CycleError when the dependency graph is cyclic; in that case no
// order (and no output) is produced.
func (c *Closure) Order() ([]*model.Group, error) {
	if members := c.Graph.FindCycle(); members != nil {
		return nil, &CycleError{Members: members}
	}
	names := c.Graph.TopoOrder()
	out := make([]*model.Group, len(names))
	for i, name := range names {
		out[i] = c.groups[name]
	}
	return out, nil
}
