// Package depgraph holds the derived dependency graph over group
// snapshots: one vertex per group, one edge A → B for every group A whose
// nodes embed group B. The graph exists to be linearized (dependencies
// first) and to reject cycles before any code is generated.
package depgraph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidName is returned by [Graph.AddNode] when the group name
	// is empty.
	ErrInvalidName = errors.New("group name must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when the group has
	// already been added.
	ErrDuplicateNode = errors.New("duplicate group")

	// ErrUnknownSource is returned by [Graph.AddEdge] when the referencing
	// group is not in the graph.
	ErrUnknownSource = errors.New("unknown source group")

	// ErrUnknownTarget is returned by [Graph.AddEdge] when the referenced
	// group is not in the graph.
	ErrUnknownTarget = errors.New("unknown target group")
)

// Edge is one reference relation: From embeds To.
type Edge struct {
	From string
	To   string
}

// Graph is a directed graph over group names. Insertion order of nodes
// and of each node's outgoing edges is preserved: that order is the
// deterministic tie-break for emission ordering.
//
// The zero value is not usable; call New. Not safe for concurrent use.
type Graph struct {
	order    []string
	present  map[string]bool
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty dependency graph.
func New() *Graph {
	return &Graph{
		present:  make(map[string]bool),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode registers a group. Returns ErrInvalidName for an empty name or
// ErrDuplicateNode if the group was already added.
func (g *Graph) AddNode(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	if g.present[name] {
		return ErrDuplicateNode
	}
	g.present[name] = true
	g.order = append(g.order, name)
	return nil
}

// Has reports whether the group is in the graph.
func (g *Graph) Has(name string) bool { return g.present[name] }

// AddEdge records that from references to. Both endpoints must already
// be registered. Duplicate edges are collapsed: a group that embeds the
// same dependency twice still depends on it once.
func (g *Graph) AddEdge(from, to string) error {
	if !g.present[from] {
		return ErrUnknownSource
	}
	if !g.present[to] {
		return ErrUnknownTarget
	}
	if slices.Contains(g.outgoing[from], to) {
		return nil
	}
	g.edges = append(g.edges, Edge{From: from, To: to})
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return nil
}

// Nodes returns group names in insertion (first-discovery) order.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Children returns the groups that name directly references, in
// first-discovery order. Read-only view.
func (g *Graph) Children(name string) []string { return g.outgoing[name] }

// Parents returns the groups that directly reference name. Read-only view.
func (g *Graph) Parents(name string) []string { return g.incoming[name] }

// NodeCount returns the number of groups in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of distinct reference edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// FindCycle returns the members of one dependency cycle in reference
// order, or nil if the graph is acyclic. Detection is depth-first search
// with white/gray/black coloring; a back edge into a gray vertex closes
// a cycle, and the gray stack from that vertex onward is the membership.
func (g *Graph) FindCycle() []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.order))
	var stack []string
	var cycle []string

	var dfs func(name string) bool
	dfs = func(name string) bool {
		color[name] = gray
		stack = append(stack, name)
		for _, child := range g.outgoing[name] {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				// Slice the gray stack from the repeated vertex onward.
				start := slices.Index(stack, child)
				cycle = slices.Clone(stack[start:])
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[name] = black
		return false
	}

	for _, name := range g.order {
		if color[name] == white {
			if dfs(name) {
				return cycle
			}
		}
	}
	return nil
}

// TopoOrder returns all groups ordered so that every group appears
// strictly after every group it references (dependencies first). Ties are
// broken by first-discovery order: roots are visited in insertion order
// and each node's references in their recorded order, with dependencies
// appended in depth-first postorder.
//
// Returns nil if the graph contains a cycle; call [Graph.FindCycle]
// first to produce a diagnostic.
func (g *Graph) TopoOrder() []string {
	if g.FindCycle() != nil {
		return nil
	}

	visited := make(map[string]bool, len(g.order))
	var out []string

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, child := range g.outgoing[name] {
			visit(child)
		}
		out = append(out, name)
	}

	for _, name := range g.order {
		visit(name)
	}
	return out
}
