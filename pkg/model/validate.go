package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGroupName is returned by [Validate] when a group has no name.
	// The name keys the registry and seeds the generated routine name.
	ErrEmptyGroupName = errors.New("group name must not be empty")

	// ErrInvalidDomain is returned by [Validate] when a group's domain is
	// neither geometry nor shader.
	ErrInvalidDomain = errors.New("invalid group domain")

	// ErrEmptyNodeID is returned by [Validate] when a node has no ID.
	ErrEmptyNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Validate] when two nodes in the
	// same group share an ID. IDs become variable names in generated code,
	// so duplicates would collide.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownLinkEndpoint is returned by [Validate] when a link names a
	// node that does not exist in the group.
	ErrUnknownLinkEndpoint = errors.New("link references unknown node")

	// ErrSocketIndexRange is returned by [Validate] when a link's socket
	// index falls outside the endpoint node's socket list.
	ErrSocketIndexRange = errors.New("link socket index out of range")

	// ErrFanIn is returned by [Validate] when two links target the same
	// input socket. The host never produces this; generated code would
	// silently drop one of the links, so it is rejected up front.
	ErrFanIn = errors.New("multiple links into one input socket")

	// ErrMissingDefault is returned by [Validate] when an unlinked input
	// socket of a value-carrying kind has no default.
	ErrMissingDefault = errors.New("unlinked input socket has no default value")

	// ErrValueShape is returned by [Validate] when a default value's shape
	// does not match its socket's data kind.
	ErrValueShape = errors.New("default value shape does not match data kind")

	// ErrLinkedFlagMismatch is returned by [Validate] when an input
	// socket's linked flag disagrees with the group's link list. The flag
	// mirrors the links; trusting a stale flag would let a socket dodge
	// the default-value checks.
	ErrLinkedFlagMismatch = errors.New("input socket linked flag disagrees with link list")

	// ErrMissingRefGroup is returned by [Validate] when a group-reference
	// node does not name the group it embeds.
	ErrMissingRefGroup = errors.New("group-reference node has no referenced group")

	// ErrUnexpectedRefGroup is returned by [Validate] when a non-reference
	// node names a referenced group.
	ErrUnexpectedRefGroup = errors.New("non-reference node has a referenced group")
)

// flowKinds carry connections only and never hold a default value.
func flowKind(k DataKind) bool {
	return k == KindShader || k == KindGeometry
}

// Validate checks the structural invariants a snapshot must satisfy
// before resolution or generation:
//
//  1. The group has a name and a recognized domain.
//  2. Node IDs are non-empty and unique within the group.
//  3. Every link endpoint resolves to an existing node and socket index.
//  4. Each input socket receives at most one link (fan-in = 1).
//  5. Each input socket's linked flag agrees with the link list.
//  6. Unlinked inputs of value-carrying kinds have a default whose shape
//     matches the socket's data kind.
//  7. Group-reference nodes name a referenced group; other nodes don't.
//
// The first violation found is returned, wrapped with the offending
// group, node, or link for diagnostics.
func Validate(g *Group) error {
	if g.Name == "" {
		return ErrEmptyGroupName
	}
	if !g.Domain.Valid() {
		return fmt.Errorf("group %q: %w: %q", g.Name, ErrInvalidDomain, g.Domain)
	}

	ids := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.ID == "" {
			return fmt.Errorf("group %q: %w", g.Name, ErrEmptyNodeID)
		}
		if ids[n.ID] {
			return fmt.Errorf("group %q: %w: %q", g.Name, ErrDuplicateNodeID, n.ID)
		}
		ids[n.ID] = true

		if n.IsGroupRef() && n.RefGroup == "" {
			return fmt.Errorf("group %q node %q: %w", g.Name, n.ID, ErrMissingRefGroup)
		}
		if !n.IsGroupRef() && n.RefGroup != "" {
			return fmt.Errorf("group %q node %q: %w: %q", g.Name, n.ID, ErrUnexpectedRefGroup, n.RefGroup)
		}
	}

	// Link endpoints and the fan-in constraint.
	taken := make(map[[2]any]bool, len(g.Links))
	for li, l := range g.Links {
		from, ok := g.Node(l.FromNode)
		if !ok {
			return fmt.Errorf("group %q link %d: %w: %q", g.Name, li, ErrUnknownLinkEndpoint, l.FromNode)
		}
		to, ok := g.Node(l.ToNode)
		if !ok {
			return fmt.Errorf("group %q link %d: %w: %q", g.Name, li, ErrUnknownLinkEndpoint, l.ToNode)
		}
		if l.FromSocket < 0 || l.FromSocket >= len(from.Outputs) {
			return fmt.Errorf("group %q link %d: %w: output %d of %q", g.Name, li, ErrSocketIndexRange, l.FromSocket, l.FromNode)
		}
		if l.ToSocket < 0 || l.ToSocket >= len(to.Inputs) {
			return fmt.Errorf("group %q link %d: %w: input %d of %q", g.Name, li, ErrSocketIndexRange, l.ToSocket, l.ToNode)
		}
		key := [2]any{l.ToNode, l.ToSocket}
		if taken[key] {
			return fmt.Errorf("group %q link %d: %w: input %d of %q", g.Name, li, ErrFanIn, l.ToSocket, l.ToNode)
		}
		taken[key] = true
	}

	// Input defaults. Linked state is derived from the link list, never
	// read off the socket, so a stale flag cannot skip the default checks.
	for i := range g.Nodes {
		n := &g.Nodes[i]
		for si := range n.Inputs {
			s := &n.Inputs[si]
			linked := taken[[2]any{n.ID, si}]
			if s.Linked != linked {
				return fmt.Errorf("group %q node %q input %q: %w", g.Name, n.ID, s.Name, ErrLinkedFlagMismatch)
			}
			if linked || flowKind(s.Kind) {
				continue
			}
			if s.Default == nil {
				return fmt.Errorf("group %q node %q input %q: %w", g.Name, n.ID, s.Name, ErrMissingDefault)
			}
			if !s.Default.Matches(s.Kind) {
				return fmt.Errorf("group %q node %q input %q: %w: %s vs %s",
					g.Name, n.ID, s.Name, ErrValueShape, s.Default, s.Kind)
			}
		}
	}

	return nil
}
