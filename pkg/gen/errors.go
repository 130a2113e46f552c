package gen

import "fmt"

// UnsupportedNodeTypeError reports a node whose type cannot be
// reconstructed from a flat property list. Some host node types carry
// structured state (a color ramp's element list, a curve widget's points)
// that the snapshot model has no shape for; emitting the node without it
// would silently produce a different graph, so generation aborts instead.
type UnsupportedNodeTypeError struct {
	Group   string // group containing the node
	Node    string // node ID
	TypeTag string // host node type identifier
}

func (e *UnsupportedNodeTypeError) Error() string {
	return fmt.Sprintf("node %q in group %q has type %q which requires structured state that cannot be emitted", e.Node, e.Group, e.TypeTag)
}

// UnsupportedPropertyError reports a property or default value with no
// rendering rule. Generation aborts rather than emit an untyped or
// guessed literal.
type UnsupportedPropertyError struct {
	Group    string
	Node     string
	Property string // property or socket name
	Reason   string
}

func (e *UnsupportedPropertyError) Error() string {
	return fmt.Sprintf("property %q on node %q in group %q cannot be rendered: %s", e.Property, e.Node, e.Group, e.Reason)
}
