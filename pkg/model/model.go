// Package model defines the immutable snapshot types for node groups.
//
// A snapshot is a host-independent capture of one node group: its declared
// interface, its nodes (with per-type properties and per-socket defaults),
// and its links. Snapshots are built once per export run and never mutated
// afterwards; every downstream stage (resolution, ordering, generation)
// reads them only.
package model

// Domain categorizes a node group and decides how generated code attaches
// it to the host: geometry groups bind to an object modifier, shader groups
// to a material.
type Domain string

const (
	DomainGeometry Domain = "geometry"
	DomainShader   Domain = "shader"
)

// TreeType returns the host tree type identifier for the domain.
func (d Domain) TreeType() string {
	if d == DomainShader {
		return "ShaderNodeTree"
	}
	return "GeometryNodeTree"
}

// Valid reports whether the domain is one of the recognized values.
func (d Domain) Valid() bool {
	return d == DomainGeometry || d == DomainShader
}

// DataKind identifies the data carried by a socket or interface entry.
type DataKind string

const (
	KindFloat      DataKind = "float"
	KindInt        DataKind = "int"
	KindBool       DataKind = "bool"
	KindVector     DataKind = "vector"
	KindColor      DataKind = "color"
	KindString     DataKind = "string"
	KindShader     DataKind = "shader"
	KindObject     DataKind = "object"
	KindImage      DataKind = "image"
	KindGeometry   DataKind = "geometry"
	KindCollection DataKind = "collection"
	KindMaterial   DataKind = "material"
	KindRotation   DataKind = "rotation"
	KindMenu       DataKind = "menu"
)

// socketTypes maps each data kind to the host socket type name used when
// declaring interface entries in generated code.
var socketTypes = map[DataKind]string{
	KindFloat:      "NodeSocketFloat",
	KindInt:        "NodeSocketInt",
	KindBool:       "NodeSocketBool",
	KindVector:     "NodeSocketVector",
	KindColor:      "NodeSocketColor",
	KindString:     "NodeSocketString",
	KindShader:     "NodeSocketShader",
	KindObject:     "NodeSocketObject",
	KindImage:      "NodeSocketImage",
	KindGeometry:   "NodeSocketGeometry",
	KindCollection: "NodeSocketCollection",
	KindMaterial:   "NodeSocketMaterial",
	KindRotation:   "NodeSocketRotation",
	KindMenu:       "NodeSocketMenu",
}

// SocketType returns the host socket type name for the kind, or the
// float socket type when the kind is unknown (the host's own fallback).
func (k DataKind) SocketType() string {
	if s, ok := socketTypes[k]; ok {
		return s
	}
	return "NodeSocketFloat"
}

// Valid reports whether the kind is one of the recognized data kinds.
func (k DataKind) Valid() bool {
	_, ok := socketTypes[k]
	return ok
}

// Direction distinguishes input from output sockets and interface entries.
type Direction string

const (
	DirInput  Direction = "INPUT"
	DirOutput Direction = "OUTPUT"
)

// Vec2 is a 2D editor position. Cosmetic only: it affects where nodes land
// in the host editor, never the network's behavior.
type Vec2 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Socket is one input or output slot on a node.
type Socket struct {
	Name string   `json:"name" bson:"name"`
	Kind DataKind `json:"kind" bson:"kind"`

	// Default holds the value used when the socket is unlinked. Nil for
	// sockets without a default (outputs, geometry/shader inputs).
	Default *Value `json:"default,omitempty" bson:"default,omitempty"`

	// Linked mirrors the owning group's link list; [Validate] rejects a
	// snapshot where the flag and the links disagree. An unlinked input
	// must carry a default; a linked input's default is never emitted.
	Linked bool `json:"linked,omitempty" bson:"linked,omitempty"`
}

// Property is a single node-type-specific setting, e.g. a math node's
// operation. Order is preserved so emission is deterministic.
type Property struct {
	Name  string `json:"name" bson:"name"`
	Value Value  `json:"value" bson:"value"`
}

// Node is one node in a group's network.
type Node struct {
	// ID is unique within the owning group and seeds the variable name
	// in generated code.
	ID string `json:"id" bson:"id"`

	// TypeTag is the host node type identifier (e.g. "ShaderNodeMath",
	// "GeometryNodeGroup"). Open-ended: the generator dispatches on it.
	TypeTag string `json:"type" bson:"type"`

	Label    string     `json:"label,omitempty" bson:"label,omitempty"`
	Position Vec2       `json:"position" bson:"position"`
	Width    float64    `json:"width,omitempty" bson:"width,omitempty"`
	Hide     bool       `json:"hide,omitempty" bson:"hide,omitempty"`
	Mute     bool       `json:"mute,omitempty" bson:"mute,omitempty"`
	Props    []Property `json:"props,omitempty" bson:"props,omitempty"`
	Inputs   []Socket   `json:"inputs,omitempty" bson:"inputs,omitempty"`
	Outputs  []Socket   `json:"outputs,omitempty" bson:"outputs,omitempty"`

	// RefGroup names the nested group a group-reference node embeds.
	// Set exactly when IsGroupRef() is true.
	RefGroup string `json:"ref_group,omitempty" bson:"ref_group,omitempty"`
}

// groupRefTags are the node types that embed another group.
var groupRefTags = map[string]bool{
	"GeometryNodeGroup":   true,
	"ShaderNodeGroup":     true,
	"CompositorNodeGroup": true,
	"TextureNodeGroup":    true,
}

// IsGroupRef reports whether the node embeds another node group.
func (n *Node) IsGroupRef() bool { return groupRefTags[n.TypeTag] }

// terminalTags are output-only node types that appear in whole trees
// (a material's surface output, a compositor's composite node) but never
// inside a reusable group.
var terminalTags = map[string]bool{
	"ShaderNodeOutputMaterial": true,
	"ShaderNodeOutputWorld":    true,
	"ShaderNodeOutputLight":    true,
	"CompositorNodeComposite":  true,
}

// IsTerminal reports whether the node is a tree-level output node.
func (n *Node) IsTerminal() bool { return terminalTags[n.TypeTag] }

// Link connects an output socket to an input socket. Socket fields are
// indices into the endpoint node's Outputs/Inputs slices.
type Link struct {
	FromNode   string `json:"from_node" bson:"from_node"`
	FromSocket int    `json:"from_socket" bson:"from_socket"`
	ToNode     string `json:"to_node" bson:"to_node"`
	ToSocket   int    `json:"to_socket" bson:"to_socket"`
}

// InterfaceEntry declares one socket of the group's own signature.
// Slice order is the declared order and must be reproduced exactly.
type InterfaceEntry struct {
	Name      string    `json:"name" bson:"name"`
	Direction Direction `json:"direction" bson:"direction"`
	Kind      DataKind  `json:"kind" bson:"kind"`
	Default   *Value    `json:"default,omitempty" bson:"default,omitempty"`
}

// Group is the full snapshot of one node group.
//
// Name doubles as the registry key and the seed for the generated creation
// routine's name. Nodes keep snapshot order (the host's enumeration order)
// so generated output is stable across exports of an unchanged graph.
type Group struct {
	Name      string           `json:"name" bson:"name"`
	Domain    Domain           `json:"domain" bson:"domain"`
	Interface []InterfaceEntry `json:"interface,omitempty" bson:"interface,omitempty"`
	Nodes     []Node           `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Links     []Link           `json:"links,omitempty" bson:"links,omitempty"`
}

// Node returns the node with the given ID and true, or nil and false.
func (g *Group) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Refs returns the names of groups referenced by this group's nodes, in
// node order, without duplicates. This order is the first-discovery order
// used to keep emission deterministic.
func (g *Group) Refs() []string {
	seen := make(map[string]bool)
	var refs []string
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if !n.IsGroupRef() || n.RefGroup == "" {
			continue
		}
		if !seen[n.RefGroup] {
			seen[n.RefGroup] = true
			refs = append(refs, n.RefGroup)
		}
	}
	return refs
}

// HasTerminal reports whether any node in the group is a tree-level
// output node. A reusable group never contains one; a whole material or
// compositing tree does.
func (g *Group) HasTerminal() bool {
	for i := range g.Nodes {
		if g.Nodes[i].IsTerminal() {
			return true
		}
	}
	return false
}
