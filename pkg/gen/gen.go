// Package gen renders group snapshots into Python source that rebuilds
// the same networks inside the host.
//
// Output is organized in units, one creation routine per group. Each
// routine is idempotent: it returns the existing definition when the
// group is already present and only builds it otherwise, so the emitted
// script can run repeatedly in one session without duplicating data.
// Rendering is pure text assembly with no host side effects, and emission
// order follows snapshot order everywhere, so an unchanged closure always
// yields byte-identical output.
package gen

import (
	"bytes"
	"fmt"

	"github.com/groupgen/groupgen/pkg/model"
)

// structuredTypes are node types whose reconstruction needs widget state
// (ramp elements, curve points) that a flat property list cannot carry.
// Units containing one abort with UnsupportedNodeTypeError.
var structuredTypes = map[string]bool{
	"ShaderNodeValToRGB":     true,
	"ShaderNodeFloatCurve":   true,
	"ShaderNodeVectorCurve":  true,
	"ShaderNodeRGBCurve":     true,
	"CompositorNodeCurveRGB": true,
}

// Generator renders creation units for one export run. It tracks routine
// names (for cross-unit collision suffixes) and which groups have had a
// unit emitted, so reference nodes know whether a dependency routine is
// available to call. Not safe for concurrent use; create one per run.
type Generator struct {
	names   *names
	defined map[string]bool
}

// New creates a generator for a single run.
func New() *Generator {
	return &Generator{
		names:   newNames(),
		defined: make(map[string]bool),
	}
}

// RoutineName returns the Python function name the group's creation
// routine has (or will have) in this run.
func (g *Generator) RoutineName(group string) string {
	return g.names.routine(group)
}

// Unit renders one group's creation routine. Groups must be passed in
// dependency order: a reference node resolves to a routine call only when
// the referenced group's unit was already rendered by this generator, and
// falls back to a guarded registry lookup otherwise (the nested-disabled
// path).
func (g *Generator) Unit(grp *model.Group) (string, error) {
	var buf bytes.Buffer

	fn := g.names.routine(grp.Name)
	fmt.Fprintf(&buf, "def %s():\n", fn)
	fmt.Fprintf(&buf, "    \"\"\"Create the %s node group.\"\"\"\n", grp.Name)
	buf.WriteString("\n")
	buf.WriteString("    # Check if node group already exists\n")
	fmt.Fprintf(&buf, "    if %s in bpy.data.node_groups:\n", pyString(grp.Name))
	fmt.Fprintf(&buf, "        return bpy.data.node_groups[%s]\n", pyString(grp.Name))
	buf.WriteString("\n")
	buf.WriteString("    # Create new node group\n")
	fmt.Fprintf(&buf, "    node_group = bpy.data.node_groups.new(name=%s, type='%s')\n",
		pyString(grp.Name), grp.Domain.TreeType())
	buf.WriteString("\n")

	if len(grp.Interface) > 0 {
		if err := g.writeInterface(&buf, grp); err != nil {
			return "", err
		}
	}

	vars, err := g.writeNodes(&buf, grp)
	if err != nil {
		return "", err
	}

	g.writeLinks(&buf, grp, vars)

	buf.WriteString("\n")
	buf.WriteString("    return node_group\n")

	g.defined[grp.Name] = true
	return buf.String(), nil
}

// writeInterface declares the group's own sockets in declared order.
func (g *Generator) writeInterface(buf *bytes.Buffer, grp *model.Group) error {
	buf.WriteString("    # Create group interface (sockets)\n")
	for _, item := range grp.Interface {
		fmt.Fprintf(buf, "    socket = node_group.interface.new_socket(name=%s, in_out='%s', socket_type='%s')\n",
			pyString(item.Name), item.Direction, item.Kind.SocketType())
		if item.Default != nil {
			lit, err := Literal(*item.Default)
			if err != nil {
				return &UnsupportedPropertyError{
					Group:    grp.Name,
					Node:     "interface",
					Property: item.Name,
					Reason:   err.Error(),
				}
			}
			fmt.Fprintf(buf, "    socket.default_value = %s\n", lit)
		}
	}
	buf.WriteString("\n")
	return nil
}

// writeNodes emits every node in snapshot order and returns the variable
// name assigned to each node ID.
func (g *Generator) writeNodes(buf *bytes.Buffer, grp *model.Group) (map[string]string, error) {
	buf.WriteString("    # Create nodes\n")
	vars := make(map[string]string, len(grp.Nodes))

	for i := range grp.Nodes {
		n := &grp.Nodes[i]
		if structuredTypes[n.TypeTag] {
			return nil, &UnsupportedNodeTypeError{Group: grp.Name, Node: n.ID, TypeTag: n.TypeTag}
		}

		varName := fmt.Sprintf("node_%d_%s", i, SanitizeName(n.ID))
		vars[n.ID] = varName

		fmt.Fprintf(buf, "    # Node: %s\n", n.ID)
		fmt.Fprintf(buf, "    %s = node_group.nodes.new(type='%s')\n", varName, n.TypeTag)
		fmt.Fprintf(buf, "    %s.name = %s\n", varName, pyString(n.ID))
		fmt.Fprintf(buf, "    %s.label = %s\n", varName, pyString(n.Label))
		fmt.Fprintf(buf, "    %s.location = (%.1f, %.1f)\n", varName, n.Position.X, n.Position.Y)
		if n.Width != 0 {
			fmt.Fprintf(buf, "    %s.width = %.1f\n", varName, n.Width)
		}
		if n.Hide {
			fmt.Fprintf(buf, "    %s.hide = True\n", varName)
		}
		if n.Mute {
			fmt.Fprintf(buf, "    %s.mute = True\n", varName)
		}

		for _, p := range n.Props {
			lit, err := Literal(p.Value)
			if err != nil {
				return nil, &UnsupportedPropertyError{
					Group:    grp.Name,
					Node:     n.ID,
					Property: p.Name,
					Reason:   err.Error(),
				}
			}
			fmt.Fprintf(buf, "    %s.%s = %s\n", varName, p.Name, lit)
		}

		if n.IsGroupRef() {
			g.writeGroupRef(buf, varName, n.RefGroup)
		}

		if err := g.writeInputDefaults(buf, grp, n, varName); err != nil {
			return nil, err
		}

		buf.WriteString("\n")
	}
	return vars, nil
}

// writeGroupRef binds a reference node to its nested group. When the
// dependency's routine is part of this run its result is assigned
// directly; otherwise the script looks the group up by name at run time
// and warns when it is absent.
func (g *Generator) writeGroupRef(buf *bytes.Buffer, varName, ref string) {
	fmt.Fprintf(buf, "    # Nested node group: %s\n", ref)
	if g.defined[ref] {
		fmt.Fprintf(buf, "    %s.node_tree = %s()\n", varName, g.names.routine(ref))
		return
	}
	fmt.Fprintf(buf, "    if %s in bpy.data.node_groups:\n", pyString(ref))
	fmt.Fprintf(buf, "        %s.node_tree = bpy.data.node_groups[%s]\n", varName, pyString(ref))
	buf.WriteString("    else:\n")
	fmt.Fprintf(buf, "        print(%s)\n",
		pyString(fmt.Sprintf("Warning: Node group %q not found. Please create it first.", ref)))
}

// writeInputDefaults sets defaults on unlinked inputs. Assignment is
// guarded so a host whose socket layout drifted from the snapshot skips
// the value instead of failing the whole script.
func (g *Generator) writeInputDefaults(buf *bytes.Buffer, grp *model.Group, n *model.Node, varName string) error {
	for j := range n.Inputs {
		s := &n.Inputs[j]
		if s.Linked || s.Default == nil {
			continue
		}
		lit, err := Literal(*s.Default)
		if err != nil {
			return &UnsupportedPropertyError{
				Group:    grp.Name,
				Node:     n.ID,
				Property: s.Name,
				Reason:   err.Error(),
			}
		}
		fmt.Fprintf(buf, "    if len(%s.inputs) > %d and hasattr(%s.inputs[%d], \"default_value\"):\n",
			varName, j, varName, j)
		buf.WriteString("        try:\n")
		fmt.Fprintf(buf, "            %s.inputs[%d].default_value = %s\n", varName, j, lit)
		buf.WriteString("        except:\n")
		buf.WriteString("            pass\n")
	}
	return nil
}

// writeLinks wires sockets by index, in snapshot link order.
func (g *Generator) writeLinks(buf *bytes.Buffer, grp *model.Group, vars map[string]string) {
	buf.WriteString("    # Create links\n")
	for _, l := range grp.Links {
		fmt.Fprintf(buf, "    node_group.links.new(%s.outputs[%d], %s.inputs[%d])\n",
			vars[l.FromNode], l.FromSocket, vars[l.ToNode], l.ToSocket)
	}
}

// Program assembles the complete script: import header, dependency units
// in the given order, the root unit last, attachment helpers, and the
// main execution block. ordered must end with root and contain every
// group exactly once.
func (g *Generator) Program(ordered []*model.Group, root *model.Group, autoAssign bool) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("import bpy\n")
	buf.WriteString("\n\n")

	deps := ordered[:len(ordered)-1]
	if len(deps) > 0 {
		buf.WriteString("# === Nested Node Groups (Dependencies) ===\n")
		buf.WriteString("\n")
		for _, dep := range deps {
			unit, err := g.Unit(dep)
			if err != nil {
				return "", err
			}
			buf.WriteString(unit)
			buf.WriteString("\n\n")
		}
		buf.WriteString("# === Main Node Group ===\n")
		buf.WriteString("\n")
	}

	unit, err := g.Unit(root)
	if err != nil {
		return "", err
	}
	buf.WriteString(unit)
	buf.WriteString("\n\n")

	if autoAssign {
		g.writeAttachHelper(&buf, root.Domain)
	}

	if len(deps) > 0 {
		buf.WriteString("# Create nested node groups first\n")
		for _, dep := range deps {
			base := g.names.base(dep.Name)
			fmt.Fprintf(&buf, "%s_group = %s()\n", base, g.names.routine(dep.Name))
			fmt.Fprintf(&buf, "print(%s)\n", pyString("Created nested node group: "+dep.Name))
		}
		buf.WriteString("\n")
	}

	buf.WriteString("# Create the main node group\n")
	fmt.Fprintf(&buf, "node_group = %s()\n", g.names.routine(root.Name))
	fmt.Fprintf(&buf, "print(%s)\n",
		pyString(fmt.Sprintf("Node group %q created successfully!", root.Name)))

	if autoAssign {
		g.writeAttachCall(&buf, root.Domain)
	}

	return buf.String(), nil
}
