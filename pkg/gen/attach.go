package gen

import (
	"bytes"

	"github.com/groupgen/groupgen/pkg/model"
)

// Attachment code binds the created root group to a host context. The
// helper is selected by the root group's domain alone: geometry groups
// attach to an object through a nodes modifier, shader groups to a
// material as a single group node. Both helpers are re-run safe in the
// same way the creation routines are.

const attachObjectHelper = `def assign_to_object(node_group, obj=None, create_if_none=True):
    """Assign the geometry node group to an object."""

    # If no object provided, try to use active object or create new one
    if obj is None:
        obj = bpy.context.active_object

    if obj is None and create_if_none:
        # Create a new mesh object
        mesh = bpy.data.meshes.new(node_group.name + "_mesh")
        obj = bpy.data.objects.new(node_group.name + "_object", mesh)
        bpy.context.collection.objects.link(obj)
        bpy.context.view_layer.objects.active = obj
        obj.select_set(True)

    if obj is None:
        print("No object available to assign the node group to.")
        return None

    # Reuse an existing Geometry Nodes modifier bound to this group
    for mod in obj.modifiers:
        if mod.type == "NODES" and mod.node_group == node_group:
            print(f"Object '{obj.name}' already has this node group assigned.")
            return mod

    # Add new Geometry Nodes modifier
    mod = obj.modifiers.new(name=node_group.name, type="NODES")
    mod.node_group = node_group

    print(f"Assigned '{node_group.name}' to object '{obj.name}'")
    return mod
`

const attachMaterialHelper = `def assign_to_material(node_group, mat=None, create_if_none=True):
    """Assign the shader node group to a material."""

    # If no material provided, try to use active material or create new one
    if mat is None:
        obj = bpy.context.active_object
        if obj and obj.active_material:
            mat = obj.active_material

    if mat is None and create_if_none:
        # Create a new material
        mat = bpy.data.materials.new(name=node_group.name + "_material")
        mat.use_nodes = True
        obj = bpy.context.active_object
        if obj:
            if len(obj.data.materials) > 0:
                obj.data.materials[0] = mat
            else:
                obj.data.materials.append(mat)

    if mat is None:
        print("No material available to assign the node group to.")
        return None

    if not mat.use_nodes:
        mat.use_nodes = True

    # Add the node group as a single group node (not expanded)
    nodes = mat.node_tree.nodes
    group_node = nodes.new(type="ShaderNodeGroup")
    group_node.node_tree = node_group
    group_node.name = node_group.name
    group_node.location = (-200, 300)

    # Connect to Material Output if present
    output_node = None
    for node in nodes:
        if node.type == "OUTPUT_MATERIAL":
            output_node = node
            break

    if output_node and len(group_node.outputs) > 0:
        # Connect first output to Surface input
        mat.node_tree.links.new(group_node.outputs[0], output_node.inputs[0])

    print(f"Added shader node group '{node_group.name}' to material '{mat.name}'")
    return group_node
`

const attachObjectCall = `
# Assign to object (creates new object if none selected)
# Set create_if_none=False if you only want to assign to existing selected object
modifier = assign_to_object(node_group, obj=None, create_if_none=True)

# To assign to a specific existing object, use:
# modifier = assign_to_object(node_group, obj=bpy.data.objects['YourObjectName'], create_if_none=False)
`

const attachMaterialCall = `
# Assign to material (creates new material if none available)
# Set create_if_none=False if you only want to assign to existing material
material = assign_to_material(node_group, mat=None, create_if_none=True)

# To assign to a specific existing material, use:
# material = assign_to_material(node_group, mat=bpy.data.materials['YourMaterialName'], create_if_none=False)
`

func (g *Generator) writeAttachHelper(buf *bytes.Buffer, d model.Domain) {
	if d == model.DomainShader {
		buf.WriteString(attachMaterialHelper)
	} else {
		buf.WriteString(attachObjectHelper)
	}
	buf.WriteString("\n\n")
}

func (g *Generator) writeAttachCall(buf *bytes.Buffer, d model.Domain) {
	if d == model.DomainShader {
		buf.WriteString(attachMaterialCall)
	} else {
		buf.WriteString(attachObjectCall)
	}
}
