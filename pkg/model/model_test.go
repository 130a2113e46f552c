package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

// mathNode builds a minimal two-input math node for validation tests.
func mathNode(id string) Node {
	f := FloatValue(0.5)
	return Node{
		ID:      id,
		TypeTag: "ShaderNodeMath",
		Inputs: []Socket{
			{Name: "Value", Kind: KindFloat, Default: &f},
			{Name: "Value", Kind: KindFloat, Default: &f},
		},
		Outputs: []Socket{
			{Name: "Value", Kind: KindFloat},
		},
	}
}

func validGroup() Group {
	g := Group{
		Name:   "Scatter",
		Domain: DomainGeometry,
		Nodes:  []Node{mathNode("a"), mathNode("b")},
		Links: []Link{
			{FromNode: "a", FromSocket: 0, ToNode: "b", ToSocket: 0},
		},
	}
	g.Nodes[1].Inputs[0].Linked = true
	return g
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Group)
		wantErr error
	}{
		{
			name:    "valid group",
			mutate:  func(g *Group) {},
			wantErr: nil,
		},
		{
			name:    "empty name",
			mutate:  func(g *Group) { g.Name = "" },
			wantErr: ErrEmptyGroupName,
		},
		{
			name:    "bad domain",
			mutate:  func(g *Group) { g.Domain = "compositor" },
			wantErr: ErrInvalidDomain,
		},
		{
			name:    "empty node ID",
			mutate:  func(g *Group) { g.Nodes[0].ID = "" },
			wantErr: ErrEmptyNodeID,
		},
		{
			name:    "duplicate node ID",
			mutate:  func(g *Group) { g.Nodes[1].ID = "a" },
			wantErr: ErrDuplicateNodeID,
		},
		{
			name:    "link to unknown node",
			mutate:  func(g *Group) { g.Links[0].ToNode = "ghost" },
			wantErr: ErrUnknownLinkEndpoint,
		},
		{
			name:    "output index out of range",
			mutate:  func(g *Group) { g.Links[0].FromSocket = 3 },
			wantErr: ErrSocketIndexRange,
		},
		{
			name:    "negative input index",
			mutate:  func(g *Group) { g.Links[0].ToSocket = -1 },
			wantErr: ErrSocketIndexRange,
		},
		{
			name: "fan-in on one input",
			mutate: func(g *Group) {
				g.Links = append(g.Links, Link{FromNode: "a", FromSocket: 0, ToNode: "b", ToSocket: 0})
			},
			wantErr: ErrFanIn,
		},
		{
			name: "unlinked input without default",
			mutate: func(g *Group) {
				g.Nodes[0].Inputs[0].Default = nil
			},
			wantErr: ErrMissingDefault,
		},
		{
			name: "default shape mismatch",
			mutate: func(g *Group) {
				v := StringValue("oops")
				g.Nodes[0].Inputs[0].Default = &v
			},
			wantErr: ErrValueShape,
		},
		{
			name: "group-reference without target",
			mutate: func(g *Group) {
				g.Nodes = append(g.Nodes, Node{ID: "grp", TypeTag: "GeometryNodeGroup"})
			},
			wantErr: ErrMissingRefGroup,
		},
		{
			name: "plain node with ref target",
			mutate: func(g *Group) {
				g.Nodes[0].RefGroup = "Offset"
			},
			wantErr: ErrUnexpectedRefGroup,
		},
		{
			name: "linked input needs no default",
			mutate: func(g *Group) {
				g.Nodes[1].Inputs[0].Default = nil
			},
			wantErr: nil,
		},
		{
			// The flag alone must not buy a socket out of the default
			// checks: without a matching link it is rejected outright.
			name: "linked flag without a link",
			mutate: func(g *Group) {
				g.Nodes[0].Inputs[0].Linked = true
				g.Nodes[0].Inputs[0].Default = nil
			},
			wantErr: ErrLinkedFlagMismatch,
		},
		{
			name: "link without the linked flag",
			mutate: func(g *Group) {
				g.Nodes[1].Inputs[0].Linked = false
			},
			wantErr: ErrLinkedFlagMismatch,
		},
		{
			name: "geometry input needs no default",
			mutate: func(g *Group) {
				g.Nodes[0].Inputs[0] = Socket{Name: "Geometry", Kind: KindGeometry}
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGroup()
			tt.mutate(&g)
			err := Validate(&g)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValueMatches(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		kind  DataKind
		want  bool
	}{
		{"float for float", FloatValue(1.5), KindFloat, true},
		{"int for float", IntValue(2), KindFloat, true},
		{"float for int", FloatValue(1.5), KindInt, false},
		{"3-tuple for vector", TupleValue(1, 2, 3), KindVector, true},
		{"4-tuple for vector", TupleValue(1, 2, 3, 4), KindVector, false},
		{"3-tuple for color", TupleValue(1, 2, 3), KindColor, true},
		{"4-tuple for color", TupleValue(1, 2, 3, 4), KindColor, true},
		{"3-tuple for rotation", TupleValue(0, 0, 1.5708), KindRotation, true},
		{"string for menu", StringValue("ADD"), KindMenu, true},
		{"ref for object", RefValue("objects", "Cube"), KindObject, true},
		{"ref for material", RefValue("materials", "Steel"), KindMaterial, true},
		{"float for geometry", FloatValue(1), KindGeometry, false},
		{"float for shader", FloatValue(1), KindShader, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Matches(tt.kind); got != tt.want {
				t.Errorf("Matches(%s) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	values := []Value{
		FloatValue(2.5),
		IntValue(-3),
		BoolValue(true),
		StringValue("MULTIPLY"),
		TupleValue(0.1, 0.2, 0.3, 1),
		RefValue("objects", "Cube"),
	}
	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %s: %v", v, err)
		}
		var back Value
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back.String() != v.String() {
			t.Errorf("round-trip changed value: %s -> %s", v, back)
		}
	}

	// Unknown kinds are rejected, not silently dropped
	var v Value
	if err := json.Unmarshal([]byte(`{"kind":"blob","value":1}`), &v); err == nil {
		t.Error("expected error for unknown value kind")
	}
}

func TestSocketTypeFallback(t *testing.T) {
	if got := KindVector.SocketType(); got != "NodeSocketVector" {
		t.Errorf("SocketType() = %q", got)
	}
	// Unknown kinds fall back to the float socket, mirroring the host
	if got := DataKind("texture").SocketType(); got != "NodeSocketFloat" {
		t.Errorf("fallback SocketType() = %q", got)
	}
}

func TestGroupRefs(t *testing.T) {
	g := Group{
		Name:   "Root",
		Domain: DomainGeometry,
		Nodes: []Node{
			{ID: "n1", TypeTag: "GeometryNodeGroup", RefGroup: "B"},
			{ID: "n2", TypeTag: "ShaderNodeMath"},
			{ID: "n3", TypeTag: "GeometryNodeGroup", RefGroup: "A"},
			{ID: "n4", TypeTag: "GeometryNodeGroup", RefGroup: "B"},
		},
	}
	refs := g.Refs()
	// First-discovery order, duplicates collapsed
	if len(refs) != 2 || refs[0] != "B" || refs[1] != "A" {
		t.Errorf("Refs() = %v, want [B A]", refs)
	}
}

func TestHasTerminal(t *testing.T) {
	g := validGroup()
	if g.HasTerminal() {
		t.Error("plain group should have no terminal node")
	}
	g.Nodes = append(g.Nodes, Node{ID: "out", TypeTag: "ShaderNodeOutputMaterial"})
	if !g.HasTerminal() {
		t.Error("material output should count as terminal")
	}
}

func TestLibraryRoundTrip(t *testing.T) {
	lib := &Library{Groups: []Group{validGroup()}}

	var buf bytes.Buffer
	if err := WriteLibrary(lib, &buf); err != nil {
		t.Fatalf("WriteLibrary: %v", err)
	}

	back, err := ReadLibrary(&buf)
	if err != nil {
		t.Fatalf("ReadLibrary: %v", err)
	}
	if len(back.Groups) != 1 || back.Groups[0].Name != "Scatter" {
		t.Fatalf("round-trip lost groups: %v", back.Names())
	}
	if _, ok := back.Group("Scatter"); !ok {
		t.Error("Group lookup failed after round-trip")
	}

	// Reading rejects invalid snapshots
	bad := &Library{Groups: []Group{{Name: "", Domain: DomainGeometry}}}
	data, _ := json.Marshal(bad)
	if _, err := ReadLibrary(bytes.NewReader(data)); err == nil {
		t.Error("expected validation error for invalid library")
	}
}

func TestMarshalLibraryDeterministic(t *testing.T) {
	lib := &Library{Groups: []Group{validGroup()}}
	a, err := MarshalLibrary(lib)
	if err != nil {
		t.Fatalf("MarshalLibrary: %v", err)
	}
	b, err := MarshalLibrary(lib)
	if err != nil {
		t.Fatalf("MarshalLibrary: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("library serialization should be byte-stable")
	}
}
