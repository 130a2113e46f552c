package resolve

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/groupgen/groupgen/pkg/model"
	"github.com/groupgen/groupgen/pkg/registry"
)

// group builds a geometry group referencing the given groups, one
// reference node each, in order.
func group(name string, refs ...string) model.Group {
	g := model.Group{Name: name, Domain: model.DomainGeometry}
	for i, ref := range refs {
		g.Nodes = append(g.Nodes, model.Node{
			ID:       "ref_" + ref,
			TypeTag:  "GeometryNodeGroup",
			RefGroup: ref,
			Position: model.Vec2{X: float64(i) * 200},
		})
	}
	return g
}

func memReg(groups ...model.Group) *registry.Memory {
	return registry.NewMemory(&model.Library{Groups: groups})
}

func TestBuildSingleGroup(t *testing.T) {
	reg := memReg(group("Root"))
	c, err := Build(context.Background(), reg, "Root", true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Root.Name != "Root" {
		t.Errorf("Root = %q", c.Root.Name)
	}
	if c.NestedCount() != 0 {
		t.Errorf("NestedCount = %d, want 0", c.NestedCount())
	}
	ordered, err := c.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if len(ordered) != 1 || ordered[0].Name != "Root" {
		t.Errorf("Order() = %v", names(ordered))
	}
}

func TestBuildDiamondDedupes(t *testing.T) {
	// Root -> A -> C, Root -> B -> C: C snapshotted once.
	reg := memReg(group("Root", "A", "B"), group("A", "C"), group("B", "C"), group("C"))
	c, err := Build(context.Background(), reg, "Root", true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.NestedCount() != 3 {
		t.Errorf("NestedCount = %d, want 3", c.NestedCount())
	}
	if !slices.Equal(c.Discovery, []string{"Root", "A", "B", "C"}) {
		t.Errorf("Discovery = %v", c.Discovery)
	}

	ordered, err := c.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	got := names(ordered)
	// Dependencies strictly before dependents, root last.
	if got[len(got)-1] != "Root" {
		t.Errorf("root should be last: %v", got)
	}
	if idx(got, "C") > idx(got, "A") || idx(got, "C") > idx(got, "B") {
		t.Errorf("C must precede A and B: %v", got)
	}
}

func TestBuildWithoutNested(t *testing.T) {
	// Dependencies exist but are not resolved when nested is disabled.
	reg := memReg(group("Root", "A"), group("A"))
	c, err := Build(context.Background(), reg, "Root", false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.NestedCount() != 0 {
		t.Errorf("NestedCount = %d, want 0", c.NestedCount())
	}
	if _, ok := c.Group("A"); ok {
		t.Error("A should not be part of the closure")
	}
}

func TestBuildMissingRoot(t *testing.T) {
	reg := memReg()
	_, err := Build(context.Background(), reg, "Ghost", true)
	var missing *MissingReferenceError
	if !errors.As(err, &missing) {
		t.Fatalf("Build error = %v, want MissingReferenceError", err)
	}
	if missing.Ref != "Ghost" {
		t.Errorf("Ref = %q", missing.Ref)
	}
	if !errors.Is(err, registry.ErrGroupNotFound) {
		t.Error("should wrap the registry miss")
	}
}

func TestBuildMissingReference(t *testing.T) {
	reg := memReg(group("Root", "Gone"))
	_, err := Build(context.Background(), reg, "Root", true)
	var missing *MissingReferenceError
	if !errors.As(err, &missing) {
		t.Fatalf("Build error = %v, want MissingReferenceError", err)
	}
	if missing.Group != "Root" || missing.Ref != "Gone" {
		t.Errorf("got %q -> %q, want Root -> Gone", missing.Group, missing.Ref)
	}
}

func TestOrderCycle(t *testing.T) {
	// A and B reference each other; resolution terminates (visited set)
	// and ordering reports the cycle members.
	reg := memReg(group("A", "B"), group("B", "A"))
	c, err := Build(context.Background(), reg, "A", true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ordered, err := c.Order()
	if ordered != nil {
		t.Error("no partial order on cycle")
	}
	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("Order error = %v, want CycleError", err)
	}
	if !slices.Contains(cycle.Members, "A") || !slices.Contains(cycle.Members, "B") {
		t.Errorf("Members = %v, want A and B", cycle.Members)
	}
}

func TestBuildValidatesSnapshots(t *testing.T) {
	bad := model.Group{Name: "Bad", Domain: "nope"}
	reg := memReg(bad)
	if _, err := Build(context.Background(), reg, "Bad", true); !errors.Is(err, model.ErrInvalidDomain) {
		t.Errorf("Build error = %v, want ErrInvalidDomain", err)
	}
}

func names(groups []*model.Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Name
	}
	return out
}

func idx(s []string, v string) int { return slices.Index(s, v) }
