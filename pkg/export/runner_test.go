package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/groupgen/groupgen/pkg/cache"
	"github.com/groupgen/groupgen/pkg/model"
	"github.com/groupgen/groupgen/pkg/registry"
	"github.com/groupgen/groupgen/pkg/resolve"
)

func testRegistry() registry.Registry {
	offset := model.Group{
		Name:   "Offset",
		Domain: model.DomainGeometry,
		Nodes: []model.Node{
			{ID: "set_position", TypeTag: "GeometryNodeSetPosition"},
		},
	}
	scatter := model.Group{
		Name:   "Scatter",
		Domain: model.DomainGeometry,
		Nodes: []model.Node{
			{ID: "offset_ref", TypeTag: "GeometryNodeGroup", RefGroup: "Offset"},
		},
	}
	wholeTree := model.Group{
		Name:   "Material Tree",
		Domain: model.DomainShader,
		Nodes: []model.Node{
			{ID: "out", TypeTag: "ShaderNodeOutputMaterial"},
		},
	}
	return registry.NewMemory(&model.Library{Groups: []model.Group{offset, scatter, wholeTree}})
}

func TestExecute(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	opts := DefaultOptions()
	opts.Group = "Scatter"

	result, err := r.Execute(context.Background(), testRegistry(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if result.NestedGroupCount != 1 {
		t.Errorf("NestedGroupCount = %d, want 1", result.NestedGroupCount)
	}
	if result.WholeTreeWarning {
		t.Error("reusable group should not warn")
	}
	if result.Stats.GroupCount != 2 {
		t.Errorf("GroupCount = %d, want 2", result.Stats.GroupCount)
	}
	if !strings.Contains(result.Code, "def create_offset_node_group():") {
		t.Error("dependency routine missing from code")
	}
	if !strings.HasPrefix(result.Code, "import bpy\n") {
		t.Error("code should start with the import header")
	}
}

func TestExecuteCacheHit(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	opts := DefaultOptions()
	opts.Group = "Scatter"

	first, err := r.Execute(context.Background(), testRegistry(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.CodeHit {
		t.Error("first run should miss")
	}

	second, err := r.Execute(context.Background(), testRegistry(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.CodeHit {
		t.Error("second run should hit")
	}
	if second.Code != first.Code {
		t.Error("cache hit must return identical text")
	}
	if second.ClosureHash != first.ClosureHash {
		t.Error("closure hash should be stable")
	}

	// Refresh bypasses the cache but still produces the same text
	opts.Refresh = true
	third, err := r.Execute(context.Background(), testRegistry(), opts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.CodeHit {
		t.Error("refresh run should not hit")
	}
	if third.Code != first.Code {
		t.Error("regeneration should be byte-identical")
	}
}

func TestExecuteOptionsChangeKey(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)

	with := DefaultOptions()
	with.Group = "Scatter"
	if _, err := r.Execute(context.Background(), testRegistry(), with); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// Same closure, different emission options: must not reuse the entry
	without := DefaultOptions()
	without.Group = "Scatter"
	without.AutoAssign = false
	result, err := r.Execute(context.Background(), testRegistry(), without)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.CacheInfo.CodeHit {
		t.Error("different options should not share a cache entry")
	}
	if strings.Contains(result.Code, "assign_to_object") {
		t.Error("auto-assign disabled but attachment emitted")
	}
}

func TestExecuteWholeTreeWarning(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := DefaultOptions()
	opts.Group = "Material Tree"

	result, err := r.Execute(context.Background(), testRegistry(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.WholeTreeWarning {
		t.Error("terminal node without interface should warn")
	}
}

func TestExecuteMissingGroup(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := DefaultOptions()
	opts.Group = "Ghost"

	_, err := r.Execute(context.Background(), testRegistry(), opts)
	var missing *resolve.MissingReferenceError
	if !errors.As(err, &missing) {
		t.Fatalf("Execute error = %v, want MissingReferenceError", err)
	}
}

func TestExecuteRequiresGroup(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), testRegistry(), Options{}); err == nil {
		t.Fatal("empty group should be rejected")
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := DefaultOptions()
	opts.Group = "Scatter"
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first validate: %v", err)
	}
	logger := opts.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second validate: %v", err)
	}
	if opts.Logger != logger {
		t.Error("repeat validation should not replace the logger")
	}
}
