package registry

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/groupgen/groupgen/pkg/model"
)

func TestMemoryLookup(t *testing.T) {
	reg := NewMemory(&model.Library{Groups: []model.Group{
		{Name: "Scatter", Domain: model.DomainGeometry},
		{Name: "Offset", Domain: model.DomainGeometry},
	}})

	g, err := reg.Lookup(context.Background(), "Offset")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if g.Name != "Offset" {
		t.Errorf("Name = %q", g.Name)
	}
}

func TestMemoryLookupMiss(t *testing.T) {
	reg := NewMemory(&model.Library{})

	_, err := reg.Lookup(context.Background(), "Ghost")
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("Lookup error = %v, want ErrGroupNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	reg := NewMemory(&model.Library{Groups: []model.Group{
		{Name: "Scatter", Domain: model.DomainGeometry},
	}})

	// New names append
	if err := reg.Store(ctx, &model.Group{Name: "Offset", Domain: model.DomainGeometry}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	names, _ := reg.Names(ctx)
	if !slices.Equal(names, []string{"Scatter", "Offset"}) {
		t.Errorf("Names() = %v", names)
	}

	// Existing names are replaced in place
	if err := reg.Store(ctx, &model.Group{Name: "Scatter", Domain: model.DomainShader}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	g, err := reg.Lookup(ctx, "Scatter")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if g.Domain != model.DomainShader {
		t.Errorf("Domain = %q, want replacement to win", g.Domain)
	}

	// Invalid snapshots never land
	if err := reg.Store(ctx, &model.Group{Name: "", Domain: model.DomainGeometry}); err == nil {
		t.Error("expected validation error for empty name")
	}
}

func TestMemoryNames(t *testing.T) {
	reg := NewMemory(&model.Library{Groups: []model.Group{
		{Name: "B", Domain: model.DomainGeometry},
		{Name: "A", Domain: model.DomainGeometry},
	}})

	names, err := reg.Names(context.Background())
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	// Library order, not sorted
	if !slices.Equal(names, []string{"B", "A"}) {
		t.Errorf("Names() = %v", names)
	}
}
