package registry

import (
	"context"
	"fmt"

	"github.com/groupgen/groupgen/pkg/model"
)

// Memory is an in-process registry backed by a library. It is the CLI
// path: a library file stands in for the host's live registry.
type Memory struct {
	lib *model.Library
}

// NewMemory creates a registry over the given library. The library is
// not copied; it must not be mutated while the registry is in use.
func NewMemory(lib *model.Library) *Memory {
	return &Memory{lib: lib}
}

// Lookup returns the named group or ErrGroupNotFound.
func (m *Memory) Lookup(ctx context.Context, name string) (*model.Group, error) {
	if g, ok := m.lib.Group(name); ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrGroupNotFound, name)
}

// Names returns group names in library order.
func (m *Memory) Names(ctx context.Context) ([]string, error) {
	return m.lib.Names(), nil
}

// Store validates g and replaces the group with the same name, or
// appends it. Not safe for use concurrently with Lookup.
func (m *Memory) Store(ctx context.Context, g *model.Group) error {
	if err := model.Validate(g); err != nil {
		return err
	}
	for i := range m.lib.Groups {
		if m.lib.Groups[i].Name == g.Name {
			m.lib.Groups[i] = *g
			return nil
		}
	}
	m.lib.Groups = append(m.lib.Groups, *g)
	return nil
}

var (
	_ Registry = (*Memory)(nil)
	_ Storer   = (*Memory)(nil)
)
