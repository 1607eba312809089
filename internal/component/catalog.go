package component

import (
	"fmt"
	"sort"

	"github.com/ecxx/sparsecs/internal/core/ecs"
)

// Catalog names component types so YAML scenarios and Lua scripts can refer
// to them. Each entry knows how to create its typed map in a registry.
type Catalog struct {
	byName map[string]entry
}

type entry struct {
	id     ecs.TypeID
	ensure func(*ecs.Registry) ecs.Storage
}

func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]entry)}
}

// Define registers T under name. Redefining a name replaces it.
func Define[T any](c *Catalog, name string) {
	c.byName[name] = entry{
		id: ecs.TypeOf[T](),
		ensure: func(r *ecs.Registry) ecs.Storage {
			return ecs.Ensure[T](r)
		},
	}
}

// Default returns a catalog holding every component in this package.
func Default() *Catalog {
	c := NewCatalog()
	Define[Position](c, "position")
	Define[Velocity](c, "velocity")
	Define[Health](c, "health")
	Define[Lifetime](c, "lifetime")
	Define[Name](c, "name")
	Define[Tag](c, "tag")
	return c
}

func (c *Catalog) Lookup(name string) (ecs.TypeID, bool) {
	e, ok := c.byName[name]
	return e.id, ok
}

// IDs resolves every name, failing on the first unknown one.
func (c *Catalog) IDs(names ...string) ([]ecs.TypeID, error) {
	ids := make([]ecs.TypeID, len(names))
	for i, name := range names {
		id, ok := c.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown component %q", name)
		}
		ids[i] = id
	}
	return ids, nil
}

// Ensure returns the named component's map in r, creating it if needed.
func (c *Catalog) Ensure(r *ecs.Registry, name string) (ecs.Storage, error) {
	e, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown component %q", name)
	}
	return e.ensure(r), nil
}

// Names returns the defined names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
