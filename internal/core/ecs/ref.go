package ecs

// Ref pairs an entity with the World that owns it, so callers can pass one
// value around instead of two.
type Ref struct {
	world  *World
	entity Entity
}

func (w *World) Wrap(e Entity) Ref {
	return Ref{world: w, entity: e}
}

// CreateRef creates an entity and wraps it.
func (w *World) CreateRef() Ref {
	return w.Wrap(w.Create())
}

func (r Ref) World() *World      { return r.world }
func (r Ref) Entity() Entity     { return r.entity }
func (r Ref) Index() uint32      { return r.entity.Index() }
func (r Ref) Generation() uint32 { return r.entity.Generation() }

func (r Ref) Valid() bool {
	return r.world != nil && r.world.Valid(r.entity)
}

// Destroy destroys the entity and clears the handle to Null.
func (r *Ref) Destroy() {
	r.world.Destroy(r.entity)
	r.entity = Null
}

// Has reports whether the entity holds a component of type id.
func (r Ref) Has(id TypeID) bool {
	s := r.world.registry.TryGet(id)
	return s != nil && s.Has(r.entity)
}
