package ecs

// RuntimeView intersects maps chosen by TypeID at runtime. If any requested
// type has no map yet, or no ids are given, nothing can match and the view
// is empty.
type RuntimeView struct {
	drv     driver
	mutable bool
}

func NewRuntimeView(r *Registry, ids ...TypeID) RuntimeView {
	maps := make([]Storage, 0, len(ids))
	for _, id := range ids {
		s := r.TryGet(id)
		if s == nil {
			return RuntimeView{}
		}
		maps = append(maps, s)
	}
	return RuntimeView{drv: newDriver(maps...)}
}

// NewMutableRuntimeView walks back to front with the same callback rules as
// a mutable static view.
func NewMutableRuntimeView(r *Registry, ids ...TypeID) RuntimeView {
	v := NewRuntimeView(r, ids...)
	v.mutable = true
	return v
}

func (v RuntimeView) Each(fn func(Entity)) {
	v.drv.walk(v.mutable, fn)
}

// Empty reports whether the view has no driver at all.
func (v RuntimeView) Empty() bool { return len(v.drv) == 0 }

func (v RuntimeView) Len() int   { return v.drv.size() }
func (v RuntimeView) Count() int { return v.drv.count() }
