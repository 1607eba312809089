package ecs

import "sort"

// driver holds a view's maps sorted by ascending size, fixed at view
// construction. d[0] is the smallest set and its dense order is the
// enumeration order; the rest are membership filters checked in order.
type driver []Storage

func newDriver(maps ...Storage) driver {
	d := driver(maps)
	sort.SliceStable(d, func(i, j int) bool {
		return d[i].Len() < d[j].Len()
	})
	return d
}

func (d driver) accepts(e Entity) bool {
	for _, s := range d[1:] {
		if !s.Has(e) {
			return false
		}
	}
	return true
}

// each walks the driver's dense sequence captured at the start of the call.
// The maps must not change structure while it runs.
func (d driver) each(fn func(Entity)) {
	if len(d) == 0 {
		return
	}
	for _, e := range d[0].Entities() {
		if d.accepts(e) {
			fn(e)
		}
	}
}

// eachReverse walks the driver from its last slot to its first and re-reads
// the sequence every step. Erasing the current entity swaps an already
// visited entry into its slot, so fn may erase or destroy the entity it is
// handed. Erasing any other entity is unsupported.
func (d driver) eachReverse(fn func(Entity)) {
	if len(d) == 0 {
		return
	}
	lead := d[0]
	for i := lead.Len() - 1; i >= 0; i-- {
		ents := lead.Entities()
		if i >= len(ents) {
			i = len(ents)
			continue
		}
		if e := ents[i]; d.accepts(e) {
			fn(e)
		}
	}
}

func (d driver) walk(reverse bool, fn func(Entity)) {
	if reverse {
		d.eachReverse(fn)
		return
	}
	d.each(fn)
}

func (d driver) size() int {
	if len(d) == 0 {
		return 0
	}
	return d[0].Len()
}

func (d driver) count() int {
	n := 0
	d.each(func(Entity) { n++ })
	return n
}

// View1 iterates every entity holding A.
type View1[A any] struct {
	a       *Map[A]
	drv     driver
	mutable bool
}

func NewView1[A any](r *Registry) *View1[A] {
	v := &View1[A]{a: Ensure[A](r)}
	v.drv = newDriver(v.a)
	return v
}

// NewMutableView1 iterates back to front; see View2.
func NewMutableView1[A any](r *Registry) *View1[A] {
	v := NewView1[A](r)
	v.mutable = true
	return v
}

func (v *View1[A]) Each(fn func(Entity, *A)) {
	v.drv.walk(v.mutable, func(e Entity) {
		fn(e, v.a.at(e))
	})
}

func (v *View1[A]) Len() int   { return v.drv.size() }
func (v *View1[A]) Count() int { return v.drv.count() }

// View2 iterates the entities holding both A and B, driven by whichever map
// was smaller when the view was built.
//
// A view built by NewMutableView2 walks the driver back to front. Its
// callback may erase the entity it was handed from any of the view's maps,
// or destroy it; pointers it received are stale afterwards. Structural
// changes to other entities are unsupported in either mode.
type View2[A, B any] struct {
	a       *Map[A]
	b       *Map[B]
	drv     driver
	mutable bool
}

func NewView2[A, B any](r *Registry) *View2[A, B] {
	v := &View2[A, B]{a: Ensure[A](r), b: Ensure[B](r)}
	v.drv = newDriver(v.a, v.b)
	return v
}

func NewMutableView2[A, B any](r *Registry) *View2[A, B] {
	v := NewView2[A, B](r)
	v.mutable = true
	return v
}

func (v *View2[A, B]) Each(fn func(Entity, *A, *B)) {
	v.drv.walk(v.mutable, func(e Entity) {
		fn(e, v.a.at(e), v.b.at(e))
	})
}

// Len returns the driver's size, an upper bound on the matches.
func (v *View2[A, B]) Len() int { return v.drv.size() }

// Count returns the number of matching entities.
func (v *View2[A, B]) Count() int { return v.drv.count() }

type View3[A, B, C any] struct {
	a       *Map[A]
	b       *Map[B]
	c       *Map[C]
	drv     driver
	mutable bool
}

func NewView3[A, B, C any](r *Registry) *View3[A, B, C] {
	v := &View3[A, B, C]{a: Ensure[A](r), b: Ensure[B](r), c: Ensure[C](r)}
	v.drv = newDriver(v.a, v.b, v.c)
	return v
}

func NewMutableView3[A, B, C any](r *Registry) *View3[A, B, C] {
	v := NewView3[A, B, C](r)
	v.mutable = true
	return v
}

func (v *View3[A, B, C]) Each(fn func(Entity, *A, *B, *C)) {
	v.drv.walk(v.mutable, func(e Entity) {
		fn(e, v.a.at(e), v.b.at(e), v.c.at(e))
	})
}

func (v *View3[A, B, C]) Len() int   { return v.drv.size() }
func (v *View3[A, B, C]) Count() int { return v.drv.count() }

type View4[A, B, C, D any] struct {
	a       *Map[A]
	b       *Map[B]
	c       *Map[C]
	d       *Map[D]
	drv     driver
	mutable bool
}

func NewView4[A, B, C, D any](r *Registry) *View4[A, B, C, D] {
	v := &View4[A, B, C, D]{a: Ensure[A](r), b: Ensure[B](r), c: Ensure[C](r), d: Ensure[D](r)}
	v.drv = newDriver(v.a, v.b, v.c, v.d)
	return v
}

func NewMutableView4[A, B, C, D any](r *Registry) *View4[A, B, C, D] {
	v := NewView4[A, B, C, D](r)
	v.mutable = true
	return v
}

func (v *View4[A, B, C, D]) Each(fn func(Entity, *A, *B, *C, *D)) {
	v.drv.walk(v.mutable, func(e Entity) {
		fn(e, v.a.at(e), v.b.at(e), v.c.at(e), v.d.at(e))
	})
}

func (v *View4[A, B, C, D]) Len() int   { return v.drv.size() }
func (v *View4[A, B, C, D]) Count() int { return v.drv.count() }
