package ecs

import (
	"errors"
	"fmt"
)

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and a deferred destruction queue flushed by CleanupSystem each tick.
// A World is not safe for concurrent use.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []Entity
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]Entity, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

// Reserve preallocates handle storage for n entities.
func (w *World) Reserve(n int) {
	w.pool.Reserve(n)
}

func (w *World) Create() Entity {
	return w.pool.Allocate()
}

// CreateN fills buf with new entities.
func (w *World) CreateN(buf []Entity) {
	w.pool.AllocateN(buf)
}

// Destroy erases e from every component map and frees its slot. e must be
// valid.
func (w *World) Destroy(e Entity) {
	w.registry.RemoveAll(e)
	w.pool.Deallocate(e)
}

func (w *World) Valid(e Entity) bool {
	return w.pool.Valid(e)
}

// Each calls fn for every live entity in slot order. fn may destroy the
// entity it is handed.
func (w *World) Each(fn func(Entity)) {
	w.pool.Each(fn)
}

func (w *World) Len() int {
	return w.pool.Len()
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(e Entity) {
	w.destroyQueue = append(w.destroyQueue, e)
}

// Pending returns the number of queued destructions.
func (w *World) Pending() int {
	return len(w.destroyQueue)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Entries that went stale since they were queued (including duplicates) are
// skipped. Returns the number destroyed.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, e := range w.destroyQueue {
		if !w.pool.Valid(e) {
			continue
		}
		w.Destroy(e)
		n++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}

func (w *World) RuntimeView(ids ...TypeID) RuntimeView {
	return NewRuntimeView(w.registry, ids...)
}

func (w *World) MutableRuntimeView(ids ...TypeID) RuntimeView {
	return NewMutableRuntimeView(w.registry, ids...)
}

// Check verifies the pool, every map, and that maps only hold live entities.
func (w *World) Check() error {
	var errs []error
	if err := w.pool.Check(); err != nil {
		errs = append(errs, err)
	}
	if err := w.registry.Check(); err != nil {
		errs = append(errs, err)
	}
	w.registry.Each(func(id TypeID, s Storage) {
		for _, e := range s.Entities() {
			if !w.pool.Valid(e) {
				errs = append(errs, fmt.Errorf("type %d: holds dead entity %v", id, e))
				return
			}
		}
	})
	return errors.Join(errs...)
}

// Type returns T's component id.
func Type[T any]() TypeID {
	return TypeOf[T]()
}

// Assign attaches v to e and returns a pointer to the stored copy.
// e must not already hold a T.
func Assign[T any](w *World, e Entity, v T) *T {
	return Ensure[T](w.registry).Emplace(e, v)
}

// CreateWith creates an entity holding a.
func CreateWith[A any](w *World, a A) Entity {
	e := w.Create()
	Ensure[A](w.registry).Emplace(e, a)
	return e
}

func CreateWith2[A, B any](w *World, a A, b B) Entity {
	e := CreateWith(w, a)
	Ensure[B](w.registry).Emplace(e, b)
	return e
}

func CreateWith3[A, B, C any](w *World, a A, b B, c C) Entity {
	e := CreateWith2(w, a, b)
	Ensure[C](w.registry).Emplace(e, c)
	return e
}

func AssignDefault[T any](w *World, e Entity) *T {
	var zero T
	return Ensure[T](w.registry).Emplace(e, zero)
}

// Has reports whether e holds a T. It never creates a map.
func Has[T any](w *World, e Entity) bool {
	m := Lookup[T](w.registry)
	return m != nil && m.Has(e)
}

// Get returns e's T. e must hold one.
func Get[T any](w *World, e Entity) *T {
	m := Lookup[T](w.registry)
	if debugChecks {
		assertf(m != nil, "get of unregistered component %d", TypeOf[T]())
	}
	return m.Get(e)
}

func GetOrCreate[T any](w *World, e Entity) *T {
	return Ensure[T](w.registry).GetOrCreate(e)
}

func GetOrDefault[T any](w *World, e Entity) T {
	m := Lookup[T](w.registry)
	if m == nil {
		var zero T
		return zero
	}
	return m.GetOrDefault(e)
}

// Remove detaches e's T. e must hold one.
func Remove[T any](w *World, e Entity) {
	m := Lookup[T](w.registry)
	if debugChecks {
		assertf(m != nil, "remove of unregistered component %d", TypeOf[T]())
	}
	m.Erase(e)
}
