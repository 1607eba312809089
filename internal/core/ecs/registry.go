package ecs

import (
	"errors"
	"fmt"
)

// Registry owns one component map per type, indexed by TypeID and created
// lazily on first use. It supports bulk cleanup on entity destroy.
type Registry struct {
	maps []Storage
}

func NewRegistry() *Registry {
	return &Registry{
		maps: make([]Storage, 0, 16),
	}
}

// Ensure returns T's map, creating it if needed.
func Ensure[T any](r *Registry) *Map[T] {
	id := TypeOf[T]()
	if int(id) >= len(r.maps) {
		r.grow(int(id) + 1)
	}
	if s := r.maps[id]; s != nil {
		return s.(*Map[T])
	}
	m := NewMap[T]()
	r.maps[id] = m
	return m
}

// Lookup returns T's map, or nil if nothing ever created it.
func Lookup[T any](r *Registry) *Map[T] {
	s := r.TryGet(TypeOf[T]())
	if s == nil {
		return nil
	}
	return s.(*Map[T])
}

// TryGet returns the map registered under id, or nil.
func (r *Registry) TryGet(id TypeID) Storage {
	if int(id) >= len(r.maps) {
		return nil
	}
	return r.maps[id]
}

// RemoveAll erases the given entity from every map that holds it.
func (r *Registry) RemoveAll(e Entity) {
	for _, s := range r.maps {
		if s != nil && s.Has(e) {
			s.Erase(e)
		}
	}
}

// Each calls fn for every created map in TypeID order.
func (r *Registry) Each(fn func(TypeID, Storage)) {
	for id, s := range r.maps {
		if s != nil {
			fn(TypeID(id), s)
		}
	}
}

// Len returns the number of created maps.
func (r *Registry) Len() int {
	n := 0
	for _, s := range r.maps {
		if s != nil {
			n++
		}
	}
	return n
}

// Check runs every map's invariant check.
func (r *Registry) Check() error {
	var errs []error
	r.Each(func(id TypeID, s Storage) {
		if err := s.Check(); err != nil {
			errs = append(errs, fmt.Errorf("type %d: %w", id, err))
		}
	})
	return errors.Join(errs...)
}

func (r *Registry) grow(n int) {
	if n <= cap(r.maps) {
		r.maps = r.maps[:n]
		return
	}
	maps := make([]Storage, n, max(2*cap(r.maps), n))
	copy(maps, r.maps)
	r.maps = maps
}
