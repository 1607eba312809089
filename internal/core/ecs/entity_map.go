package ecs

import (
	"fmt"
	"unsafe"
)

// Storage is the type-erased face of a component map. The Registry and the
// runtime view only need index-based operations, so that is all it exposes.
type Storage interface {
	Has(e Entity) bool
	Len() int
	// Entities returns the live dense sequence. The slice aliases the map's
	// storage and is invalidated by the next Emplace or Erase.
	Entities() []Entity
	EmplaceDefault(e Entity)
	Erase(e Entity)
	Check() error
}

var _ Storage = (*Map[struct{}])(nil)

// Map is a sparse set holding one T per entity. Dense slot 0 is a null
// placeholder, so Len() is the dense length minus one. Erase swaps the last
// entry into the hole: dense order is not creation order.
//
// Has looks at the raw index only. Checking the generation is the caller's
// job, done once through the pool rather than on every lookup.
//
// Pointers returned by Emplace, Get and GetOrCreate are invalidated by the
// next Emplace (growth) or Erase (swap) on the same map.
type Map[T any] struct {
	sparse sparseTable
	dense  []Entity
	data   []T
	// empty marks zero-size T: data keeps only the placeholder and every
	// entity shares it.
	empty bool
}

func NewMap[T any]() *Map[T] {
	var zero T
	m := &Map[T]{
		dense: make([]Entity, 1, 64),
		empty: unsafe.Sizeof(zero) == 0,
	}
	if m.empty {
		m.data = make([]T, 1)
	} else {
		m.data = make([]T, 1, 64)
	}
	return m
}

func (m *Map[T]) Has(e Entity) bool {
	return m.sparse.has(e.Index())
}

// Emplace stores v for e and returns a pointer to the stored value.
// e must not already be present.
func (m *Map[T]) Emplace(e Entity, v T) *T {
	if debugChecks {
		assertf(!m.Has(e), "emplace of present entity %v", e)
	}
	slot := uint32(len(m.dense))
	m.dense = append(m.dense, e)
	m.sparse.insert(e.Index(), slot)
	if m.empty {
		return &m.data[0]
	}
	m.data = append(m.data, v)
	return &m.data[slot]
}

func (m *Map[T]) EmplaceDefault(e Entity) {
	var zero T
	m.Emplace(e, zero)
}

// Erase removes e. e must be present.
func (m *Map[T]) Erase(e Entity) {
	if debugChecks {
		assertf(m.Has(e), "erase of absent entity %v", e)
	}
	doomed := m.sparse.take(e.Index())
	last := uint32(len(m.dense) - 1)
	if doomed < last {
		moved := m.dense[last]
		m.sparse.replace(moved.Index(), doomed)
		m.dense[doomed] = moved
		if !m.empty {
			m.data[doomed] = m.data[last]
		}
	}
	m.dense = m.dense[:last]
	if !m.empty {
		var zero T
		m.data[last] = zero
		m.data = m.data[:last]
	}
}

// Get returns e's value. e must be present.
func (m *Map[T]) Get(e Entity) *T {
	if debugChecks {
		assertf(m.Has(e), "get of absent entity %v", e)
	}
	return m.at(e)
}

// at is the unchecked dense fetch used once membership is already known.
func (m *Map[T]) at(e Entity) *T {
	if m.empty {
		return &m.data[0]
	}
	return &m.data[m.sparse.at(e.Index())]
}

func (m *Map[T]) GetOrCreate(e Entity) *T {
	if !m.Has(e) {
		var zero T
		return m.Emplace(e, zero)
	}
	return m.at(e)
}

// GetOrDefault returns a copy of e's value, or the zero value when absent.
func (m *Map[T]) GetOrDefault(e Entity) T {
	if !m.Has(e) {
		return m.data[0]
	}
	return *m.at(e)
}

// Lookup is the checked form of Get.
func (m *Map[T]) Lookup(e Entity) (*T, bool) {
	if !m.Has(e) {
		return nil, false
	}
	return m.at(e), true
}

func (m *Map[T]) Len() int {
	return len(m.dense) - 1
}

func (m *Map[T]) Entities() []Entity {
	return m.dense[1:]
}

// Values returns the dense values parallel to Entities. Zero-size
// components have no per-entity storage and return an empty slice.
func (m *Map[T]) Values() []T {
	if m.empty {
		return m.data[:0]
	}
	return m.data[1:]
}

// Check verifies the sparse and dense arrays agree.
func (m *Map[T]) Check() error {
	if !m.empty && len(m.data) != len(m.dense) {
		return fmt.Errorf("map %T: %d values for %d entities", m, len(m.data)-1, len(m.dense)-1)
	}
	if m.dense[0] != Null {
		return fmt.Errorf("map %T: dense placeholder holds %v", m, m.dense[0])
	}
	for slot := 1; slot < len(m.dense); slot++ {
		e := m.dense[slot]
		i := e.Index()
		if e.IsNull() {
			return fmt.Errorf("map %T: null entity at slot %d", m, slot)
		}
		if !m.sparse.has(i) {
			return fmt.Errorf("map %T: entity %v at slot %d missing from table", m, e, slot)
		}
		if got := m.sparse.at(i); got != uint32(slot) {
			return fmt.Errorf("map %T: entity %v at slot %d, table points to %d", m, e, slot, got)
		}
	}
	present := 0
	for i, slot := range m.sparse.slots {
		if slot == 0 {
			continue
		}
		present++
		if int(slot) >= len(m.dense) {
			return fmt.Errorf("map %T: index %d points past dense end (%d)", m, i, slot)
		}
	}
	if present != m.Len() {
		return fmt.Errorf("map %T: table holds %d indices, dense holds %d", m, present, m.Len())
	}
	return nil
}
