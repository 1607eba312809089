package ecs

import "fmt"

// EntityPool allocates handles with generational indices. Free slots form a
// stack threaded through the handle list itself: a dead slot i stores the
// index of the next free slot and the generation its next owner will get.
// A slot is alive iff list[i].Index() == i.
type EntityPool struct {
	list      []Entity
	next      uint32
	available uint32
}

func NewEntityPool() *EntityPool {
	list := make([]Entity, 1, 1024)
	list[0] = Null
	return &EntityPool{list: list}
}

// Allocate pops the most recently freed slot, or appends a fresh one with
// generation 0. Growing past MaxIndex panics.
func (p *EntityPool) Allocate() Entity {
	if p.available > 0 {
		node := p.list[p.next]
		e := NewEntity(p.next, node.Generation())
		p.next = node.Index()
		p.list[e.Index()] = e
		p.available--
		return e
	}
	idx := uint32(len(p.list))
	if idx > MaxIndex {
		panic(fmt.Sprintf("ecs: entity pool exhausted (%d slots)", MaxIndex))
	}
	e := NewEntity(idx, 0)
	p.list = append(p.list, e)
	return e
}

// AllocateN fills buf with fresh handles.
func (p *EntityPool) AllocateN(buf []Entity) {
	for p.available > 0 && len(buf) > 0 {
		buf[0] = p.Allocate()
		buf = buf[1:]
	}
	if len(buf) == 0 {
		return
	}
	first := uint32(len(p.list))
	if uint64(first)+uint64(len(buf))-1 > MaxIndex {
		panic(fmt.Sprintf("ecs: entity pool exhausted (%d slots)", MaxIndex))
	}
	for i := range buf {
		buf[i] = NewEntity(first+uint32(i), 0)
	}
	p.list = append(p.list, buf...)
}

// Deallocate frees e's slot. e must be alive.
func (p *EntityPool) Deallocate(e Entity) {
	i := e.Index()
	if debugChecks {
		assertf(p.IsAlive(i), "deallocate of dead entity %v", e)
	}
	p.list[i] = NewEntity(p.next, e.Generation()+1)
	p.next = i
	p.available++
}

// Current returns the generation recorded for slot i, alive or not.
func (p *EntityPool) Current(i uint32) uint32 {
	return p.list[i].Generation()
}

func (p *EntityPool) IsAlive(i uint32) bool {
	return i != 0 && int(i) < len(p.list) && p.list[i].Index() == i
}

// Valid reports whether e is the live occupant of its slot.
func (p *EntityPool) Valid(e Entity) bool {
	i := e.Index()
	return p.IsAlive(i) && p.list[i] == e
}

// Each calls fn for every live handle in ascending slot order.
func (p *EntityPool) Each(fn func(Entity)) {
	end := uint32(len(p.list))
	if p.available == 0 {
		for i := uint32(1); i < end; i++ {
			fn(p.list[i])
		}
		return
	}
	for i := uint32(1); i < end; i++ {
		if e := p.list[i]; e.Index() == i {
			fn(e)
		}
	}
}

// Len returns the number of live entities.
func (p *EntityPool) Len() int {
	return len(p.list) - int(p.available) - 1
}

// Slots returns the number of slots ever handed out, plus the null slot.
func (p *EntityPool) Slots() int {
	return len(p.list)
}

// Available returns the number of slots waiting to be recycled.
func (p *EntityPool) Available() int {
	return int(p.available)
}

func (p *EntityPool) Reserve(n int) {
	if need := n + 1; need > cap(p.list) {
		list := make([]Entity, len(p.list), need)
		copy(list, p.list)
		p.list = list
	}
}

// Check walks the free list and verifies it covers exactly the dead slots.
func (p *EntityPool) Check() error {
	dead := 0
	for i := 1; i < len(p.list); i++ {
		if p.list[i].Index() != uint32(i) {
			dead++
		}
	}
	if dead != int(p.available) {
		return fmt.Errorf("pool: %d dead slots, %d recyclable", dead, p.available)
	}
	seen := make(map[uint32]struct{}, p.available)
	cur := p.next
	for n := uint32(0); n < p.available; n++ {
		if cur == 0 || int(cur) >= len(p.list) {
			return fmt.Errorf("pool: free list link %d out of range at step %d", cur, n)
		}
		if p.IsAlive(cur) {
			return fmt.Errorf("pool: free list reaches live slot %d", cur)
		}
		if _, dup := seen[cur]; dup {
			return fmt.Errorf("pool: free list cycles at slot %d", cur)
		}
		seen[cur] = struct{}{}
		cur = p.list[cur].Index()
	}
	return nil
}
