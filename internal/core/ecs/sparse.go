package ecs

// sparseTable maps an entity index to a dense slot. Slot 0 is the dense
// null placeholder, so a zero entry means absent.
type sparseTable struct {
	slots []uint32
}

func (t *sparseTable) has(i uint32) bool {
	return int(i) < len(t.slots) && t.slots[i] != 0
}

func (t *sparseTable) at(i uint32) uint32 {
	return t.slots[i]
}

func (t *sparseTable) insert(i, slot uint32) {
	if int(i) >= len(t.slots) {
		t.grow(int(i) + 1)
	}
	t.slots[i] = slot
}

func (t *sparseTable) replace(i, slot uint32) {
	t.slots[i] = slot
}

// take returns the slot for i and marks i absent.
func (t *sparseTable) take(i uint32) uint32 {
	slot := t.slots[i]
	t.slots[i] = 0
	return slot
}

func (t *sparseTable) grow(n int) {
	if n <= cap(t.slots) {
		t.slots = t.slots[:n]
		return
	}
	size := max(2*cap(t.slots), n, 64)
	slots := make([]uint32, n, size)
	copy(slots, t.slots)
	t.slots = slots
}
