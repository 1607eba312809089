package ecs

import "strconv"

// Entity packs a 20-bit slot index in the lower bits and a 12-bit generation
// in the upper bits. Generation increments each time the slot is freed so a
// handle held past its entity's destruction is detectable through the pool.
type Entity uint32

const (
	IndexBits      = 20
	GenerationBits = 12

	IndexMask      = 1<<IndexBits - 1
	GenerationMask = 1<<GenerationBits - 1

	// MaxIndex is the highest slot index a pool can hand out.
	MaxIndex = IndexMask
)

// Null is index 0, generation 0. Slot 0 is reserved and never issued.
const Null Entity = 0

func NewEntity(index uint32, generation uint32) Entity {
	return Entity(index&IndexMask | (generation&GenerationMask)<<IndexBits)
}

func (e Entity) Index() uint32      { return uint32(e) & IndexMask }
func (e Entity) Generation() uint32 { return uint32(e) >> IndexBits & GenerationMask }
func (e Entity) IsNull() bool       { return e == Null }

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.Index()), 10) + ":" + strconv.FormatUint(uint64(e.Generation()), 10)
}
