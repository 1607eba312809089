package component

// Health is a bounded hit-point pool.
type Health struct {
	Current int32
	Max     int32
}

// Lifetime counts down once per tick; the entity is destroyed at zero.
type Lifetime struct {
	Ticks int32
}

// Name labels an entity in logs and scripts.
type Name struct {
	Value string
}

// Tag carries no data. Its map stores presence only.
type Tag struct{}
