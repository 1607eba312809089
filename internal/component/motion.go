package component

// Position is a point in simulation space.
type Position struct {
	X float64
	Y float64
}

// Velocity is added to Position once per second of simulated time.
type Velocity struct {
	X float64
	Y float64
}
