package system

import (
	"time"

	"github.com/ecxx/sparsecs/internal/component"
	"github.com/ecxx/sparsecs/internal/core/ecs"
	coresys "github.com/ecxx/sparsecs/internal/core/system"
)

// MovementSystem integrates velocity into position.
// Phase 1 (Update).
type MovementSystem struct {
	world *ecs.World
	moved int
}

func NewMovementSystem(world *ecs.World) *MovementSystem {
	return &MovementSystem{world: world}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	// Built per tick so the smaller of the two maps drives.
	ecs.NewView2[component.Position, component.Velocity](s.world.Registry()).Each(
		func(_ ecs.Entity, p *component.Position, v *component.Velocity) {
			p.X += v.X * sec
			p.Y += v.Y * sec
			s.moved++
		})
}

// Moved returns the total number of position updates applied.
func (s *MovementSystem) Moved() int { return s.moved }
