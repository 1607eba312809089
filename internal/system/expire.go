package system

import (
	"time"

	"github.com/ecxx/sparsecs/internal/component"
	"github.com/ecxx/sparsecs/internal/core/ecs"
	"github.com/ecxx/sparsecs/internal/core/event"
	coresys "github.com/ecxx/sparsecs/internal/core/system"
)

// ExpireSystem counts down Lifetime components. An entity whose lifetime
// reaches zero loses the component and is queued for destruction at Cleanup.
// Phase 2 (PostUpdate).
type ExpireSystem struct {
	world   *ecs.World
	bus     *event.Bus
	expired int
}

func NewExpireSystem(world *ecs.World, bus *event.Bus) *ExpireSystem {
	return &ExpireSystem{world: world, bus: bus}
}

func (s *ExpireSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ExpireSystem) Update(_ time.Duration) {
	var done []ecs.Entity
	ecs.NewMutableView1[component.Lifetime](s.world.Registry()).Each(func(e ecs.Entity, lt *component.Lifetime) {
		if lt.Ticks--; lt.Ticks > 0 {
			return
		}
		ecs.Remove[component.Lifetime](s.world, e)
		s.world.MarkForDestruction(e)
		done = append(done, e)
	})
	if len(done) == 0 {
		return
	}
	s.expired += len(done)
	event.Emit(s.bus, event.EntitiesExpired{Entities: done})
}

// Expired returns the total number of entities queued so far.
func (s *ExpireSystem) Expired() int { return s.expired }
