package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/ecxx/sparsecs/internal/component"
	"github.com/ecxx/sparsecs/internal/config"
	"github.com/ecxx/sparsecs/internal/core/ecs"
	"github.com/ecxx/sparsecs/internal/core/event"
	coresys "github.com/ecxx/sparsecs/internal/core/system"
)

// ChurnSystem runs one pathological round per tick until the configured
// number of rounds is done. A round walks every live entity with a running
// counter that advances once per check, stripping components and destroying
// entities at fixed moduli, then refills the world.
// Phase 1 (Update).
type ChurnSystem struct {
	world    *ecs.World
	bus      *event.Bus
	cfg      config.ChurnConfig
	lifetime int32
	log      *zap.Logger
	round    int
}

// NewChurnSystem creates the system. lifetime, when positive, gives each
// refilled entity a Lifetime component so ExpireSystem reaps it.
func NewChurnSystem(world *ecs.World, bus *event.Bus, cfg config.ChurnConfig, lifetime int32, log *zap.Logger) *ChurnSystem {
	return &ChurnSystem{world: world, bus: bus, cfg: cfg, lifetime: lifetime, log: log}
}

func (s *ChurnSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// Done reports whether every round has run.
func (s *ChurnSystem) Done() bool { return s.round >= s.cfg.Rounds }

func (s *ChurnSystem) Rounds() int { return s.round }

// Populate creates n entities holding Position, Velocity and Health.
func (s *ChurnSystem) Populate(n int) []ecs.Entity {
	if n <= 0 {
		return nil
	}
	buf := make([]ecs.Entity, n)
	for i := range buf {
		buf[i] = ecs.CreateWith3(s.world,
			component.Position{X: float64(i)},
			component.Velocity{X: 1, Y: 0.5},
			component.Health{Current: 100, Max: 100},
		)
	}
	return buf
}

func (s *ChurnSystem) Update(_ time.Duration) {
	if s.Done() {
		return
	}
	w := s.world
	removed, destroyed := 0, 0
	i := 0
	w.Each(func(e ecs.Entity) {
		if i++; i%s.cfg.RemovePositionEvery == 0 && ecs.Has[component.Position](w, e) {
			ecs.Remove[component.Position](w, e)
			removed++
		}
		if i++; i%s.cfg.RemoveVelocityEvery == 0 && ecs.Has[component.Velocity](w, e) {
			ecs.Remove[component.Velocity](w, e)
			removed++
		}
		if i++; i%s.cfg.RemoveHealthEvery == 0 && ecs.Has[component.Health](w, e) {
			ecs.Remove[component.Health](w, e)
			removed++
		}
		if i++; i%s.cfg.DestroyEvery == 0 {
			w.Destroy(e)
			destroyed++
		}
	})

	fresh := s.Populate(s.cfg.Refill)
	if s.lifetime > 0 {
		for _, e := range fresh {
			ecs.Assign(w, e, component.Lifetime{Ticks: s.lifetime})
		}
	}

	s.round++
	ev := event.RoundCompleted{
		Round:     s.round,
		Removed:   removed,
		Destroyed: destroyed,
		Created:   s.cfg.Refill,
		Alive:     w.Len(),
	}
	event.Emit(s.bus, ev)
	s.log.Debug("churn round",
		zap.Int("round", ev.Round),
		zap.Int("removed", ev.Removed),
		zap.Int("destroyed", ev.Destroyed),
		zap.Int("alive", ev.Alive),
	)
}
