package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/ecxx/sparsecs/internal/core/ecs"
	"github.com/ecxx/sparsecs/internal/core/event"
	coresys "github.com/ecxx/sparsecs/internal/core/system"
)

// AuditSystem verifies the pool and every map after each tick.
// Phase 4 (Audit).
type AuditSystem struct {
	world    *ecs.World
	bus      *event.Bus
	log      *zap.Logger
	tick     uint64
	failures int
}

func NewAuditSystem(world *ecs.World, bus *event.Bus, log *zap.Logger) *AuditSystem {
	return &AuditSystem{world: world, bus: bus, log: log}
}

func (s *AuditSystem) Phase() coresys.Phase { return coresys.PhaseAudit }

func (s *AuditSystem) Update(_ time.Duration) {
	s.tick++
	err := s.world.Check()
	if err == nil {
		return
	}
	s.failures++
	s.log.Error("world invariant violated", zap.Uint64("tick", s.tick), zap.Error(err))
	event.Emit(s.bus, event.AuditFailed{Tick: s.tick, Err: err})
}

func (s *AuditSystem) Failures() int { return s.failures }
